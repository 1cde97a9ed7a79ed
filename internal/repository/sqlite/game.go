package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sakif/game-store/internal/apperror"
	"github.com/sakif/game-store/internal/model"
	"github.com/sakif/game-store/internal/repository"
)

var _ repository.GameRepository = (*GameDB)(nil)

// testHookAfterUnlink, when set, runs between deleting a game's old links and
// inserting the new ones. Tests use it to fail the relink half way through.
var testHookAfterUnlink func() error

// GameDB stores games and their category links.
type GameDB struct {
	db *DB
}

const gameColumns = `id, title, description, price, release_date, developer_id`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGame(row rowScanner) (*model.Game, error) {
	var g model.Game
	if err := row.Scan(
		&g.ID,
		&g.Title,
		&g.Description,
		&g.Price,
		&g.ReleaseDate,
		&g.DeveloperID,
	); err != nil {
		return nil, err
	}
	return &g, nil
}

// Create inserts the game and links it to game.CategoryIDs in one
// transaction. An unknown category or developer rolls back the whole insert.
// On success game is overwritten with the row as stored.
func (g *GameDB) Create(ctx context.Context, game *model.Game) error {
	return g.db.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx,
			`INSERT INTO games (title, description, price, release_date, developer_id)
			 VALUES (?, ?, ?, ?, ?)`,
			game.Title,
			game.Description,
			game.Price,
			game.ReleaseDate,
			game.DeveloperID,
		)
		if err != nil {
			return fmt.Errorf("sqlite: creating game: %w",
				translateError(err, "developer does not exist"))
		}

		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("sqlite: reading game id: %w", err)
		}

		if err := insertLinks(ctx, tx, id, game.CategoryIDs); err != nil {
			return err
		}

		stored, err := getGame(ctx, tx, id)
		if err != nil {
			return err
		}
		*game = *stored
		return nil
	})
}

// GetByID returns the game with its category ids.
func (g *GameDB) GetByID(ctx context.Context, id int64) (*model.Game, error) {
	return getGame(ctx, g.db.conn, id)
}

func getGame(ctx context.Context, q queryer, id int64) (*model.Game, error) {
	game, err := scanGame(q.QueryRowContext(ctx,
		`SELECT `+gameColumns+` FROM games WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("game", id)
		}
		return nil, fmt.Errorf("sqlite: getting game %d: %w", id, err)
	}

	rows, err := q.QueryContext(ctx,
		`SELECT category_id FROM game_categories WHERE game_id = ? ORDER BY category_id`, id)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing links of game %d: %w", id, err)
	}
	defer rows.Close()

	game.CategoryIDs = []int64{}
	for rows.Next() {
		var categoryID int64
		if err := rows.Scan(&categoryID); err != nil {
			return nil, fmt.Errorf("sqlite: scanning link row: %w", err)
		}
		game.CategoryIDs = append(game.CategoryIDs, categoryID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating links of game %d: %w", id, err)
	}

	return game, nil
}

// List returns every game with its category ids. Links are fetched with a
// single query and grouped in memory.
func (g *GameDB) List(ctx context.Context) ([]model.Game, error) {
	rows, err := g.db.conn.QueryContext(ctx, `SELECT `+gameColumns+` FROM games ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing games: %w", err)
	}
	defer rows.Close()

	games := []model.Game{}
	for rows.Next() {
		game, err := scanGame(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning game row: %w", err)
		}
		games = append(games, *game)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating games: %w", err)
	}

	links, err := g.linksByGame(ctx)
	if err != nil {
		return nil, err
	}
	for i := range games {
		if ids, ok := links[games[i].ID]; ok {
			games[i].CategoryIDs = ids
		} else {
			games[i].CategoryIDs = []int64{}
		}
	}

	return games, nil
}

func (g *GameDB) linksByGame(ctx context.Context) (map[int64][]int64, error) {
	rows, err := g.db.conn.QueryContext(ctx,
		`SELECT game_id, category_id FROM game_categories ORDER BY game_id, category_id`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing game links: %w", err)
	}
	defer rows.Close()

	links := make(map[int64][]int64)
	for rows.Next() {
		var gameID, categoryID int64
		if err := rows.Scan(&gameID, &categoryID); err != nil {
			return nil, fmt.Errorf("sqlite: scanning link row: %w", err)
		}
		links[gameID] = append(links[gameID], categoryID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating game links: %w", err)
	}
	return links, nil
}

// Update applies a partial update and, if requested, replaces the game's
// category links.
//
// The column update, the link delete and the link inserts share one
// transaction. If any insert fails (unknown category, context cancelled, ...)
// the delete is rolled back too, so the game keeps the links it had before
// the request.
func (g *GameDB) Update(ctx context.Context, update model.GameUpdate) (*model.Game, error) {
	var updated *model.Game

	err := g.db.withTx(ctx, func(tx *sql.Tx) error {
		// COALESCE(NULL, col) keeps the current value, so nil fields are no-ops.
		result, err := tx.ExecContext(ctx,
			`UPDATE games
			 SET title = COALESCE(?, title),
			     description = COALESCE(?, description),
			     price = COALESCE(?, price)
			 WHERE id = ?`,
			update.Title,
			update.Description,
			update.Price,
			update.ID,
		)
		if err != nil {
			return fmt.Errorf("sqlite: updating game %d: %w", update.ID,
				translateError(err, "game could not be updated"))
		}
		if err := checkAffected(result, apperror.NotFound("game", update.ID)); err != nil {
			return err
		}

		if update.ReplaceCategories {
			if _, err := tx.ExecContext(ctx,
				`DELETE FROM game_categories WHERE game_id = ?`, update.ID); err != nil {
				return fmt.Errorf("sqlite: unlinking categories of game %d: %w", update.ID, err)
			}

			if testHookAfterUnlink != nil {
				if err := testHookAfterUnlink(); err != nil {
					return err
				}
			}

			if err := insertLinks(ctx, tx, update.ID, update.CategoryIDs); err != nil {
				return err
			}
		}

		game, err := getGame(ctx, tx, update.ID)
		if err != nil {
			return err
		}
		updated = game
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func insertLinks(ctx context.Context, tx *sql.Tx, gameID int64, categoryIDs []int64) error {
	for _, categoryID := range categoryIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO game_categories (game_id, category_id) VALUES (?, ?)`,
			gameID, categoryID,
		); err != nil {
			return fmt.Errorf("sqlite: linking game %d to category %d: %w", gameID, categoryID,
				translateError(err, fmt.Sprintf("category %d does not exist", categoryID)))
		}
	}
	return nil
}

// Delete removes a game and, through ON DELETE CASCADE, its links. A game
// that has been purchased cannot be deleted.
func (g *GameDB) Delete(ctx context.Context, id int64) (*model.Game, error) {
	var deleted *model.Game

	err := g.db.withTx(ctx, func(tx *sql.Tx) error {
		game, err := getGame(ctx, tx, id)
		if err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM games WHERE id = ?`, id); err != nil {
			return fmt.Errorf("sqlite: deleting game %d: %w", id,
				translateError(err, fmt.Sprintf("game %d has purchases", id)))
		}

		deleted = game
		return nil
	})
	if err != nil {
		return nil, err
	}

	return deleted, nil
}

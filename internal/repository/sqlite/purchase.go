package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sakif/game-store/internal/apperror"
	"github.com/sakif/game-store/internal/model"
	"github.com/sakif/game-store/internal/repository"
)

// compile-time check that *PurchaseDB implements repository.PurchaseRepository
var _ repository.PurchaseRepository = (*PurchaseDB)(nil)

// PurchaseDB stores purchases.
type PurchaseDB struct {
	db *DB
}

// Create records a purchase. If PurchaseDate is zero it is set to now.
// An unknown user or game yields apperror.ErrConflict and nothing is written.
// On success purchase is overwritten with the row as stored.
func (p *PurchaseDB) Create(ctx context.Context, purchase *model.Purchase) error {
	if purchase.PurchaseDate.IsZero() {
		purchase.PurchaseDate = time.Now().UTC()
	}

	return p.db.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx,
			`INSERT INTO purchases (user_id, game_id, total, purchase_date) VALUES (?, ?, ?, ?)`,
			purchase.UserID,
			purchase.GameID,
			purchase.Total,
			purchase.PurchaseDate,
		)
		if err != nil {
			return fmt.Errorf("sqlite: creating purchase: %w",
				translateError(err, fmt.Sprintf("user %d or game %d does not exist",
					purchase.UserID, purchase.GameID)))
		}

		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("sqlite: reading purchase id: %w", err)
		}

		stored, err := getPurchase(ctx, tx, id)
		if err != nil {
			return err
		}
		*purchase = *stored
		return nil
	})
}

// GetByID returns the purchase without the expanded user and game.
func (p *PurchaseDB) GetByID(ctx context.Context, id int64) (*model.Purchase, error) {
	return getPurchase(ctx, p.db.conn, id)
}

func getPurchase(ctx context.Context, q queryer, id int64) (*model.Purchase, error) {
	var purchase model.Purchase
	err := q.QueryRowContext(ctx,
		`SELECT id, user_id, game_id, total, purchase_date FROM purchases WHERE id = ?`,
		id,
	).Scan(
		&purchase.ID,
		&purchase.UserID,
		&purchase.GameID,
		&purchase.Total,
		&purchase.PurchaseDate,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("purchase", id)
		}
		return nil, fmt.Errorf("sqlite: getting purchase %d: %w", id, err)
	}
	return &purchase, nil
}

// List returns every purchase with its user and game joined in.
func (p *PurchaseDB) List(ctx context.Context) ([]model.Purchase, error) {
	rows, err := p.db.conn.QueryContext(ctx,
		`SELECT p.id, p.user_id, p.game_id, p.total, p.purchase_date,
		        u.id, u.name, u.email,
		        g.id, g.title, g.description, g.price, g.release_date, g.developer_id
		 FROM purchases p
		 JOIN users u ON u.id = p.user_id
		 JOIN games g ON g.id = p.game_id
		 ORDER BY p.id`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing purchases: %w", err)
	}
	defer rows.Close()

	purchases := []model.Purchase{}
	for rows.Next() {
		var (
			purchase model.Purchase
			user     model.User
			game     model.PurchasedGame
		)
		if err := rows.Scan(
			&purchase.ID,
			&purchase.UserID,
			&purchase.GameID,
			&purchase.Total,
			&purchase.PurchaseDate,
			&user.ID,
			&user.Name,
			&user.Email,
			&game.ID,
			&game.Title,
			&game.Description,
			&game.Price,
			&game.ReleaseDate,
			&game.DeveloperID,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning purchase row: %w", err)
		}
		purchase.User = &user
		purchase.Game = &game
		purchases = append(purchases, purchase)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating purchases: %w", err)
	}

	return purchases, nil
}

// UpdateTotal sets the total of purchase.ID and fills the rest of purchase
// from the stored row.
func (p *PurchaseDB) UpdateTotal(ctx context.Context, purchase *model.Purchase) error {
	return p.db.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx,
			`UPDATE purchases SET total = ? WHERE id = ?`,
			purchase.Total,
			purchase.ID,
		)
		if err != nil {
			return fmt.Errorf("sqlite: updating purchase %d: %w", purchase.ID,
				translateError(err, "purchase could not be updated"))
		}
		if err := checkAffected(result, apperror.NotFound("purchase", purchase.ID)); err != nil {
			return err
		}

		stored, err := getPurchase(ctx, tx, purchase.ID)
		if err != nil {
			return err
		}
		*purchase = *stored
		return nil
	})
}

func (p *PurchaseDB) Delete(ctx context.Context, id int64) (*model.Purchase, error) {
	var deleted *model.Purchase

	err := p.db.withTx(ctx, func(tx *sql.Tx) error {
		purchase, err := getPurchase(ctx, tx, id)
		if err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM purchases WHERE id = ?`, id); err != nil {
			return fmt.Errorf("sqlite: deleting purchase %d: %w", id, err)
		}

		deleted = purchase
		return nil
	})
	if err != nil {
		return nil, err
	}

	return deleted, nil
}

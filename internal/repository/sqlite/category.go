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

// compile-time check that *CategoryDB implements repository.CategoryRepository
var _ repository.CategoryRepository = (*CategoryDB)(nil)

// CategoryDB stores categories.
type CategoryDB struct {
	db *DB
}

// Create inserts a category and sets its generated ID.
func (c *CategoryDB) Create(ctx context.Context, category *model.Category) error {
	result, err := c.db.conn.ExecContext(ctx,
		`INSERT INTO categories (name) VALUES (?)`,
		category.Name,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating category: %w",
			translateError(err, "category could not be created"))
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading category id: %w", err)
	}
	category.ID = id
	return nil
}

// GetByID returns apperror.ErrNotFound if no category has the given id.
func (c *CategoryDB) GetByID(ctx context.Context, id int64) (*model.Category, error) {
	return getCategory(ctx, c.db.conn, id)
}

func getCategory(ctx context.Context, q queryer, id int64) (*model.Category, error) {
	var category model.Category
	err := q.QueryRowContext(ctx,
		`SELECT id, name FROM categories WHERE id = ?`,
		id,
	).Scan(&category.ID, &category.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("category", id)
		}
		return nil, fmt.Errorf("sqlite: getting category %d: %w", id, err)
	}
	return &category, nil
}

// List returns every category ordered by id.
func (c *CategoryDB) List(ctx context.Context) ([]model.Category, error) {
	rows, err := c.db.conn.QueryContext(ctx,
		`SELECT id, name FROM categories ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing categories: %w", err)
	}
	defer rows.Close()

	categories := []model.Category{}
	for rows.Next() {
		var category model.Category
		if err := rows.Scan(&category.ID, &category.Name); err != nil {
			return nil, fmt.Errorf("sqlite: scanning category row: %w", err)
		}
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating categories: %w", err)
	}

	return categories, nil
}

// Update renames the category identified by category.ID.
func (c *CategoryDB) Update(ctx context.Context, category *model.Category) error {
	result, err := c.db.conn.ExecContext(ctx,
		`UPDATE categories SET name = ? WHERE id = ?`,
		category.Name,
		category.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating category %d: %w", category.ID,
			translateError(err, "category could not be updated"))
	}
	return checkAffected(result, apperror.NotFound("category", category.ID))
}

// Delete removes a category. A category that is still linked to a game is
// protected by the foreign key on game_categories and yields ErrConflict.
func (c *CategoryDB) Delete(ctx context.Context, id int64) (*model.Category, error) {
	var deleted *model.Category

	err := c.db.withTx(ctx, func(tx *sql.Tx) error {
		category, err := getCategory(ctx, tx, id)
		if err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id); err != nil {
			return fmt.Errorf("sqlite: deleting category %d: %w", id,
				translateError(err, fmt.Sprintf("category %d is still linked to a game", id)))
		}

		deleted = category
		return nil
	})
	if err != nil {
		return nil, err
	}

	return deleted, nil
}

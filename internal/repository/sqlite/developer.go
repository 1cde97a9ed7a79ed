package sqlite

import (
	"context"
	"fmt"

	"github.com/sakif/game-store/internal/model"
	"github.com/sakif/game-store/internal/repository"
)

var _ repository.DeveloperRepository = (*DeveloperDB)(nil)

// DeveloperDB stores game developers.
type DeveloperDB struct {
	db *DB
}

func (d *DeveloperDB) Create(ctx context.Context, developer *model.Developer) error {
	result, err := d.db.conn.ExecContext(ctx,
		`INSERT INTO developers (name) VALUES (?)`,
		developer.Name,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating developer: %w",
			translateError(err, "developer could not be created"))
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading developer id: %w", err)
	}
	developer.ID = id
	return nil
}

func (d *DeveloperDB) List(ctx context.Context) ([]model.Developer, error) {
	rows, err := d.db.conn.QueryContext(ctx, `SELECT id, name FROM developers ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing developers: %w", err)
	}
	defer rows.Close()

	developers := []model.Developer{}
	for rows.Next() {
		var developer model.Developer
		if err := rows.Scan(&developer.ID, &developer.Name); err != nil {
			return nil, fmt.Errorf("sqlite: scanning developer row: %w", err)
		}
		developers = append(developers, developer)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating developers: %w", err)
	}

	return developers, nil
}

// Package repository declares the storage contracts of the store.
//
// Services depend on these interfaces, never on a concrete database package.
// The sqlite subpackage provides the production implementation.
//
// Conventions shared by every implementation:
//   - Create fills in the generated ID on the passed struct.
//   - Update and Delete return apperror.ErrNotFound when the id matches no row.
//   - Delete returns the row as it was before deletion.
//   - Constraint violations (foreign key, unique) come back as apperror.ErrConflict.
package repository

import (
	"context"

	"github.com/sakif/game-store/internal/model"
)

type CategoryRepository interface {
	Create(ctx context.Context, category *model.Category) error
	GetByID(ctx context.Context, id int64) (*model.Category, error)
	List(ctx context.Context) ([]model.Category, error)
	Update(ctx context.Context, category *model.Category) error
	Delete(ctx context.Context, id int64) (*model.Category, error)
}

type DeveloperRepository interface {
	Create(ctx context.Context, developer *model.Developer) error
	List(ctx context.Context) ([]model.Developer, error)
}

// GameRepository owns the game_categories links: Create and Update write the
// game row and its links in one transaction.
type GameRepository interface {
	Create(ctx context.Context, game *model.Game) error
	GetByID(ctx context.Context, id int64) (*model.Game, error)
	List(ctx context.Context) ([]model.Game, error)
	Update(ctx context.Context, update model.GameUpdate) (*model.Game, error)
	Delete(ctx context.Context, id int64) (*model.Game, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Update(ctx context.Context, update model.UserUpdate) (*model.User, error)
	Delete(ctx context.Context, id int64) (*model.User, error)
}

// PurchaseRepository.List returns purchases with User and Game expanded.
type PurchaseRepository interface {
	Create(ctx context.Context, purchase *model.Purchase) error
	GetByID(ctx context.Context, id int64) (*model.Purchase, error)
	List(ctx context.Context) ([]model.Purchase, error)
	UpdateTotal(ctx context.Context, purchase *model.Purchase) error
	Delete(ctx context.Context, id int64) (*model.Purchase, error)
}

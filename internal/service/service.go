// Package service contains the business logic of the store.
//
// THE THREE LAYERS:
//
//	Handler (HTTP layer)     → decodes requests, writes responses
//	Service (business layer) → normalises input, hashes passwords, logs events
//	Repository (data layer)  → reads/writes the database
//
// Services take repository interfaces, never *sqlite.DB, so tests inject
// in-memory fakes (see fakes_test.go) and the handlers never see SQL.
// Errors come back as apperror kinds; the handler decides the status code.
package service

import (
	"log/slog"

	"github.com/sakif/game-store/internal/apperror"
	"github.com/sakif/game-store/internal/repository"
)

// Stores groups the repositories the services need.
type Stores struct {
	Categories repository.CategoryRepository
	Developers repository.DeveloperRepository
	Games      repository.GameRepository
	Users      repository.UserRepository
	Purchases  repository.PurchaseRepository
}

// Services bundles one service per resource. The server and the seed
// command both build it with New.
type Services struct {
	Categories *CategoryService
	Developers *DeveloperService
	Games      *GameService
	Users      *UserService
	Purchases  *PurchaseService

	logger *slog.Logger
}

// New wires every service to its store.
func New(stores Stores, hasher PasswordHasher, logger *slog.Logger) *Services {
	return &Services{
		Categories: NewCategoryService(stores.Categories, logger),
		Developers: NewDeveloperService(stores.Developers, logger),
		Games:      NewGameService(stores.Games, logger),
		Users:      NewUserService(stores.Users, hasher, logger),
		Purchases:  NewPurchaseService(stores.Purchases, logger),
		logger:     logger,
	}
}

// requireID rejects ids that can never match a row. A missing id in a JSON
// body decodes to 0.
func requireID(id int64) error {
	if id <= 0 {
		return apperror.ValidationFailed("id", "id is required and must be positive")
	}
	return nil
}

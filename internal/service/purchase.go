package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/sakif/game-store/internal/apperror"
	"github.com/sakif/game-store/internal/model"
	"github.com/sakif/game-store/internal/repository"
)

// PurchaseService records games bought by users.
type PurchaseService struct {
	repo   repository.PurchaseRepository
	logger *slog.Logger
}

func NewPurchaseService(repo repository.PurchaseRepository, logger *slog.Logger) *PurchaseService {
	return &PurchaseService{repo: repo, logger: logger}
}

// Create records a purchase. A zero PurchaseDate means now. An unknown user
// or game is reported by the repository as apperror.ErrConflict.
func (s *PurchaseService) Create(ctx context.Context, purchase model.Purchase) (*model.Purchase, error) {
	if err := requireID(purchase.UserID); err != nil {
		return nil, apperror.ValidationFailed("userId", "userId is required and must be positive")
	}
	if err := requireID(purchase.GameID); err != nil {
		return nil, apperror.ValidationFailed("gameId", "gameId is required and must be positive")
	}
	if err := checkTotal(purchase.Total); err != nil {
		return nil, err
	}

	// Only the row's own columns are written.
	purchase.User, purchase.Game = nil, nil

	if err := s.repo.Create(ctx, &purchase); err != nil {
		s.logger.Warn("purchase rejected",
			slog.Int64("user_id", purchase.UserID),
			slog.Int64("game_id", purchase.GameID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating purchase: %w", err)
	}

	s.logger.Info("purchase created",
		slog.Int64("id", purchase.ID),
		slog.Int64("user_id", purchase.UserID),
		slog.Int64("game_id", purchase.GameID),
		slog.String("total", purchase.Total.String()),
	)
	return &purchase, nil
}

// List returns every purchase with its user and game expanded.
func (s *PurchaseService) List(ctx context.Context) ([]model.Purchase, error) {
	purchases, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list purchases", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing purchases: %w", err)
	}
	return purchases, nil
}

func (s *PurchaseService) UpdateTotal(ctx context.Context, id int64, total decimal.Decimal) (*model.Purchase, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	if err := checkTotal(total); err != nil {
		return nil, err
	}

	purchase := &model.Purchase{ID: id, Total: total}
	if err := s.repo.UpdateTotal(ctx, purchase); err != nil {
		return nil, fmt.Errorf("updating purchase: %w", err)
	}

	s.logger.Info("purchase updated", slog.Int64("id", id), slog.String("total", total.String()))
	return purchase, nil
}

func (s *PurchaseService) Delete(ctx context.Context, id int64) (*model.Purchase, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}

	purchase, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("deleting purchase: %w", err)
	}

	s.logger.Info("purchase deleted", slog.Int64("id", id))
	return purchase, nil
}

func checkTotal(total decimal.Decimal) error {
	if total.IsNegative() {
		return apperror.ValidationFailed("total", "total cannot be negative")
	}
	return nil
}

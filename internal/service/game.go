package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/sakif/game-store/internal/apperror"
	"github.com/sakif/game-store/internal/model"
	"github.com/sakif/game-store/internal/repository"
)

// GameService handles business logic for games and their category links.
type GameService struct {
	repo   repository.GameRepository
	logger *slog.Logger
}

func NewGameService(repo repository.GameRepository, logger *slog.Logger) *GameService {
	return &GameService{repo: repo, logger: logger}
}

// Create validates and stores a new game together with its category links.
// The game and its links are written atomically by the repository.
func (s *GameService) Create(ctx context.Context, game model.Game) (*model.Game, error) {
	game.Title = strings.TrimSpace(game.Title)
	if game.Title == "" {
		return nil, apperror.ValidationFailed("title", "game title is required")
	}
	if err := checkPrice(game.Price); err != nil {
		return nil, err
	}
	if game.DeveloperID != nil {
		if err := requireID(*game.DeveloperID); err != nil {
			return nil, apperror.ValidationFailed("developerId", "developerId must be positive")
		}
	}

	ids, err := normaliseCategoryIDs(game.CategoryIDs)
	if err != nil {
		return nil, err
	}
	game.CategoryIDs = ids

	if err := s.repo.Create(ctx, &game); err != nil {
		s.logger.Error("failed to create game",
			slog.String("title", game.Title),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating game: %w", err)
	}

	s.logger.Info("game created",
		slog.Int64("id", game.ID),
		slog.String("title", game.Title),
		slog.Int("categories", len(game.CategoryIDs)),
	)
	return &game, nil
}

func (s *GameService) List(ctx context.Context) ([]model.Game, error) {
	games, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list games", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing games: %w", err)
	}
	return games, nil
}

// Update applies a partial update. Nil fields are left alone; when
// update.ReplaceCategories is set the links become exactly update.CategoryIDs.
//
// If the relink fails part way, the repository rolls the whole update back
// and the game keeps its previous links.
func (s *GameService) Update(ctx context.Context, update model.GameUpdate) (*model.Game, error) {
	if err := requireID(update.ID); err != nil {
		return nil, err
	}
	if update.Title != nil {
		title := strings.TrimSpace(*update.Title)
		if title == "" {
			return nil, apperror.ValidationFailed("title", "game title cannot be empty")
		}
		update.Title = &title
	}
	if update.Price != nil {
		if err := checkPrice(*update.Price); err != nil {
			return nil, err
		}
	}
	if update.ReplaceCategories {
		ids, err := normaliseCategoryIDs(update.CategoryIDs)
		if err != nil {
			return nil, err
		}
		update.CategoryIDs = ids
	}

	game, err := s.repo.Update(ctx, update)
	if err != nil {
		s.logger.Warn("game update rolled back",
			slog.Int64("id", update.ID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("updating game: %w", err)
	}

	attrs := []any{slog.Int64("id", game.ID)}
	if update.ReplaceCategories {
		attrs = append(attrs, slog.Any("categoryIds", game.CategoryIDs))
	}
	s.logger.Info("game updated", attrs...)
	return game, nil
}

// Delete removes a game and its links. A purchased game is refused with
// apperror.ErrConflict.
func (s *GameService) Delete(ctx context.Context, id int64) (*model.Game, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}

	game, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("deleting game: %w", err)
	}

	s.logger.Info("game deleted", slog.Int64("id", id))
	return game, nil
}

func checkPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return apperror.ValidationFailed("price", "price cannot be negative")
	}
	return nil
}

// normaliseCategoryIDs drops duplicate ids, keeping first-seen order, so
// [2, 3, 2] links two categories instead of failing on the composite key.
// The result is never nil.
func normaliseCategoryIDs(ids []int64) ([]int64, error) {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id <= 0 {
			return nil, apperror.ValidationFailed("categoryIds",
				fmt.Sprintf("category id %d must be positive", id))
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out, nil
}

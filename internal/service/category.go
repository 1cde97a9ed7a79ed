package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/game-store/internal/apperror"
	"github.com/sakif/game-store/internal/model"
	"github.com/sakif/game-store/internal/repository"
)

// CategoryService handles business logic for categories.
type CategoryService struct {
	repo   repository.CategoryRepository
	logger *slog.Logger
}

func NewCategoryService(repo repository.CategoryRepository, logger *slog.Logger) *CategoryService {
	return &CategoryService{
		repo:   repo,
		logger: logger,
	}
}

func (s *CategoryService) Create(ctx context.Context, name string) (*model.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.ValidationFailed("name", "category name is required")
	}

	category := &model.Category{Name: name}
	if err := s.repo.Create(ctx, category); err != nil {
		s.logger.Error("failed to create category",
			slog.String("name", name),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating category: %w", err)
	}

	s.logger.Info("category created",
		slog.Int64("id", category.ID),
		slog.String("name", category.Name),
	)
	return category, nil
}

func (s *CategoryService) List(ctx context.Context) ([]model.Category, error) {
	categories, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list categories", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	return categories, nil
}

// Update renames a category. Returns apperror.ErrNotFound for an unknown id.
func (s *CategoryService) Update(ctx context.Context, id int64, name string) (*model.Category, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.ValidationFailed("name", "category name is required")
	}

	category := &model.Category{ID: id, Name: name}
	if err := s.repo.Update(ctx, category); err != nil {
		return nil, fmt.Errorf("updating category: %w", err)
	}

	s.logger.Info("category updated",
		slog.Int64("id", category.ID),
		slog.String("name", category.Name),
	)
	return category, nil
}

// Delete removes a category and returns it. A category still linked to a
// game is refused with apperror.ErrConflict.
func (s *CategoryService) Delete(ctx context.Context, id int64) (*model.Category, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}

	category, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("deleting category: %w", err)
	}

	s.logger.Info("category deleted", slog.Int64("id", id))
	return category, nil
}

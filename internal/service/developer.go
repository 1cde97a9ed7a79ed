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

// DeveloperService exposes developers so clients can look up valid
// developerId values for games.
type DeveloperService struct {
	repo   repository.DeveloperRepository
	logger *slog.Logger
}

func NewDeveloperService(repo repository.DeveloperRepository, logger *slog.Logger) *DeveloperService {
	return &DeveloperService{repo: repo, logger: logger}
}

func (s *DeveloperService) Create(ctx context.Context, name string) (*model.Developer, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.ValidationFailed("name", "developer name is required")
	}

	developer := &model.Developer{Name: name}
	if err := s.repo.Create(ctx, developer); err != nil {
		s.logger.Error("failed to create developer",
			slog.String("name", name),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating developer: %w", err)
	}

	s.logger.Info("developer created", slog.Int64("id", developer.ID), slog.String("name", name))
	return developer, nil
}

func (s *DeveloperService) List(ctx context.Context) ([]model.Developer, error) {
	developers, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing developers: %w", err)
	}
	return developers, nil
}

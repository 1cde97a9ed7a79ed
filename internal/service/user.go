package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"

	"github.com/sakif/game-store/internal/apperror"
	"github.com/sakif/game-store/internal/auth"
	"github.com/sakif/game-store/internal/model"
	"github.com/sakif/game-store/internal/repository"
)

// PasswordHasher turns a plaintext password into the value stored in
// users.password_hash. *auth.PasswordService implements it.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
}

// UserService handles business logic for customers.
//
// Plaintext passwords stop here: the repository only ever receives the hash.
type UserService struct {
	repo   repository.UserRepository
	hasher PasswordHasher
	logger *slog.Logger
}

func NewUserService(repo repository.UserRepository, hasher PasswordHasher, logger *slog.Logger) *UserService {
	return &UserService{
		repo:   repo,
		hasher: hasher,
		logger: logger,
	}
}

func (s *UserService) Create(ctx context.Context, name, email, password string) (*model.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.ValidationFailed("name", "user name is required")
	}
	email, err := normaliseEmail(email)
	if err != nil {
		return nil, err
	}
	if password == "" {
		return nil, apperror.ValidationFailed("password", "password is required")
	}

	hash, err := s.hash(password)
	if err != nil {
		return nil, err
	}

	user := &model.User{Name: name, Email: email, PasswordHash: hash}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	// Emails stay out of logs.
	s.logger.Info("user created", slog.Int64("id", user.ID))
	return user, nil
}

func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list users", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing users: %w", err)
	}
	return users, nil
}

// Update changes the non-nil fields. A new password is hashed before it
// reaches the repository.
func (s *UserService) Update(ctx context.Context, id int64, name, email, password *string) (*model.User, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}

	update := model.UserUpdate{ID: id}
	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return nil, apperror.ValidationFailed("name", "user name cannot be empty")
		}
		update.Name = &trimmed
	}
	if email != nil {
		normalised, err := normaliseEmail(*email)
		if err != nil {
			return nil, err
		}
		update.Email = &normalised
	}
	if password != nil {
		if *password == "" {
			return nil, apperror.ValidationFailed("password", "password cannot be empty")
		}
		hash, err := s.hash(*password)
		if err != nil {
			return nil, err
		}
		update.PasswordHash = &hash
	}

	user, err := s.repo.Update(ctx, update)
	if err != nil {
		return nil, fmt.Errorf("updating user: %w", err)
	}

	s.logger.Info("user updated",
		slog.Int64("id", id),
		slog.Bool("password_changed", password != nil),
	)
	return user, nil
}

// Delete removes a user. Users with purchases are refused with
// apperror.ErrConflict.
func (s *UserService) Delete(ctx context.Context, id int64) (*model.User, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}

	user, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("deleting user: %w", err)
	}

	s.logger.Info("user deleted", slog.Int64("id", id))
	return user, nil
}

func (s *UserService) hash(password string) (string, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooLong) {
			return "", apperror.ValidationFailed("password",
				fmt.Sprintf("password must be %d bytes or fewer", auth.MaxPasswordBytes))
		}
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return hash, nil
}

// normaliseEmail trims and lower-cases the address so the UNIQUE column
// catches "A@x.com" and "a@x.com" as the same customer.
func normaliseEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", apperror.ValidationFailed("email", "email is required")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", apperror.ValidationFailed("email", "email is not a valid address")
	}
	return email, nil
}

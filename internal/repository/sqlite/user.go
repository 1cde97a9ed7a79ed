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

// compile-time check that *UserDB implements repository.UserRepository
var _ repository.UserRepository = (*UserDB)(nil)

const errEmailTaken = "email already registered"

// UserDB stores customers.
type UserDB struct {
	db *DB
}

// Create inserts a user. user.PasswordHash must already be hashed.
// A second user with the same email yields apperror.ErrConflict.
func (u *UserDB) Create(ctx context.Context, user *model.User) error {
	result, err := u.db.conn.ExecContext(ctx,
		`INSERT INTO users (name, email, password_hash) VALUES (?, ?, ?)`,
		user.Name,
		user.Email,
		user.PasswordHash,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating user: %w", translateError(err, errEmailTaken))
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading user id: %w", err)
	}
	user.ID = id
	return nil
}

// GetByID returns apperror.ErrNotFound if no user has the given id.
func (u *UserDB) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return getUser(ctx, u.db.conn, id)
}

func getUser(ctx context.Context, q queryer, id int64) (*model.User, error) {
	var user model.User
	err := q.QueryRowContext(ctx,
		`SELECT id, name, email, password_hash FROM users WHERE id = ?`,
		id,
	).Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("user", id)
		}
		return nil, fmt.Errorf("sqlite: getting user %d: %w", id, err)
	}
	return &user, nil
}

func (u *UserDB) List(ctx context.Context) ([]model.User, error) {
	rows, err := u.db.conn.QueryContext(ctx,
		`SELECT id, name, email, password_hash FROM users ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing users: %w", err)
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		var user model.User
		if err := rows.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash); err != nil {
			return nil, fmt.Errorf("sqlite: scanning user row: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating users: %w", err)
	}

	return users, nil
}

// Update changes the non-nil fields of update and returns the stored user.
func (u *UserDB) Update(ctx context.Context, update model.UserUpdate) (*model.User, error) {
	var updated *model.User

	err := u.db.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx,
			`UPDATE users
			 SET name = COALESCE(?, name),
			     email = COALESCE(?, email),
			     password_hash = COALESCE(?, password_hash)
			 WHERE id = ?`,
			update.Name,
			update.Email,
			update.PasswordHash,
			update.ID,
		)
		if err != nil {
			return fmt.Errorf("sqlite: updating user %d: %w", update.ID,
				translateError(err, errEmailTaken))
		}
		if err := checkAffected(result, apperror.NotFound("user", update.ID)); err != nil {
			return err
		}

		user, err := getUser(ctx, tx, update.ID)
		if err != nil {
			return err
		}
		updated = user
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// Delete removes a user. Users with purchases cannot be deleted.
func (u *UserDB) Delete(ctx context.Context, id int64) (*model.User, error) {
	var deleted *model.User

	err := u.db.withTx(ctx, func(tx *sql.Tx) error {
		user, err := getUser(ctx, tx, id)
		if err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id); err != nil {
			return fmt.Errorf("sqlite: deleting user %d: %w", id,
				translateError(err, fmt.Sprintf("user %d has purchases", id)))
		}

		deleted = user
		return nil
	})
	if err != nil {
		return nil, err
	}

	return deleted, nil
}

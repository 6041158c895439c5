package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"accountd/internal/models"
	"accountd/internal/storage"
)

type UserRepository interface {
	FindByEmail(ctx context.Context, q storage.Querier, email string) (*models.User, error)
	FindByID(ctx context.Context, q storage.Querier, id string) (*models.User, error)
	Insert(ctx context.Context, q storage.Querier, user *models.User) error
	UpdatePassword(ctx context.Context, q storage.Querier, userID, passwordHash string) error
}

type userRepository struct{}

func NewUserRepository() UserRepository {
	return &userRepository{}
}

func (r *userRepository) FindByEmail(ctx context.Context, q storage.Querier, email string) (*models.User, error) {
	const query = `
		SELECT id, first_name, last_name, email, password_hash, created_at
		FROM users
		WHERE email = $1
	`
	return scanUser(q.QueryRowContext(ctx, query, email))
}

func (r *userRepository) FindByID(ctx context.Context, q storage.Querier, id string) (*models.User, error) {
	const query = `
		SELECT id, first_name, last_name, email, password_hash, created_at
		FROM users
		WHERE id = $1
	`
	return scanUser(q.QueryRowContext(ctx, query, id))
}

func (r *userRepository) Insert(ctx context.Context, q storage.Querier, user *models.User) error {
	const query = `
		INSERT INTO users (id, first_name, last_name, email, password_hash)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`
	if err := q.QueryRowContext(ctx, query,
		user.ID, user.FirstName, user.LastName, user.Email, user.PasswordHash,
	).Scan(&user.CreatedAt); err != nil {
		return fmt.Errorf("user insert: %w", err)
	}
	return nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, q storage.Querier, userID, passwordHash string) error {
	const query = `
		UPDATE users SET password_hash = $2 WHERE id = $1
	`
	if _, err := q.ExecContext(ctx, query, userID, passwordHash); err != nil {
		return fmt.Errorf("user update password: %w", err)
	}
	return nil
}

func scanUser(row *sql.Row) (*models.User, error) {
	u := &models.User{}
	if err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.PasswordHash, &u.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("user scan: %w", err)
	}
	return u, nil
}

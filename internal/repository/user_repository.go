package repository

import (
	"client-service/internal/entity"
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db}
}

// CreateUser inserts a user. user.Password must already be hashed.
func (r *UserRepository) CreateUser(ctx context.Context, user *entity.User) error {
	query := `INSERT INTO users (username, password) VALUES (?, ?)`
	_, err := r.db.ExecContext(ctx, query, user.Username, user.Password)
	if err != nil {
		return fmt.Errorf("error creating user %q: %w", user.Username, err)
	}
	return nil
}

// GetUserByUsername returns ErrUserNotFound when no row matches.
func (r *UserRepository) GetUserByUsername(ctx context.Context, username string) (*entity.User, error) {
	user := &entity.User{}
	query := `SELECT username, password FROM users WHERE username = ?`
	err := r.db.QueryRowContext(ctx, query, username).Scan(&user.Username, &user.Password)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("error getting user %q: %w", username, err)
	}
	return user, nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, username, passwordHash string) error {
	query := `UPDATE users SET password = ? WHERE username = ?`
	_, err := r.db.ExecContext(ctx, query, passwordHash, username)
	if err != nil {
		return fmt.Errorf("error updating password for %q: %w", username, err)
	}
	return nil
}

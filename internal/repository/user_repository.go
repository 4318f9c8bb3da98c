package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/cake-service/internal/domain"
)

// UserRepository defines persistence access for users.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
}

// ErrNoDatabase is returned when no Postgres pool was configured.
var ErrNoDatabase = errors.New("postgres not configured")

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO users (username)
        VALUES ($1)
        RETURNING id, created_at, updated_at`

	if r.pool == nil {
		return ErrNoDatabase
	}
	return r.pool.QueryRow(ctx, query, user.Username).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

// FindByUsername returns pgx.ErrNoRows when no user has the username.
func (r *userRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	const query = `
        SELECT id, username, created_at, updated_at
        FROM users WHERE username=$1`

	if r.pool == nil {
		return nil, ErrNoDatabase
	}
	var user domain.User
	if err := r.pool.QueryRow(ctx, query, username).Scan(
		&user.ID,
		&user.Username,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &user, nil
}

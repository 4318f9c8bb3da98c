package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/cake-service/internal/domain"
)

// CakeRepository persists published cakes.
type CakeRepository interface {
	Create(ctx context.Context, cake *domain.Cake) error
}

type cakeRepository struct {
	pool *pgxpool.Pool
}

// NewCakeRepository returns a Postgres-backed implementation.
func NewCakeRepository(pool *pgxpool.Pool) CakeRepository {
	return &cakeRepository{pool: pool}
}

func (r *cakeRepository) Create(ctx context.Context, cake *domain.Cake) error {
	const query = `
        INSERT INTO cakes (id, name, description, brand, price)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING created_at`

	if r.pool == nil {
		return ErrNoDatabase
	}
	return r.pool.QueryRow(ctx, query,
		cake.ID,
		cake.Name,
		cake.Description,
		cake.Brand,
		cake.Price,
	).Scan(&cake.CreatedAt)
}

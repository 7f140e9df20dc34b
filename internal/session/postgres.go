package session

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"storefront-engine/internal/domain"
)

// guestKey is the single row under which the guest cart identifier persists.
const guestKey = "guest_cart_id"

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) Load(ctx context.Context) (string, error) {
	const q = `
SELECT value
FROM guest_sessions
WHERE key = $1
`
	var value string
	if err := r.pool.QueryRow(ctx, q, guestKey).Scan(&value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", domain.ErrNotFound
		}
		return "", err
	}
	return value, nil
}

func (r *postgresRepo) Save(ctx context.Context, id string) error {
	// Write-once: an existing identifier is never overwritten.
	const q = `
INSERT INTO guest_sessions (key, value)
VALUES ($1, $2)
ON CONFLICT (key) DO NOTHING
`
	_, err := r.pool.Exec(ctx, q, guestKey, id)
	return err
}

func (r *postgresRepo) Delete(ctx context.Context) error {
	const q = `
DELETE FROM guest_sessions
WHERE key = $1
`
	_, err := r.pool.Exec(ctx, q, guestKey)
	return err
}

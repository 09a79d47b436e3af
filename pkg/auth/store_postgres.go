// pkg/auth/store_postgres.go
package auth

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore persists the token set in a single-row table. Used when the
// gateway already carries a DATABASE_URL for audit logging.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// EnsureSchema creates the credential table if missing.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS oauth_credentials (
			id            int PRIMARY KEY DEFAULT 1 CHECK (id = 1),
			access_token  text NOT NULL,
			refresh_token text NOT NULL,
			expires_at    timestamptz NOT NULL,
			scope         text NOT NULL DEFAULT '',
			updated_at    timestamptz NOT NULL DEFAULT now()
		)`)
	return err
}

func (s *PostgresStore) Load(ctx context.Context) (*TokenSet, error) {
	row := s.pool.QueryRow(ctx, `SELECT access_token, refresh_token, expires_at, scope FROM oauth_credentials WHERE id=1`)
	var ts TokenSet
	if err := row.Scan(&ts.AccessToken, &ts.RefreshToken, &ts.ExpiresAt, &ts.Scope); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &ts, nil
}

func (s *PostgresStore) Save(ctx context.Context, ts *TokenSet) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO oauth_credentials(id, access_token, refresh_token, expires_at, scope, updated_at)
		VALUES (1, $1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			access_token=EXCLUDED.access_token,
			refresh_token=EXCLUDED.refresh_token,
			expires_at=EXCLUDED.expires_at,
			scope=EXCLUDED.scope,
			updated_at=EXCLUDED.updated_at
	`, ts.AccessToken, ts.RefreshToken, ts.ExpiresAt, ts.Scope, time.Now().UTC())
	return err
}

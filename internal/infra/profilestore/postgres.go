package profilestore

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yanqian/venuecast/internal/domain/profile"
)

// PostgresStore persists profiles as JSONB rows keyed by profile id.
//
// Schema:
//
//	CREATE TABLE IF NOT EXISTS profiles (
//	    id         TEXT PRIMARY KEY,
//	    payload    JSONB NOT NULL,
//	    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
//	);
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore constructs the store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Get(ctx context.Context, id string) (profile.Profile, bool, error) {
	var payload []byte
	err := s.pool.QueryRow(ctx, `
		SELECT payload
		FROM profiles
		WHERE id = $1
	`, id).Scan(&payload)
	if err == pgx.ErrNoRows {
		return profile.Profile{}, false, nil
	}
	if err != nil {
		return profile.Profile{}, false, err
	}
	var p profile.Profile
	if err := json.Unmarshal(payload, &p); err != nil {
		return profile.Profile{}, false, err
	}
	return p, true, nil
}

func (s *PostgresStore) Put(ctx context.Context, p profile.Profile) error {
	payload, err := json.Marshal(p)
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO profiles (id, payload, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (id) DO UPDATE SET payload = EXCLUDED.payload, updated_at = now()
	`, p.ID, payload)
	return err
}

package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// PostgresGateway stores keys in a single-table Postgres database for
// deployments that keep storefront state in the shared database. The
// caller owns the *sql.DB (driver registration included).
type PostgresGateway struct {
	db *sql.DB
}

func NewPostgresGateway(db *sql.DB) *PostgresGateway {
	return &PostgresGateway{db: db}
}

// EnsureSchema creates the backing table if it does not exist
func (g *PostgresGateway) EnsureSchema(ctx context.Context) error {
	_, err := g.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS storefront_state (
		key TEXT PRIMARY KEY,
		data BYTEA NOT NULL,
		updated_on TIMESTAMPTZ NOT NULL DEFAULT now()
	)`)
	if err != nil {
		return fmt.Errorf("failed to create storefront_state table: %w", err)
	}
	return nil
}

func (g *PostgresGateway) Save(ctx context.Context, key string, data []byte) error {
	query := `INSERT INTO storefront_state (key, data, updated_on) VALUES ($1, $2, now())
	          ON CONFLICT (key) DO UPDATE SET data = EXCLUDED.data, updated_on = now()`
	_, err := g.db.ExecContext(ctx, query, key, data)
	return err
}

func (g *PostgresGateway) Load(ctx context.Context, key string) ([]byte, error) {
	var data []byte
	query := `SELECT data FROM storefront_state WHERE key = $1`
	err := g.db.QueryRowContext(ctx, query, key).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (g *PostgresGateway) Delete(ctx context.Context, key string) error {
	_, err := g.db.ExecContext(ctx, `DELETE FROM storefront_state WHERE key = $1`, key)
	return err
}

func (g *PostgresGateway) Keys(ctx context.Context) ([]string, error) {
	rows, err := g.db.QueryContext(ctx, `SELECT key FROM storefront_state ORDER BY key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}

func (g *PostgresGateway) Close() error {
	return g.db.Close()
}

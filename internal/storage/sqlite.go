package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// SQLiteGateway stores keys in a single-table SQLite database. The
// driver is pure Go, so local storage needs no cgo or external service.
type SQLiteGateway struct {
	db *sql.DB
}

func NewSQLiteGateway(path string) (*SQLiteGateway, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	g := &SQLiteGateway{db: db}
	if err := g.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return g, nil
}

func (g *SQLiteGateway) ensureSchema() error {
	_, err := g.db.Exec(`CREATE TABLE IF NOT EXISTS storefront_state (
		key TEXT PRIMARY KEY,
		data BLOB NOT NULL,
		updated_on TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`)
	if err != nil {
		return fmt.Errorf("failed to create storefront_state table: %w", err)
	}
	return nil
}

func (g *SQLiteGateway) Save(ctx context.Context, key string, data []byte) error {
	query := `INSERT INTO storefront_state (key, data, updated_on) VALUES (?, ?, CURRENT_TIMESTAMP)
	          ON CONFLICT(key) DO UPDATE SET data = excluded.data, updated_on = CURRENT_TIMESTAMP`
	_, err := g.db.ExecContext(ctx, query, key, data)
	return err
}

func (g *SQLiteGateway) Load(ctx context.Context, key string) ([]byte, error) {
	var data []byte
	query := `SELECT data FROM storefront_state WHERE key = ?`
	err := g.db.QueryRowContext(ctx, query, key).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (g *SQLiteGateway) Delete(ctx context.Context, key string) error {
	_, err := g.db.ExecContext(ctx, `DELETE FROM storefront_state WHERE key = ?`, key)
	return err
}

func (g *SQLiteGateway) Keys(ctx context.Context) ([]string, error) {
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

func (g *SQLiteGateway) Close() error {
	return g.db.Close()
}

package storage

import (
	"context"
	"encoding/json"
	"errors"
)

// ErrNotFound is returned by Load when nothing is stored under a key
var ErrNotFound = errors.New("storage: key not found")

// Gateway is an opaque local key-value store for serialized collections.
// Backends: in-memory map, one-file-per-key directory, SQLite, Postgres.
type Gateway interface {
	Save(ctx context.Context, key string, data []byte) error
	Load(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
	Close() error
}

// SaveJSON serializes v and stores it under key
func SaveJSON(ctx context.Context, g Gateway, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return g.Save(ctx, key, data)
}

// LoadJSON loads and deserializes the value stored under key into out.
// Absent or undecodable data means "no prior state": out is left
// untouched and no error is reported. Availability wins over error
// visibility here; a store that cannot read its scope starts empty.
// Decoding goes through a scratch value so a payload that fails partway
// through can never leak half-populated state into out.
func LoadJSON[T any](ctx context.Context, g Gateway, key string, out *T) {
	data, err := g.Load(ctx, key)
	if err != nil {
		return
	}
	var decoded T
	if err := json.Unmarshal(data, &decoded); err != nil {
		return
	}
	*out = decoded
}

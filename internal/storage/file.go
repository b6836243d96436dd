package storage

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
)

// FileGateway stores each key as a file in a directory. Key strings
// contain characters that are unsafe in filenames, so filenames are the
// URL-safe base64 encoding of the key.
type FileGateway struct {
	dir string
}

func NewFileGateway(dir string) (*FileGateway, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &FileGateway{dir: dir}, nil
}

func (g *FileGateway) path(key string) string {
	name := base64.RawURLEncoding.EncodeToString([]byte(key))
	return filepath.Join(g.dir, name+".json")
}

func (g *FileGateway) Save(ctx context.Context, key string, data []byte) error {
	return os.WriteFile(g.path(key), data, 0644)
}

func (g *FileGateway) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(g.path(key))
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (g *FileGateway) Delete(ctx context.Context, key string) error {
	err := os.Remove(g.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (g *FileGateway) Keys(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(g.dir)
	if err != nil {
		return nil, err
	}
	var keys []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if filepath.Ext(name) != ".json" {
			continue
		}
		decoded, err := base64.RawURLEncoding.DecodeString(name[:len(name)-len(".json")])
		if err != nil {
			// Not one of ours
			continue
		}
		keys = append(keys, string(decoded))
	}
	return keys, nil
}

func (g *FileGateway) Close() error {
	return nil
}

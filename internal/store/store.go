// Package store is the narrow key-value contract the notification pane uses
// for its cache and for the cleared flag, plus the backends that satisfy it.
package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jask/notifpane/internal/config"
	"github.com/jask/notifpane/internal/database"
	"github.com/jask/notifpane/internal/database/repository"
)

// Store reads and writes UTF-8 text values by key. Implementations are safe
// for concurrent use.
type Store interface {
	// Get reports ok=false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// ErrUnknownBackend is returned by Open for an unsupported store.backend.
var ErrUnknownBackend = errors.New("unknown store backend")

// Open builds the backend selected by cfg.Backend.
func Open(ctx context.Context, cfg config.StoreConfig) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Backend)) {
	case "", "sqlite":
		return OpenSQLite(cfg.Path)
	case "redis":
		return NewRedis(ctx, RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Prefix:   cfg.RedisPrefix,
		})
	case "memory":
		return NewMemory(), nil
	case "file":
		return NewFile(cfg.File)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}

// OpenSQLite migrates and opens the sqlite database at path.
func OpenSQLite(path string) (*SQLite, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}
	if err := database.RunMigrations(path); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	db, err := database.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	return &SQLite{repo: repository.NewKVRepo(db), close: db.Close}, nil
}

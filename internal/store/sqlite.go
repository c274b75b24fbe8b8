package store

import (
	"context"
	"fmt"

	"github.com/jask/notifpane/internal/database"
	"github.com/jask/notifpane/internal/database/repository"
)

// SQLite keeps values in the kv table.
type SQLite struct {
	repo  *repository.KVRepo
	close func() error
}

func (s *SQLite) Get(ctx context.Context, key string) (string, bool, error) {
	e, err := s.repo.Get(ctx, key)
	if err != nil {
		return "", false, fmt.Errorf("sqlite get %s: %w", key, err)
	}
	if e == nil {
		return "", false, nil
	}
	return e.Value, true, nil
}

func (s *SQLite) Set(ctx context.Context, key, value string) error {
	if err := s.repo.Upsert(ctx, key, value, database.Now()); err != nil {
		return fmt.Errorf("sqlite set %s: %w", key, err)
	}
	return nil
}

func (s *SQLite) Delete(ctx context.Context, key string) error {
	if err := s.repo.Delete(ctx, key); err != nil {
		return fmt.Errorf("sqlite delete %s: %w", key, err)
	}
	return nil
}

func (s *SQLite) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

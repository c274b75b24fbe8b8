package service

import (
	"context"
	"fmt"

	"github.com/jask/notifpane/internal/store"
)

// MaintenanceService houses the list-wide operations the pane itself never
// performs.
type MaintenanceService struct {
	Store store.Store
}

// ClearAll drops the cached list and sets the cleared flag so automatic read
// marking stays off until ResetCleared.
func (s *MaintenanceService) ClearAll(ctx context.Context) error {
	if s.Store == nil {
		return fmt.Errorf("maintenance: store not configured")
	}
	if err := s.Store.Delete(ctx, store.KeyNotifications); err != nil {
		return fmt.Errorf("clear notifications: %w", err)
	}
	if err := store.SetCleared(ctx, s.Store, true); err != nil {
		return fmt.Errorf("set cleared flag: %w", err)
	}
	return nil
}

// ResetCleared removes the cleared flag.
func (s *MaintenanceService) ResetCleared(ctx context.Context) error {
	if s.Store == nil {
		return fmt.Errorf("maintenance: store not configured")
	}
	if err := store.SetCleared(ctx, s.Store, false); err != nil {
		return fmt.Errorf("reset cleared flag: %w", err)
	}
	return nil
}

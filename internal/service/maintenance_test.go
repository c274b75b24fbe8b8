package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/notifpane/internal/store"
)

func TestMaintenanceClearAndReset(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory()
	require.NoError(t, store.SaveNotifications(ctx, s, sample(2)))

	svc := &MaintenanceService{Store: s}
	require.NoError(t, svc.ClearAll(ctx))

	_, ok, err := store.LoadNotifications(ctx, s)
	require.NoError(t, err)
	require.False(t, ok)
	cleared, err := store.IsCleared(ctx, s)
	require.NoError(t, err)
	require.True(t, cleared)

	require.NoError(t, svc.ResetCleared(ctx))
	cleared, err = store.IsCleared(ctx, s)
	require.NoError(t, err)
	require.False(t, cleared)
}

func TestMaintenanceWithoutStore(t *testing.T) {
	require.Error(t, (&MaintenanceService{}).ClearAll(context.Background()))
	require.Error(t, (&MaintenanceService{}).ResetCleared(context.Background()))
}

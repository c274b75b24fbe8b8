package service

import (
	"context"
	"log/slog"

	"github.com/jask/notifpane/internal/notification"
	"github.com/jask/notifpane/internal/store"
)

// MarkAllButNewest returns a copy of items with every entry but the last
// marked read. The last entry keeps its flag.
func MarkAllButNewest(items []notification.Notification) []notification.Notification {
	out := notification.Clone(items)
	for i := 0; i < len(out)-1; i++ {
		out[i].Read = true
	}
	return out
}

// SyncResult is the outcome of one read-state sync.
type SyncResult struct {
	Items []notification.Notification
	// Skipped is set when nothing was computed: empty list or cleared flag.
	Skipped bool
	// Wrote is set when the updated list reached the store.
	Wrote bool
	Err   error
}

// ReadSync marks everything but the newest notification read and persists it.
type ReadSync struct {
	Store store.Store
	Log   *slog.Logger
}

// Sync computes and persists the read partition of items. When the write
// fails the result still carries the updated list; callers apply it anyway.
func (s *ReadSync) Sync(ctx context.Context, items []notification.Notification) SyncResult {
	log := logger(s.Log)
	if len(items) == 0 {
		return SyncResult{Items: items, Skipped: true}
	}

	cleared, err := store.IsCleared(ctx, s.Store)
	if err != nil {
		log.Warn("read cleared flag", slog.Any("err", err))
	}
	if cleared {
		log.Debug("notifications cleared, read state left alone")
		return SyncResult{Items: items, Skipped: true}
	}

	updated := MarkAllButNewest(items)
	if err := store.SaveNotifications(ctx, s.Store, updated); err != nil {
		log.Warn("persist read state", slog.Any("err", err))
		return SyncResult{Items: updated, Err: err}
	}
	return SyncResult{Items: updated, Wrote: true}
}

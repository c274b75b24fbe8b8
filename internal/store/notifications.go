package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jask/notifpane/internal/notification"
)

const (
	// KeyNotifications holds the JSON array of canonical records.
	KeyNotifications = "notifications"
	// KeyCleared holds ClearedSentinel while automatic read marking is off.
	KeyCleared = "notificationsCleared"
	// ClearedSentinel is the only value of KeyCleared that counts as set.
	ClearedSentinel = "true"
)

// LoadNotifications reads the cached list. ok is false when nothing is
// cached. A cached value that is valid JSON but not an array loads as an
// empty list.
func LoadNotifications(ctx context.Context, s Store) (items []notification.Notification, ok bool, err error) {
	raw, ok, err := s.Get(ctx, KeyNotifications)
	if err != nil || !ok {
		return nil, false, err
	}
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, false, fmt.Errorf("parse cached notifications: %w", err)
	}
	arr, isArray := v.([]any)
	if !isArray {
		return []notification.Notification{}, true, nil
	}
	return notification.NormalizeValue(arr), true, nil
}

// SaveNotifications writes the whole list to the cache key.
func SaveNotifications(ctx context.Context, s Store, items []notification.Notification) error {
	if items == nil {
		items = []notification.Notification{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode notifications: %w", err)
	}
	return s.Set(ctx, KeyNotifications, string(data))
}

// IsCleared reports whether the cleared flag holds the sentinel.
func IsCleared(ctx context.Context, s Store) (bool, error) {
	v, ok, err := s.Get(ctx, KeyCleared)
	if err != nil || !ok {
		return false, err
	}
	return v == ClearedSentinel, nil
}

// SetCleared sets or removes the cleared flag.
func SetCleared(ctx context.Context, s Store, cleared bool) error {
	if cleared {
		return s.Set(ctx, KeyCleared, ClearedSentinel)
	}
	return s.Delete(ctx, KeyCleared)
}

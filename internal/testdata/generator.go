package testdata

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/jask/notifpane/internal/notification"
	"github.com/jask/notifpane/internal/store"
)

var samples = []struct {
	Title   string
	Message string
}{
	{"Build finished", "main passed all checks"},
	{"New comment", "Someone replied to your review"},
	{"Deploy queued", "staging will roll out in 5 minutes"},
	{"Disk usage", "/var is at 91% capacity"},
	{"Invite accepted", "A teammate joined the workspace"},
	{"Weekly report", "Your summary is ready"},
}

// Generate builds n sample notifications, oldest first, ending at now.
// Timestamps alternate between RFC3339 and day-first encodings.
func Generate(n int, now time.Time, r *rand.Rand) []notification.Notification {
	if r == nil {
		r = rand.New(rand.NewSource(now.UnixNano()))
	}
	items := make([]notification.Notification, 0, n)
	at := now
	stamps := make([]time.Time, n)
	for i := n - 1; i >= 0; i-- {
		stamps[i] = at
		at = at.Add(-time.Duration(r.Intn(7200)+30) * time.Second)
	}
	for i := 0; i < n; i++ {
		s := samples[r.Intn(len(samples))]
		var ts string
		if i%2 == 0 {
			ts = stamps[i].Format(time.RFC3339)
		} else {
			ts = stamps[i].Format("02/01/2006 15:04:05")
		}
		items = append(items, notification.Notification{
			ID:        uuid.NewString(),
			Title:     s.Title,
			Message:   s.Message,
			Timestamp: &ts,
		})
	}
	return items
}

// Seed writes n sample notifications into the store and resets the cleared flag.
func Seed(ctx context.Context, s store.Store, n int) error {
	if n <= 0 {
		return fmt.Errorf("seed count must be positive, got %d", n)
	}
	items := Generate(n, time.Now(), nil)
	if err := store.SaveNotifications(ctx, s, items); err != nil {
		return err
	}
	return store.SetCleared(ctx, s, false)
}

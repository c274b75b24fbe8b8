package lock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestActivateLocksForCeilSeconds(t *testing.T) {
	t.Parallel()

	tm := New(15 * time.Second)
	gen, locked := tm.Activate(true, true)
	require.True(t, locked)
	require.True(t, tm.Locked())
	require.Equal(t, 15, tm.Remaining())
	require.False(t, tm.Tick(gen+1), "unknown generation is ignored")
	require.Equal(t, 15, tm.Remaining())

	require.Equal(t, 2, Seconds(1500*time.Millisecond))
	require.Equal(t, 1, Seconds(time.Millisecond))
	require.Equal(t, 0, Seconds(0))
}

func TestActivateStaysUnlocked(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		d        time.Duration
		visible  bool
		hasItems bool
	}{
		{"hidden", 15 * time.Second, false, true},
		{"empty", 15 * time.Second, true, false},
		{"disabled", 0, true, true},
		{"negative", -time.Second, true, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tm := New(tc.d)
			_, locked := tm.Activate(tc.visible, tc.hasItems)
			require.False(t, locked)
			require.False(t, tm.Locked())
			require.Equal(t, 0, tm.Remaining())
		})
	}
}

func TestTickCountsDownToUnlocked(t *testing.T) {
	t.Parallel()

	tm := New(15 * time.Second)
	gen, _ := tm.Activate(true, true)
	for i := 0; i < 14; i++ {
		require.True(t, tm.Tick(gen), "tick %d", i+1)
		require.True(t, tm.Locked())
	}
	require.Equal(t, 1, tm.Remaining())
	require.False(t, tm.Tick(gen))
	require.False(t, tm.Locked())
	require.Equal(t, 0, tm.Remaining())

	// the finished generation is retired
	require.False(t, tm.Tick(gen))
}

func TestReleaseMidCountdown(t *testing.T) {
	t.Parallel()

	tm := New(15 * time.Second)
	gen, _ := tm.Activate(true, true)
	tm.Tick(gen)
	tm.Tick(gen)
	tm.Release()
	require.False(t, tm.Locked())
	require.Equal(t, 0, tm.Remaining())
	require.False(t, tm.Tick(gen))
}

func TestReactivateInvalidatesOldTicks(t *testing.T) {
	t.Parallel()

	tm := New(3 * time.Second)
	old, _ := tm.Activate(true, true)
	tm.Tick(old)
	cur, _ := tm.Activate(true, true)
	require.NotEqual(t, old, cur)
	require.Equal(t, 3, tm.Remaining())

	require.False(t, tm.Tick(old))
	require.Equal(t, 3, tm.Remaining())
	require.True(t, tm.Tick(cur))
	require.Equal(t, 2, tm.Remaining())
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	require.Equal(t, "sqlite", cfg.Store.Backend)
	require.Equal(t, DefaultLockDurationMs, cfg.Pane.LockDurationMs)
	require.Equal(t, DefaultTimeoutMs, cfg.Pane.TimeoutMs)
	require.True(t, cfg.Pane.ForceRefreshOnOpen)
	require.False(t, cfg.Pane.AutoFetch)
	require.False(t, cfg.Pane.ShowTimeAgo)
	require.Equal(t, "notifpane:", cfg.Store.RedisPrefix)
	require.Equal(t, 15*time.Second, cfg.Pane.LockDuration())
	require.Equal(t, 8*time.Second, cfg.Pane.Timeout())
}

func TestLoadFileAndEnvOverride(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "config.toml")
	body := `
[pane]
auto_fetch = true
endpoint_url = "https://example.com/notices"
lock_duration_ms = 5000
show_time_ago = true

[[pane.params]]
key = "schoolId"
value = "North"

[[pane.params]]
key = "lang"
value = "en"

[store]
backend = "memory"
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	t.Setenv("NOTIFPANE_PANE_TIMEOUT_MS", "2500")
	t.Setenv("NOTIFPANE_PANE_FORCE_REFRESH_ON_OPEN", "false")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.True(t, cfg.Pane.AutoFetch)
	require.Equal(t, "https://example.com/notices", cfg.Pane.EndpointURL)
	require.Equal(t, 5*time.Second, cfg.Pane.LockDuration())
	require.True(t, cfg.Pane.ShowTimeAgo)
	require.Equal(t, []Param{{Key: "schoolId", Value: "North"}, {Key: "lang", Value: "en"}}, cfg.Pane.Params)
	require.Equal(t, "memory", cfg.Store.Backend)
	require.Equal(t, 2500*time.Millisecond, cfg.Pane.Timeout())
	require.False(t, cfg.Pane.ForceRefreshOnOpen)
}

func TestLoadRejectsBrokenFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[pane\nbroken"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg, err := Load(path)
	require.NoError(t, err)
	cfg.Pane.EndpointURL = "https://example.com/api"
	cfg.Pane.AutoFetch = true
	cfg.Pane.LockDurationMs = 0
	cfg.Pane.Params = []Param{{Key: "userId", Value: "42"}, {Key: "Lang", Value: "en"}}
	require.NoError(t, Save(cfg, path))

	again, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "https://example.com/api", again.Pane.EndpointURL)
	require.True(t, again.Pane.AutoFetch)
	require.Equal(t, time.Duration(0), again.Pane.LockDuration())
	require.Equal(t, []Param{{Key: "userId", Value: "42"}, {Key: "Lang", Value: "en"}}, again.Pane.Params)
}

func TestDurationsClamp(t *testing.T) {
	p := PaneConfig{LockDurationMs: -10, TimeoutMs: 0}
	require.Equal(t, time.Duration(0), p.LockDuration())
	require.Equal(t, 8*time.Second, p.Timeout())
	require.Equal(t, 1500*time.Millisecond, PaneConfig{LockDurationMs: 1500}.LockDuration())
}

func TestLocation(t *testing.T) {
	loc, err := UIConfig{Timezone: "Local"}.Location()
	require.NoError(t, err)
	require.Equal(t, time.Local, loc)

	loc, err = UIConfig{Timezone: "UTC"}.Location()
	require.NoError(t, err)
	require.Equal(t, "UTC", loc.String())

	loc, err = UIConfig{Timezone: "Mars/Olympus"}.Location()
	require.Error(t, err)
	require.Equal(t, time.Local, loc)
}

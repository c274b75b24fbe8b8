package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	DefaultLockDurationMs = 15000
	DefaultTimeoutMs      = 8000
)

// Config holds application configuration.
type Config struct {
	Store StoreConfig `mapstructure:"store"`
	Pane  PaneConfig  `mapstructure:"pane"`
	UI    UIConfig    `mapstructure:"ui"`
	Log   LogConfig   `mapstructure:"log"`
}

// StoreConfig selects and configures the persistent store.
type StoreConfig struct {
	Backend       string `mapstructure:"backend"`
	Path          string `mapstructure:"path"`
	File          string `mapstructure:"file"`
	RedisAddr     string `mapstructure:"redis_addr"`
	RedisPassword string `mapstructure:"redis_password"`
	RedisDB       int    `mapstructure:"redis_db"`
	RedisPrefix   string `mapstructure:"redis_prefix"`
}

// PaneConfig holds the notification pane options.
type PaneConfig struct {
	LockDurationMs     int    `mapstructure:"lock_duration_ms"`
	AutoFetch          bool   `mapstructure:"auto_fetch"`
	EndpointURL        string `mapstructure:"endpoint_url"`
	TimeoutMs          int    `mapstructure:"timeout_ms"`
	ForceRefreshOnOpen bool   `mapstructure:"force_refresh_on_open"`
	ShowTimeAgo        bool   `mapstructure:"show_time_ago"`
	// Params are extra query parameters in configured order, written as
	// [[pane.params]] tables.
	Params []Param `mapstructure:"params"`
}

// Param is one extra query parameter.
type Param struct {
	Key   string `mapstructure:"key"`
	Value string `mapstructure:"value"`
}

// LockDuration is the dismissal lock; 0 disables it.
func (p PaneConfig) LockDuration() time.Duration {
	if p.LockDurationMs <= 0 {
		return 0
	}
	return time.Duration(p.LockDurationMs) * time.Millisecond
}

// Timeout bounds one network fetch. Non-positive values fall back to the default.
func (p PaneConfig) Timeout() time.Duration {
	if p.TimeoutMs <= 0 {
		return DefaultTimeoutMs * time.Millisecond
	}
	return time.Duration(p.TimeoutMs) * time.Millisecond
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Title    string `mapstructure:"title"`
	Timezone string `mapstructure:"timezone"`
}

// LogConfig controls the log file written while the TUI owns the terminal.
type LogConfig struct {
	Path  string `mapstructure:"path"`
	Level string `mapstructure:"level"`
}

func dataDir() string {
	return filepath.Join(os.Getenv("HOME"), ".local", "share", "notifpane")
}

// DefaultPath is where Load looks for config.toml when no path is given.
func DefaultPath() string {
	if p := os.Getenv("NOTIFPANE_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "notifpane", "config.toml")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("store.backend", "sqlite")
	v.SetDefault("store.path", filepath.Join(dataDir(), "notifpane.db"))
	v.SetDefault("store.file", filepath.Join(dataDir(), "store.json"))
	v.SetDefault("store.redis_addr", "localhost:6379")
	v.SetDefault("store.redis_password", "")
	v.SetDefault("store.redis_db", 0)
	v.SetDefault("store.redis_prefix", "notifpane:")
	v.SetDefault("pane.lock_duration_ms", DefaultLockDurationMs)
	v.SetDefault("pane.auto_fetch", false)
	v.SetDefault("pane.endpoint_url", "")
	v.SetDefault("pane.timeout_ms", DefaultTimeoutMs)
	v.SetDefault("pane.force_refresh_on_open", true)
	v.SetDefault("pane.show_time_ago", false)
	v.SetDefault("ui.title", "Notifications")
	v.SetDefault("ui.timezone", "Local")
	v.SetDefault("log.path", filepath.Join(dataDir(), "notifpane.log"))
	v.SetDefault("log.level", "info")
}

// Load reads configuration from file and env. An empty path means
// DefaultPath. A missing file is not an error. Env var overrides use prefix
// NOTIFPANE_, e.g. NOTIFPANE_PANE_ENDPOINT_URL.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")
	if path == "" {
		path = DefaultPath()
	}
	v.SetConfigFile(path)

	v.SetEnvPrefix("NOTIFPANE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.Is(err, fs.ErrNotExist) && !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Save writes the provided config to path (DefaultPath when empty), creating
// the config directory if needed.
func Save(cfg Config, path string) error {
	if path == "" {
		path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("store.backend", cfg.Store.Backend)
	v.Set("store.path", cfg.Store.Path)
	v.Set("store.file", cfg.Store.File)
	v.Set("store.redis_addr", cfg.Store.RedisAddr)
	v.Set("store.redis_password", cfg.Store.RedisPassword)
	v.Set("store.redis_db", cfg.Store.RedisDB)
	v.Set("store.redis_prefix", cfg.Store.RedisPrefix)
	v.Set("pane.lock_duration_ms", cfg.Pane.LockDurationMs)
	v.Set("pane.auto_fetch", cfg.Pane.AutoFetch)
	v.Set("pane.endpoint_url", cfg.Pane.EndpointURL)
	v.Set("pane.timeout_ms", cfg.Pane.TimeoutMs)
	v.Set("pane.force_refresh_on_open", cfg.Pane.ForceRefreshOnOpen)
	v.Set("pane.show_time_ago", cfg.Pane.ShowTimeAgo)
	if len(cfg.Pane.Params) > 0 {
		tables := make([]map[string]any, 0, len(cfg.Pane.Params))
		for _, p := range cfg.Pane.Params {
			tables = append(tables, map[string]any{"key": p.Key, "value": p.Value})
		}
		v.Set("pane.params", tables)
	}
	v.Set("ui.title", cfg.UI.Title)
	v.Set("ui.timezone", cfg.UI.Timezone)
	v.Set("log.path", cfg.Log.Path)
	v.Set("log.level", cfg.Log.Level)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Location resolves ui.timezone, falling back to the local zone.
func (u UIConfig) Location() (*time.Location, error) {
	tz := strings.TrimSpace(u.Timezone)
	if tz == "" || strings.EqualFold(tz, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return time.Local, fmt.Errorf("load timezone %q: %w", tz, err)
	}
	return loc, nil
}

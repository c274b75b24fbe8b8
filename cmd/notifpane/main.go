package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jessevdk/go-flags"

	"github.com/jask/notifpane/internal/config"
	"github.com/jask/notifpane/internal/notification"
	"github.com/jask/notifpane/internal/service"
	"github.com/jask/notifpane/internal/store"
	"github.com/jask/notifpane/internal/testdata"
	"github.com/jask/notifpane/internal/tui"
)

type options struct {
	Config       string `long:"config" description:"Path to the TOML config file" env:"NOTIFPANE_CONFIG"`
	Seed         int    `long:"seed" description:"Write N sample notifications to the store and exit" value-name:"N"`
	Clear        bool   `long:"clear" description:"Drop cached notifications, set the cleared flag and exit"`
	ResetCleared bool   `long:"reset-cleared" description:"Remove the cleared flag and exit"`
	WriteConfig  bool   `long:"write-config" description:"Write the effective config to --config and exit"`
	File         string `long:"file" description:"Show notifications from a JSON file instead of the store cache"`
}

// parseOptions returns nil when help was requested.
func parseOptions(args []string) (*options, error) {
	var opts options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.ParseArgs(args); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			return nil, nil
		}
		return nil, err
	}
	return &opts, nil
}

func newLogger(cfg config.LogConfig) (*slog.Logger, func(), error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(cfg.Level))); err != nil {
		level = slog.LevelInfo
	}
	if strings.TrimSpace(cfg.Path) == "" {
		return slog.New(slog.DiscardHandler), func() {}, nil
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("mkdir log dir: %w", err)
	}
	f, err := tea.LogToFile(cfg.Path, "notifpane")
	if err != nil {
		return nil, nil, fmt.Errorf("open log: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
	return logger, func() { _ = f.Close() }, nil
}

func loadFile(path string) ([]notification.Notification, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	items, err := notification.Normalize(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return items, nil
}

func paneParams(params []config.Param) []service.Param {
	out := make([]service.Param, 0, len(params))
	for _, p := range params {
		out = append(out, service.Param{Key: p.Key, Value: p.Value})
	}
	return out
}

func main() {
	opts, err := parseOptions(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}
	if opts == nil {
		return
	}
	if err := run(context.Background(), opts); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, opts *options) error {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	if opts.WriteConfig {
		if err := config.Save(cfg, opts.Config); err != nil {
			return fmt.Errorf("write config: %w", err)
		}
		return nil
	}

	logger, closeLog, err := newLogger(cfg.Log)
	if err != nil {
		return fmt.Errorf("log: %w", err)
	}
	defer closeLog()

	st, err := store.Open(ctx, cfg.Store)
	if err != nil {
		return fmt.Errorf("store: %w", err)
	}
	defer st.Close()

	maintenance := &service.MaintenanceService{Store: st}
	switch {
	case opts.Seed > 0:
		if err := testdata.Seed(ctx, st, opts.Seed); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
		fmt.Printf("seeded %d notifications\n", opts.Seed)
		return nil
	case opts.Clear:
		if err := maintenance.ClearAll(ctx); err != nil {
			return fmt.Errorf("clear: %w", err)
		}
		fmt.Println("notifications cleared")
		return nil
	case opts.ResetCleared:
		if err := maintenance.ResetCleared(ctx); err != nil {
			return fmt.Errorf("reset cleared: %w", err)
		}
		fmt.Println("cleared flag removed")
		return nil
	}

	var external []notification.Notification
	if opts.File != "" {
		if external, err = loadFile(opts.File); err != nil {
			return fmt.Errorf("file: %w", err)
		}
	}

	loc, err := cfg.UI.Location()
	if err != nil {
		logger.Warn("using local timezone", slog.Any("err", err))
	}

	fetcher := &service.Fetcher{
		Client:   &http.Client{},
		Endpoint: cfg.Pane.EndpointURL,
		Params:   paneParams(cfg.Pane.Params),
		Timeout:  cfg.Pane.Timeout(),
		Log:      logger,
	}
	pane := tui.NewPane(cfg.Pane, cfg.UI.Title, tui.PaneDeps{
		Store:    st,
		Fetcher:  fetcher,
		Log:      logger,
		Location: loc,
	})
	defer pane.Dispose()

	app := tui.NewApp(cfg, pane, maintenance, logger)
	if opts.File != "" {
		app.SetExternal(external)
	}

	logger.Info("starting",
		slog.String("store", cfg.Store.Backend),
		slog.Bool("auto_fetch", cfg.Pane.AutoFetch),
		slog.Bool("external", pane.External()))

	if _, err := tea.NewProgram(app, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}

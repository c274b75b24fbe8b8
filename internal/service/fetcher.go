package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jask/notifpane/internal/notification"
)

// DefaultTimeout bounds a fetch when the Fetcher has none configured.
const DefaultTimeout = 8 * time.Second

// maxBody caps how much of a response is read.
const maxBody = 4 << 20

// ErrNoEndpoint is returned when Fetch is called without an endpoint.
var ErrNoEndpoint = errors.New("notification endpoint not configured")

// StatusError reports a non-2xx response.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string { return fmt.Sprintf("HTTP %d", e.Code) }

// Param is one query parameter; order is preserved in the built URL.
type Param struct {
	Key   string
	Value string
}

// BuildURL appends the non-empty params to base, URL-encoding keys and values.
func BuildURL(base string, params []Param) string {
	parts := make([]string, 0, len(params))
	for _, p := range params {
		if p.Value == "" {
			continue
		}
		parts = append(parts, encodeComponent(p.Key)+"="+encodeComponent(p.Value))
	}
	if len(parts) == 0 {
		return base
	}
	q := strings.Join(parts, "&")
	if strings.Contains(base, "?") {
		return base + "&" + q
	}
	return base + "?" + q
}

func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// Fetcher loads the notification list from a remote endpoint.
type Fetcher struct {
	Client   *http.Client
	Endpoint string
	// Params are appended after as=json in order.
	Params  []Param
	Timeout time.Duration
	Log     *slog.Logger
}

// URL is the request URL Fetch will use.
func (f *Fetcher) URL() string {
	params := append([]Param{{Key: "as", Value: "json"}}, f.Params...)
	return BuildURL(f.Endpoint, params)
}

// Fetch issues one GET and normalizes the body. A non-2xx status, transport
// failure, timeout or a body that is not JSON is an error.
func (f *Fetcher) Fetch(ctx context.Context) ([]notification.Notification, error) {
	if strings.TrimSpace(f.Endpoint) == "" {
		return nil, ErrNoEndpoint
	}
	timeout := f.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.URL(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Accept", "application/json")

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch notifications: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBody))
		return nil, &StatusError{Code: resp.StatusCode}
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("read notifications: %w", err)
	}
	items, err := notification.Normalize(body)
	if err != nil {
		return nil, err
	}
	logger(f.Log).Debug("notifications fetched",
		slog.Int("count", len(items)),
		slog.Duration("took", time.Since(start)))
	return items, nil
}

func logger(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.New(slog.DiscardHandler)
	}
	return l
}

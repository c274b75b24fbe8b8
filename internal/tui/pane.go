package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/google/uuid"

	"github.com/jask/notifpane/internal/config"
	"github.com/jask/notifpane/internal/lock"
	"github.com/jask/notifpane/internal/notification"
	"github.com/jask/notifpane/internal/service"
	"github.com/jask/notifpane/internal/store"
)

type cacheLoadedMsg struct {
	epoch int
	items []notification.Notification
	ok    bool
	err   error
}

type fetchDoneMsg struct {
	epoch int
	items []notification.Notification
	err   error
}

type syncDoneMsg struct {
	activation int
	rev        int
	res        service.SyncResult
}

type persistDoneMsg struct {
	err error
}

type lockTickMsg struct {
	gen int
}

// PaneClosedMsg is emitted after the pane hides itself.
type PaneClosedMsg struct{}

// PaneDeps are the collaborators a Pane drives.
type PaneDeps struct {
	Store    store.Store
	Fetcher  *service.Fetcher
	Log      *slog.Logger
	Location *time.Location
}

// Pane is the notification pane model. It owns the load pipeline, the
// read-state sync and the dismissal lock. All state changes happen in its
// methods, which the host calls from its Update.
type Pane struct {
	cfg     config.PaneConfig
	title   string
	store   store.Store
	fetcher *service.Fetcher
	sync    *service.ReadSync
	lock    *lock.Timer
	log     *slog.Logger
	loc     *time.Location

	now      func() time.Time
	schedule func(gen int) tea.Cmd

	local    []notification.Notification
	external []notification.Notification
	rev      int
	// persisting counts fetched-list writes still in flight; syncs wait for them
	persisting int

	visible    bool
	synced     bool
	syncing    bool
	activation int
	sessionID  string
	epoch      int
	closed     bool

	root       context.Context
	rootCancel context.CancelFunc
	loadCtx    context.Context
	loadCancel context.CancelFunc

	cursor int
	width  int
}

// NewPane builds a hidden pane. Call Init to start the first load.
func NewPane(cfg config.PaneConfig, title string, deps PaneDeps) *Pane {
	log := deps.Log
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	loc := deps.Location
	if loc == nil {
		loc = time.Local
	}
	if strings.TrimSpace(title) == "" {
		title = "Notifications"
	}
	root, cancel := context.WithCancel(context.Background())
	p := &Pane{
		cfg:        cfg,
		title:      title,
		store:      deps.Store,
		fetcher:    deps.Fetcher,
		sync:       &service.ReadSync{Store: deps.Store, Log: log},
		lock:       lock.New(cfg.LockDuration()),
		log:        log,
		loc:        loc,
		now:        time.Now,
		root:       root,
		rootCancel: cancel,
		width:      60,
	}
	p.schedule = func(gen int) tea.Cmd {
		return tea.Tick(time.Second, func(time.Time) tea.Msg { return lockTickMsg{gen: gen} })
	}
	return p
}

func (p *Pane) Init() tea.Cmd {
	return p.reload()
}

// Items is the presented list, oldest first.
func (p *Pane) Items() []notification.Notification {
	if len(p.external) > 0 {
		return p.external
	}
	return p.local
}

// External reports whether the list is owned by the caller.
func (p *Pane) External() bool { return len(p.external) > 0 }

func (p *Pane) Visible() bool { return p.visible }

func (p *Pane) Locked() bool { return p.lock.Locked() }

func (p *Pane) Remaining() int { return p.lock.Remaining() }

func (p *Pane) SetWidth(w int) {
	if w > 0 {
		p.width = w
	}
}

// fetching reports whether the load pipeline runs at all.
func (p *Pane) fetching() bool {
	return p.cfg.AutoFetch && strings.TrimSpace(p.cfg.EndpointURL) != "" && p.fetcher != nil
}

// reload starts a new load epoch, abandoning the previous one.
func (p *Pane) reload() tea.Cmd {
	p.epoch++
	if p.loadCancel != nil {
		p.loadCancel()
		p.loadCancel = nil
	}
	if p.closed || !p.fetching() || p.External() || p.store == nil {
		return nil
	}
	ctx, cancel := context.WithCancel(p.root)
	p.loadCtx, p.loadCancel = ctx, cancel
	epoch, s := p.epoch, p.store
	return func() tea.Msg {
		items, ok, err := store.LoadNotifications(ctx, s)
		return cacheLoadedMsg{epoch: epoch, items: items, ok: ok, err: err}
	}
}

func (p *Pane) fetchCmd() tea.Cmd {
	if p.loadCancel == nil {
		return nil
	}
	ctx, epoch, f := p.loadCtx, p.epoch, p.fetcher
	return func() tea.Msg {
		items, err := f.Fetch(ctx)
		return fetchDoneMsg{epoch: epoch, items: items, err: err}
	}
}

// Open shows the pane and starts a new activation.
func (p *Pane) Open() tea.Cmd {
	if p.closed || p.visible {
		return nil
	}
	p.visible = true
	p.synced = false
	p.activation++
	p.sessionID = uuid.NewString()
	p.cursor = 0
	p.log.Debug("pane opened",
		slog.String("session", p.sessionID),
		slog.Int("items", len(p.Items())))
	return tea.Batch(p.reload(), p.restartLock(), p.trySync())
}

// Close hides the pane regardless of the lock.
func (p *Pane) Close() tea.Cmd {
	if p.closed || !p.visible {
		return nil
	}
	p.visible = false
	p.synced = false
	p.lock.Release()
	p.log.Debug("pane closed", slog.String("session", p.sessionID))
	return tea.Batch(p.reload(), func() tea.Msg { return PaneClosedMsg{} })
}

// HandleBack processes the back key. While locked it is swallowed; while
// unlocked it closes the pane. It is not claimed when the pane is hidden.
func (p *Pane) HandleBack() (bool, tea.Cmd) {
	if p.closed || !p.visible {
		return false, nil
	}
	if p.lock.Locked() {
		return true, nil
	}
	return true, p.Close()
}

// Dismiss closes the pane when the lock allows it.
func (p *Pane) Dismiss() (bool, tea.Cmd) {
	if p.closed || !p.visible || p.lock.Locked() {
		return false, nil
	}
	return true, p.Close()
}

// Dispose tears the pane down. Later messages are ignored.
func (p *Pane) Dispose() {
	if p.closed {
		return
	}
	p.closed = true
	p.epoch++
	if p.loadCancel != nil {
		p.loadCancel()
		p.loadCancel = nil
	}
	p.rootCancel()
	p.lock.Release()
}

// SetExternal hands the pane a caller-owned list. An empty list returns
// ownership to the pane.
func (p *Pane) SetExternal(items []notification.Notification) tea.Cmd {
	if p.closed {
		return nil
	}
	wasEmpty := len(p.Items()) == 0
	p.external = notification.Clone(items)
	lockCmd, syncCmd := p.itemsChanged(wasEmpty)
	return tea.Batch(p.reload(), lockCmd, syncCmd)
}

// Reset drops the internally owned list, e.g. after the cache was cleared.
func (p *Pane) Reset() tea.Cmd {
	if p.closed {
		return nil
	}
	return p.setLocal(nil)
}

func (p *Pane) setLocal(items []notification.Notification) tea.Cmd {
	wasEmpty := len(p.Items()) == 0
	p.local = items
	lockCmd, syncCmd := p.itemsChanged(wasEmpty)
	return tea.Batch(lockCmd, syncCmd)
}

// itemsChanged restarts the lock and the sync when the list goes from empty
// to non-empty while visible, and releases the lock when it empties.
func (p *Pane) itemsChanged(wasEmpty bool) (lockCmd, syncCmd tea.Cmd) {
	p.rev++
	n := len(p.Items())
	if p.cursor >= n {
		p.cursor = max(0, n-1)
	}
	if !p.visible {
		return nil, nil
	}
	if n == 0 {
		p.lock.Release()
		return nil, nil
	}
	if wasEmpty {
		return p.restartLock(), p.trySync()
	}
	return nil, nil
}

func (p *Pane) restartLock() tea.Cmd {
	gen, locked := p.lock.Activate(p.visible, len(p.Items()) > 0)
	if !locked {
		return nil
	}
	return p.schedule(gen)
}

func (p *Pane) trySync() tea.Cmd {
	items := p.Items()
	if p.closed || !p.visible || p.synced || p.syncing || p.persisting > 0 || len(items) == 0 || p.store == nil {
		return nil
	}
	p.syncing = true
	activation, rev, rs, ctx := p.activation, p.rev, p.sync, p.root
	snapshot := notification.Clone(items)
	return func() tea.Msg {
		return syncDoneMsg{activation: activation, rev: rev, res: rs.Sync(ctx, snapshot)}
	}
}

// persist writes a fetched list to the cache. No sync starts until its
// persistDoneMsg is applied.
func (p *Pane) persist(items []notification.Notification) tea.Cmd {
	if p.store == nil {
		return nil
	}
	p.persisting++
	ctx, s := p.root, p.store
	snapshot := notification.Clone(items)
	return func() tea.Msg {
		return persistDoneMsg{err: store.SaveNotifications(ctx, s, snapshot)}
	}
}

// Update applies the pane's own async results. Key handling is the host's.
func (p *Pane) Update(msg tea.Msg) tea.Cmd {
	if p.closed {
		return nil
	}
	switch m := msg.(type) {
	case cacheLoadedMsg:
		if m.epoch != p.epoch || p.External() {
			return nil
		}
		var cmd tea.Cmd
		switch {
		case m.err != nil:
			p.log.Debug("cached notifications unreadable", slog.Any("err", m.err))
		case m.ok && !p.synced && !p.syncing && p.persisting == 0:
			// once a sync or a fetched list has started it owns the presented list
			cmd = p.setLocal(m.items)
		}
		if !p.visible && p.cfg.ForceRefreshOnOpen {
			return cmd
		}
		return tea.Batch(cmd, p.fetchCmd())

	case fetchDoneMsg:
		if m.epoch != p.epoch || p.External() {
			return nil
		}
		if p.loadCancel != nil {
			p.loadCancel()
			p.loadCancel = nil
		}
		if m.err != nil {
			if !errors.Is(m.err, context.Canceled) {
				p.log.Warn("fetch notifications", slog.Any("err", m.err))
			}
			return nil
		}
		wasEmpty := len(p.Items()) == 0
		p.local = m.items
		persistCmd := p.persist(m.items)
		lockCmd, _ := p.itemsChanged(wasEmpty)
		return tea.Batch(lockCmd, persistCmd)

	case persistDoneMsg:
		p.persisting--
		if m.err != nil {
			p.log.Warn("persist notifications", slog.Any("err", m.err))
		}
		return p.trySync()

	case syncDoneMsg:
		p.syncing = false
		if m.activation != p.activation || !p.visible || m.rev != p.rev {
			// the list moved on while the write was in flight
			return p.trySync()
		}
		p.synced = true
		if m.res.Skipped {
			return nil
		}
		if p.External() {
			p.external = m.res.Items
		} else {
			p.local = m.res.Items
		}
		p.rev++

	case lockTickMsg:
		if p.lock.Tick(m.gen) {
			return p.schedule(m.gen)
		}
	}
	return nil
}

// MoveCursor shifts the highlighted row; rows are shown newest first.
func (p *Pane) MoveCursor(delta int) {
	n := len(p.Items())
	if n == 0 {
		p.cursor = 0
		return
	}
	p.cursor = min(max(p.cursor+delta, 0), n-1)
}

func (p *Pane) View() string {
	inner := max(20, p.width-4)
	var b strings.Builder
	b.WriteString(paneTitleStyle.Render(p.title))
	b.WriteString("\n\n")

	rows := notification.Newest(p.Items())
	if len(rows) == 0 {
		b.WriteString(emptyStyle.Render("No notifications yet."))
		b.WriteString("\n")
	}
	now := p.now().In(p.loc)
	for i, n := range rows {
		b.WriteString(p.renderRow(n, i == p.cursor, now, inner))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if p.lock.Locked() {
		b.WriteString(closeLockedStyle.Render(fmt.Sprintf("Close (%d)", p.lock.Remaining())))
	} else {
		b.WriteString(closeStyle.Render("Close"))
	}
	return paneStyle.Width(inner).Render(b.String())
}

func (p *Pane) renderRow(n notification.Notification, selected bool, now time.Time, width int) string {
	lines := []string{
		rowTitleStyle.Render(ansi.Truncate("• "+n.Title, width, "…")),
	}
	if n.Message != "" {
		lines = append(lines, rowMsgStyle.Render(ansi.Truncate(n.Message, width, "…")))
	}
	var meta []string
	if p.cfg.ShowTimeAgo {
		if age := notification.TimeAgo(n.Timestamp, now); age != "" {
			meta = append(meta, ageStyle.Render(age))
		}
	}
	if !n.Read {
		meta = append(meta, newStyle.Render("NEW"))
	}
	if len(meta) > 0 {
		lines = append(lines, strings.Join(meta, "  "))
	}
	row := lipgloss.JoinVertical(lipgloss.Left, lines...)
	if selected {
		row = rowCursorStyle.Width(width).Render(row)
	}
	return row
}

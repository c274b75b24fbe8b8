package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/notifpane/internal/config"
	"github.com/jask/notifpane/internal/notification"
	"github.com/jask/notifpane/internal/service"
)

const maxPaneWidth = 72

type clearedMsg struct {
	err error
}

// App hosts the notification pane: a home screen with an unread badge,
// a status line and a footer listing the keys of the active scope.
type App struct {
	cfg   config.Config
	keys  *KeyRegistry
	pane  *Pane
	maint *service.MaintenanceService
	log   *slog.Logger
	// pending holds commands produced before the program started
	pending []tea.Cmd

	status    string
	statusErr bool
	width     int
	height    int
}

func NewApp(cfg config.Config, pane *Pane, maint *service.MaintenanceService, log *slog.Logger) *App {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &App{
		cfg:   cfg,
		keys:  DefaultKeyRegistry(),
		pane:  pane,
		maint: maint,
		log:   log,
		width: 80,
	}
}

func (a *App) Init() tea.Cmd {
	cmds := append([]tea.Cmd{a.pane.Init()}, a.pending...)
	a.pending = nil
	return tea.Batch(cmds...)
}

// SetExternal hands the pane a caller-owned list before the program runs.
// The commands it produces are started by Init.
func (a *App) SetExternal(items []notification.Notification) {
	a.pending = append(a.pending, a.pane.SetExternal(items))
}

// Pane exposes the hosted pane so the caller can dispose it on exit.
func (a *App) Pane() *Pane { return a.pane }

func (a *App) scope() string {
	if a.pane.Visible() {
		return scopePane
	}
	return scopeHome
}

func (a *App) setStatus(msg string, isErr bool) {
	a.status = msg
	a.statusErr = isErr
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
		a.pane.SetWidth(min(m.Width, maxPaneWidth))
		return a, nil
	case tea.KeyMsg:
		return a.handleKey(m)
	case PaneClosedMsg:
		a.setStatus("Notifications closed", false)
		return a, nil
	case clearedMsg:
		if m.err != nil {
			a.log.Error("clear notifications", slog.Any("err", m.err))
			a.setStatus("error: "+m.err.Error(), true)
			return a, nil
		}
		a.setStatus("Notifications cleared", false)
		return a, a.pane.Reset()
	}
	return a, a.pane.Update(msg)
}

func (a *App) handleKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.keys.Action(m, a.scope()) {
	case actionQuit:
		a.pane.Dispose()
		return a, tea.Quit
	case actionOpen:
		a.setStatus("", false)
		return a, a.pane.Open()
	case actionClear:
		a.setStatus("clearing...", false)
		return a, a.clearCmd()
	case actionBack:
		handled, cmd := a.pane.HandleBack()
		if handled && a.pane.Visible() {
			a.setStatus(fmt.Sprintf("Close available in %d seconds", a.pane.Remaining()), false)
		}
		return a, cmd
	case actionDismiss:
		ok, cmd := a.pane.Dismiss()
		if !ok && a.pane.Visible() {
			a.setStatus(fmt.Sprintf("Close available in %d seconds", a.pane.Remaining()), false)
		}
		return a, cmd
	case actionUp:
		a.pane.MoveCursor(-1)
	case actionDown:
		a.pane.MoveCursor(1)
	}
	return a, nil
}

func (a *App) clearCmd() tea.Cmd {
	maint := a.maint
	return func() tea.Msg {
		if maint == nil {
			return clearedMsg{err: fmt.Errorf("maintenance not configured")}
		}
		return clearedMsg{err: maint.ClearAll(context.Background())}
	}
}

func (a *App) View() string {
	width := max(1, a.width)
	header := a.renderHeader(width)

	var body string
	if a.pane.Visible() {
		body = lipgloss.PlaceHorizontal(width, lipgloss.Center, a.pane.View())
	} else {
		body = a.renderHome()
	}

	status := renderStatus(a.status, a.statusErr, width)
	footer := renderFooter(a.keys, a.scope(), width)
	if a.height > 0 {
		body = clipHeight(body, max(1, a.height-3))
	}
	return appStyle.Render(lipgloss.JoinVertical(lipgloss.Left, header, body, status, footer))
}

func (a *App) renderHeader(width int) string {
	title := strings.TrimSpace(a.cfg.UI.Title)
	if title == "" {
		title = "Notifications"
	}
	line := headerStyle.Render(" " + title + " ")
	if n := notification.Unread(a.pane.Items()); n > 0 {
		line += " " + badgeStyle.Render(fmt.Sprintf("%d new", n))
	}
	return renderBar(headerStyle, width, line, colorMantle)
}

func (a *App) renderHome() string {
	items := a.pane.Items()
	var b strings.Builder
	b.WriteString("\n")
	switch {
	case len(items) == 0:
		b.WriteString(emptyStyle.Render("  No notifications yet."))
	default:
		b.WriteString(fmt.Sprintf("  %d notifications, %d unread.", len(items), notification.Unread(items)))
	}
	b.WriteString("\n\n")
	b.WriteString(emptyStyle.Render("  Press n to open notifications."))
	b.WriteString("\n")
	return b.String()
}

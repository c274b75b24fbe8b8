package tui

import (
	"slices"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	scopeHome = "home"
	scopePane = "pane"
)

const (
	actionOpen    = "open"
	actionClear   = "clear"
	actionQuit    = "quit"
	actionBack    = "back"
	actionDismiss = "dismiss"
	actionUp      = "up"
	actionDown    = "down"
)

// scopedBinding is a key binding live in some scopes. No scopes means all.
type scopedBinding struct {
	action  string
	binding key.Binding
	scopes  []string
}

func (b scopedBinding) live(scope string) bool {
	return len(b.scopes) == 0 || slices.Contains(b.scopes, scope)
}

// KeyRegistry resolves key presses to actions for the active scope.
type KeyRegistry struct {
	bindings []scopedBinding
}

func bind(action string, scopes []string, keys []string, help, desc string) scopedBinding {
	return scopedBinding{
		action:  action,
		binding: key.NewBinding(key.WithKeys(keys...), key.WithHelp(help, desc)),
		scopes:  scopes,
	}
}

// DefaultKeyRegistry returns the bindings of the home screen and the pane.
func DefaultKeyRegistry() *KeyRegistry {
	home := []string{scopeHome}
	pane := []string{scopePane}
	return &KeyRegistry{bindings: []scopedBinding{
		bind(actionOpen, home, []string{"n"}, "n", "notifications"),
		bind(actionClear, home, []string{"X"}, "X", "clear all"),
		bind(actionQuit, home, []string{"q"}, "q", "quit"),
		bind(actionDown, pane, []string{"j", "down"}, "j/↓", "down"),
		bind(actionUp, pane, []string{"k", "up"}, "k/↑", "up"),
		bind(actionDismiss, pane, []string{"enter", "x"}, "enter/x", "close"),
		bind(actionBack, pane, []string{"esc"}, "esc", "back"),
		bind(actionQuit, nil, []string{"ctrl+c"}, "ctrl+c", "quit"),
	}}
}

// Help lists the bindings live in scope, in registration order.
func (r *KeyRegistry) Help(scope string) []key.Binding {
	var out []key.Binding
	for _, b := range r.bindings {
		if b.live(scope) {
			out = append(out, b.binding)
		}
	}
	return out
}

// Action returns the action bound to the pressed key in scope, or "".
// Matching is exact, so "x" and "X" stay distinct.
func (r *KeyRegistry) Action(msg tea.KeyMsg, scope string) string {
	for _, b := range r.bindings {
		if b.live(scope) && key.Matches(msg, b.binding) {
			return b.action
		}
	}
	return ""
}

// Package status provides the status bar component for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/stencil-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/stencil-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/stencil-cli/internal/core/domain"
	"github.com/custodia-labs/stencil-cli/internal/core/ports/driving"
)

// State represents what the client is doing, for display.
type State string

const (
	StateStarting   State = "starting"
	StateIdle       State = "idle"
	StateRefreshing State = "refreshing"
	StateError      State = "error"
)

// Bar displays the sync state and keybinding hints.
type Bar struct {
	styles *styles.Styles
	keymap *keymap.KeyMap
	state  State
	status driving.SyncStatus
	width  int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap("")
	}

	return &Bar{
		styles: s,
		keymap: km,
		state:  StateStarting,
		width:  80,
	}
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	padding := s.width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

func (s *Bar) renderLeft() string {
	switch s.state {
	case StateStarting:
		return s.styles.Busy.Render("Booting...")
	case StateRefreshing:
		return s.styles.Busy.Render("Refreshing...")
	case StateError:
		if s.status.LastError != nil {
			return s.styles.Error.Render(fmt.Sprintf("Error: %v", s.status.LastError))
		}
		return s.styles.Error.Render("Error")
	case StateIdle:
	}

	parts := []string{s.styles.Synced.Render(fmt.Sprintf("%d refreshes", s.status.Refreshes))}
	if !s.status.Booted {
		parts = append(parts, s.styles.Muted.Render("not booted"))
	}
	switch s.status.Engine {
	case domain.EngineLoading:
		parts = append(parts, s.styles.Busy.Render("math loading"))
	case domain.EngineReady:
		parts = append(parts, s.styles.Muted.Render("math ready"))
	case domain.EngineUninitialized:
	}
	return strings.Join(parts, s.styles.Muted.Render(" · "))
}

func (s *Bar) renderRight() string {
	bindings := s.keymap.ShortHelp()
	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetState sets the current state.
func (s *Bar) SetState(state State) {
	s.state = state
}

// State returns the current state.
func (s *Bar) State() State {
	return s.state
}

// SetStatus records a client status snapshot.
func (s *Bar) SetStatus(status driving.SyncStatus) {
	s.status = status
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Width returns the current width.
func (s *Bar) Width() int {
	return s.width
}

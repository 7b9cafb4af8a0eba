package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/stencil-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/stencil-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/stencil-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/stencil-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/stencil-cli/internal/core/domain"
)

// tickInterval paces status polling while the engine loads.
const tickInterval = 250 * time.Millisecond

// App is the TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles
	keymap *keymap.KeyMap
	bar    *status.Bar

	// content is the scrollable Markdown preview.
	content viewport.Model

	// delegated holds the keys the page binds, such as ctrl+r.
	delegated map[string]bool

	markdown   string
	showHelp   bool
	dispatches int
	err        error

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	delegated := make(map[string]bool)
	refreshKey := ""
	for _, k := range ports.Keys.Keys() {
		delegated[k] = true
		if refreshKey == "" {
			refreshKey = k
		}
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap(refreshKey)

	return &App{
		ports:     ports,
		ctx:       context.Background(),
		styles:    s,
		keymap:    km,
		bar:       status.NewBar(s, km),
		content:   viewport.New(80, 20),
		delegated: delegated,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model. It boots the session in the background.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("stencil - "+a.ports.Client.Location().URL()),
		a.start(),
	)
}

func (a *App) start() tea.Cmd {
	return func() tea.Msg {
		return messages.Started{Err: a.ports.Client.Start(a.ctx)}
	}
}

func (a *App) dispatch(key string) tea.Cmd {
	return func() tea.Msg {
		_, err := a.ports.Keys.Key(a.ctx, key)
		return messages.KeyDispatched{Key: key, Err: err}
	}
}

func (a *App) loadContent() tea.Cmd {
	return func() tea.Msg {
		md, err := a.ports.Content.ContentMarkdown(a.ports.Client.Location().BaseURL())
		return messages.ContentLoaded{Markdown: md, Err: err}
	}
}

// tickWhileLoading polls until a pending engine load settles, so the
// typeset content is picked up.
func (a *App) tickWhileLoading() tea.Cmd {
	if a.ports.Client.Status().Engine != domain.EngineLoading {
		return nil
	}
	return tea.Tick(tickInterval, func(time.Time) tea.Msg { return messages.Tick{} })
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case messages.Started:
		a.syncStatus(msg.Err)
		return a, tea.Batch(a.loadContent(), a.tickWhileLoading())

	case messages.KeyDispatched:
		a.dispatches--
		err := msg.Err
		if errors.Is(err, domain.ErrRefreshQueued) {
			err = nil
		}
		a.syncStatus(err)
		return a, tea.Batch(a.loadContent(), a.tickWhileLoading())

	case messages.ContentLoaded:
		if msg.Err != nil {
			a.err = msg.Err
			return a, nil
		}
		a.markdown = msg.Markdown
		a.content.SetContent(msg.Markdown)
		return a, nil

	case messages.Tick:
		a.syncStatus(a.err)
		if cmd := a.tickWhileLoading(); cmd != nil {
			return a, cmd
		}
		return a, a.loadContent()

	case messages.Quit:
		return a, tea.Quit
	}

	var cmd tea.Cmd
	a.content, cmd = a.content.Update(msg)
	return a, cmd
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if keymap.Matches(key, a.keymap.Quit) {
		return a, tea.Quit
	}
	if keymap.Matches(key, a.keymap.Help) {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp && msg.Type == tea.KeyEsc {
		a.showHelp = false
		return a, nil
	}
	if a.delegated[key] {
		a.dispatches++
		a.bar.SetState(status.StateRefreshing)
		return a, a.dispatch(key)
	}
	if keymap.Matches(key, a.keymap.Reload) {
		return a, a.loadContent()
	}

	var cmd tea.Cmd
	a.content, cmd = a.content.Update(msg)
	return a, cmd
}

// syncStatus refreshes the status bar from the client.
func (a *App) syncStatus(err error) {
	a.err = err
	a.bar.SetStatus(a.ports.Client.Status())
	switch {
	case err != nil:
		a.bar.SetState(status.StateError)
	case a.dispatches > 0:
		a.bar.SetState(status.StateRefreshing)
	default:
		a.bar.SetState(status.StateIdle)
	}
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	title := a.styles.Title.Render(a.ports.Client.Location().URL())
	body := a.content.View()
	if a.showHelp {
		body = a.viewHelp()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		a.styles.Content.Width(max(a.width-2, 0)).Render(body),
		a.bar.View(),
	)
}

func (a *App) viewHelp() string {
	var b strings.Builder
	b.WriteString("Keys\n\n")
	for _, group := range a.keymap.FullHelp() {
		for _, binding := range group {
			h := binding.Help()
			fmt.Fprintf(&b, "  %-10s %s\n", h.Key, h.Desc)
		}
	}
	b.WriteString("\n[esc] back")
	return a.styles.Help.Render(b.String())
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.bar.SetWidth(width)

	// Title line, frame border and status bar.
	a.content.Width = max(width-4, 0)
	a.content.Height = max(height-4, 1)
}

// Markdown returns the content preview currently displayed.
func (a *App) Markdown() string {
	return a.markdown
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// ShowingHelp reports whether the help overlay is visible.
func (a *App) ShowingHelp() bool {
	return a.showHelp
}

// Status returns the status bar state.
func (a *App) Status() status.State {
	return a.bar.State()
}

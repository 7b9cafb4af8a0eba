package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/stencil-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/stencil-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/stencil-cli/internal/core/domain"
)

func newTestApp(t *testing.T) (*App, *MockSyncClient, *MockContent, *MockKeys) {
	t.Helper()
	client := &MockSyncClient{}
	content := &MockContent{Markdown: "# Q1\n\nRevenue is **42**."}
	keys := &MockKeys{}
	app, err := NewApp(NewPorts(client, content, keys))
	require.NoError(t, err)
	app.SetDimensions(100, 30)
	return app, client, content, keys
}

func TestNewApp_InvalidPorts(t *testing.T) {
	tests := []struct {
		name  string
		ports *Ports
		err   error
	}{
		{name: "missing client", ports: &Ports{Content: &MockContent{}, Keys: &MockKeys{}}, err: ErrMissingSyncClient},
		{name: "missing content", ports: &Ports{Client: &MockSyncClient{}, Keys: &MockKeys{}}, err: ErrMissingContent},
		{name: "missing keys", ports: &Ports{Client: &MockSyncClient{}, Content: &MockContent{}}, err: ErrMissingKeys},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			app, err := NewApp(tc.ports)
			assert.ErrorIs(t, err, tc.err)
			assert.Nil(t, app)
		})
	}
}

func TestApp_Init(t *testing.T) {
	app, _, _, _ := newTestApp(t)
	assert.NotNil(t, app.Init())
}

func TestApp_View_NotReady(t *testing.T) {
	app, err := NewApp(NewPorts(&MockSyncClient{}, &MockContent{}, &MockKeys{}))
	require.NoError(t, err)

	assert.Equal(t, "Initialising...", app.View())
}

func TestApp_WindowSize(t *testing.T) {
	app, _, _, _ := newTestApp(t)

	model, cmd := app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	assert.Equal(t, app, model)
	assert.Nil(t, cmd)
	assert.True(t, app.Ready())
	assert.Equal(t, 120, app.bar.Width())
}

func TestApp_Started_LoadsContent(t *testing.T) {
	app, client, content, _ := newTestApp(t)

	msg := app.start()()
	started, ok := msg.(messages.Started)
	require.True(t, ok)
	require.NoError(t, started.Err)

	_, cmd := app.Update(started)
	require.NotNil(t, cmd)
	assert.Equal(t, status.StateIdle, app.Status())

	loaded, ok := cmd().(messages.ContentLoaded)
	require.True(t, ok)
	assert.Equal(t, "http://localhost:7373", content.BaseURL)

	app.Update(loaded)
	assert.Equal(t, content.Markdown, app.Markdown())
	assert.Contains(t, app.View(), "Revenue")
	assert.Contains(t, app.View(), client.Location().URL())
}

func TestApp_Started_Error(t *testing.T) {
	app, client, _, _ := newTestApp(t)
	client.StartErr = errors.New("boot failed")

	msg := app.start()()
	app.Update(msg)

	assert.Equal(t, status.StateError, app.Status())
	assert.EqualError(t, app.Err(), "boot failed")
}

func TestApp_RefreshKey_Dispatches(t *testing.T) {
	app, _, _, keys := newTestApp(t)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	require.NotNil(t, cmd)
	assert.Equal(t, status.StateRefreshing, app.Status())

	msg := cmd()
	dispatched, ok := msg.(messages.KeyDispatched)
	require.True(t, ok)
	assert.Equal(t, "ctrl+r", dispatched.Key)
	assert.Equal(t, []string{"ctrl+r"}, keys.Dispatched)

	_, cmd = app.Update(dispatched)
	assert.NotNil(t, cmd)
	assert.Equal(t, status.StateIdle, app.Status())
}

func TestApp_RefreshKey_QueuedIsNotAnError(t *testing.T) {
	app, _, _, _ := newTestApp(t)
	app.dispatches = 1

	app.Update(messages.KeyDispatched{Key: "ctrl+r", Err: domain.ErrRefreshQueued})

	assert.NoError(t, app.Err())
	assert.Equal(t, status.StateIdle, app.Status())
}

func TestApp_RefreshKey_Error(t *testing.T) {
	app, _, _, _ := newTestApp(t)
	app.dispatches = 1

	app.Update(messages.KeyDispatched{Key: "ctrl+r", Err: domain.ErrHostStatus})

	assert.ErrorIs(t, app.Err(), domain.ErrHostStatus)
	assert.Equal(t, status.StateError, app.Status())
}

func TestApp_Quit(t *testing.T) {
	app, _, _, _ := newTestApp(t)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestApp_HelpToggle(t *testing.T) {
	app, _, _, _ := newTestApp(t)

	app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})
	assert.True(t, app.ShowingHelp())
	assert.Contains(t, app.View(), "refresh")

	app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, app.ShowingHelp())
}

func TestApp_ContentError(t *testing.T) {
	app, _, _, _ := newTestApp(t)

	app.Update(messages.ContentLoaded{Err: domain.ErrContentNotFound})

	assert.ErrorIs(t, app.Err(), domain.ErrContentNotFound)
}

func TestApp_TickStopsWhenEngineSettles(t *testing.T) {
	app, client, _, _ := newTestApp(t)

	client.Engine = domain.EngineLoading
	assert.NotNil(t, app.tickWhileLoading())

	client.Engine = domain.EngineReady
	_, cmd := app.Update(messages.Tick{})
	require.NotNil(t, cmd)
	assert.IsType(t, messages.ContentLoaded{}, cmd())
}

package mcp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/stencil-cli/internal/converters/exec"
	"github.com/custodia-labs/stencil-cli/internal/converters/math"
	"github.com/custodia-labs/stencil-cli/internal/core/domain"
	"github.com/custodia-labs/stencil-cli/internal/core/ports/driving"
	"github.com/custodia-labs/stencil-cli/internal/core/services"
	"github.com/custodia-labs/stencil-cli/internal/markup"
)

const testPage = `<html><head></head><body><div id="content">` +
	`<div data-par="n"><input name="n" value="1"></div>` +
	`<p>Revenue <script type="math/tex">x^2</script></p>` +
	`<pre data-exec="r">summary(x)</pre>` +
	`<button class="refresh button">Refresh</button>` +
	`</div></body></html>`

// mockSyncClient is a mock implementation of driving.SyncClient.
type mockSyncClient struct {
	result    *domain.RefreshResult
	err       error
	refreshes int
}

func (m *mockSyncClient) Location() domain.Location {
	return domain.Location{Protocol: "http:", Host: "localhost", Port: "7373", Address: "reports/q1"}
}

func (m *mockSyncClient) Start(context.Context) error { return nil }
func (m *mockSyncClient) Boot(context.Context) error  { return nil }

func (m *mockSyncClient) Refresh(context.Context) (*domain.RefreshResult, error) {
	m.refreshes++
	if m.err != nil {
		return nil, m.err
	}
	if m.result != nil {
		return m.result, nil
	}
	return &domain.RefreshResult{ID: "r-1", Cycles: 1}, nil
}

func (m *mockSyncClient) Status() driving.SyncStatus {
	return driving.SyncStatus{Location: m.Location(), Booted: true, Refreshes: m.refreshes}
}

// mockClicker records dispatched clicks.
type mockClicker struct {
	handled bool
	err     error
	targets []string
}

func (m *mockClicker) Click(_ context.Context, target string) (bool, error) {
	m.targets = append(m.targets, target)
	return m.handled, m.err
}

func newTestPage(t *testing.T) *markup.Page {
	t.Helper()
	page, err := markup.ParseString(testPage, "content")
	require.NoError(t, err)
	return page
}

func newTestServer(t *testing.T) (*Server, *mockSyncClient, *markup.Page, *mockClicker) {
	t.Helper()
	client := &mockSyncClient{}
	page := newTestPage(t)
	clicks := &mockClicker{handled: true}
	server, err := NewServer(&Ports{
		Client:   client,
		Page:     page,
		Registry: services.NewConverterRegistry(math.New(), exec.New()),
		Clicks:   clicks,
	})
	require.NoError(t, err)
	return server, client, page, clicks
}

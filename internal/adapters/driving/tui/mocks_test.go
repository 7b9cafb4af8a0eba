package tui

import (
	"context"
	"sync"

	"github.com/custodia-labs/stencil-cli/internal/core/domain"
	"github.com/custodia-labs/stencil-cli/internal/core/ports/driving"
)

// MockSyncClient is a mock implementation of driving.SyncClient.
type MockSyncClient struct {
	mu        sync.Mutex
	StartErr  error
	Engine    domain.EngineState
	Refreshes int
	starts    int
}

func (m *MockSyncClient) Location() domain.Location {
	return domain.Location{Protocol: "http:", Host: "localhost", Port: "7373", Address: "reports/q1"}
}

func (m *MockSyncClient) Start(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.starts++
	return m.StartErr
}

func (m *MockSyncClient) Boot(context.Context) error { return nil }

func (m *MockSyncClient) Refresh(context.Context) (*domain.RefreshResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Refreshes++
	return &domain.RefreshResult{Cycles: 1}, nil
}

func (m *MockSyncClient) Status() driving.SyncStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	return driving.SyncStatus{
		Location:  m.Location(),
		Booted:    m.StartErr == nil && m.starts > 0,
		Refreshes: m.Refreshes,
		Engine:    m.Engine,
	}
}

// MockContent is a mock ContentSource.
type MockContent struct {
	Markdown string
	Err      error
	BaseURL  string
}

func (m *MockContent) ContentMarkdown(baseURL string) (string, error) {
	m.BaseURL = baseURL
	return m.Markdown, m.Err
}

// MockKeys is a mock KeyDispatcher bound to ctrl+r.
type MockKeys struct {
	Err        error
	Dispatched []string
}

func (m *MockKeys) Key(_ context.Context, key string) (bool, error) {
	if key != "ctrl+r" {
		return false, nil
	}
	m.Dispatched = append(m.Dispatched, key)
	return true, m.Err
}

func (m *MockKeys) Keys() []string {
	return []string{"ctrl+r"}
}

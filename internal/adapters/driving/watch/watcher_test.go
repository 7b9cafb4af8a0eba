package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/stencil-cli/internal/core/domain"
	"github.com/custodia-labs/stencil-cli/internal/core/ports/driving"
)

// mockClient counts refreshes.
type mockClient struct {
	mu        sync.Mutex
	refreshes int
}

func (m *mockClient) Location() domain.Location   { return domain.Location{} }
func (m *mockClient) Start(context.Context) error { return nil }
func (m *mockClient) Boot(context.Context) error  { return nil }
func (m *mockClient) Status() driving.SyncStatus  { return driving.SyncStatus{} }
func (m *mockClient) Refresh(context.Context) (*domain.RefreshResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refreshes++
	return &domain.RefreshResult{Cycles: 1}, nil
}

func TestWatcher_Triggers(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.html")
	w := New(&mockClient{}, Config{Paths: []string{dir}, Ignore: []string{out}})

	tests := []struct {
		name     string
		event    fsnotify.Event
		expected bool
	}{
		{name: "write", event: fsnotify.Event{Name: filepath.Join(dir, "data.csv"), Op: fsnotify.Write}, expected: true},
		{name: "create", event: fsnotify.Event{Name: filepath.Join(dir, "new.csv"), Op: fsnotify.Create}, expected: true},
		{name: "remove", event: fsnotify.Event{Name: filepath.Join(dir, "old.csv"), Op: fsnotify.Remove}, expected: true},
		{name: "rename", event: fsnotify.Event{Name: filepath.Join(dir, "old.csv"), Op: fsnotify.Rename}, expected: true},
		{name: "chmod only", event: fsnotify.Event{Name: filepath.Join(dir, "data.csv"), Op: fsnotify.Chmod}, expected: false},
		{name: "hidden file", event: fsnotify.Event{Name: filepath.Join(dir, ".data.swp"), Op: fsnotify.Write}, expected: false},
		{name: "ignored output", event: fsnotify.Event{Name: out, Op: fsnotify.Write}, expected: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, w.triggers(tc.event))
		})
	}
}

func TestWatcher_NoPaths(t *testing.T) {
	err := New(&mockClient{}, Config{}).Run(context.Background())
	assert.ErrorIs(t, err, ErrNoPaths)
}

func TestWatcher_MissingPath(t *testing.T) {
	err := New(&mockClient{}, Config{Paths: []string{filepath.Join(t.TempDir(), "nope")}}).Run(context.Background())
	assert.Error(t, err)
}

func TestWatcher_RefreshesOnWrite(t *testing.T) {
	dir := t.TempDir()
	client := &mockClient{}
	refreshed := make(chan struct{}, 10)
	w := New(client, Config{
		Paths:    []string{dir},
		Interval: 10 * time.Millisecond,
		OnRefresh: func(result *domain.RefreshResult, err error) {
			assert.NoError(t, err)
			assert.NotNil(t, result)
			refreshed <- struct{}{}
		},
	})

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- w.Run(ctx) }()

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "data.csv"), []byte("a,b\n1,2\n"), 0o600))

	select {
	case <-refreshed:
	case <-time.After(5 * time.Second):
		t.Fatal("no refresh after write")
	}

	cancel()
	require.NoError(t, <-errCh)
}

func TestWatcher_CoalescesBursts(t *testing.T) {
	client := &mockClient{}
	w := New(client, Config{Paths: []string{"unused"}, Interval: time.Hour})

	for i := 0; i < 5; i++ {
		w.markDirty()
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		w.refreshLoop(ctx)
	}()

	require.Eventually(t, func() bool {
		client.mu.Lock()
		defer client.mu.Unlock()
		return client.refreshes == 1
	}, time.Second, 10*time.Millisecond)

	cancel()
	<-done

	client.mu.Lock()
	defer client.mu.Unlock()
	assert.Equal(t, 1, client.refreshes)
}

func TestWatcher_ClosedEventsStopRefreshLoop(t *testing.T) {
	w := New(&mockClient{}, Config{Paths: []string{"unused"}})
	events := make(chan fsnotify.Event)
	errs := make(chan error)
	close(events)

	errCh := make(chan error, 1)
	go func() {
		errCh <- w.loop(context.Background(), events, errs)
	}()

	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("loop did not return after the event channel closed")
	}
}

package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/stencil-cli/internal/core/domain"
	"github.com/custodia-labs/stencil-cli/internal/core/ports/driven"
	"github.com/custodia-labs/stencil-cli/internal/core/ports/driving"
	"github.com/custodia-labs/stencil-cli/internal/logger"
	"github.com/custodia-labs/stencil-cli/internal/markup"
)

// Ensure SyncClient implements the interface.
var _ driving.SyncClient = (*SyncClient)(nil)

var syncLog = logger.For("sync")

// SyncClient keeps a page in sync with its rendering host.
//
// At most one refresh is in flight. A refresh requested meanwhile is folded
// into a single trailing cycle run by the in-flight caller, so writes to the
// content region never interleave and the last edit is always sent.
type SyncClient struct {
	page        *markup.Page
	location    domain.Location
	host        driven.RenderHost
	typesetting driving.TypesettingLifecycle

	bootOnce sync.Once
	bootErr  error

	mu         sync.Mutex
	booted     bool
	refreshing bool
	pending    bool
	refreshes  int
	lastErr    error
}

// NewSyncClient creates a client for page at location. typesetting may be nil.
func NewSyncClient(
	page *markup.Page,
	location domain.Location,
	host driven.RenderHost,
	typesetting driving.TypesettingLifecycle,
) *SyncClient {
	return &SyncClient{
		page:        page,
		location:    location,
		host:        host,
		typesetting: typesetting,
	}
}

// Location returns where the stencil lives.
func (c *SyncClient) Location() domain.Location {
	return c.location
}

// Start boots the session and then initialises typesetting. Typesetting is
// initialised even when the boot fails; the boot error is returned.
func (c *SyncClient) Start(ctx context.Context) error {
	bootErr := c.Boot(ctx)
	if c.typesetting != nil {
		if err := c.typesetting.Init(ctx); err != nil {
			syncLog.Warn("typesetting init: %v", err)
		}
	}
	return bootErr
}

// Boot establishes the session. Only the first call reaches the host; later
// calls return the first call's error. A failed boot is not retried.
func (c *SyncClient) Boot(ctx context.Context) error {
	c.bootOnce.Do(func() {
		syncLog.Debug("boot %s", c.location.URL())
		resp, err := c.host.Boot(ctx, c.location)
		if err != nil {
			c.bootErr = fmt.Errorf("boot: %w", err)
			syncLog.Warn("boot %s failed: %v", c.location.URL(), err)
			c.setErr(c.bootErr)
			return
		}
		syncLog.Debug("boot response: %s", string(resp))

		c.mu.Lock()
		c.booted = true
		c.mu.Unlock()
	})
	return c.bootErr
}

// Refresh re-renders the content region on the host. When another refresh
// is in flight the request is queued behind it and domain.ErrRefreshQueued
// is returned immediately.
func (c *SyncClient) Refresh(ctx context.Context) (*domain.RefreshResult, error) {
	c.mu.Lock()
	if c.refreshing {
		c.pending = true
		c.mu.Unlock()
		syncLog.Debug("refresh queued")
		return nil, domain.ErrRefreshQueued
	}
	c.refreshing = true
	c.mu.Unlock()

	start := time.Now()
	result := &domain.RefreshResult{ID: uuid.NewString()}

	var err error
	for {
		result.Cycles++
		err = c.refreshOnce(ctx, result)

		c.mu.Lock()
		if err == nil {
			c.refreshes++
		}
		if c.pending && ctx.Err() == nil {
			c.pending = false
			c.mu.Unlock()
			continue
		}
		c.pending = false
		c.refreshing = false
		c.lastErr = err
		c.mu.Unlock()
		break
	}

	result.Duration = time.Since(start)
	if err != nil {
		return nil, err
	}
	syncLog.Debug("refresh %s done in %s (%d cycles)", result.ID, result.Duration, result.Cycles)
	return result, nil
}

func (c *SyncClient) refreshOnce(ctx context.Context, result *domain.RefreshResult) error {
	var content string
	err := c.page.Update(func(ct *markup.Content) error {
		result.Captured = CaptureInputs(ct)
		var err error
		content, err = ct.HTML()
		return err
	})
	if err != nil {
		return err
	}
	result.Sent = len(content)

	syncLog.Debug("refresh %s: render %d bytes", result.ID, len(content))
	resp, err := c.host.Render(ctx, c.location, domain.RenderRequest{
		Format:  domain.FormatHTML,
		Content: content,
	})
	if err != nil {
		syncLog.Warn("refresh %s: render %s failed: %v", result.ID, c.location.URL(), err)
		return fmt.Errorf("render: %w", err)
	}
	result.Received = len(resp.Content)

	if err := c.page.Update(func(ct *markup.Content) error {
		return ct.Replace(resp.Content)
	}); err != nil {
		return err
	}

	if c.typesetting != nil {
		if err := c.typesetting.Refresh(ctx); err != nil {
			syncLog.Warn("refresh %s: typeset: %v", result.ID, err)
		}
	}
	return nil
}

// Status returns a snapshot of the client state.
func (c *SyncClient) Status() driving.SyncStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	status := driving.SyncStatus{
		Location:   c.location,
		Booted:     c.booted,
		Refreshing: c.refreshing,
		Refreshes:  c.refreshes,
		LastError:  c.lastErr,
	}
	if c.typesetting != nil {
		status.Engine = c.typesetting.State()
	}
	return status
}

func (c *SyncClient) setErr(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastErr = err
}

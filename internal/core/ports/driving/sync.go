package driving

import (
	"context"

	"github.com/custodia-labs/stencil-cli/internal/core/domain"
)

// SyncClient keeps a page in sync with its rendering host.
type SyncClient interface {
	// Location returns where the stencil lives.
	Location() domain.Location

	// Start boots the session and initialises typesetting.
	Start(ctx context.Context) error

	// Boot establishes the session. Only the first call reaches the host.
	Boot(ctx context.Context) error

	// Refresh captures field values, re-renders the content region on the
	// host and splices the result back. A call made while another refresh
	// is in flight returns domain.ErrRefreshQueued.
	Refresh(ctx context.Context) (*domain.RefreshResult, error)

	// Status returns a snapshot of the client state.
	Status() SyncStatus
}

// SyncStatus represents the current state of the client.
type SyncStatus struct {
	// Location is the resolved stencil location.
	Location domain.Location

	// Booted is true once a boot request succeeded.
	Booted bool

	// Refreshing is true while a refresh is in flight.
	Refreshing bool

	// Refreshes counts completed refresh cycles.
	Refreshes int

	// LastError is the error of the last boot or refresh, if any.
	LastError error

	// Engine is the typesetting lifecycle state.
	Engine domain.EngineState
}

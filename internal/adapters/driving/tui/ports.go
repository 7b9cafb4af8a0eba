// Package tui provides an interactive terminal view of a live stencil.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"context"

	"github.com/custodia-labs/stencil-cli/internal/core/ports/driving"
)

// ContentSource renders the content region for display.
type ContentSource interface {
	ContentMarkdown(baseURL string) (string, error)
}

// KeyDispatcher runs the handler bound to a key.
type KeyDispatcher interface {
	// Key dispatches key and reports whether a handler was bound.
	Key(ctx context.Context, key string) (bool, error)

	// Keys returns the bound keys.
	Keys() []string
}

// Ports aggregates everything the TUI drives.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Client keeps the page in sync with the host.
	Client driving.SyncClient

	// Content renders the live content region.
	Content ContentSource

	// Keys dispatches delegated key bindings such as ctrl+r.
	Keys KeyDispatcher
}

// NewPorts creates a new Ports aggregate.
func NewPorts(client driving.SyncClient, content ContentSource, keys KeyDispatcher) *Ports {
	return &Ports{
		Client:  client,
		Content: content,
		Keys:    keys,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Client == nil {
		return ErrMissingSyncClient
	}
	if p.Content == nil {
		return ErrMissingContent
	}
	if p.Keys == nil {
		return ErrMissingKeys
	}
	return nil
}

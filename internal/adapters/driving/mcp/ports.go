package mcp

import (
	"context"

	"github.com/custodia-labs/stencil-cli/internal/core/ports/driving"
	"github.com/custodia-labs/stencil-cli/internal/markup"
)

// Page is the live document the tools read and edit.
type Page interface {
	SetField(name, value string) error
	Fields() (map[string]string, error)
	ContentHTML() (string, error)
	ContentMarkdown(baseURL string) (string, error)
	View(fn func(c *markup.Content) error) error
}

// Clicker dispatches delegated clicks inside the content region.
type Clicker interface {
	Click(ctx context.Context, target string) (bool, error)
}

// Ports aggregates everything the MCP server drives.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Client keeps the page in sync with the host.
	Client driving.SyncClient

	// Page is the document the client keeps in sync.
	Page Page

	// Registry converts content markup to semantic nodes.
	Registry driving.ConverterRegistry

	// Clicks dispatches delegated click bindings.
	Clicks Clicker
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Client == nil {
		return ErrMissingClient
	}
	if p.Page == nil {
		return ErrMissingPage
	}
	// Registry and Clicks are optional; their tools are not registered.
	return nil
}

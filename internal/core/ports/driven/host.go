package driven

import (
	"context"

	"github.com/custodia-labs/stencil-cli/internal/core/domain"
)

// RenderHost is the remote side of the stencil protocol.
type RenderHost interface {
	// Boot establishes a session for the stencil at loc.
	Boot(ctx context.Context, loc domain.Location) (domain.BootResponse, error)

	// Render sends the content region and returns its re-rendered markup.
	Render(ctx context.Context, loc domain.Location, req domain.RenderRequest) (*domain.RenderResponse, error)
}

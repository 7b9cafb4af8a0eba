package driving

import (
	"context"

	"github.com/custodia-labs/stencil-cli/internal/core/domain"
)

// TypesettingLifecycle loads the typesetting engine on first need and
// re-typesets the content region after every refresh.
type TypesettingLifecycle interface {
	// Init starts loading the engine if the content region holds math.
	// Only the first call can leave the uninitialised state.
	Init(ctx context.Context) error

	// Refresh re-typesets the content region when the engine is ready.
	Refresh(ctx context.Context) error

	// State returns the current lifecycle state.
	State() domain.EngineState
}

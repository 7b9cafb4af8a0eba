package driven

import (
	"context"

	"golang.org/x/net/html"

	"github.com/custodia-labs/stencil-cli/internal/core/domain"
)

// TypesettingEngine renders math notation elements into display markup.
type TypesettingEngine interface {
	// Configure sets options; it must be called before Install.
	Configure(cfg domain.EngineConfig)

	// Install hands the loaded engine script to the engine.
	Install(script []byte) error

	// Typeset renders every math element under region. It returns
	// domain.ErrEngineNotLoaded before Install succeeded.
	Typeset(ctx context.Context, region *html.Node) error
}

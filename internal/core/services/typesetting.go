package services

import (
	"context"
	"sync"

	"github.com/custodia-labs/stencil-cli/internal/core/domain"
	"github.com/custodia-labs/stencil-cli/internal/core/ports/driven"
	"github.com/custodia-labs/stencil-cli/internal/core/ports/driving"
	"github.com/custodia-labs/stencil-cli/internal/logger"
	"github.com/custodia-labs/stencil-cli/internal/markup"
)

// Ensure TypesettingLifecycle implements the interface.
var _ driving.TypesettingLifecycle = (*TypesettingLifecycle)(nil)

var typesetLog = logger.For("typeset")

// TypesettingLifecycle loads the typesetting engine on demand and
// re-typesets the content region after each refresh.
//
// The engine is loaded at most once, and only when the content region
// holds math at the time of Init. Math introduced later by a refresh is
// not typeset unless the engine was already loaded.
type TypesettingLifecycle struct {
	page     *markup.Page
	registry driving.ConverterRegistry
	loader   driven.ResourceLoader
	engine   driven.TypesettingEngine
	source   string
	config   domain.EngineConfig

	mu        sync.Mutex
	state     domain.EngineState
	attempted bool
	settled   chan struct{}
}

// NewTypesettingLifecycle creates a lifecycle for page.
func NewTypesettingLifecycle(
	page *markup.Page,
	registry driving.ConverterRegistry,
	loader driven.ResourceLoader,
	engine driven.TypesettingEngine,
	source string,
	config domain.EngineConfig,
) *TypesettingLifecycle {
	if source == "" {
		source = domain.DefaultTypesetSource
	}
	return &TypesettingLifecycle{
		page:     page,
		registry: registry,
		loader:   loader,
		engine:   engine,
		source:   source,
		config:   config,
		settled:  make(chan struct{}),
	}
}

// State returns the current lifecycle state.
func (l *TypesettingLifecycle) State() domain.EngineState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Settled is closed once an engine load finished, successfully or not.
// It is never closed when Init found no math.
func (l *TypesettingLifecycle) Settled() <-chan struct{} {
	return l.settled
}

// Init starts loading the engine when the content region holds math.
// Only the first call has any effect.
func (l *TypesettingLifecycle) Init(ctx context.Context) error {
	l.mu.Lock()
	if l.attempted {
		l.mu.Unlock()
		return nil
	}
	l.attempted = true
	l.mu.Unlock()

	var hasMath bool
	err := l.page.View(func(c *markup.Content) error {
		hasMath = len(l.registry.Elements(c.Root, domain.NodeTypeMath)) > 0
		return nil
	})
	if err != nil {
		return err
	}
	if !hasMath {
		typesetLog.Debug("no math in content region, engine not loaded")
		return nil
	}
	if l.loader == nil || l.engine == nil {
		typesetLog.Warn("math present but no typesetting engine configured")
		return nil
	}

	l.mu.Lock()
	l.state = domain.EngineLoading
	l.mu.Unlock()

	l.engine.Configure(l.config)
	typesetLog.Debug("loading engine from %s", l.source)

	loadCtx := context.WithoutCancel(ctx)
	l.loader.Load(ctx, l.source, func(script []byte, err error) {
		defer close(l.settled)
		if err != nil {
			typesetLog.Warn("load engine: %v", err)
			return
		}
		if err := l.engine.Install(script); err != nil {
			typesetLog.Warn("install engine: %v", err)
			return
		}

		l.mu.Lock()
		l.state = domain.EngineReady
		l.mu.Unlock()
		typesetLog.Info("engine ready")

		if err := l.typeset(loadCtx); err != nil {
			typesetLog.Warn("initial typeset: %v", err)
		}
	})
	return nil
}

// Refresh typesets the content region and hides the raw math sources.
// It does nothing until the engine is ready.
func (l *TypesettingLifecycle) Refresh(ctx context.Context) error {
	if l.State() != domain.EngineReady {
		return nil
	}
	return l.typeset(ctx)
}

func (l *TypesettingLifecycle) typeset(ctx context.Context) error {
	return l.page.Update(func(c *markup.Content) error {
		if err := l.engine.Typeset(ctx, c.Root); err != nil {
			return err
		}
		for _, el := range l.registry.Elements(c.Root, domain.NodeTypeMath) {
			markup.Hide(el)
		}
		return nil
	})
}

// Package watch refreshes a stencil when files it depends on change.
//
// File events are coalesced: a burst of writes produces one refresh, and
// refreshes are spaced by at least the configured interval.
package watch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/stencil-cli/internal/core/domain"
	"github.com/custodia-labs/stencil-cli/internal/core/ports/driving"
	"github.com/custodia-labs/stencil-cli/internal/logger"
)

var log = logger.For("watch")

// ErrNoPaths is returned when there is nothing to watch.
var ErrNoPaths = errors.New("no paths to watch")

// Config holds configuration for a watcher.
type Config struct {
	// Paths are the files or directories to watch.
	Paths []string

	// Ignore lists files whose changes never trigger a refresh,
	// such as the file refreshed output is written to.
	Ignore []string

	// Interval is the minimum spacing of refreshes.
	Interval time.Duration

	// OnRefresh is called after every triggered refresh.
	OnRefresh func(result *domain.RefreshResult, err error)
}

// Watcher triggers refreshes from file events.
type Watcher struct {
	client  driving.SyncClient
	cfg     Config
	ignore  map[string]bool
	limiter *rate.Limiter
	dirty   chan struct{}
}

// New creates a watcher for client.
func New(client driving.SyncClient, cfg Config) *Watcher {
	if cfg.Interval <= 0 {
		cfg.Interval = domain.DefaultWatchInterval
	}
	ignore := make(map[string]bool, len(cfg.Ignore))
	for _, p := range cfg.Ignore {
		if abs, err := filepath.Abs(p); err == nil {
			ignore[abs] = true
		}
	}
	return &Watcher{
		client:  client,
		cfg:     cfg,
		ignore:  ignore,
		limiter: rate.NewLimiter(rate.Every(cfg.Interval), 1),
		dirty:   make(chan struct{}, 1),
	}
}

// Run watches until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	if len(w.cfg.Paths) == 0 {
		return ErrNoPaths
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	for _, p := range w.cfg.Paths {
		if err := fw.Add(p); err != nil {
			return fmt.Errorf("watch %s: %w", p, err)
		}
		log.Debug("watching %s", p)
	}

	return w.loop(ctx, fw.Events, fw.Errors)
}

// loop dispatches watcher events until ctx is cancelled or either channel
// closes. The refresh loop is stopped before it returns.
func (w *Watcher) loop(ctx context.Context, events <-chan fsnotify.Event, errs <-chan error) error {
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		w.refreshLoop(ctx)
	}()
	defer func() {
		cancel()
		<-done
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-events:
			if !ok {
				return nil
			}
			if w.triggers(event) {
				log.Debug("%s: %s", event.Op, event.Name)
				w.markDirty()
			}
		case err, ok := <-errs:
			if !ok {
				return nil
			}
			log.Warn("watcher error: %v", err)
		}
	}
}

// triggers reports whether event should cause a refresh.
func (w *Watcher) triggers(event fsnotify.Event) bool {
	if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) &&
		!event.Op.Has(fsnotify.Remove) && !event.Op.Has(fsnotify.Rename) {
		return false
	}
	if strings.HasPrefix(filepath.Base(event.Name), ".") {
		return false
	}
	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	return !w.ignore[abs]
}

func (w *Watcher) markDirty() {
	select {
	case w.dirty <- struct{}{}:
	default:
	}
}

func (w *Watcher) refreshLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.dirty:
		}
		if err := w.limiter.Wait(ctx); err != nil {
			return
		}
		result, err := w.client.Refresh(ctx)
		if errors.Is(err, domain.ErrRefreshQueued) {
			continue
		}
		if err != nil {
			log.Warn("refresh: %v", err)
		}
		if w.cfg.OnRefresh != nil {
			w.cfg.OnRefresh(result, err)
		}
	}
}

// Package loader fetches scripts from the rendering host.
//
// Each source is fetched at most once per Loader: concurrent loads share
// one request and later loads are served from memory. Failed fetches are
// not cached.
package loader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/custodia-labs/stencil-cli/internal/core/ports/driven"
	"github.com/custodia-labs/stencil-cli/internal/logger"
)

// Ensure Loader implements the interface.
var _ driven.ResourceLoader = (*Loader)(nil)

// DefaultTimeout bounds a script fetch.
const DefaultTimeout = 30 * time.Second

var log = logger.For("loader")

// Config holds configuration for the loader.
type Config struct {
	// BaseURL prefixes sources that are not absolute URLs.
	BaseURL string

	// Timeout bounds each fetch (default: 30s).
	Timeout time.Duration

	// HTTPClient replaces the default client.
	HTTPClient *http.Client
}

// Loader fetches scripts over HTTP.
type Loader struct {
	client  *http.Client
	baseURL string

	group singleflight.Group
	mu    sync.RWMutex
	cache map[string][]byte
}

// New creates a loader.
func New(cfg Config) *Loader {
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	return &Loader{
		client:  client,
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		cache:   make(map[string][]byte),
	}
}

// Load fetches source in the background and calls onLoad exactly once
// with the script or the fetch error.
func (l *Loader) Load(ctx context.Context, source string, onLoad func(script []byte, err error)) {
	go func() {
		script, err := l.Fetch(ctx, source)
		onLoad(script, err)
	}()
}

// Fetch returns the script at source, fetching it if needed.
func (l *Loader) Fetch(ctx context.Context, source string) ([]byte, error) {
	url := l.resolve(source)

	l.mu.RLock()
	script, ok := l.cache[url]
	l.mu.RUnlock()
	if ok {
		return script, nil
	}

	v, err, shared := l.group.Do(url, func() (any, error) {
		return l.fetch(ctx, url)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		log.Debug("shared fetch of %s", url)
	}
	return v.([]byte), nil
}

func (l *Loader) fetch(ctx context.Context, url string) ([]byte, error) {
	log.Debug("fetch %s", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: status %d", url, resp.StatusCode)
	}
	script, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", url, err)
	}

	l.mu.Lock()
	l.cache[url] = script
	l.mu.Unlock()
	return script, nil
}

func (l *Loader) resolve(source string) string {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return source
	}
	if !strings.HasPrefix(source, "/") {
		source = "/" + source
	}
	return l.baseURL + source
}

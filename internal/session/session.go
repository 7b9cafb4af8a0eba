// Package session assembles a live stencil client for one page.
//
// A page is referenced either by a local path or by an http(s) URL. The
// opener parses it, resolves its location, and wires the rendering host,
// script loader, typesetting engine and sync client around it.
package session

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"

	"github.com/custodia-labs/stencil-cli/internal/adapters/driven/host"
	"github.com/custodia-labs/stencil-cli/internal/adapters/driven/loader"
	"github.com/custodia-labs/stencil-cli/internal/adapters/driven/typeset/mathjax"
	"github.com/custodia-labs/stencil-cli/internal/converters/exec"
	"github.com/custodia-labs/stencil-cli/internal/converters/math"
	"github.com/custodia-labs/stencil-cli/internal/core/domain"
	"github.com/custodia-labs/stencil-cli/internal/core/services"
	"github.com/custodia-labs/stencil-cli/internal/logger"
	"github.com/custodia-labs/stencil-cli/internal/markup"
)

var log = logger.For("session")

// Session is a page with its client.
type Session struct {
	// Ref is the path or URL the page was opened from.
	Ref string

	// PageURL is the URL the location was resolved from.
	PageURL string

	// Path is the local file, empty for remote pages.
	Path string

	Page        *markup.Page
	Registry    *services.ConverterRegistry
	Client      *services.SyncClient
	Typesetting *services.TypesettingLifecycle
	Delegator   *services.Delegator
}

// Location returns the resolved location of the page.
func (s *Session) Location() domain.Location {
	return s.Client.Location()
}

// Save writes the whole page to path.
func (s *Session) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := s.Page.Render(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Opener opens sessions with fixed settings.
type Opener struct {
	settings   domain.Settings
	httpClient *http.Client
}

// NewOpener creates an opener. A nil settings uses the defaults.
func NewOpener(settings *domain.Settings) *Opener {
	if settings == nil {
		settings = domain.DefaultSettings()
	}
	return &Opener{
		settings:   *settings,
		httpClient: &http.Client{Timeout: settings.Timeout},
	}
}

// Settings returns the settings sessions are opened with.
func (o *Opener) Settings() domain.Settings {
	return o.settings
}

// Open loads the page at ref and wires a client for it. No request is
// made to the rendering host until the client is started.
func (o *Opener) Open(ctx context.Context, ref string) (*Session, error) {
	s := &Session{Ref: ref}

	page, pageURL, path, err := o.load(ctx, ref)
	if err != nil {
		return nil, err
	}
	s.Page, s.PageURL, s.Path = page, pageURL, path

	var loc domain.Location
	err = page.Document(func(doc *html.Node) error {
		var err error
		loc, err = services.NewAddressResolver(o.settings.HostURL).Resolve(doc, pageURL)
		return err
	})
	if err != nil {
		return nil, err
	}
	if !loc.Resolved() {
		log.Warn("no address found for %s", ref)
	}
	log.Debug("%s resolved to %s", ref, loc.URL())

	s.Registry = services.NewConverterRegistry(math.New(), exec.New())
	s.Typesetting = services.NewTypesettingLifecycle(
		page,
		s.Registry,
		loader.New(loader.Config{BaseURL: loc.BaseURL(), Timeout: o.settings.Timeout}),
		mathjax.New(),
		o.settings.TypesetSource,
		domain.DefaultEngineConfig(o.settings.PreferredFont),
	)
	s.Client = services.NewSyncClient(
		page,
		loc,
		host.NewClient(host.Config{Timeout: o.settings.Timeout}),
		s.Typesetting,
	)
	s.Delegator = services.NewDefaultDelegator(page, s.Client)
	return s, nil
}

func (o *Opener) load(ctx context.Context, ref string) (*markup.Page, string, string, error) {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		page, err := o.fetch(ctx, ref)
		return page, ref, "", err
	}

	path := strings.TrimPrefix(ref, "file://")
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, "", "", err
	}
	page, err := markup.LoadFile(abs, o.settings.ContentID)
	if err != nil {
		return nil, "", "", err
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
	return page, u.String(), abs, nil
}

func (o *Opener) fetch(ctx context.Context, pageURL string) (*markup.Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "text/html")

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("fetch page (status %d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return markup.Parse(resp.Body, o.settings.ContentID)
}

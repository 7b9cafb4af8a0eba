package services

import (
	"context"
	"errors"
	"sort"
	"sync"

	"golang.org/x/net/html"

	"github.com/custodia-labs/stencil-cli/internal/core/domain"
	"github.com/custodia-labs/stencil-cli/internal/core/ports/driving"
	"github.com/custodia-labs/stencil-cli/internal/markup"
)

// Default bindings.
const (
	RefreshButtonSelector = ".refresh.button"
	RefreshKey            = "ctrl+r"
)

// ClickHandler handles a click that reached an element matching its binding.
type ClickHandler func(ctx context.Context) error

// KeyHandler handles a key press.
type KeyHandler func(ctx context.Context) error

type clickBinding struct {
	selector markup.Selector
	handler  ClickHandler
}

// Delegator dispatches events on the content region to bound handlers.
// Bindings are matched when an event is dispatched, so they keep working
// after the content region is replaced.
type Delegator struct {
	page *markup.Page

	mu     sync.RWMutex
	clicks []clickBinding
	keys   map[string]KeyHandler
}

// NewDelegator creates a delegator without bindings.
func NewDelegator(page *markup.Page) *Delegator {
	return &Delegator{
		page: page,
		keys: make(map[string]KeyHandler),
	}
}

// NewDefaultDelegator binds the refresh button and the refresh shortcut to
// client.Refresh.
func NewDefaultDelegator(page *markup.Page, client driving.SyncClient) *Delegator {
	d := NewDelegator(page)
	refresh := func(ctx context.Context) error {
		_, err := client.Refresh(ctx)
		if errors.Is(err, domain.ErrRefreshQueued) {
			return nil
		}
		return err
	}
	d.OnClick(RefreshButtonSelector, refresh)
	d.OnKey(RefreshKey, refresh)
	return d
}

// OnClick binds handler to clicks on elements matching selector.
func (d *Delegator) OnClick(selector string, handler ClickHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.clicks = append(d.clicks, clickBinding{selector: markup.Compile(selector), handler: handler})
}

// OnKey binds handler to a key such as "ctrl+r".
func (d *Delegator) OnKey(key string, handler KeyHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.keys[key] = handler
}

// Click dispatches a click on the first element of the content region
// matching target. The click bubbles from the element up to the region;
// every binding matched on the way runs once, innermost first.
// Returns false when no handler ran.
func (d *Delegator) Click(ctx context.Context, target string) (bool, error) {
	sel := markup.Compile(target)

	var handlers []ClickHandler
	err := d.page.View(func(c *markup.Content) error {
		el := markup.Query(c.Root, sel)
		if el == nil {
			return nil
		}
		handlers = d.collect(el, c.Root)
		return nil
	})
	if err != nil {
		return false, err
	}
	if len(handlers) == 0 {
		return false, nil
	}

	for _, h := range handlers {
		if err := h(ctx); err != nil {
			return true, err
		}
	}
	return true, nil
}

func (d *Delegator) collect(el, root *html.Node) []ClickHandler {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var handlers []ClickHandler
	for cur := el; cur != nil && cur != root; cur = cur.Parent {
		for _, b := range d.clicks {
			if b.selector.Matches(cur, root) {
				handlers = append(handlers, b.handler)
			}
		}
	}
	return handlers
}

// Key dispatches a key press. Returns false when the key is not bound.
func (d *Delegator) Key(ctx context.Context, key string) (bool, error) {
	d.mu.RLock()
	h, ok := d.keys[key]
	d.mu.RUnlock()
	if !ok {
		return false, nil
	}
	return true, h(ctx)
}

// Keys returns the bound keys, sorted.
func (d *Delegator) Keys() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	keys := make([]string, 0, len(d.keys))
	for k := range d.keys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

package markup

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"golang.org/x/net/html"

	"github.com/custodia-labs/stencil-cli/internal/core/domain"
)

// Page is a parsed stencil document. It is the shared resource of the
// client: every read and write goes through View or Update, which serialise
// access.
type Page struct {
	mu        sync.Mutex
	doc       *html.Node
	contentID string
	fields    map[*html.Node]string
}

// Content is the live content region handed to View and Update callbacks.
// It must not be retained after the callback returns.
type Content struct {
	// Root is the content region element.
	Root *html.Node

	page *Page
}

// Parse reads a page. contentID names the live content region.
func Parse(r io.Reader, contentID string) (*Page, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}
	if contentID == "" {
		contentID = domain.DefaultContentID
	}
	return &Page{
		doc:       doc,
		contentID: contentID,
		fields:    make(map[*html.Node]string),
	}, nil
}

// ParseString is Parse on a string.
func ParseString(s, contentID string) (*Page, error) {
	return Parse(strings.NewReader(s), contentID)
}

// LoadFile reads a page from disk.
func LoadFile(path, contentID string) (*Page, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f, contentID)
}

// ContentID returns the id of the content region.
func (p *Page) ContentID() string {
	return p.contentID
}

// View runs fn with read access to the content region.
func (p *Page) View(fn func(c *Content) error) error {
	return p.Update(fn)
}

// Update runs fn with write access to the content region.
func (p *Page) Update(fn func(c *Content) error) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	root := ByID(p.doc, p.contentID)
	if root == nil {
		return fmt.Errorf("%w: #%s", domain.ErrContentNotFound, p.contentID)
	}
	return fn(&Content{Root: root, page: p})
}

// Document runs fn with access to the whole document tree.
func (p *Page) Document(fn func(doc *html.Node) error) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return fn(p.doc)
}

// Render writes the whole document.
func (p *Page) Render(w io.Writer) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return html.Render(w, p.doc)
}

// ContentHTML returns the inner markup of the content region.
func (p *Page) ContentHTML() (string, error) {
	var out string
	err := p.View(func(c *Content) error {
		var err error
		out, err = c.HTML()
		return err
	})
	return out, err
}

// SetField edits the live value of an input inside a parameter container.
// Inputs are found by their name attribute, falling back to the first token
// of the enclosing data-par attribute.
func (p *Page) SetField(name, value string) error {
	return p.Update(func(c *Content) error {
		n := c.findField(name)
		if n == nil {
			return fmt.Errorf("%w: field %q", domain.ErrNotFound, name)
		}
		p.fields[n] = value
		return nil
	})
}

// Fields returns the current value of every parameter input by name.
func (p *Page) Fields() (map[string]string, error) {
	out := make(map[string]string)
	err := p.View(func(c *Content) error {
		for _, n := range c.FieldInputs() {
			v, _ := c.FieldValue(n)
			out[fieldName(n)] = v
		}
		return nil
	})
	return out, err
}

// FieldSelector matches editable parameter inputs.
var FieldSelector = Compile("[data-par] input")

// FieldInputs returns every parameter input in the content region.
func (c *Content) FieldInputs() []*html.Node {
	return QueryAll(c.Root, FieldSelector)
}

// FieldValue returns the live value of an input: the edited value when one
// exists, the value attribute otherwise. ok is false for untouched inputs.
func (c *Content) FieldValue(n *html.Node) (value string, ok bool) {
	if v, edited := c.page.fields[n]; edited {
		return v, true
	}
	return Attr(n, "value"), false
}

// HTML serialises the content region.
func (c *Content) HTML() (string, error) {
	return InnerHTML(c.Root)
}

// Commit freezes the live value of n into its value attribute and drops
// the pending edit.
func (c *Content) Commit(n *html.Node) {
	v, _ := c.FieldValue(n)
	SetAttr(n, "value", v)
	delete(c.page.fields, n)
}

// Replace swaps the content region's markup. Edits not yet committed are
// moved to the input of the same name in the new markup, and dropped when
// no such input exists.
func (c *Content) Replace(markup string) error {
	if err := SetInnerHTML(c.Root, markup); err != nil {
		return fmt.Errorf("replace content: %w", err)
	}
	pending := make(map[string]string)
	for n, v := range c.page.fields {
		if Contains(c.page.doc, n) {
			continue
		}
		delete(c.page.fields, n)
		if name := fieldName(n); name != "" {
			pending[name] = v
		}
	}
	for name, v := range pending {
		if n := c.findField(name); n != nil {
			c.page.fields[n] = v
		}
	}
	return nil
}

func (c *Content) findField(name string) *html.Node {
	for _, n := range c.FieldInputs() {
		if fieldName(n) == name {
			return n
		}
	}
	return nil
}

var parSelector = Compile("[data-par]")

func fieldName(n *html.Node) string {
	if name := Attr(n, "name"); name != "" {
		return name
	}
	if par := Closest(n, nil, parSelector); par != nil {
		if fields := strings.Fields(Attr(par, "data-par")); len(fields) > 0 {
			return strings.TrimSuffix(fields[0], ":")
		}
	}
	return ""
}

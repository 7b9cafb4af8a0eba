package math

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/custodia-labs/stencil-cli/internal/core/domain"
	"github.com/custodia-labs/stencil-cli/internal/core/ports/driven"
	"github.com/custodia-labs/stencil-cli/internal/markup"
)

// Ensure Converter implements the interface.
var _ driven.Converter = (*Converter)(nil)

// Recognised notation prefixes of the type attribute.
const (
	FormatTeX       = "math/tex"
	FormatAsciiMath = "math/asciimath"
)

// Selector matches math notation elements.
var Selector = markup.Compile(`script[type^="math/tex"],script[type^="math/asciimath"]`)

// Converter handles math notation elements.
type Converter struct{}

// New creates a new math converter.
func New() *Converter {
	return &Converter{}
}

// Type returns the node type.
func (c *Converter) Type() domain.NodeType {
	return domain.NodeTypeMath
}

// TagName returns the element name.
func (c *Converter) TagName() string {
	return "script"
}

// Match reports whether el is a math notation script.
func (c *Converter) Match(el *html.Node) bool {
	return Selector.Matches(el, nil)
}

// Import reads the notation and formula. Parameters after the first ';'
// of the type attribute (e.g. "; mode=display") are dropped.
func (c *Converter) Import(el *html.Node) (domain.Node, error) {
	format, _, _ := strings.Cut(markup.Attr(el, "type"), ";")
	return domain.MathNode{
		Format: format,
		Source: markup.Text(el),
	}, nil
}

// Export writes the notation and formula back to el.
func (c *Converter) Export(node domain.Node, el *html.Node) error {
	var m domain.MathNode
	switch n := node.(type) {
	case domain.MathNode:
		m = n
	case *domain.MathNode:
		m = *n
	default:
		return fmt.Errorf("%w: %s", domain.ErrUnsupportedType, node.NodeType())
	}

	markup.SetAttr(el, "type", m.Format)
	markup.SetText(el, m.Source)
	return nil
}

package exec

import (
	"fmt"
	"regexp"

	"golang.org/x/net/html"

	"github.com/custodia-labs/stencil-cli/internal/core/domain"
	"github.com/custodia-labs/stencil-cli/internal/core/ports/driven"
	"github.com/custodia-labs/stencil-cli/internal/markup"
)

// Ensure Converter implements the interface.
var _ driven.Converter = (*Converter)(nil)

// Block attributes.
const (
	AttrDirective = "data-exec"
	AttrError     = "data-error"
)

// directivePattern is the directive grammar: a language or exec token,
// optionally followed by "show".
var directivePattern = regexp.MustCompile(`(exec|r|py) *(show)?`)

// fixedDirective is what Lang and Show are derived from. It is a fixed
// string, not the block's directive, so every block imports as lang "r"
// with show set. Spec carries the real directive.
const fixedDirective = "r show"

// Converter handles executable blocks.
type Converter struct{}

// New creates a new exec converter.
func New() *Converter {
	return &Converter{}
}

// Type returns the node type.
func (c *Converter) Type() domain.NodeType {
	return domain.NodeTypeExec
}

// TagName returns the element name.
func (c *Converter) TagName() string {
	return "pre"
}

// Match reports whether el is a pre element with a directive.
func (c *Converter) Match(el *html.Node) bool {
	return el.Type == html.ElementNode && el.Data == "pre" && markup.Attr(el, AttrDirective) != ""
}

// Import reads the block.
func (c *Converter) Import(el *html.Node) (domain.Node, error) {
	lang, show := parseDirective(fixedDirective)

	node := domain.ExecNode{
		Lang:   lang,
		Show:   show,
		Spec:   markup.Attr(el, AttrDirective),
		Source: markup.Text(el),
	}
	if msg, ok := markup.LookupAttr(el, AttrError); ok {
		node.Error = &msg
	}
	return node, nil
}

// Export writes the node back to el. Lang and Show are
// derived from the directive and not written separately.
func (c *Converter) Export(node domain.Node, el *html.Node) error {
	var ex domain.ExecNode
	switch n := node.(type) {
	case domain.ExecNode:
		ex = n
	case *domain.ExecNode:
		ex = *n
	default:
		return fmt.Errorf("%w: %s", domain.ErrUnsupportedType, node.NodeType())
	}

	markup.SetAttr(el, AttrDirective, ex.Spec)
	if ex.Error != nil {
		markup.SetAttr(el, AttrError, *ex.Error)
	} else {
		markup.RemoveAttr(el, AttrError)
	}
	markup.SetText(el, ex.Source)
	return nil
}

// parseDirective extracts the language and show flag. A directive that
// does not match yields an empty language and show=false.
func parseDirective(directive string) (lang string, show bool) {
	m := directivePattern.FindStringSubmatch(directive)
	if m == nil {
		return "", false
	}
	return m[1], m[2] != ""
}

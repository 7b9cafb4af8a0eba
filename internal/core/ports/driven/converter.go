package driven

import (
	"golang.org/x/net/html"

	"github.com/custodia-labs/stencil-cli/internal/core/domain"
)

// Converter translates between one kind of markup element and its
// semantic node. Converters are pure: no I/O and no retained state.
type Converter interface {
	// Type returns the node type this converter produces and consumes.
	Type() domain.NodeType

	// TagName returns the element name the converter works on.
	TagName() string

	// Match reports whether the converter applies to an element.
	Match(el *html.Node) bool

	// Import reads an element into a node. Unparseable attributes yield
	// empty derived fields rather than an error.
	Import(el *html.Node) (domain.Node, error)

	// Export writes a node back into an element, mutating it in place.
	// Returns domain.ErrUnsupportedType for a node of another type.
	Export(node domain.Node, el *html.Node) error
}

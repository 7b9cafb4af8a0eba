package driving

import (
	"golang.org/x/net/html"

	"github.com/custodia-labs/stencil-cli/internal/core/domain"
	"github.com/custodia-labs/stencil-cli/internal/core/ports/driven"
)

// ConverterRegistry dispatches markup elements to typed converters.
type ConverterRegistry interface {
	// Register appends a converter. Earlier registrations win ties.
	Register(c driven.Converter)

	// FindFor returns the first registered converter matching el.
	FindFor(el *html.Node) (driven.Converter, bool)

	// ImportAll converts every matched element under root, in document order.
	ImportAll(root *html.Node) []domain.Node

	// ExportAll writes nodes back to the matched elements under root, in
	// document order, and returns the number of nodes exported.
	ExportAll(nodes []domain.Node, root *html.Node) int

	// Elements returns the elements under root handled by a converter of t.
	Elements(root *html.Node, t domain.NodeType) []*html.Node

	// Types returns the registered node types in registration order.
	Types() []domain.NodeType
}

package services

import (
	"sync"

	"golang.org/x/net/html"

	"github.com/custodia-labs/stencil-cli/internal/core/domain"
	"github.com/custodia-labs/stencil-cli/internal/core/ports/driven"
	"github.com/custodia-labs/stencil-cli/internal/core/ports/driving"
	"github.com/custodia-labs/stencil-cli/internal/logger"
)

// Ensure ConverterRegistry implements the interface.
var _ driving.ConverterRegistry = (*ConverterRegistry)(nil)

var registryLog = logger.For("converters")

// ConverterRegistry dispatches elements to node converters.
// Converters are consulted in registration order and the first match wins.
type ConverterRegistry struct {
	mu         sync.RWMutex
	converters []driven.Converter
}

// NewConverterRegistry creates a registry holding the given converters.
func NewConverterRegistry(converters ...driven.Converter) *ConverterRegistry {
	r := &ConverterRegistry{}
	for _, c := range converters {
		r.Register(c)
	}
	return r
}

// Register appends a converter.
func (r *ConverterRegistry) Register(c driven.Converter) {
	if c == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.converters = append(r.converters, c)
}

// FindFor returns the first converter whose Match accepts el.
func (r *ConverterRegistry) FindFor(el *html.Node) (driven.Converter, bool) {
	if el == nil || el.Type != html.ElementNode {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.converters {
		if c.Match(el) {
			return c, true
		}
	}
	return nil, false
}

// Types returns the registered node types in registration order.
func (r *ConverterRegistry) Types() []domain.NodeType {
	r.mu.RLock()
	defer r.mu.RUnlock()
	types := make([]domain.NodeType, 0, len(r.converters))
	for _, c := range r.converters {
		types = append(types, c.Type())
	}
	return types
}

type match struct {
	el        *html.Node
	converter driven.Converter
}

// matches walks root's descendants in document order. A matched element
// is not searched further.
func (r *ConverterRegistry) matches(root *html.Node) []match {
	var out []match
	if root == nil {
		return out
	}
	for child := root.FirstChild; child != nil; child = child.NextSibling {
		walkMatches(r, child, &out)
	}
	return out
}

func walkMatches(r *ConverterRegistry, n *html.Node, out *[]match) {
	if c, ok := r.FindFor(n); ok {
		*out = append(*out, match{el: n, converter: c})
		return
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		walkMatches(r, child, out)
	}
}

// ImportAll converts every matched element under root. Elements whose
// converter fails are logged and left out.
func (r *ConverterRegistry) ImportAll(root *html.Node) []domain.Node {
	var nodes []domain.Node
	for _, m := range r.matches(root) {
		node, err := m.converter.Import(m.el)
		if err != nil {
			registryLog.Warn("import <%s> as %s: %v", m.el.Data, m.converter.Type(), err)
			continue
		}
		nodes = append(nodes, node)
	}
	return nodes
}

// ExportAll writes nodes onto the matched elements under root, pairing
// them in document order. A node whose type differs from its element's
// converter is skipped. Returns the number of nodes written.
func (r *ConverterRegistry) ExportAll(nodes []domain.Node, root *html.Node) int {
	exported := 0
	for i, m := range r.matches(root) {
		if i >= len(nodes) {
			break
		}
		node := nodes[i]
		if node == nil || node.NodeType() != m.converter.Type() {
			registryLog.Debug("skip export of node %d onto <%s>: type mismatch", i, m.el.Data)
			continue
		}
		if err := m.converter.Export(node, m.el); err != nil {
			registryLog.Warn("export %s onto <%s>: %v", node.NodeType(), m.el.Data, err)
			continue
		}
		exported++
	}
	return exported
}

// Elements returns the elements under root handled by a converter of type t.
func (r *ConverterRegistry) Elements(root *html.Node, t domain.NodeType) []*html.Node {
	var out []*html.Node
	for _, m := range r.matches(root) {
		if m.converter.Type() == t {
			out = append(out, m.el)
		}
	}
	return out
}

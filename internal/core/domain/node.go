package domain

// NodeType identifies the semantic kind of a converted fragment.
type NodeType string

// Built-in node types.
const (
	// NodeTypeMath is a mathematical formula in a typesetting notation.
	NodeTypeMath NodeType = "stencil-math"

	// NodeTypeExec is an executable code block.
	NodeTypeExec NodeType = "stencil-exec"
)

// String returns the string representation.
func (t NodeType) String() string {
	return string(t)
}

// Node is the semantic form of a markup fragment. Nodes are created by a
// converter import and consumed by an export; the client never stores them.
type Node interface {
	// NodeType returns the discriminant of the node.
	NodeType() NodeType
}

// MathNode is a formula.
type MathNode struct {
	// Format is the notation, e.g. "math/tex" or "math/asciimath".
	Format string `json:"format"`

	// Source is the raw notation text.
	Source string `json:"source"`
}

// NodeType implements Node.
func (MathNode) NodeType() NodeType { return NodeTypeMath }

// ExecNode is an executable block.
type ExecNode struct {
	// Lang is the language token derived from the directive.
	Lang string `json:"lang"`

	// Show is true when the block output and code are both displayed.
	Show bool `json:"show"`

	// Spec is the raw directive, kept verbatim.
	Spec string `json:"spec"`

	// Error is the error reported by the host for this block, if any.
	Error *string `json:"error,omitempty"`

	// Source is the code text.
	Source string `json:"source"`
}

// NodeType implements Node.
func (ExecNode) NodeType() NodeType { return NodeTypeExec }

// HasError returns true if the host reported an error for the block.
func (n ExecNode) HasError() bool {
	return n.Error != nil
}

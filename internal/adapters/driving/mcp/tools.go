package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/stencil-cli/internal/core/domain"
	"github.com/custodia-labs/stencil-cli/internal/markup"
)

// ResolveInput is the input schema for the resolve_address tool.
type ResolveInput struct{}

// ResolveOutput describes where the stencil lives on its host.
type ResolveOutput struct {
	Address        string `json:"address"`
	Resolved       bool   `json:"resolved"`
	URL            string `json:"url"`
	BaseURL        string `json:"base_url"`
	BootEndpoint   string `json:"boot_endpoint"`
	RenderEndpoint string `json:"render_endpoint"`
}

// RefreshInput is the input schema for the refresh tool.
type RefreshInput struct {
	Fields map[string]string `json:"fields,omitempty" jsonschema:"parameter field values to set before re-rendering, by field name"`
}

// RefreshOutput summarises a refresh.
type RefreshOutput struct {
	ID         string            `json:"id,omitempty"`
	Queued     bool              `json:"queued"`
	Captured   int               `json:"captured"`
	Sent       int               `json:"sent"`
	Received   int               `json:"received"`
	DurationMS int64             `json:"duration_ms"`
	Cycles     int               `json:"cycles"`
	Fields     map[string]string `json:"fields"`
}

// ImportInput is the input schema for the import_nodes tool.
type ImportInput struct {
	Type string `json:"type,omitempty" jsonschema:"only return nodes of this type, e.g. stencil-math or stencil-exec"`
}

// ImportOutput lists the semantic nodes of the content region.
type ImportOutput struct {
	Nodes []NodeOutput `json:"nodes"`
	Count int          `json:"count"`
}

// NodeOutput is a node tagged with its type.
type NodeOutput struct {
	Type string         `json:"type"`
	Node map[string]any `json:"node"`
}

// ClickInput is the input schema for the click tool.
type ClickInput struct {
	Selector string `json:"selector" jsonschema:"CSS selector of the element to click inside the content, e.g. .refresh.button"`
}

// ClickOutput reports whether a bound handler ran.
type ClickOutput struct {
	Handled bool `json:"handled"`
}

// ContentInput is the input schema for the content tool.
type ContentInput struct {
	Format string `json:"format,omitempty" jsonschema:"html or markdown (default markdown)"`
}

// ContentOutput carries the content region.
type ContentOutput struct {
	Format  string `json:"format"`
	Content string `json:"content"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "resolve_address",
		Description: "Show the document address of the stencil and its host endpoints",
	}, s.handleResolve)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "refresh",
		Description: "Optionally set parameter fields, then re-render the stencil content on its host",
	}, s.handleRefresh)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "content",
		Description: "Read the current content of the stencil as Markdown or HTML",
	}, s.handleContent)

	if s.ports.Registry != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "import_nodes",
			Description: "List the math and executable blocks of the stencil content as semantic nodes",
		}, s.handleImport)
	}

	if s.ports.Clicks != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "click",
			Description: "Click an element of the stencil content, triggering its bound action",
		}, s.handleClick)
	}
}

func (s *Server) handleResolve(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ ResolveInput,
) (*mcp.CallToolResult, ResolveOutput, error) {
	loc := s.ports.Client.Location()
	return nil, ResolveOutput{
		Address:        string(loc.Address),
		Resolved:       loc.Resolved(),
		URL:            loc.URL(),
		BaseURL:        loc.BaseURL(),
		BootEndpoint:   loc.Endpoint(domain.MethodBoot),
		RenderEndpoint: loc.Endpoint(domain.MethodRender),
	}, nil
}

func (s *Server) handleRefresh(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RefreshInput,
) (*mcp.CallToolResult, RefreshOutput, error) {
	names := make([]string, 0, len(input.Fields))
	for name := range input.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := s.ports.Page.SetField(name, input.Fields[name]); err != nil {
			return nil, RefreshOutput{}, err
		}
	}

	result, err := s.ports.Client.Refresh(ctx)
	output := RefreshOutput{}
	switch {
	case errors.Is(err, domain.ErrRefreshQueued):
		output.Queued = true
	case err != nil:
		return nil, RefreshOutput{}, fmt.Errorf("refresh: %w", err)
	default:
		output.ID = result.ID
		output.Captured = result.Captured
		output.Sent = result.Sent
		output.Received = result.Received
		output.DurationMS = result.Duration.Milliseconds()
		output.Cycles = result.Cycles
	}

	fields, err := s.ports.Page.Fields()
	if err != nil {
		return nil, RefreshOutput{}, err
	}
	output.Fields = fields
	return nil, output, nil
}

func (s *Server) handleContent(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input ContentInput,
) (*mcp.CallToolResult, ContentOutput, error) {
	format := input.Format
	if format == "" {
		format = "markdown"
	}

	var (
		content string
		err     error
	)
	switch format {
	case "markdown":
		content, err = s.ports.Page.ContentMarkdown(s.ports.Client.Location().BaseURL())
	case "html":
		content, err = s.ports.Page.ContentHTML()
	default:
		return nil, ContentOutput{}, fmt.Errorf("%w: format %q", domain.ErrInvalidInput, format)
	}
	if err != nil {
		return nil, ContentOutput{}, err
	}
	return nil, ContentOutput{Format: format, Content: content}, nil
}

func (s *Server) handleImport(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input ImportInput,
) (*mcp.CallToolResult, ImportOutput, error) {
	var nodes []domain.Node
	err := s.ports.Page.View(func(c *markup.Content) error {
		nodes = s.ports.Registry.ImportAll(c.Root)
		return nil
	})
	if err != nil {
		return nil, ImportOutput{}, err
	}

	output := ImportOutput{Nodes: []NodeOutput{}}
	for _, n := range nodes {
		if input.Type != "" && string(n.NodeType()) != input.Type {
			continue
		}
		fields, err := nodeFields(n)
		if err != nil {
			return nil, ImportOutput{}, err
		}
		output.Nodes = append(output.Nodes, NodeOutput{Type: string(n.NodeType()), Node: fields})
	}
	output.Count = len(output.Nodes)
	return nil, output, nil
}

// nodeFields flattens a node to its JSON object form.
func nodeFields(n domain.Node) (map[string]any, error) {
	data, err := json.Marshal(n)
	if err != nil {
		return nil, fmt.Errorf("marshalling %s node: %w", n.NodeType(), err)
	}
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("marshalling %s node: %w", n.NodeType(), err)
	}
	return fields, nil
}

func (s *Server) handleClick(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ClickInput,
) (*mcp.CallToolResult, ClickOutput, error) {
	if input.Selector == "" {
		return nil, ClickOutput{}, fmt.Errorf("%w: selector is required", domain.ErrInvalidInput)
	}
	handled, err := s.ports.Clicks.Click(ctx, input.Selector)
	if errors.Is(err, domain.ErrRefreshQueued) {
		err = nil
	}
	if err != nil {
		return nil, ClickOutput{}, err
	}
	return nil, ClickOutput{Handled: handled}, nil
}

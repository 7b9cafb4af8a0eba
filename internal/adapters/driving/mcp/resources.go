package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for stencil resources.
	uriScheme = "stencil://"

	contentURI = uriScheme + "content"
	fieldsURI  = uriScheme + "fields"
	statusURI  = uriScheme + "status"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         contentURI,
		Name:        "content",
		Description: "Live markup of the stencil content region",
		MIMEType:    "text/html",
	}, s.handleContentResource)

	s.server.AddResource(&mcp.Resource{
		URI:         fieldsURI,
		Name:        "fields",
		Description: "Current values of the stencil parameter fields",
		MIMEType:    "application/json",
	}, s.handleFieldsResource)

	s.server.AddResource(&mcp.Resource{
		URI:         statusURI,
		Name:        "status",
		Description: "Session state: location, boot, refresh count and typesetting",
		MIMEType:    "application/json",
	}, s.handleStatusResource)
}

func (s *Server) handleContentResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	content, err := s.ports.Page.ContentHTML()
	if err != nil {
		return nil, fmt.Errorf("reading content: %w", err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/html",
			Text:     content,
		}},
	}, nil
}

func (s *Server) handleFieldsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	fields, err := s.ports.Page.Fields()
	if err != nil {
		return nil, fmt.Errorf("reading fields: %w", err)
	}
	return jsonResource(req.Params.URI, fields)
}

// statusInfo is the JSON form of the session state.
type statusInfo struct {
	URL        string `json:"url"`
	Resolved   bool   `json:"resolved"`
	Booted     bool   `json:"booted"`
	Refreshing bool   `json:"refreshing"`
	Refreshes  int    `json:"refreshes"`
	Engine     string `json:"engine"`
	LastError  string `json:"last_error,omitempty"`
}

func (s *Server) handleStatusResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	st := s.ports.Client.Status()
	info := statusInfo{
		URL:        st.Location.URL(),
		Resolved:   st.Location.Resolved(),
		Booted:     st.Booted,
		Refreshing: st.Refreshing,
		Refreshes:  st.Refreshes,
		Engine:     st.Engine.String(),
	}
	if st.LastError != nil {
		info.LastError = st.LastError.Error()
	}
	return jsonResource(req.Params.URI, info)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

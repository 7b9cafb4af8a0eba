// Package mcp provides an MCP (Model Context Protocol) server adapter for stencil.
// It lets AI assistants inspect a live stencil, edit its fields and re-render it.
package mcp

import "errors"

// ErrMissingClient is returned when the sync client is not provided.
var ErrMissingClient = errors.New("mcp: sync client is required")

// ErrMissingPage is returned when the page is not provided.
var ErrMissingPage = errors.New("mcp: page is required")

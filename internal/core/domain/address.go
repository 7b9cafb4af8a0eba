package domain

import "strings"

// LocalFileHost replaces the host of pages opened from the local
// filesystem, which have no network host.
const LocalFileHost = "localfile"

// SlugMarker terminates a human-readable title segment in a stencil path.
const SlugMarker = "-"

// DocumentAddress identifies a stencil on a rendering host.
// It never ends with a slug segment.
type DocumentAddress string

// String returns the string representation.
func (a DocumentAddress) String() string {
	return string(a)
}

// Location is where a stencil lives. It is computed once per page and
// not modified afterwards.
type Location struct {
	// Protocol is the URL scheme including the trailing colon ("http:").
	Protocol string

	// Host is the host name, or LocalFileHost for file pages.
	Host string

	// Port is the port, empty when the page URL had none.
	Port string

	// Address is the document address; empty when unresolved.
	Address DocumentAddress
}

// Resolved returns true if an address was found.
func (l Location) Resolved() bool {
	return l.Address != ""
}

// BaseURL returns protocol, host and port without a trailing slash.
func (l Location) BaseURL() string {
	var sb strings.Builder
	sb.WriteString(l.Protocol)
	sb.WriteString("//")
	sb.WriteString(l.Host)
	if l.Port != "" {
		sb.WriteString(":")
		sb.WriteString(l.Port)
	}
	return sb.String()
}

// URL returns the canonical stencil URL that host calls are made against.
// An unresolved address leaves an empty path segment.
func (l Location) URL() string {
	return l.BaseURL() + "/" + string(l.Address)
}

// Endpoint returns the URL of a stencil method such as "boot" or "render".
func (l Location) Endpoint(method string) string {
	return l.URL() + "@" + method
}

// Host methods.
const (
	MethodBoot   = "boot"
	MethodRender = "render"
)

package domain

import (
	"encoding/json"
	"time"
)

// FormatHTML is the only content format the client renders with.
const FormatHTML = "html"

// BootRequest is the empty payload that establishes a session.
type BootRequest struct{}

// BootResponse is whatever the host answers to a boot. It is only logged
// and need not be valid JSON.
type BootResponse = json.RawMessage

// RenderRequest carries the serialised content region to the host.
type RenderRequest struct {
	Format  string `json:"format"`
	Content string `json:"content"`
}

// RenderResponse carries the markup that replaces the content region.
type RenderResponse struct {
	Content string `json:"content"`
}

// RefreshResult summarises one completed refresh cycle.
type RefreshResult struct {
	// ID correlates log lines of one refresh.
	ID string

	// Captured is the number of input fields frozen into markup.
	Captured int

	// Sent is the size of the serialised content in bytes.
	Sent int

	// Received is the size of the replacement content in bytes.
	Received int

	// Duration is the wall time of the cycle.
	Duration time.Duration

	// Cycles is greater than 1 when queued refreshes were folded in.
	Cycles int
}

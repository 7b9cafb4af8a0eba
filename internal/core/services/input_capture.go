package services

import "github.com/custodia-labs/stencil-cli/internal/markup"

// CaptureInputs freezes the live value of every parameter input into its
// value attribute, so that serialising the content region carries what
// the user typed. Captured edits are committed; edits made after this call
// survive the next content replacement. Returns the number of inputs captured.
func CaptureInputs(c *markup.Content) int {
	inputs := c.FieldInputs()
	for _, n := range inputs {
		c.Commit(n)
	}
	return len(inputs)
}

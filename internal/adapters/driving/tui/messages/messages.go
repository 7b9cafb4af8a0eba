// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

// Started is sent once the session boot and typesetting init returned.
type Started struct {
	Err error
}

// KeyDispatched is sent after a delegated key handler ran.
type KeyDispatched struct {
	Key string
	Err error
}

// ContentLoaded carries the content region rendered as Markdown.
type ContentLoaded struct {
	Markdown string
	Err      error
}

// Tick is sent periodically while a refresh or engine load is pending.
type Tick struct{}

// Quit is a command to exit the application.
type Quit struct{}

package tui

import "errors"

// ErrMissingSyncClient is returned when the sync client is not provided.
var ErrMissingSyncClient = errors.New("tui: sync client is required")

// ErrMissingContent is returned when the content source is not provided.
var ErrMissingContent = errors.New("tui: content source is required")

// ErrMissingKeys is returned when the key dispatcher is not provided.
var ErrMissingKeys = errors.New("tui: key dispatcher is required")

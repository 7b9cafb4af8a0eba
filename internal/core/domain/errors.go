package domain

import "errors"

// Domain errors represent client failures.
// These are distinct from transport errors, which adapters wrap.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown node or converter type.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrContentNotFound indicates the page has no content region.
	ErrContentNotFound = errors.New("content region not found")

	// Host Errors.

	// ErrHostStatus indicates the rendering host answered with a non-2xx status.
	ErrHostStatus = errors.New("unexpected host status")

	// ErrRefreshQueued indicates a refresh was already in flight. The request
	// was folded into a trailing refresh run by the in-flight caller.
	ErrRefreshQueued = errors.New("refresh queued behind in-flight refresh")

	// Typesetting Errors.

	// ErrEngineNotLoaded indicates the typesetting engine script has not loaded.
	ErrEngineNotLoaded = errors.New("typesetting engine not loaded")
)

package driven

import "context"

// ResourceLoader fetches a script and reports completion exactly once.
// Repeated loads of the same source while one is pending or done must not
// fetch again.
type ResourceLoader interface {
	// Load starts fetching source in the background and returns at once.
	// onLoad is called once with the script or the fetch error.
	Load(ctx context.Context, source string, onLoad func(script []byte, err error))
}

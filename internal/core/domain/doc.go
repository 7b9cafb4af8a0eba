// Package domain defines the core entities for the stencil client.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Location: Where a stencil lives on a rendering host
//   - Node: Semantic form of a converted markup fragment (math, exec)
//   - RenderRequest/RenderResponse: The render exchange with the host
//   - EngineConfig: Options handed to the typesetting engine
//   - Settings: User configuration
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain

// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - Converter: Bidirectional transform between a markup element and a Node
//   - RenderHost: Boot and render calls against the rendering host
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the client degrades gracefully:
//
//   - ResourceLoader: Fetches the typesetting engine script. Without it,
//     math is never typeset.
//   - TypesettingEngine: Renders math within the content region.
//
// # Import Rules
//
//   - Can Import: domain package and golang.org/x/net/html (markup nodes)
//   - Cannot Import: Any adapter or converter package
package driven

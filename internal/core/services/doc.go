// Package services implements the driving port interfaces.
// Services hold the client logic: address resolution, converter dispatch,
// field capture, the typesetting lifecycle and the refresh cycle. They
// reach the rendering host, script loader and typesetting engine only
// through driven ports.
package services

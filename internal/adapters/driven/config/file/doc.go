// Package file provides the TOML-backed ConfigStore.
//
// Keys are flattened to dot notation ("host.url") in memory and written
// back as nested tables, so the file reads naturally:
//
//	[host]
//	url = "http://localhost:7373"
//	timeout = 30
package file

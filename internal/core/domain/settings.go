package domain

import "time"

// Default settings values.
const (
	DefaultContentID     = "content"
	DefaultTypesetSource = "/get/web/mathjax/MathJax.js?config=TeX-MML-AM_HTMLorMML"
	DefaultPreferredFont = "STIX"
	DefaultHostTimeout   = 30 * time.Second
	DefaultWatchInterval = 500 * time.Millisecond
)

// Settings holds the client configuration.
type Settings struct {
	// HostURL overrides protocol, host and port of the resolved location.
	// Empty keeps what the page URL gives.
	HostURL string

	// Timeout bounds each host request. Zero means no timeout.
	Timeout time.Duration

	// ContentID is the id of the live content region.
	ContentID string

	// TypesetSource is the engine script path, relative to the host base.
	TypesetSource string

	// PreferredFont is handed to the typesetting engine.
	PreferredFont string

	// Verbose enables debug logging.
	Verbose bool

	// WatchInterval is the minimum spacing of file-triggered refreshes.
	WatchInterval time.Duration

	// WatchPaths are watched when the watch command is given no paths.
	WatchPaths []string

	// WatchIgnore lists files whose changes never trigger a refresh.
	WatchIgnore []string
}

// DefaultSettings returns settings with sensible defaults.
func DefaultSettings() *Settings {
	return &Settings{
		Timeout:       DefaultHostTimeout,
		ContentID:     DefaultContentID,
		TypesetSource: DefaultTypesetSource,
		PreferredFont: DefaultPreferredFont,
		WatchInterval: DefaultWatchInterval,
	}
}

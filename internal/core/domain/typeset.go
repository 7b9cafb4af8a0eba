package domain

// EngineState is the lifecycle state of the typesetting engine.
type EngineState int

// Engine states. Transitions only move forward.
const (
	EngineUninitialized EngineState = iota
	EngineLoading
	EngineReady
)

// String returns a human-readable name.
func (s EngineState) String() string {
	switch s {
	case EngineUninitialized:
		return "uninitialized"
	case EngineLoading:
		return "loading"
	case EngineReady:
		return "ready"
	default:
		return "unknown"
	}
}

// EngineConfig is handed to the typesetting engine before it loads.
type EngineConfig struct {
	// PreferredFont selects the rendering font set.
	PreferredFont string

	// SkipStartupTypeset disables typesetting when the engine loads;
	// the client queues typesetting explicitly.
	SkipStartupTypeset bool

	// ShowProcessingMessages toggles progress chrome.
	ShowProcessingMessages bool

	// ShowMathMenu toggles the context menu on rendered formulae.
	ShowMathMenu bool
}

// DefaultEngineConfig returns the fixed configuration used at boot.
func DefaultEngineConfig(font string) EngineConfig {
	if font == "" {
		font = DefaultPreferredFont
	}
	return EngineConfig{
		PreferredFont:          font,
		SkipStartupTypeset:     true,
		ShowProcessingMessages: false,
		ShowMathMenu:           false,
	}
}

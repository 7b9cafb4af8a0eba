// Package logger provides verbose logging for the stencil client.
// When verbose mode is enabled via the --verbose flag or the log.verbose
// setting, messages are printed to stderr. Network failures of boot and
// refresh are only ever reported here.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
)

var (
	mu      sync.Mutex
	verbose bool
	output  io.Writer = os.Stderr
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.Lock()
	defer mu.Unlock()
	return verbose
}

// SetOutput sets the output writer for verbose logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

func printf(level, scope, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	if !verbose {
		return
	}
	if scope != "" {
		fmt.Fprintf(output, "[%s] %s: "+format+"\n", append([]any{level, scope}, args...)...)
		return
	}
	fmt.Fprintf(output, "[%s] "+format+"\n", append([]any{level}, args...)...)
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) { printf("DEBUG", "", format, args...) }

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) { printf("INFO", "", format, args...) }

// Warn prints a warning message if verbose mode is enabled.
func Warn(format string, args ...any) { printf("WARN", "", format, args...) }

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	mu.Lock()
	defer mu.Unlock()
	if verbose {
		fmt.Fprintf(output, "\n=== %s ===\n", name)
	}
}

// Scope prefixes every message with a component name.
type Scope string

// For returns a scoped logger.
func For(component string) Scope {
	return Scope(component)
}

// Debug prints a scoped debug message.
func (s Scope) Debug(format string, args ...any) { printf("DEBUG", string(s), format, args...) }

// Info prints a scoped informational message.
func (s Scope) Info(format string, args ...any) { printf("INFO", string(s), format, args...) }

// Warn prints a scoped warning.
func (s Scope) Warn(format string, args ...any) { printf("WARN", string(s), format, args...) }

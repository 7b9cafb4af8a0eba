// Package cli provides the stencil command line.
package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/stencil-cli/internal/core/ports/driving"
	"github.com/custodia-labs/stencil-cli/internal/logger"
	"github.com/custodia-labs/stencil-cli/internal/session"
)

// Options are the global flags handed to the bootstrap.
type Options struct {
	// ConfigPath is the config file; empty selects the default.
	ConfigPath string

	// HostURL overrides the configured rendering host.
	HostURL string

	// Verbose enables debug logging.
	Verbose bool
}

// SessionOpener opens a page and wires a client for it.
type SessionOpener interface {
	Open(ctx context.Context, ref string) (*session.Session, error)
}

// Dependencies are the services commands run against.
type Dependencies struct {
	Settings driving.SettingsService
	Opener   SessionOpener
}

// Bootstrap builds the dependencies once the global flags are parsed.
type Bootstrap func(opts Options) (*Dependencies, error)

var (
	version   = "dev"
	bootstrap Bootstrap
	opts      Options

	settingsService driving.SettingsService
	opener          SessionOpener
)

var rootCmd = &cobra.Command{
	Use:   "stencil",
	Short: "Keep stencil documents in sync with their rendering host",
	Long: `stencil opens a stencil page, resolves its address on the rendering
host, and re-renders its content region on demand: from the command line,
on file changes, from an interactive terminal UI, or from an AI assistant
over MCP.`,
	SilenceUsage:      true,
	PersistentPreRunE: runBootstrap,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "config file (default ~/.stencil/config.toml)")
	rootCmd.PersistentFlags().StringVar(&opts.HostURL, "host", "", "rendering host base URL, e.g. http://localhost:7373")
	rootCmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "enable debug logging")
}

// SetVersion sets the version printed by the version command.
func SetVersion(v string) {
	version = v
}

// SetBootstrap sets the function that builds command dependencies.
func SetBootstrap(b Bootstrap) {
	bootstrap = b
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func runBootstrap(_ *cobra.Command, _ []string) error {
	if opts.Verbose {
		logger.SetVerbose(true)
	}
	if bootstrap == nil {
		return nil
	}
	deps, err := bootstrap(opts)
	if err != nil {
		return err
	}
	settingsService = deps.Settings
	opener = deps.Opener
	return nil
}

func openSession(cmd *cobra.Command, ref string) (*session.Session, error) {
	if opener == nil {
		return nil, errors.New("session opener not configured")
	}
	return opener.Open(cmd.Context(), ref)
}

// Command stencil keeps stencil documents in sync with their rendering host.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/stencil-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/stencil-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/stencil-cli/internal/core/services"
	"github.com/custodia-labs/stencil-cli/internal/logger"
	"github.com/custodia-labs/stencil-cli/internal/session"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli.SetVersion(version)
	cli.SetBootstrap(bootstrap)

	if err := cli.Execute(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// bootstrap builds the session opener from the config file.
func bootstrap(opts cli.Options) (*cli.Dependencies, error) {
	store, err := file.NewConfigStore(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}

	settingsService := services.NewSettingsService(store)
	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	if opts.HostURL != "" {
		settings.HostURL = opts.HostURL
	}
	if opts.Verbose || settings.Verbose {
		logger.SetVerbose(true)
	}

	return &cli.Dependencies{
		Settings: settingsService,
		Opener:   session.NewOpener(settings),
	}, nil
}

package cli

import (
	"errors"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/stencil-cli/internal/adapters/driving/watch"
	"github.com/custodia-labs/stencil-cli/internal/core/domain"
)

var (
	watchPaths    []string
	watchOutput   string
	watchInterval time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch <page>",
	Short: "Re-render a stencil whenever files it depends on change",
	Long: `Boot a session and refresh the content region every time a watched
file changes. By default the directory holding the page is watched.

Bursts of changes are folded into a single refresh, and refreshes are
spaced by at least --interval (default from watch.interval). Without
--path the watch.paths setting is used, and watch.ignore lists files that
never trigger a refresh.

Examples:
  stencil watch report.html -o rendered.html
  stencil watch report.html --path data/ --path params.csv`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringArrayVar(&watchPaths, "path", nil, "file or directory to watch (repeatable)")
	watchCmd.Flags().StringVarP(&watchOutput, "output", "o", "", "write the page to a file after every refresh")
	watchCmd.Flags().DurationVar(&watchInterval, "interval", 0, "minimum time between refreshes")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd, args[0])
	if err != nil {
		return err
	}

	var settings *domain.Settings
	if settingsService != nil {
		if settings, err = settingsService.Get(); err != nil {
			return err
		}
	}
	if settings == nil {
		settings = domain.DefaultSettings()
	}

	paths, err := watchedPaths(watchPaths, settings.WatchPaths, s.Path)
	if err != nil {
		return err
	}

	interval := watchInterval
	if interval <= 0 {
		interval = settings.WatchInterval
	}

	ctx := cmd.Context()
	if err := s.Client.Start(ctx); err != nil {
		cmd.PrintErrf("Warning: %v\n", err)
	}

	cfg := watch.Config{
		Paths:    paths,
		Interval: interval,
		OnRefresh: func(result *domain.RefreshResult, err error) {
			if err != nil {
				cmd.PrintErrf("Refresh failed: %v\n", err)
				return
			}
			if watchOutput != "" {
				if err := s.Save(watchOutput); err != nil {
					cmd.PrintErrf("Save failed: %v\n", err)
					return
				}
			}
			cmd.Printf("Refreshed %s in %s (%d fields)\n",
				s.Location().URL(), result.Duration.Round(time.Millisecond), result.Captured)
		},
	}
	cfg.Ignore = append(cfg.Ignore, settings.WatchIgnore...)
	if watchOutput != "" {
		cfg.Ignore = append(cfg.Ignore, watchOutput)
	}
	if s.Path != "" {
		// Saving over the page itself must not trigger another refresh.
		cfg.Ignore = append(cfg.Ignore, s.Path)
	}

	cmd.Printf("Watching %v (ctrl+c to stop)\n", paths)
	return watch.New(s.Client, cfg).Run(ctx)
}

// watchedPaths picks the flag paths, then the configured paths, then the
// directory of a local page.
func watchedPaths(flagPaths, configured []string, pagePath string) ([]string, error) {
	switch {
	case len(flagPaths) > 0:
		return flagPaths, nil
	case len(configured) > 0:
		return configured, nil
	case pagePath != "":
		return []string{filepath.Dir(pagePath)}, nil
	default:
		return nil, errors.New("remote pages need at least one --path to watch")
	}
}

package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/stencil-cli/internal/core/domain"
	"github.com/custodia-labs/stencil-cli/internal/core/services"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View and edit settings",
	Long: `View and edit the settings stored in the config file.

Keys:
  host.url        rendering host base URL (overrides the page's host)
  host.timeout    request timeout in seconds
  content.id      id of the live content region
  typeset.source  typesetting engine script, relative to the host
  typeset.font    preferred math font
  log.verbose     enable debug logging
  watch.interval  minimum milliseconds between file-triggered refreshes
  watch.paths     comma separated paths watched when --path is not given
  watch.ignore    comma separated files that never trigger a refresh`,
	RunE: runConfigList,
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show all settings",
	RunE:  runConfigList,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Show one setting",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

func init() {
	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigList(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	settings, err := settingsService.Get()
	if err != nil {
		return err
	}
	for _, key := range settingsService.Keys() {
		cmd.Printf("%-15s %s\n", key, settingValue(settings, key))
	}
	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	settings, err := settingsService.Get()
	if err != nil {
		return err
	}
	for _, key := range settingsService.Keys() {
		if key == args[0] {
			cmd.Println(settingValue(settings, key))
			return nil
		}
	}
	return fmt.Errorf("%w: unknown setting %q", domain.ErrNotFound, args[0])
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	if err := settingsService.Set(args[0], args[1]); err != nil {
		return err
	}
	cmd.Printf("%s = %s\n", args[0], args[1])
	return nil
}

func settingValue(s *domain.Settings, key string) string {
	switch key {
	case services.KeyHostURL:
		if s.HostURL == "" {
			return "(from page)"
		}
		return s.HostURL
	case services.KeyHostTimeout:
		return strconv.Itoa(int(s.Timeout / time.Second))
	case services.KeyContentID:
		return s.ContentID
	case services.KeyTypesetSource:
		return s.TypesetSource
	case services.KeyTypesetFont:
		return s.PreferredFont
	case services.KeyLogVerbose:
		return strconv.FormatBool(s.Verbose)
	case services.KeyWatchInterval:
		return strconv.Itoa(int(s.WatchInterval / time.Millisecond))
	case services.KeyWatchPaths:
		return strings.Join(s.WatchPaths, ",")
	case services.KeyWatchIgnore:
		return strings.Join(s.WatchIgnore, ",")
	default:
		return ""
	}
}

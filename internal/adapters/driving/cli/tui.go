package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/stencil-cli/internal/adapters/driving/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui <page>",
	Short: "Open a live stencil in the interactive terminal UI",
	Long: `Open a stencil in an interactive terminal view. The session is booted
on start and the content region is shown as Markdown.

Controls:
  ctrl+r   - Re-render the content on the host
  ↑/k, ↓/j - Scroll
  l        - Reload the preview
  ?        - Toggle help
  q        - Quit`,
	Args: cobra.ExactArgs(1),
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	s, err := openSession(cmd, args[0])
	if err != nil {
		return err
	}

	app, err := tui.NewApp(tui.NewPorts(s.Client, s.Page, s.Delegator))
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	if err := app.WithContext(cmd.Context()).Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

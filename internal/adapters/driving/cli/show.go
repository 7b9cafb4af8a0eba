package cli

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var showCmd = &cobra.Command{
	Use:   "show <page>",
	Short: "Print a stencil's content as Markdown",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd, args[0])
	if err != nil {
		return err
	}

	md, err := s.Page.ContentMarkdown(s.Location().BaseURL())
	if err != nil {
		return err
	}

	// Only decorate output for a human reader.
	if width, ok := terminalWidth(); ok {
		cmd.Println(s.Location().URL())
		cmd.Println(strings.Repeat("─", min(width, 80)))
	}
	cmd.Println(md)
	return nil
}

func terminalWidth() (int, bool) {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 0, false
	}
	width, _, err := term.GetSize(fd)
	if err != nil || width <= 0 {
		return 80, true
	}
	return width, true
}

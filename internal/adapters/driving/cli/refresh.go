package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/stencil-cli/internal/core/domain"
	"github.com/custodia-labs/stencil-cli/internal/session"
)

var (
	refreshSets   []string
	refreshOutput string
	refreshWait   time.Duration
)

var refreshCmd = &cobra.Command{
	Use:   "refresh <page>",
	Short: "Re-render a stencil's content on its rendering host",
	Long: `Boot a session, optionally edit parameter fields, and re-render the
content region. Field values are sent to the host as part of the content.

The refreshed content is printed; with --output the whole page is written
to a file instead.

Examples:
  stencil refresh report.html --set n=10 --set title=Q1
  stencil refresh report.html -o rendered.html`,
	Args: cobra.ExactArgs(1),
	RunE: runRefresh,
}

func init() {
	refreshCmd.Flags().StringArrayVar(&refreshSets, "set", nil, "set a field before refreshing (name=value, repeatable)")
	refreshCmd.Flags().StringVarP(&refreshOutput, "output", "o", "", "write the refreshed page to a file")
	refreshCmd.Flags().DurationVar(&refreshWait, "wait", 10*time.Second, "how long to wait for math typesetting")
	rootCmd.AddCommand(refreshCmd)
}

func runRefresh(cmd *cobra.Command, args []string) error {
	edits, err := parseAssignments(refreshSets)
	if err != nil {
		return err
	}

	s, err := openSession(cmd, args[0])
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if err := s.Client.Start(ctx); err != nil {
		cmd.PrintErrf("Warning: %v\n", err)
	}
	for _, e := range edits {
		if err := s.Page.SetField(e.name, e.value); err != nil {
			return err
		}
	}

	result, err := s.Client.Refresh(ctx)
	if err != nil {
		return fmt.Errorf("refresh failed: %w", err)
	}
	waitForTypesetting(cmd, s)

	if refreshOutput != "" {
		if err := s.Save(refreshOutput); err != nil {
			return err
		}
		cmd.Printf("Refreshed %s (%d fields, %d bytes sent, %d received) -> %s\n",
			s.Location().URL(), result.Captured, result.Sent, result.Received, refreshOutput)
		return nil
	}

	content, err := s.Page.ContentHTML()
	if err != nil {
		return err
	}
	cmd.Println(content)
	return nil
}

// waitForTypesetting blocks until a pending engine load settles, bounded
// by --wait. The refresh itself never waits for the engine.
func waitForTypesetting(cmd *cobra.Command, s *session.Session) {
	if s.Typesetting.State() != domain.EngineLoading {
		return
	}
	select {
	case <-s.Typesetting.Settled():
		if s.Typesetting.State() == domain.EngineReady {
			return
		}
		cmd.PrintErrln("Warning: typesetting engine failed to load; math left untypeset")
	case <-time.After(refreshWait):
		cmd.PrintErrln("Warning: typesetting engine still loading; math left untypeset")
	case <-cmd.Context().Done():
	}
}

type assignment struct {
	name  string
	value string
}

func parseAssignments(raw []string) ([]assignment, error) {
	out := make([]assignment, 0, len(raw))
	for _, r := range raw {
		name, value, ok := strings.Cut(r, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("%w: --set %q must be name=value", domain.ErrInvalidInput, r)
		}
		out = append(out, assignment{name: name, value: value})
	}
	return out, nil
}

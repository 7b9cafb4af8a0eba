package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var bootCmd = &cobra.Command{
	Use:   "boot <page>",
	Short: "Establish a session for a stencil",
	Args:  cobra.ExactArgs(1),
	RunE:  runBoot,
}

func init() {
	rootCmd.AddCommand(bootCmd)
}

func runBoot(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd, args[0])
	if err != nil {
		return err
	}
	if err := s.Client.Boot(cmd.Context()); err != nil {
		return fmt.Errorf("boot failed: %w", err)
	}
	cmd.Printf("Booted %s\n", s.Location().URL())
	return nil
}

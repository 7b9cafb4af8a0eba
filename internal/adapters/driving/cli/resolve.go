package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/stencil-cli/internal/core/domain"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <page>",
	Short: "Show where a stencil lives on its rendering host",
	Long: `Resolve the document address of a page and print the URLs the client
would call. The address comes from the page's address meta tag, or from a
URL path ending in a title segment ("/reports/q1/title-").`,
	Args: cobra.ExactArgs(1),
	RunE: runResolve,
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}

func runResolve(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd, args[0])
	if err != nil {
		return err
	}

	loc := s.Location()
	address := loc.Address.String()
	if !loc.Resolved() {
		address = "(unresolved)"
	}
	cmd.Printf("Address: %s\n", address)
	cmd.Printf("URL:     %s\n", loc.URL())
	cmd.Printf("Boot:    %s\n", loc.Endpoint(domain.MethodBoot))
	cmd.Printf("Render:  %s\n", loc.Endpoint(domain.MethodRender))
	return nil
}

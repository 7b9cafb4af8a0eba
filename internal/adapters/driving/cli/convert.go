package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/stencil-cli/internal/core/domain"
	"github.com/custodia-labs/stencil-cli/internal/markup"
)

var convertRoundTrip bool

var convertCmd = &cobra.Command{
	Use:   "convert <page>",
	Short: "Print the semantic nodes of a stencil's content",
	Long: `Convert the math and executable blocks of the content region into
semantic nodes and print them as JSON.

With --roundtrip the nodes are written back onto the page and the
resulting content is printed instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().BoolVar(&convertRoundTrip, "roundtrip", false, "export the nodes back and print the content")
	rootCmd.AddCommand(convertCmd)
}

// typedNode tags a node with its type for JSON output.
type typedNode struct {
	Type domain.NodeType `json:"type"`
	Node domain.Node     `json:"node"`
}

func runConvert(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd, args[0])
	if err != nil {
		return err
	}

	var (
		nodes    []typedNode
		exported int
		content  string
	)
	err = s.Page.Update(func(c *markup.Content) error {
		imported := s.Registry.ImportAll(c.Root)
		for _, n := range imported {
			nodes = append(nodes, typedNode{Type: n.NodeType(), Node: n})
		}
		if !convertRoundTrip {
			return nil
		}
		exported = s.Registry.ExportAll(imported, c.Root)
		content, err = c.HTML()
		return err
	})
	if err != nil {
		return err
	}

	if convertRoundTrip {
		cmd.PrintErrf("Exported %d of %d nodes\n", exported, len(nodes))
		cmd.Println(content)
		return nil
	}

	if nodes == nil {
		nodes = []typedNode{}
	}
	out, err := json.MarshalIndent(nodes, "", "  ")
	if err != nil {
		return err
	}
	cmd.Println(string(out))
	return nil
}

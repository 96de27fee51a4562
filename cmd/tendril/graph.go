package main

import (
	"fmt"

	"github.com/aretw0/tendril/internal/presentation/graph"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <scene>",
	Short: "Export the value graph visualization",
	Long:  `Builds a scene and outputs a Mermaid diagram (graph TD) of its value nodes and links, highlighting the output node.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := loadScene(cmd, args[0])
		if err != nil {
			return err
		}
		r.Doc.Graph().Collect()

		output := graph.GenerateMermaid(r.Doc.Graph().Nodes(), &graph.GraphOverlay{CurrentNode: r.Output})
		fmt.Fprint(cmd.OutOrStdout(), output)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/tendril/pkg/value"
	"github.com/aretw0/tendril/pkg/valuenode"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var sampleCmd = &cobra.Command{
	Use:   "sample <scene>",
	Short: "Print the change points of a scene's output",
	Long:  `Samples the output node of a scene over its time window and prints only the times at which the value changes.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := loadScene(cmd, args[0])
		if err != nil {
			return err
		}
		tb := r.Doc.Sample(r.Output)

		asJSON, _ := cmd.Flags().GetBool("json")
		if !cmd.Flags().Changed("json") {
			// Piped output defaults to JSON
			asJSON = !term.IsTerminal(int(os.Stdout.Fd()))
		}
		if asJSON {
			return writeJSON(cmd.OutOrStdout(), tb)
		}
		writeText(cmd.OutOrStdout(), tb, r.Output.TimeBounds().FPS)
		return nil
	},
}

func init() {
	sampleCmd.Flags().Bool("json", false, "Print samples as JSON")
	rootCmd.AddCommand(sampleCmd)
}

func writeJSON(w io.Writer, tb *value.Table) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(tb.Samples())
}

func writeText(w io.Writer, tb *value.Table, fps float64) {
	for _, s := range tb.Samples() {
		fmt.Fprintf(w, "%8.4fs  frame %-6d %s\n", float64(s.Time), valuenode.TimeToFrame(s.Time, fps), s.Value)
	}
}

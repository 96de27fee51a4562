package main

import (
	"fmt"

	"github.com/aretw0/tendril/pkg/valuenode"
	"github.com/spf13/cobra"
)

var describeCmd = &cobra.Command{
	Use:   "describe <scene>",
	Short: "Describe where each link of a scene's output sits",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := loadScene(cmd, args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, r.Output.Description(true))
		for i := 0; i < r.Output.LinkCount(); i++ {
			link := r.Output.Link(i)
			fmt.Fprintf(out, "  %-40s %s\n", r.Output.LinkDescription(i, true), describeLink(link))
		}
		return r.Doc.Check()
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)
}

func describeLink(n *valuenode.Node) string {
	if n == nil {
		return "unlinked"
	}
	if n.Kind() == valuenode.KindConst {
		return fmt.Sprintf("%s = %s", n.Kind(), n.Value())
	}
	return n.Kind().String()
}

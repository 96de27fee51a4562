package main

import (
	"fmt"

	"github.com/aretw0/tendril/internal/demo"
	"github.com/spf13/cobra"
)

var scenesCmd = &cobra.Command{
	Use:   "scenes",
	Short: "List the built-in scenes",
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range demo.Names() {
			s, _ := demo.Get(name)
			fmt.Fprintf(cmd.OutOrStdout(), "%-10s %s\n", s.Name, s.Summary)
		}
	},
}

func init() {
	rootCmd.AddCommand(scenesCmd)
}

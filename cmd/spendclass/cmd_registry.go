package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newRegistryCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "registry",
		Short: "List the admissible template hashes",
		Args:  exactArgs(0, "spendclass registry"),
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tSHAPE\tVERSION\tHASH")
			for _, e := range a.classifier.Registry().Entries() {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.Name, e.Shape, e.Version, e.Hash)
			}
			return tw.Flush()
		},
	}
}

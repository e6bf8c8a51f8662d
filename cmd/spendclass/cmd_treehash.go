package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"xdao.co/spendclass/clvm"
)

func newTreeHashCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "treehash <program>",
		Short: "Print the tree hash of a serialized program",
		Args:  exactArgs(1, "spendclass treehash <program>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.readProgram(args[0])
			if err != nil {
				return err
			}
			alloc := clvm.NewAllocator()
			n, err := clvm.Parse(alloc, b, a.parseOptions())
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(a.out, clvm.TreeHash(alloc, n))
			return err
		},
	}
}

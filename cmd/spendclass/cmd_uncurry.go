package main

import (
	"encoding/hex"

	"github.com/spf13/cobra"

	"xdao.co/spendclass/clvm"
)

type uncurryArg struct {
	Hex      string `json:"hex"`
	TreeHash string `json:"treeHash"`
}

type uncurryOutput struct {
	ProgramHash string       `json:"programHash"`
	Template    string       `json:"template,omitempty"`
	Shape       string       `json:"shape,omitempty"`
	Args        []uncurryArg `json:"args"`
}

func newUncurryCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "uncurry <program>",
		Short: "Split a curried program into its template and arguments",
		Long: `Uncurry prints the template hash of a curried program, the registry entry it
matches (if any), and each curried argument as hex with its tree hash.`,
		Args: exactArgs(1, "spendclass uncurry <program>"),
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
			prog, err := clvm.Uncurry(alloc, n)
			if err != nil {
				return err
			}
			curried, err := clvm.CurriedArgs(alloc, prog.Args)
			if err != nil {
				return err
			}
			h := clvm.TreeHash(alloc, prog.Program)
			out := uncurryOutput{ProgramHash: h.String(), Args: make([]uncurryArg, 0, len(curried))}
			if e, ok := a.classifier.Registry().Lookup(h); ok {
				out.Template = e.Name
				out.Shape = string(e.Shape)
			}
			for _, arg := range curried {
				out.Args = append(out.Args, uncurryArg{
					Hex:      hex.EncodeToString(clvm.Serialize(alloc, arg)),
					TreeHash: clvm.TreeHash(alloc, arg).String(),
				})
			}
			return a.writeJSON(out)
		},
	}
}

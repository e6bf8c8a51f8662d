package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"xdao.co/spendclass/cidutil"
	"xdao.co/spendclass/classify"
)

func newClassifyCmd(a *app) *cobra.Command {
	var flags struct {
		pair string
		cid  string
	}
	cmd := &cobra.Command{
		Use:   "classify [<puzzle> <solution>]",
		Short: "Classify one spend and print its report as JSON",
		Long: `Classify reads a puzzle and a solution (hex text, or raw with --binary), a
serialized (puzzle . solution) pair with --pair, or an archived spend with --cid.
On failure the coded error is printed to stderr as JSON.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				res *classify.Result
				err error
			)
			switch {
			case flags.cid != "":
				if len(args) != 0 || flags.pair != "" {
					return usagef("--cid takes no other input")
				}
				id, perr := cidutil.Parse(flags.cid)
				if perr != nil {
					return usagef("--cid: %v", perr)
				}
				ar, closeFn, oerr := a.openArchive()
				if oerr != nil {
					return oerr
				}
				defer closeFn()
				res, err = ar.Classify(cmd.Context(), id)
			case flags.pair != "":
				if len(args) != 0 {
					return usagef("--pair takes no positional arguments")
				}
				pair, rerr := a.readProgram(flags.pair)
				if rerr != nil {
					return rerr
				}
				res, err = a.classifier.ClassifyPairBytes(pair, a.parseOptions())
			default:
				if len(args) != 2 {
					return usagef("usage: spendclass classify <puzzle> <solution>")
				}
				puzzle, rerr := a.readProgram(args[0])
				if rerr != nil {
					return rerr
				}
				solution, rerr := a.readProgram(args[1])
				if rerr != nil {
					return rerr
				}
				res, err = a.classifier.ClassifyBytes(puzzle, solution, a.parseOptions())
			}
			if err != nil {
				return a.classifyFailure(err)
			}
			a.log.Debug("classified", zap.String("kind", string(res.Spend.Kind())))
			if err := a.writeJSON(classify.Report(res.Allocator, res.Spend)); err != nil {
				return fmt.Errorf("write report: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&flags.pair, "pair", "", "file holding a serialized (puzzle . solution) pair")
	cmd.Flags().StringVar(&flags.cid, "cid", "", "classify an archived spend")
	return cmd
}

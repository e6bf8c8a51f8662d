package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/ipfs/go-cid"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"xdao.co/spendclass/archive"
	"xdao.co/spendclass/cidutil"
)

func newArchiveCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Store and fetch spends in the content-addressed archive",
	}
	cmd.AddCommand(newArchivePutCmd(a), newArchiveGetCmd(a), newArchiveExportCmd(a), newArchiveImportCmd(a))
	return cmd
}

func newArchivePutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "put <puzzle> <solution>",
		Short: "Archive a spend and print its CID",
		Long: `Put strict-parses both halves, stores the canonical (puzzle . solution) pair
and prints its CID. The CID depends only on the pair's bytes.`,
		Args: exactArgs(2, "spendclass archive put <puzzle> <solution>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			puzzle, err := a.readProgram(args[0])
			if err != nil {
				return err
			}
			solution, err := a.readProgram(args[1])
			if err != nil {
				return err
			}
			ar, closeFn, err := a.openArchive()
			if err != nil {
				return err
			}
			defer closeFn()

			id, err := ar.Put(cmd.Context(), puzzle, solution)
			if err != nil {
				return err
			}
			a.log.Debug("archived", zap.Stringer("cid", id))
			_, err = fmt.Fprintln(a.out, id)
			return err
		},
	}
}

func newArchiveGetCmd(a *app) *cobra.Command {
	var flags struct {
		split bool
	}
	cmd := &cobra.Command{
		Use:   "get <CID>",
		Short: "Print an archived spend as hex",
		Long: `Get prints the archived (puzzle . solution) pair as one hex line, or with
--split the puzzle and the solution on separate lines.`,
		Args: exactArgs(1, "spendclass archive get <CID>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := cidutil.Parse(args[0])
			if err != nil {
				return usagef("%v", err)
			}
			ar, closeFn, err := a.openArchive()
			if err != nil {
				return err
			}
			defer closeFn()

			if !flags.split {
				pair, err := ar.GetPair(cmd.Context(), id)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(a.out, hex.EncodeToString(pair))
				return err
			}
			puzzle, solution, err := ar.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(a.out, "%s\n%s\n", hex.EncodeToString(puzzle), hex.EncodeToString(solution))
			return err
		},
	}
	cmd.Flags().BoolVar(&flags.split, "split", false, "print puzzle and solution on separate lines")
	return cmd
}

func newArchiveExportCmd(a *app) *cobra.Command {
	var flags struct {
		output  string
		noIndex bool
	}
	cmd := &cobra.Command{
		Use:   "export <CID>...",
		Short: "Write archived spends to a deterministic TAR bundle",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return usagef("usage: spendclass archive export -o <bundle.tar> <CID>...")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.output == "" {
				return usagef("--output is required")
			}
			ids := make([]cid.Cid, 0, len(args))
			for _, s := range args {
				id, err := cidutil.Parse(s)
				if err != nil {
					return usagef("%v", err)
				}
				ids = append(ids, id)
			}
			ar, closeFn, err := a.openArchive()
			if err != nil {
				return err
			}
			defer closeFn()

			f, err := os.Create(flags.output)
			if err != nil {
				return err
			}
			if err := ar.Export(cmd.Context(), f, ids, archive.ExportOptions{WithIndex: !flags.noIndex}); err != nil {
				_ = f.Close()
				_ = os.Remove(flags.output)
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			a.log.Info("bundle written", zap.String("path", flags.output), zap.Int("spends", len(ids)))
			return nil
		},
	}
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "bundle file to write")
	cmd.Flags().BoolVar(&flags.noIndex, "no-index", false, "omit index.json")
	return cmd
}

func newArchiveImportCmd(a *app) *cobra.Command {
	var flags struct {
		ignoreUnknown bool
	}
	cmd := &cobra.Command{
		Use:   "import <bundle.tar>",
		Short: "Store every spend in a bundle and print their CIDs",
		Args:  exactArgs(1, "spendclass archive import <bundle.tar>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			ar, closeFn, err := a.openArchive()
			if err != nil {
				return err
			}
			defer closeFn()

			ids, err := ar.Import(cmd.Context(), f, archive.ImportOptions{IgnoreUnknown: flags.ignoreUnknown})
			for _, id := range ids {
				fmt.Fprintln(a.out, id)
			}
			return err
		},
	}
	cmd.Flags().BoolVar(&flags.ignoreUnknown, "ignore-unknown", false, "skip entries that are not spends")
	return cmd
}

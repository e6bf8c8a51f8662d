package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"xdao.co/spendclass/classify"
	"xdao.co/spendclass/clvm"
	"xdao.co/spendclass/model"
)

// maxBatchLine bounds one input line; large NFT metadata puzzles run to a few
// hundred kilobytes of hex.
const maxBatchLine = 16 << 20

type batchLine struct {
	Index  int                `json:"index"`
	Report *model.SpendReport `json:"report,omitempty"`
	Error  *model.CodedError  `json:"error,omitempty"`
}

func newBatchCmd(a *app) *cobra.Command {
	var flags struct {
		workers int
	}
	cmd := &cobra.Command{
		Use:   "batch <pairs.txt>",
		Short: "Classify many spends concurrently, one JSON line per spend",
		Long: `Batch reads a text file with one spend per line: the puzzle hex and the
solution hex separated by whitespace. Blank lines and lines starting with # are
skipped. Output is one JSON object per spend, in input order.`,
		Args: exactArgs(1, "spendclass batch <pairs.txt>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.binary {
				return usagef("batch input is always hex text")
			}
			pairs, err := readBatch(args[0])
			if err != nil {
				return err
			}
			workers := a.cfg.Workers
			if flags.workers > 0 {
				workers = flags.workers
			}
			results, err := a.classifier.ClassifyBatch(cmd.Context(), pairs, a.parseOptions(), workers)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(a.out)
			failed := 0
			for _, r := range results {
				line := batchLine{Index: r.Index}
				if r.Err != nil {
					failed++
					line.Error = classify.Coded(r.Err)
				} else {
					rep := classify.Report(r.Result.Allocator, r.Result.Spend)
					line.Report = &rep
				}
				if err := enc.Encode(line); err != nil {
					return fmt.Errorf("write result: %w", err)
				}
			}
			a.log.Info("batch complete",
				zap.Int("spends", len(results)),
				zap.Int("failed", failed),
				zap.Int("workers", workers))
			return nil
		},
	}
	cmd.Flags().IntVar(&flags.workers, "workers", 0, "concurrent classifications (default from config)")
	return cmd
}

func readBatch(path string) ([]classify.Pair, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var pairs []classify.Pair
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), maxBatchLine)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("%s:%d: want <puzzle-hex> <solution-hex>", path, lineNo)
		}
		puzzle, err := clvm.DecodeHex(fields[0])
		if err != nil {
			return nil, fmt.Errorf("%s:%d: puzzle: %w", path, lineNo, err)
		}
		solution, err := clvm.DecodeHex(fields[1])
		if err != nil {
			return nil, fmt.Errorf("%s:%d: solution: %w", path, lineNo, err)
		}
		pairs = append(pairs, classify.Pair{Puzzle: puzzle, Solution: solution})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return pairs, nil
}

// spendclass classifies serialized puzzle/solution pairs and archives them.
//
// Usage:
//
//	spendclass classify <puzzle.hex> <solution.hex>
//	spendclass classify --pair <spend.hex> | --cid <CID>
//	spendclass batch <pairs.txt>
//	spendclass treehash <program.hex>
//	spendclass uncurry <program.hex>
//	spendclass archive put <puzzle.hex> <solution.hex>
//	spendclass archive get <CID> [--split]
//	spendclass registry
//	spendclass serve
package main

import (
	"context"
	"fmt"
	"io"
	"os"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, out, errOut io.Writer) int {
	root := newRootCmd(out, errOut)
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(errOut, err)
		if isUsage(err) {
			return 2
		}
		return 1
	}
	return 0
}

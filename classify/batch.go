package classify

import (
	"context"

	"golang.org/x/sync/errgroup"

	"xdao.co/spendclass/clvm"
)

// Pair is one serialized puzzle/solution pair.
type Pair struct {
	Puzzle   []byte
	Solution []byte
}

// BatchResult is the outcome for the pair at Index. Exactly one of Result or Err is set.
type BatchResult struct {
	Index  int
	Result *Result
	Err    error
}

// ClassifyBatch classifies pairs on up to workers goroutines, each pair in its own
// arena. Results are in input order. Per-pair failures are reported in the result;
// the returned error is only ctx's, in which case pairs not yet started carry it too.
func (c *Classifier) ClassifyBatch(ctx context.Context, pairs []Pair, opts clvm.ParseOptions, workers int) ([]BatchResult, error) {
	if workers < 1 {
		workers = 1
	}
	results := make([]BatchResult, len(pairs))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, p := range pairs {
		if err := gCtx.Err(); err != nil {
			for j := i; j < len(pairs); j++ {
				results[j] = BatchResult{Index: j, Err: err}
			}
			break
		}
		i, p := i, p
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				results[i] = BatchResult{Index: i, Err: err}
				return nil
			}
			res, err := c.ClassifyBytes(p.Puzzle, p.Solution, opts)
			results[i] = BatchResult{Index: i, Result: res, Err: err}
			return nil
		})
	}
	_ = g.Wait()
	return results, ctx.Err()
}

package screening

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/turtacn/ScaffoldSieve/pkg/errors"
)

// forEach calls fn for every index in [0, n), spreading contiguous chunks
// over at most workers goroutines.  fn must only write to state owned by its
// index.  Cancellation of ctx stops scheduling new chunks and is reported as
// COMMON_017.
func forEach(ctx context.Context, n, workers, chunk int, fn func(i int)) error {
	if workers < 1 {
		workers = 1
	}
	if chunk < 1 {
		chunk = 1
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for start := 0; start < n; start += chunk {
		if gctx.Err() != nil {
			break
		}
		start := start
		end := min(start+chunk, n)
		g.Go(func() error {
			for i := start; i < end; i++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				fn(i)
			}
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return errors.Wrap(err, errors.ErrCodeCancelled, "screening cancelled")
	}
	return nil
}

//Personal.AI order the ending

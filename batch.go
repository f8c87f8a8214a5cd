package subplan

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/tsawler/subplan/model"
)

// ExtractAll extracts the schedules of several documents concurrently. A
// single extraction holds no shared state, so independent inputs can run
// in parallel; the first failure cancels the remaining work and is
// returned. The result maps each filename to its schedule.
//
// Example:
//
//	schedules, err := subplan.ExtractAll(ctx, "monday.pdf", "tuesday.pdf")
func ExtractAll(ctx context.Context, filenames ...string) (map[string]*model.Schedule, error) {
	g, ctx := errgroup.WithContext(ctx)

	var mu sync.Mutex
	results := make(map[string]*model.Schedule, len(filenames))

	for _, filename := range filenames {
		filename := filename
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			s, _, err := Open(filename).Schedule()
			if err != nil {
				return err
			}
			mu.Lock()
			results[filename] = s
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

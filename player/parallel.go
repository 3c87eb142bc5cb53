package player

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// UpdateAll advances every instance by dt, splitting the slice into at most
// workers contiguous chunks that run concurrently. workers <= 0 uses
// GOMAXPROCS. Instances must be distinct; no instance may appear twice.
func UpdateAll(ctx context.Context, instances []*Instance, dt float64, workers int) error {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	n := len(instances)
	if n == 0 {
		return ctx.Err()
	}
	workers = min(workers, n)
	chunk := (n + workers - 1) / workers

	g, ctx := errgroup.WithContext(ctx)
	for lo := 0; lo < n; lo += chunk {
		part := instances[lo:min(lo+chunk, n)]
		g.Go(func() error {
			for _, in := range part {
				if err := ctx.Err(); err != nil {
					return err
				}
				in.Update(dt)
			}
			return nil
		})
	}
	return g.Wait()
}

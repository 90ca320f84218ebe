// SPDX-License-Identifier: MIT
package surf

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// parallelEach fans work over items out across a bounded worker pool. Used
// for data-parallel loops over independent faces/vertices/edges in the
// subdivision kernel and normals pass, since each entity only ever touches
// its own grid/sample storage. fn never returns an error because none of
// these loop bodies can fail; errgroup is used purely for its bounded
// worker pool, not error propagation.
// Complexity: O(len(items)) total work, wall clock divided across the pool.
func parallelEach[T any](items []T, fn func(T)) {
	if len(items) == 0 {
		return
	}
	workers := runtime.NumCPU()
	if workers > len(items) {
		workers = len(items)
	}
	if workers <= 1 {
		for _, it := range items {
			fn(it)
		}
		return
	}

	g, _ := errgroup.WithContext(context.Background())
	g.SetLimit(workers)

	idx := make(chan int)
	go func() {
		defer close(idx)
		for i := range items {
			idx <- i
		}
	}()

	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for i := range idx {
				fn(items[i])
			}
			return nil
		})
	}
	_ = g.Wait()
}

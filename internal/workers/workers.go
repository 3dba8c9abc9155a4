// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The trailbook Authors

package workers

import (
	"context"
	"sync"
)

// Workers aggregates background workers and manages their lifecycles
// together.
type Workers struct {
	workers []Worker

	wg sync.WaitGroup
}

// NewWorkers bundles the given workers.
func NewWorkers(workers ...Worker) *Workers {
	return &Workers{workers: workers}
}

// Run launches every worker on its own goroutine. The workers stop when
// ctx is cancelled; Wait blocks until all of them have returned.
func (w *Workers) Run(ctx context.Context) {
	for _, worker := range w.workers {
		w.wg.Add(1)
		go func(worker Worker) {
			defer w.wg.Done()
			worker.Run(ctx)
		}(worker)
	}
}

// Wait blocks until every launched worker has returned.
func (w *Workers) Wait() {
	w.wg.Wait()
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The trailbook Authors

// Package workers provides abstractions for managing and running
// background workers in the application.
// It defines the Worker interface, a Workers aggregate that runs multiple
// workers in a unified way, and the expired reset-token sweeper.
package workers

import "context"

// Worker is the interface that must be implemented by any background worker.
// Run blocks until ctx is cancelled; the aggregate launches each worker on
// its own goroutine.
type Worker interface {
	Run(ctx context.Context)
}

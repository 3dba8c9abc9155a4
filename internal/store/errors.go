// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The trailbook Authors

package store

import "errors"

// Sentinel errors returned by the document store. Callers should use
// [errors.Is] to match against these values.
var (
	// ErrNotFound is returned when an operation references a document ID
	// that does not exist in the collection.
	ErrNotFound = errors.New("document not found")

	// ErrStoreUnavailable is returned for transient infrastructure
	// failures, including operations against a closed store. Callers may
	// retry; the store never retries internally.
	ErrStoreUnavailable = errors.New("document store unavailable")

	// ErrUnsupportedStage indicates a pipeline carried a stage type the
	// store does not know. It marks a programming defect, not bad user
	// input, and must never surface to an external caller verbatim.
	ErrUnsupportedStage = errors.New("unsupported aggregation stage")
)

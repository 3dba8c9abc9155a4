// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The trailbook Authors

package hooks

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the default interceptors.
var (
	// ErrMissingName is returned by the slug interceptor when the incoming
	// tour document carries no usable name field.
	ErrMissingName = errors.New("document has no name to derive a slug from")

	// ErrUnsluggableName is returned when a name produces an empty slug
	// (e.g. it contains no letters or digits at all).
	ErrUnsluggableName = errors.New("name cannot be turned into a URL-safe slug")
)

// HookError reports that a lifecycle interceptor failed. The enclosing
// operation is aborted; a partially transformed context never reaches the
// store.
type HookError struct {
	Resource string
	Phase    Phase
	Err      error
}

func (e *HookError) Error() string {
	return fmt.Sprintf("hook %s/%s failed: %v", e.Resource, e.Phase, e.Err)
}

func (e *HookError) Unwrap() error {
	return e.Err
}

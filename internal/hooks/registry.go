// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The trailbook Authors

// Package hooks implements the document lifecycle interceptor registry.
//
// Interceptors are registered per (resource, phase) pair and applied as an
// explicit ordered chain by the resource facade, exactly once per phase per
// operation. Each interceptor is a pure transformation of the in-flight
// context: it may rewrite the filter, the pipeline, or the documents, but
// must be idempotent and free of side effects beyond that transformation.
// An interceptor that cannot complete aborts the whole chain with a
// distinguishable error; a partially transformed context is never handed
// onward.
package hooks

import (
	"context"

	"github.com/trailbook/trailbook/internal/query"
	"github.com/trailbook/trailbook/models"
)

// Phase names a point in the document lifecycle at which interceptors run.
type Phase string

const (
	BeforeCreate    Phase = "beforeCreate"
	AfterCreate     Phase = "afterCreate"
	BeforeQuery     Phase = "beforeQuery"
	AfterQuery      Phase = "afterQuery"
	BeforeAggregate Phase = "beforeAggregate"
)

// Context is the in-flight state an interceptor transforms. Which fields
// are populated depends on the phase:
//
//   - BeforeCreate / AfterCreate: Document.
//   - BeforeQuery: Filter (a clone; the originating descriptor stays
//     untouched).
//   - AfterQuery: Documents, the result set leaving the store.
//   - BeforeAggregate: Pipeline.
type Context struct {
	// Resource is the resource type the operation targets, e.g. "tour".
	Resource string

	// Document is the document being created.
	Document models.Document

	// Documents is the result set of a query operation.
	Documents []models.Document

	// Filter is the effective query filter. Interceptors replace it
	// wholesale (via query.Filter.With) rather than mutating shared state.
	Filter query.Filter

	// Pipeline is the aggregation pipeline about to execute.
	Pipeline query.Pipeline
}

// Hook is a single lifecycle interceptor. A later hook in the chain
// observes the output of an earlier one.
type Hook func(ctx context.Context, hc *Context) error

// Registry holds the ordered interceptor chains keyed by resource type and
// phase.
//
// Register is intended for application start-up; once wiring is complete,
// Apply only reads the chains and is safe for concurrent use.
type Registry struct {
	chains map[string]map[Phase][]Hook
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{chains: make(map[string]map[Phase][]Hook)}
}

// Register appends h to the chain for (resource, phase). Hooks run in
// registration order.
func (r *Registry) Register(resource string, phase Phase, h Hook) {
	byPhase, ok := r.chains[resource]
	if !ok {
		byPhase = make(map[Phase][]Hook)
		r.chains[resource] = byPhase
	}
	byPhase[phase] = append(byPhase[phase], h)
}

// Apply runs the interceptor chain registered for (resource, phase) against
// hc, in registration order. The first failing hook aborts the chain and
// the error is returned wrapped in *HookError so callers can tell a hook
// failure apart from user-input or storage failures.
//
// Resources or phases with no registered hooks are a no-op.
func (r *Registry) Apply(ctx context.Context, resource string, phase Phase, hc *Context) error {
	byPhase, ok := r.chains[resource]
	if !ok {
		return nil
	}

	for _, h := range byPhase[phase] {
		if err := h(ctx, hc); err != nil {
			return &HookError{Resource: resource, Phase: phase, Err: err}
		}
	}

	return nil
}

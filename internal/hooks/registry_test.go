// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The trailbook Authors

package hooks

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_AppliesInRegistrationOrder(t *testing.T) {
	r := NewRegistry()
	var order []string

	r.Register(ResourceTour, BeforeCreate, func(_ context.Context, _ *Context) error {
		order = append(order, "first")
		return nil
	})
	r.Register(ResourceTour, BeforeCreate, func(_ context.Context, _ *Context) error {
		order = append(order, "second")
		return nil
	})

	err := r.Apply(context.Background(), ResourceTour, BeforeCreate, &Context{})
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestRegistry_LaterHookSeesEarlierTransform(t *testing.T) {
	r := NewRegistry()

	r.Register(ResourceTour, BeforeCreate, func(_ context.Context, hc *Context) error {
		hc.Document["stamp"] = "earlier"
		return nil
	})

	var seen any
	r.Register(ResourceTour, BeforeCreate, func(_ context.Context, hc *Context) error {
		seen = hc.Document["stamp"]
		return nil
	})

	hc := &Context{Document: map[string]any{}}
	require.NoError(t, r.Apply(context.Background(), ResourceTour, BeforeCreate, hc))
	assert.Equal(t, "earlier", seen)
}

func TestRegistry_FailureAbortsChain(t *testing.T) {
	r := NewRegistry()
	boom := errors.New("boom")
	secondRan := false

	r.Register(ResourceUser, AfterQuery, func(_ context.Context, _ *Context) error {
		return boom
	})
	r.Register(ResourceUser, AfterQuery, func(_ context.Context, _ *Context) error {
		secondRan = true
		return nil
	})

	err := r.Apply(context.Background(), ResourceUser, AfterQuery, &Context{})
	require.Error(t, err)
	assert.False(t, secondRan)

	var hookErr *HookError
	require.ErrorAs(t, err, &hookErr)
	assert.Equal(t, ResourceUser, hookErr.Resource)
	assert.Equal(t, AfterQuery, hookErr.Phase)
	assert.ErrorIs(t, err, boom)
}

func TestRegistry_UnregisteredResourceIsNoOp(t *testing.T) {
	r := NewRegistry()
	err := r.Apply(context.Background(), "booking", BeforeQuery, &Context{})
	assert.NoError(t, err)
}

func TestRegistry_UnregisteredPhaseIsNoOp(t *testing.T) {
	r := NewRegistry()
	r.Register(ResourceTour, BeforeCreate, func(_ context.Context, _ *Context) error {
		t.Fatal("hook for another phase must not run")
		return nil
	})

	err := r.Apply(context.Background(), ResourceTour, AfterQuery, &Context{})
	assert.NoError(t, err)
}

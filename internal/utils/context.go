// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The trailbook Authors

// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys, token hashing,
// slug derivation, JWT token generation and validation, and other common
// operations.
package utils

import (
	"context"

	"github.com/trailbook/trailbook/models"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// IdentityCtxKey is the key used to store the authenticated user in the
// context. Used together with GetIdentityFromContext for type-safe
// retrieval of the identity from context.Context.
var IdentityCtxKey = contextKey("identity")

// GetIdentityFromContext retrieves the authenticated user from the context.
//
// Returns the user and an ok flag:
//   - ok == true: value is found and has the correct type
//   - ok == false: value is missing or has an unexpected type
//
// Example usage:
//
//	identity, ok := utils.GetIdentityFromContext(ctx)
//	if !ok {
//	    // handle unauthenticated request
//	}
func GetIdentityFromContext(ctx context.Context) (models.User, bool) {
	identity, ok := ctx.Value(IdentityCtxKey).(models.User)
	return identity, ok
}

// WithIdentity returns a copy of ctx carrying the authenticated user.
func WithIdentity(ctx context.Context, identity models.User) context.Context {
	return context.WithValue(ctx, IdentityCtxKey, identity)
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The trailbook Authors

package service

import (
	"github.com/trailbook/trailbook/internal/credentials"
	"github.com/trailbook/trailbook/internal/hooks"
	"github.com/trailbook/trailbook/internal/store"
)

// Services bundles every facade the transport layer consumes.
type Services struct {
	Tours   *TourService
	Users   *UserService
	Reviews *ReviewService
	Auth    *AuthService
}

// NewServices wires the facades against one store, one hook registry, and
// one credential manager.
func NewServices(s store.DocumentStore, registry *hooks.Registry, creds *credentials.Manager, authCfg AuthConfig) *Services {
	users := NewUserService(s, registry)

	return &Services{
		Tours:   NewTourService(s, registry),
		Users:   users,
		Reviews: NewReviewService(s, registry),
		Auth:    NewAuthService(s, registry, creds, users, authCfg),
	}
}

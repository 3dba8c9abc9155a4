// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The trailbook Authors

package service

import (
	"context"

	"github.com/trailbook/trailbook/internal/query"
	"github.com/trailbook/trailbook/models"
)

// ResourceService is the generic CRUD capability every resource facade
// provides. The HTTP layer depends on this interface so resource handlers
// stay identical across tours, users, and reviews, and so tests can swap
// in mocks.
type ResourceService interface {
	List(ctx context.Context, raw map[string][]string) (ListResult, error)
	Get(ctx context.Context, id string) (models.Document, error)
	Create(ctx context.Context, doc models.Document) (models.Document, error)
	Update(ctx context.Context, id string, patch models.Document) (models.Document, error)
	Delete(ctx context.Context, id string) error
}

// TourAnalyticsService is the analytical capability of the tour facade:
// the fixed statistics and geospatial pipelines.
type TourAnalyticsService interface {
	Stats(ctx context.Context) ([]models.Document, error)
	MonthlyPlan(ctx context.Context, year int) ([]models.Document, error)
	ToursWithin(ctx context.Context, origin models.GeoPoint, maxDistance float64, unit query.Unit) ([]models.Document, error)
	Distances(ctx context.Context, origin models.GeoPoint, unit query.Unit) ([]models.Document, error)
}

// AuthenticationService is the capability behind the auth routes and the
// authentication middleware.
type AuthenticationService interface {
	Signup(ctx context.Context, doc models.Document) (models.Document, models.Token, error)
	Login(ctx context.Context, email, password string) (models.Document, models.Token, error)
	Authenticate(ctx context.Context, bearer string) (models.User, error)
	ForgotPassword(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, token, password, passwordConfirm string) (models.Token, error)
	UpdatePassword(ctx context.Context, identity models.User, current, password, passwordConfirm string) (models.Token, error)
}

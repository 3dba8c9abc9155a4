// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The trailbook Authors

package service

import (
	"github.com/trailbook/trailbook/internal/hooks"
	"github.com/trailbook/trailbook/internal/store"
	"github.com/trailbook/trailbook/internal/validators"
	"github.com/trailbook/trailbook/models"
)

// ReviewService exposes review CRUD.
type ReviewService struct {
	resourceFacade
}

// NewReviewService constructs the review facade.
func NewReviewService(s store.DocumentStore, registry *hooks.Registry) *ReviewService {
	return &ReviewService{resourceFacade{
		resource:   hooks.ResourceReview,
		collection: models.CollectionReviews,
		store:      s,
		registry:   registry,
		validate:   validators.ValidateReview,
	}}
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The trailbook Authors

package service

import (
	"context"

	"github.com/trailbook/trailbook/internal/hooks"
	"github.com/trailbook/trailbook/internal/query"
	"github.com/trailbook/trailbook/internal/store"
	"github.com/trailbook/trailbook/internal/validators"
	"github.com/trailbook/trailbook/models"
)

// TourService exposes tour CRUD plus the fixed analytical pipelines. The
// pipelines are assembled server-side from vetted parameters only; request
// input never contributes stages.
type TourService struct {
	resourceFacade
}

// NewTourService constructs the tour facade.
func NewTourService(s store.DocumentStore, registry *hooks.Registry) *TourService {
	return &TourService{resourceFacade{
		resource:     hooks.ResourceTour,
		collection:   models.CollectionTours,
		store:        s,
		registry:     registry,
		validate:     validators.ValidateTour,
		normalize:    validators.NormalizeTour,
		uniqueFields: []string{"name"},
	}}
}

// Stats runs the difficulty-level statistics pipeline.
func (s *TourService) Stats(ctx context.Context) ([]models.Document, error) {
	return s.aggregate(ctx, query.TourStats())
}

// MonthlyPlan runs the per-month departure plan pipeline for one calendar
// year.
func (s *TourService) MonthlyPlan(ctx context.Context, year int) ([]models.Document, error) {
	return s.aggregate(ctx, query.MonthlyPlan(year))
}

// ToursWithin returns the tours whose start location lies within
// maxDistance of origin, in the given unit.
func (s *TourService) ToursWithin(ctx context.Context, origin models.GeoPoint, maxDistance float64, unit query.Unit) ([]models.Document, error) {
	return s.aggregate(ctx, query.ToursWithin(origin, maxDistance, unit))
}

// Distances returns the distance from origin to every visible tour's start
// location, nearest first.
func (s *TourService) Distances(ctx context.Context, origin models.GeoPoint, unit query.Unit) ([]models.Document, error) {
	return s.aggregate(ctx, query.Distances(origin, unit))
}

// aggregate runs the before-aggregate hook phase over the pipeline and
// executes it. Visibility hooks prepend their match stages here, so hidden
// tours never influence analytical output.
func (s *TourService) aggregate(ctx context.Context, p query.Pipeline) ([]models.Document, error) {
	hc := &hooks.Context{Resource: s.resource, Pipeline: p}
	if err := s.registry.Apply(ctx, s.resource, hooks.BeforeAggregate, hc); err != nil {
		return nil, err
	}

	return s.store.Aggregate(ctx, s.collection, hc.Pipeline)
}

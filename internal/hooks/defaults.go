// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The trailbook Authors

package hooks

import (
	"context"

	"github.com/trailbook/trailbook/internal/query"
	"github.com/trailbook/trailbook/internal/utils"
	"github.com/trailbook/trailbook/models"
)

// Resource types known to the default registry. The facade passes the same
// names when applying phases.
const (
	ResourceTour   = "tour"
	ResourceUser   = "user"
	ResourceReview = "review"
)

// credentialFields are stripped from every user document leaving the query
// path. The "active" flag is internal bookkeeping for soft deletion and is
// hidden as well.
var credentialFields = []string{
	models.FieldPasswordHash,
	models.FieldPasswordChangedAt,
	models.FieldResetTokenHash,
	models.FieldResetTokenExpiresAt,
	"active",
}

// Defaults returns a registry pre-populated with the invariant-preserving
// interceptors of the tour-booking domain:
//
//   - tours flagged secret and users flagged inactive are invisible to the
//     general query path, including the aggregation path;
//   - tours get a URL-safe slug derived from their name at create time;
//   - the durationWeeks virtual is computed at read time, never stored;
//   - credential fields never leave the store through a query.
func Defaults() *Registry {
	r := NewRegistry()

	r.Register(ResourceTour, BeforeQuery, HideSecretTours)
	r.Register(ResourceTour, BeforeAggregate, HideSecretToursInPipeline)
	r.Register(ResourceTour, BeforeCreate, SlugFromName)
	r.Register(ResourceTour, AfterQuery, ComputeDurationWeeks)

	r.Register(ResourceUser, BeforeQuery, HideInactiveUsers)
	r.Register(ResourceUser, AfterQuery, StripCredentialFields)
	r.Register(ResourceUser, AfterCreate, StripCredentialFields)

	return r
}

// HideSecretTours injects the secretTour visibility predicate into the
// query filter. Callers cannot see secret tours through the general query
// path even if they did not ask to exclude them.
func HideSecretTours(_ context.Context, hc *Context) error {
	hc.Filter = hc.Filter.With("secretTour", query.Predicate{Op: query.OpNotEquals, Value: true})
	return nil
}

// HideSecretToursInPipeline prepends the secretTour visibility match ahead
// of every analytical stage, so hidden tours never influence statistics.
func HideSecretToursInPipeline(_ context.Context, hc *Context) error {
	hc.Pipeline = hc.Pipeline.Prepend(query.MatchStage{Filter: query.Filter{
		"secretTour": {{Op: query.OpNotEquals, Value: true}},
	}})
	return nil
}

// HideInactiveUsers injects the soft-delete visibility predicate: accounts
// deactivated by a delete operation stay stored but invisible.
func HideInactiveUsers(_ context.Context, hc *Context) error {
	hc.Filter = hc.Filter.With("active", query.Predicate{Op: query.OpNotEquals, Value: false})
	return nil
}

// SlugFromName derives the tour's URL-safe slug from its name. A missing
// name or a name with no sluggable characters aborts the create.
func SlugFromName(_ context.Context, hc *Context) error {
	name := hc.Document.String("name")
	if name == "" {
		return ErrMissingName
	}

	slug := utils.Slugify(name)
	if slug == "" {
		return ErrUnsluggableName
	}

	hc.Document["slug"] = slug
	return nil
}

// ComputeDurationWeeks attaches the durationWeeks virtual to every tour in
// the result set. The value is derived at read time and never persisted.
func ComputeDurationWeeks(_ context.Context, hc *Context) error {
	for _, doc := range hc.Documents {
		if days, ok := doc.Number("duration"); ok {
			doc["durationWeeks"] = days / 7
		}
	}
	return nil
}

// StripCredentialFields removes credential and soft-delete bookkeeping
// fields from every user document leaving the server, whether through the
// query path or as a create response.
func StripCredentialFields(_ context.Context, hc *Context) error {
	docs := hc.Documents
	if hc.Document != nil {
		docs = append(docs, hc.Document)
	}
	for _, doc := range docs {
		for _, field := range credentialFields {
			delete(doc, field)
		}
	}
	return nil
}

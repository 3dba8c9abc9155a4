// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The trailbook Authors

// Package service implements the resource access facades: the thin layer
// every HTTP handler calls. A facade composes the query builder, the
// aggregation pipelines, the lifecycle hook registry, and the credential
// manager into typed outcomes, a success payload or a typed failure,
// and guarantees at most one hook pass per phase per operation.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/trailbook/trailbook/internal/hooks"
	"github.com/trailbook/trailbook/internal/query"
	"github.com/trailbook/trailbook/internal/store"
	"github.com/trailbook/trailbook/internal/validators"
	"github.com/trailbook/trailbook/models"
)

// ListResult is the outcome of a list operation.
type ListResult struct {
	// Items is the page of matching documents, already hook-transformed.
	Items []models.Document

	// Total is the matching-document count across all pages. Populated
	// only when the caller explicitly requested a page; HasTotal reports
	// whether it is meaningful.
	Total    int
	HasTotal bool
}

// resourceFacade is the generic document access layer shared by all
// resource services. Construction has no shared mutable state, so one
// facade value serves concurrent requests without locking.
type resourceFacade struct {
	// resource is the hook registry key, e.g. hooks.ResourceTour.
	resource string

	// collection is the store collection name.
	collection string

	store    store.DocumentStore
	registry *hooks.Registry

	// validate checks a document before a write; partial toggles patch
	// semantics. normalize applies write-time defaults and rounding.
	validate  func(models.Document, bool) error
	normalize func(models.Document, bool)

	// uniqueFields must not collide with an existing document on create.
	uniqueFields []string
}

// List builds a descriptor from the raw request parameters, runs the
// before/after query hook phases exactly once each, and fetches the page.
//
// An explicitly requested page lying past the end of the result set is a
// legitimate empty result, not a failure: the facade returns empty items
// with the total attached.
func (f *resourceFacade) List(ctx context.Context, raw map[string][]string) (ListResult, error) {
	d, err := query.Build(raw, query.DefaultControlParams)
	if err != nil {
		return ListResult{}, err
	}

	hc := &hooks.Context{Resource: f.resource, Filter: d.Filter.Clone()}
	if err := f.registry.Apply(ctx, f.resource, hooks.BeforeQuery, hc); err != nil {
		return ListResult{}, err
	}
	effective := d.WithFilter(hc.Filter)

	result := ListResult{}
	if d.PageRequested {
		total, err := f.store.Count(ctx, f.collection, effective.Filter)
		if err != nil {
			return ListResult{}, err
		}
		result.Total = total
		result.HasTotal = true

		if d.Page.Past(total) {
			// An empty page, not a not-found failure.
			result.Items = []models.Document{}
			return result, nil
		}
	}

	items, err := f.store.Find(ctx, f.collection, effective)
	if err != nil {
		return ListResult{}, err
	}

	after := &hooks.Context{Resource: f.resource, Documents: items}
	if err := f.registry.Apply(ctx, f.resource, hooks.AfterQuery, after); err != nil {
		return ListResult{}, err
	}

	result.Items = after.Documents
	return result, nil
}

// Get fetches a single document by ID through the general query path, so
// visibility filters and read-time virtuals apply exactly as they do for
// List. A document hidden by a visibility hook is indistinguishable from
// an absent one.
func (f *resourceFacade) Get(ctx context.Context, id string) (models.Document, error) {
	if id == "" {
		return nil, ErrInvalidDataProvided
	}

	d := query.Descriptor{
		Filter:     query.Filter{"id": {{Op: query.OpEquals, Value: id}}},
		Projection: query.Projection{Exclude: []string{query.RevisionField}},
		Page:       query.Page{Number: 1, Size: 1},
	}

	hc := &hooks.Context{Resource: f.resource, Filter: d.Filter.Clone()}
	if err := f.registry.Apply(ctx, f.resource, hooks.BeforeQuery, hc); err != nil {
		return nil, err
	}

	items, err := f.store.Find(ctx, f.collection, d.WithFilter(hc.Filter))
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, store.ErrNotFound
	}

	after := &hooks.Context{Resource: f.resource, Documents: items}
	if err := f.registry.Apply(ctx, f.resource, hooks.AfterQuery, after); err != nil {
		return nil, err
	}

	return after.Documents[0], nil
}

// Create validates and normalizes the document, runs the before-create
// hook phase, persists, and runs the after-create phase on the stored
// document.
func (f *resourceFacade) Create(ctx context.Context, doc models.Document) (models.Document, error) {
	if len(doc) == 0 {
		return nil, ErrInvalidDataProvided
	}
	doc = doc.Clone()

	if err := f.validate(doc, false); err != nil {
		return nil, err
	}
	if f.normalize != nil {
		f.normalize(doc, false)
	}
	if err := f.checkUnique(ctx, doc); err != nil {
		return nil, err
	}

	hc := &hooks.Context{Resource: f.resource, Document: doc}
	if err := f.registry.Apply(ctx, f.resource, hooks.BeforeCreate, hc); err != nil {
		return nil, err
	}

	created, err := f.store.Insert(ctx, f.collection, hc.Document)
	if err != nil {
		return nil, err
	}

	after := &hooks.Context{Resource: f.resource, Document: created, Documents: []models.Document{created}}
	if err := f.registry.Apply(ctx, f.resource, hooks.AfterCreate, after); err != nil {
		return nil, err
	}

	return after.Document, nil
}

// Update validates the patch with partial semantics and merges it into
// the stored document. The outgoing document passes through the
// after-query phase so its shape matches what Get returns.
func (f *resourceFacade) Update(ctx context.Context, id string, patch models.Document) (models.Document, error) {
	if id == "" || len(patch) == 0 {
		return nil, ErrInvalidDataProvided
	}
	patch = patch.Clone()

	if err := f.validate(patch, true); err != nil {
		return nil, err
	}
	if f.normalize != nil {
		f.normalize(patch, true)
	}

	updated, err := f.store.UpdateByID(ctx, f.collection, id, patch)
	if err != nil {
		return nil, err
	}

	after := &hooks.Context{Resource: f.resource, Documents: []models.Document{updated}}
	if err := f.registry.Apply(ctx, f.resource, hooks.AfterQuery, after); err != nil {
		return nil, err
	}

	return after.Documents[0], nil
}

// Delete removes the identified document.
func (f *resourceFacade) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrInvalidDataProvided
	}

	deleted, err := f.store.DeleteByID(ctx, f.collection, id)
	if err != nil {
		return err
	}
	if !deleted {
		return store.ErrNotFound
	}

	return nil
}

// checkUnique rejects a create whose unique fields collide with an
// existing document.
func (f *resourceFacade) checkUnique(ctx context.Context, doc models.Document) error {
	for _, field := range f.uniqueFields {
		value, ok := doc[field]
		if !ok {
			continue
		}

		count, err := f.store.Count(ctx, f.collection, query.Filter{
			field: {{Op: query.OpEquals, Value: value}},
		})
		if err != nil {
			return err
		}
		if count > 0 {
			return &validators.ValidationError{Fields: map[string]string{
				field: fmt.Sprintf("%v is already in use", value),
			}}
		}
	}

	return nil
}

// HasRole reports whether the identity holds one of the allowed roles. It
// is the capability check the transport layer runs before any restricted
// resource operation, independent of route wiring.
func HasRole(identity models.User, allowedRoles ...string) bool {
	for _, role := range allowedRoles {
		if identity.Role == role {
			return true
		}
	}
	return false
}

// IsNotFound reports whether err is the store's not-found failure.
func IsNotFound(err error) bool {
	return errors.Is(err, store.ErrNotFound)
}

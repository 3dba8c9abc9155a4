// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The trailbook Authors

// Package store defines the document store capability consumed by the
// resource facades and provides its in-memory implementation.
//
// The capability is deliberately opaque: callers hand over fully-resolved
// query descriptors and aggregation pipelines and receive documents back.
// How documents are kept, indexed, or scanned is this package's business
// alone.
package store

import (
	"context"

	"github.com/trailbook/trailbook/internal/query"
	"github.com/trailbook/trailbook/models"
)

// DocumentStore is the persistence capability of the application. All
// methods may fail with ErrStoreUnavailable when the store cannot serve
// requests (e.g. it has been closed).
//
// A read that races a concurrent write may observe a count that no longer
// matches the page it fetches; that staleness window is accepted and left
// to callers to tolerate, the store performs no cross-call isolation.
type DocumentStore interface {
	// Find returns the documents of collection matching the descriptor, in
	// the descriptor's sort order with ties broken by insertion order.
	Find(ctx context.Context, collection string, d query.Descriptor) ([]models.Document, error)

	// Count returns the number of documents of collection matching the
	// filter, ignoring pagination.
	Count(ctx context.Context, collection string, f query.Filter) (int, error)

	// Insert persists a new document and returns it with server-assigned
	// fields (id, createdAt, revision marker) populated.
	Insert(ctx context.Context, collection string, doc models.Document) (models.Document, error)

	// UpdateByID merges patch into the identified document and returns the
	// updated document, or ErrNotFound.
	UpdateByID(ctx context.Context, collection, id string, patch models.Document) (models.Document, error)

	// DeleteByID removes the identified document. The bool reports whether
	// a document was actually removed.
	DeleteByID(ctx context.Context, collection, id string) (bool, error)

	// Aggregate executes the pipeline stage by stage against collection
	// and returns the final document set.
	Aggregate(ctx context.Context, collection string, p query.Pipeline) ([]models.Document, error)
}

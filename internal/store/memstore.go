// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The trailbook Authors

package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/btree"
	jsoniter "github.com/json-iterator/go"

	"github.com/trailbook/trailbook/internal/query"
	"github.com/trailbook/trailbook/internal/utils"
	"github.com/trailbook/trailbook/models"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// btreeDegree controls node fan-out of the per-collection document tree.
const btreeDegree = 32

// entry is one stored document keyed by its insertion sequence number. The
// sequence is what gives Find its stable tie-breaking order.
type entry struct {
	seq int64
	doc models.Document
}

func lessBySeq(a, b entry) bool {
	return a.seq < b.seq
}

// collection holds the documents of one resource type in insertion order
// plus an ID lookup table.
type collection struct {
	tree *btree.BTreeG[entry]
	byID map[string]int64
	seq  int64
}

func newCollection() *collection {
	return &collection{
		tree: btree.NewG[entry](btreeDegree, lessBySeq),
		byID: make(map[string]int64),
	}
}

// MemStore is the in-memory implementation of [DocumentStore]. Documents
// are deep-cloned through JSON on the way in and out, so callers can never
// alias stored state, and every stored value carries JSON typing (float64
// numbers, RFC 3339 timestamp strings).
//
// A single RWMutex serializes writes; reads run concurrently. Per-document
// update semantics are what callers rely on to serialize credential
// mutations of one user.
type MemStore struct {
	mu          sync.RWMutex
	collections map[string]*collection
	ids         *utils.UUIDGenerator
	closed      bool

	// now is the clock used for createdAt stamping, replaceable in tests.
	now func() time.Time
}

// NewMemStore returns an empty, open store.
func NewMemStore() *MemStore {
	return &MemStore{
		collections: make(map[string]*collection),
		ids:         utils.NewUUIDGenerator(),
		now:         time.Now,
	}
}

// Close marks the store unavailable. Subsequent calls on any method fail
// with ErrStoreUnavailable.
func (s *MemStore) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}

// Insert implements [DocumentStore.Insert]. Server-assigned fields: a
// UUIDv7 id when the document has none, an RFC 3339 createdAt when absent,
// and the internal revision marker starting at 1.
func (s *MemStore) Insert(ctx context.Context, collectionName string, doc models.Document) (models.Document, error) {
	if err := s.usable(ctx); err != nil {
		return nil, err
	}

	stored, err := cloneDocument(doc)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrStoreUnavailable
	}

	if stored.ID() == "" {
		stored["id"] = s.ids.Generate()
	}
	if stored.String("createdAt") == "" {
		stored["createdAt"] = s.now().UTC().Format(time.RFC3339Nano)
	}
	stored[query.RevisionField] = float64(1)

	col := s.collection(collectionName)
	col.seq++
	col.tree.ReplaceOrInsert(entry{seq: col.seq, doc: stored})
	col.byID[stored.ID()] = col.seq

	return cloneDocument(stored)
}

// UpdateByID implements [DocumentStore.UpdateByID]. The patch is merged
// over the stored document field by field; a field patched to an explicit
// null is removed. The id, creation timestamp, and revision marker cannot
// be patched. The revision marker is bumped on every successful update.
func (s *MemStore) UpdateByID(ctx context.Context, collectionName, id string, patch models.Document) (models.Document, error) {
	if err := s.usable(ctx); err != nil {
		return nil, err
	}

	patched, err := cloneDocument(patch)
	if err != nil {
		return nil, err
	}
	delete(patched, "id")
	delete(patched, "createdAt")
	delete(patched, query.RevisionField)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrStoreUnavailable
	}

	col, ok := s.collections[collectionName]
	if !ok {
		return nil, ErrNotFound
	}
	seq, ok := col.byID[id]
	if !ok {
		return nil, ErrNotFound
	}

	current, _ := col.tree.Get(entry{seq: seq})
	merged, err := cloneDocument(current.doc)
	if err != nil {
		return nil, err
	}
	// Every patched field overwrites the stored value, zero values included
	// (e.g. active=false); an explicit null removes the field. Fields absent
	// from the patch are left alone.
	for field, value := range patched {
		if value == nil {
			delete(merged, field)
			continue
		}
		merged[field] = value
	}

	rev, _ := merged.Number(query.RevisionField)
	merged[query.RevisionField] = rev + 1

	// Same sequence number: an update never changes insertion order.
	col.tree.ReplaceOrInsert(entry{seq: seq, doc: merged})

	return cloneDocument(merged)
}

// DeleteByID implements [DocumentStore.DeleteByID].
func (s *MemStore) DeleteByID(ctx context.Context, collectionName, id string) (bool, error) {
	if err := s.usable(ctx); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false, ErrStoreUnavailable
	}

	col, ok := s.collections[collectionName]
	if !ok {
		return false, nil
	}
	seq, ok := col.byID[id]
	if !ok {
		return false, nil
	}

	col.tree.Delete(entry{seq: seq})
	delete(col.byID, id)

	return true, nil
}

// Find implements [DocumentStore.Find]: filter in insertion order, stable
// sort by the descriptor's keys, project, then apply the pagination
// window.
func (s *MemStore) Find(ctx context.Context, collectionName string, d query.Descriptor) ([]models.Document, error) {
	if err := s.usable(ctx); err != nil {
		return nil, err
	}

	results, err := s.scan(collectionName, d.Filter)
	if err != nil {
		return nil, err
	}

	sortDocuments(results, d.SortKeys)

	for _, doc := range results {
		project(doc, d.Projection.Include, d.Projection.Exclude)
	}

	if d.Page.Size > 0 {
		offset := d.Page.Offset()
		if offset >= len(results) {
			return []models.Document{}, nil
		}
		results = results[offset:]
		if len(results) > d.Page.Size {
			results = results[:d.Page.Size]
		}
	}

	return results, nil
}

// Count implements [DocumentStore.Count].
func (s *MemStore) Count(ctx context.Context, collectionName string, f query.Filter) (int, error) {
	if err := s.usable(ctx); err != nil {
		return 0, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return 0, ErrStoreUnavailable
	}

	col, ok := s.collections[collectionName]
	if !ok {
		return 0, nil
	}

	count := 0
	col.tree.Ascend(func(e entry) bool {
		if matchFilter(e.doc, f) {
			count++
		}
		return true
	})

	return count, nil
}

// FindByID is a convenience wrapper for single-document lookups: it
// matches on the id field and fails with ErrNotFound instead of returning
// an empty set.
func (s *MemStore) FindByID(ctx context.Context, collectionName, id string) (models.Document, error) {
	d := query.Descriptor{
		Filter:     query.Filter{"id": {{Op: query.OpEquals, Value: id}}},
		Projection: query.Projection{Exclude: []string{query.RevisionField}},
		Page:       query.Page{Number: 1, Size: 1},
	}

	docs, err := s.Find(ctx, collectionName, d)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, ErrNotFound
	}

	return docs[0], nil
}

// scan returns deep clones of the documents matching f, in insertion
// order.
func (s *MemStore) scan(collectionName string, f query.Filter) ([]models.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrStoreUnavailable
	}

	results := []models.Document{}
	col, ok := s.collections[collectionName]
	if !ok {
		return results, nil
	}

	var cloneErr error
	col.tree.Ascend(func(e entry) bool {
		if !matchFilter(e.doc, f) {
			return true
		}

		clone, err := cloneDocument(e.doc)
		if err != nil {
			cloneErr = err
			return false
		}
		results = append(results, clone)
		return true
	})
	if cloneErr != nil {
		return nil, cloneErr
	}

	return results, nil
}

func (s *MemStore) collection(name string) *collection {
	col, ok := s.collections[name]
	if !ok {
		col = newCollection()
		s.collections[name] = col
	}
	return col
}

func (s *MemStore) usable(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrStoreUnavailable
	}
	return nil
}

// cloneDocument deep-copies a document through JSON, normalizing all
// values to JSON typing in the process.
func cloneDocument(doc models.Document) (models.Document, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("error encoding document: %w", err)
	}

	var clone models.Document
	if err := json.Unmarshal(raw, &clone); err != nil {
		return nil, fmt.Errorf("error decoding document: %w", err)
	}

	return clone, nil
}

// sortDocuments orders docs by the given keys. The sort is stable, so
// documents with equal key values keep their relative insertion order.
// Documents missing a key field sort before documents that have it.
func sortDocuments(docs []models.Document, keys []query.SortKey) {
	if len(keys) == 0 {
		return
	}

	sort.SliceStable(docs, func(i, j int) bool {
		for _, key := range keys {
			a, okA := docs[i][key.Field]
			b, okB := docs[j][key.Field]

			if !okA && !okB {
				continue
			}
			if !okA {
				return true
			}
			if !okB {
				return false
			}

			cmp := compareValues(a, b)
			if cmp == 0 {
				continue
			}
			if key.Direction == query.Descending {
				return cmp > 0
			}
			return cmp < 0
		}
		return false
	})
}

// project applies an inclusion or exclusion field set in place. In
// inclusion mode the id field is always kept.
func project(doc models.Document, include, exclude []string) {
	if len(include) > 0 {
		keep := make(map[string]struct{}, len(include)+1)
		keep["id"] = struct{}{}
		for _, f := range include {
			keep[f] = struct{}{}
		}
		for field := range doc {
			if _, ok := keep[field]; !ok {
				delete(doc, field)
			}
		}
		return
	}

	for _, f := range exclude {
		delete(doc, f)
	}
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The trailbook Authors

package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trailbook/trailbook/internal/query"
	"github.com/trailbook/trailbook/models"
)

func TestMemStore_Insert(t *testing.T) {
	s := NewMemStore()
	defer s.Close()

	doc, err := s.Insert(context.Background(), "tours", models.Document{"name": "The Forest Hiker"})
	require.NoError(t, err)

	assert.NotEmpty(t, doc.ID(), "missing id must be server-assigned")
	assert.NotEmpty(t, doc.String("createdAt"))

	_, err = time.Parse(time.RFC3339Nano, doc.String("createdAt"))
	assert.NoError(t, err, "createdAt must be an RFC 3339 timestamp")

	rev, ok := doc.Number(query.RevisionField)
	require.True(t, ok)
	assert.Equal(t, 1.0, rev)
}

func TestMemStore_Insert_KeepsCallerID(t *testing.T) {
	s := NewMemStore()
	defer s.Close()

	doc, err := s.Insert(context.Background(), "tours", models.Document{"id": "t1", "name": "x"})
	require.NoError(t, err)
	assert.Equal(t, "t1", doc.ID())
}

func TestMemStore_Insert_NeverAliasesCallerDocument(t *testing.T) {
	s := NewMemStore()
	defer s.Close()

	original := models.Document{"id": "t1", "name": "before"}
	_, err := s.Insert(context.Background(), "tours", original)
	require.NoError(t, err)

	original["name"] = "after"

	stored, err := s.FindByID(context.Background(), "tours", "t1")
	require.NoError(t, err)
	assert.Equal(t, "before", stored["name"])
}

func TestMemStore_UpdateByID(t *testing.T) {
	s := NewMemStore()
	defer s.Close()

	_, err := s.Insert(context.Background(), "tours", models.Document{"id": "t1", "name": "old", "price": 100.0})
	require.NoError(t, err)

	updated, err := s.UpdateByID(context.Background(), "tours", "t1", models.Document{"price": 200.0})
	require.NoError(t, err)

	assert.Equal(t, "old", updated["name"], "unpatched fields survive")
	assert.Equal(t, 200.0, updated["price"])

	rev, _ := updated.Number(query.RevisionField)
	assert.Equal(t, 2.0, rev, "revision bumps on every update")
}

func TestMemStore_UpdateByID_PatchTouchesOnlyItsFields(t *testing.T) {
	s := NewMemStore()
	defer s.Close()

	_, err := s.Insert(context.Background(), "users", models.Document{
		"id":     "u1",
		"name":   "Ada",
		"email":  "ada@trailbook.dev",
		"active": true,
	})
	require.NoError(t, err)

	updated, err := s.UpdateByID(context.Background(), "users", "u1", models.Document{"active": false})
	require.NoError(t, err)

	assert.Equal(t, false, updated["active"])
	assert.Equal(t, "Ada", updated["name"], "fields absent from the patch stay intact")
	assert.Equal(t, "ada@trailbook.dev", updated["email"])
}

func TestMemStore_UpdateByID_ZeroValuesOverwrite(t *testing.T) {
	s := NewMemStore()
	defer s.Close()

	_, err := s.Insert(context.Background(), "users", models.Document{"id": "u1", "active": true})
	require.NoError(t, err)

	updated, err := s.UpdateByID(context.Background(), "users", "u1", models.Document{"active": false})
	require.NoError(t, err)
	assert.Equal(t, false, updated["active"])
}

func TestMemStore_UpdateByID_ExplicitNullDeletesField(t *testing.T) {
	s := NewMemStore()
	defer s.Close()

	_, err := s.Insert(context.Background(), "users", models.Document{
		"id":                       "u1",
		models.FieldResetTokenHash: "abcd",
	})
	require.NoError(t, err)

	updated, err := s.UpdateByID(context.Background(), "users", "u1", models.Document{
		models.FieldResetTokenHash: nil,
	})
	require.NoError(t, err)

	_, present := updated[models.FieldResetTokenHash]
	assert.False(t, present)
}

func TestMemStore_UpdateByID_ProtectedFields(t *testing.T) {
	s := NewMemStore()
	defer s.Close()

	inserted, err := s.Insert(context.Background(), "tours", models.Document{"id": "t1", "name": "x"})
	require.NoError(t, err)

	updated, err := s.UpdateByID(context.Background(), "tours", "t1", models.Document{
		"id":        "hijacked",
		"createdAt": "1999-01-01T00:00:00Z",
	})
	require.NoError(t, err)

	assert.Equal(t, "t1", updated.ID())
	assert.Equal(t, inserted.String("createdAt"), updated.String("createdAt"))
}

func TestMemStore_UpdateByID_NotFound(t *testing.T) {
	s := NewMemStore()
	defer s.Close()

	_, err := s.UpdateByID(context.Background(), "tours", "missing", models.Document{"price": 1.0})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemStore_UpdateByID_PreservesInsertionOrder(t *testing.T) {
	s := NewMemStore()
	defer s.Close()

	for _, id := range []string{"a", "b", "c"} {
		_, err := s.Insert(context.Background(), "tours", models.Document{"id": id})
		require.NoError(t, err)
	}

	_, err := s.UpdateByID(context.Background(), "tours", "a", models.Document{"touched": true})
	require.NoError(t, err)

	docs, err := s.Find(context.Background(), "tours", query.Descriptor{})
	require.NoError(t, err)
	require.Len(t, docs, 3)
	assert.Equal(t, "a", docs[0].ID())
	assert.Equal(t, "b", docs[1].ID())
	assert.Equal(t, "c", docs[2].ID())
}

func TestMemStore_DeleteByID(t *testing.T) {
	s := NewMemStore()
	defer s.Close()

	_, err := s.Insert(context.Background(), "tours", models.Document{"id": "t1"})
	require.NoError(t, err)

	deleted, err := s.DeleteByID(context.Background(), "tours", "t1")
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = s.FindByID(context.Background(), "tours", "t1")
	assert.ErrorIs(t, err, ErrNotFound)

	deleted, err = s.DeleteByID(context.Background(), "tours", "t1")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestMemStore_Find_FilterSortPaginate(t *testing.T) {
	s := NewMemStore()
	defer s.Close()

	seed := []models.Document{
		{"id": "t1", "difficulty": "easy", "price": 397.0},
		{"id": "t2", "difficulty": "medium", "price": 497.0},
		{"id": "t3", "difficulty": "easy", "price": 297.0},
		{"id": "t4", "difficulty": "easy", "price": 997.0},
	}
	for _, doc := range seed {
		_, err := s.Insert(context.Background(), "tours", doc)
		require.NoError(t, err)
	}

	docs, err := s.Find(context.Background(), "tours", query.Descriptor{
		Filter:   query.Filter{"difficulty": {{Op: query.OpEquals, Value: "easy"}}},
		SortKeys: []query.SortKey{{Field: "price", Direction: query.Descending}},
		Page:     query.Page{Number: 1, Size: 2},
	})
	require.NoError(t, err)

	require.Len(t, docs, 2)
	assert.Equal(t, "t4", docs[0].ID())
	assert.Equal(t, "t1", docs[1].ID())
}

func TestMemStore_Find_StableSortKeepsInsertionOrder(t *testing.T) {
	s := NewMemStore()
	defer s.Close()

	for _, id := range []string{"a", "b", "c"} {
		_, err := s.Insert(context.Background(), "tours", models.Document{"id": id, "price": 100.0})
		require.NoError(t, err)
	}

	docs, err := s.Find(context.Background(), "tours", query.Descriptor{
		SortKeys: []query.SortKey{{Field: "price", Direction: query.Ascending}},
	})
	require.NoError(t, err)

	require.Len(t, docs, 3)
	assert.Equal(t, "a", docs[0].ID())
	assert.Equal(t, "b", docs[1].ID())
	assert.Equal(t, "c", docs[2].ID())
}

func TestMemStore_Find_SortsFractionalTimestampsChronologically(t *testing.T) {
	s := NewMemStore()
	defer s.Close()

	seed := []models.Document{
		{"id": "late", "createdAt": "2026-03-01T10:00:00.51Z"},
		{"id": "early", "createdAt": "2026-03-01T10:00:00.5Z"},
	}
	for _, doc := range seed {
		_, err := s.Insert(context.Background(), "tours", doc)
		require.NoError(t, err)
	}

	docs, err := s.Find(context.Background(), "tours", query.Descriptor{
		SortKeys: []query.SortKey{{Field: "createdAt", Direction: query.Ascending}},
	})
	require.NoError(t, err)

	require.Len(t, docs, 2)
	assert.Equal(t, "early", docs[0].ID())
	assert.Equal(t, "late", docs[1].ID())
}

func TestMemStore_Find_Projection(t *testing.T) {
	s := NewMemStore()
	defer s.Close()

	_, err := s.Insert(context.Background(), "tours", models.Document{"id": "t1", "name": "x", "price": 1.0, "summary": "s"})
	require.NoError(t, err)

	docs, err := s.Find(context.Background(), "tours", query.Descriptor{
		Projection: query.Projection{Include: []string{"name"}},
	})
	require.NoError(t, err)

	require.Len(t, docs, 1)
	assert.Equal(t, "x", docs[0]["name"])
	assert.Equal(t, "t1", docs[0].ID(), "id is always kept in inclusion mode")
	_, hasPrice := docs[0]["price"]
	assert.False(t, hasPrice)
}

func TestMemStore_Find_PageBeyondEnd(t *testing.T) {
	s := NewMemStore()
	defer s.Close()

	_, err := s.Insert(context.Background(), "tours", models.Document{"id": "t1"})
	require.NoError(t, err)

	docs, err := s.Find(context.Background(), "tours", query.Descriptor{
		Page: query.Page{Number: 5, Size: 10},
	})
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestMemStore_Find_UnknownCollection(t *testing.T) {
	s := NewMemStore()
	defer s.Close()

	docs, err := s.Find(context.Background(), "bookings", query.Descriptor{})
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestMemStore_Count(t *testing.T) {
	s := NewMemStore()
	defer s.Close()

	for i, difficulty := range []string{"easy", "easy", "medium"} {
		_, err := s.Insert(context.Background(), "tours", models.Document{"id": string(rune('a' + i)), "difficulty": difficulty})
		require.NoError(t, err)
	}

	total, err := s.Count(context.Background(), "tours", nil)
	require.NoError(t, err)
	assert.Equal(t, 3, total)

	easy, err := s.Count(context.Background(), "tours", query.Filter{
		"difficulty": {{Op: query.OpEquals, Value: "easy"}},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, easy)
}

func TestMemStore_Closed(t *testing.T) {
	s := NewMemStore()
	s.Close()

	_, err := s.Insert(context.Background(), "tours", models.Document{})
	assert.ErrorIs(t, err, ErrStoreUnavailable)

	_, err = s.Find(context.Background(), "tours", query.Descriptor{})
	assert.ErrorIs(t, err, ErrStoreUnavailable)

	_, err = s.Count(context.Background(), "tours", nil)
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestMemStore_CanceledContext(t *testing.T) {
	s := NewMemStore()
	defer s.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Find(ctx, "tours", query.Descriptor{})
	assert.ErrorIs(t, err, context.Canceled)
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The trailbook Authors

package query

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_Defaults(t *testing.T) {
	d, err := Build(url.Values{}, DefaultControlParams)
	require.NoError(t, err)

	assert.Empty(t, d.Filter)
	assert.Equal(t, []SortKey{{Field: DefaultSortField, Direction: Descending}}, d.SortKeys)
	assert.Equal(t, Projection{Exclude: []string{RevisionField}}, d.Projection)
	assert.Equal(t, Page{Number: DefaultPageNumber, Size: DefaultPageSize}, d.Page)
	assert.False(t, d.PageRequested)
}

func TestBuild_FilterSortLimit(t *testing.T) {
	raw := url.Values{
		"difficulty":    {"easy"},
		"duration[gte]": {"5"},
		"sort":          {"-price"},
		"limit":         {"2"},
	}

	d, err := Build(raw, DefaultControlParams)
	require.NoError(t, err)

	assert.Equal(t, []Predicate{{Op: OpEquals, Value: "easy"}}, d.Filter["difficulty"])
	assert.Equal(t, []Predicate{{Op: OpGreaterOrEqual, Value: 5.0}}, d.Filter["duration"])
	assert.Equal(t, []SortKey{{Field: "price", Direction: Descending}}, d.SortKeys)
	assert.Equal(t, 2, d.Page.Size)
	assert.False(t, d.PageRequested)
}

func TestBuild_ControlParamsNeverLeakIntoFilter(t *testing.T) {
	raw := url.Values{
		"page":   {"2"},
		"sort":   {"price"},
		"limit":  {"10"},
		"fields": {"name,price"},
		"price":  {"497"},
	}

	d, err := Build(raw, DefaultControlParams)
	require.NoError(t, err)

	for _, param := range []string{"page", "sort", "limit", "fields"} {
		_, leaked := d.Filter[param]
		assert.False(t, leaked, "control parameter %q leaked into filter", param)
	}
	assert.Equal(t, []Predicate{{Op: OpEquals, Value: 497.0}}, d.Filter["price"])
}

func TestBuild_RangeBoundsConjoined(t *testing.T) {
	raw := url.Values{
		"price[gte]": {"400"},
		"price[lte]": {"1200"},
	}

	d, err := Build(raw, DefaultControlParams)
	require.NoError(t, err)

	require.Len(t, d.Filter["price"], 2)
	assert.ElementsMatch(t, []Predicate{
		{Op: OpGreaterOrEqual, Value: 400.0},
		{Op: OpLessOrEqual, Value: 1200.0},
	}, d.Filter["price"])
}

func TestBuild_ValueCoercion(t *testing.T) {
	raw := url.Values{
		"price[lt]":  {"997.5"},
		"secretTour": {"true"},
		"difficulty": {"medium"},
	}

	d, err := Build(raw, DefaultControlParams)
	require.NoError(t, err)

	assert.Equal(t, 997.5, d.Filter["price"][0].Value)
	assert.Equal(t, true, d.Filter["secretTour"][0].Value)
	assert.Equal(t, "medium", d.Filter["difficulty"][0].Value)
}

func TestBuild_MultiKeySort(t *testing.T) {
	raw := url.Values{"sort": {"-ratingsAverage,price"}}

	d, err := Build(raw, DefaultControlParams)
	require.NoError(t, err)

	assert.Equal(t, []SortKey{
		{Field: "ratingsAverage", Direction: Descending},
		{Field: "price", Direction: Ascending},
	}, d.SortKeys)
}

func TestBuild_FieldsProjection(t *testing.T) {
	raw := url.Values{"fields": {"name, price ,ratingsAverage"}}

	d, err := Build(raw, DefaultControlParams)
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "price", "ratingsAverage"}, d.Projection.Include)
	assert.Empty(t, d.Projection.Exclude)
}

func TestBuild_ExplicitPageRequested(t *testing.T) {
	raw := url.Values{"page": {"3"}, "limit": {"10"}}

	d, err := Build(raw, DefaultControlParams)
	require.NoError(t, err)

	assert.True(t, d.PageRequested)
	assert.Equal(t, Page{Number: 3, Size: 10}, d.Page)
	assert.Equal(t, 20, d.Page.Offset())
}

func TestBuild_InvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		raw   url.Values
		param string
	}{
		{"unknown suffix", url.Values{"duration[within]": {"5"}}, "duration[within]"},
		{"suffix without field", url.Values{"[gte]": {"5"}}, "[gte]"},
		{"suffix on control param", url.Values{"limit[gte]": {"5"}}, "limit[gte]"},
		{"page not a number", url.Values{"page": {"two"}}, "page"},
		{"page below one", url.Values{"page": {"0"}}, "page"},
		{"limit not a number", url.Values{"limit": {"many"}}, "limit"},
		{"limit below one", url.Values{"limit": {"-1"}}, "limit"},
		{"empty sort field", url.Values{"sort": {"price,,name"}}, "sort"},
		{"bare minus sort", url.Values{"sort": {"-"}}, "sort"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.raw, DefaultControlParams)
			require.Error(t, err)

			var invalid *InvalidQueryError
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, tt.param, invalid.Param)
		})
	}
}

func TestBuild_NeverProducesNotEquals(t *testing.T) {
	raw := url.Values{
		"secretTour":    {"true"},
		"duration[gte]": {"5"},
		"price[lt]":     {"1000"},
	}

	d, err := Build(raw, DefaultControlParams)
	require.NoError(t, err)

	for field, preds := range d.Filter {
		for _, p := range preds {
			assert.NotEqual(t, OpNotEquals, p.Op, "field %q carries a ne predicate", field)
		}
	}
}

func TestFilter_CloneIsIndependent(t *testing.T) {
	original := Filter{"price": {{Op: OpEquals, Value: 100.0}}}

	clone := original.Clone()
	clone["price"] = append(clone["price"], Predicate{Op: OpLessThan, Value: 50.0})
	clone["duration"] = []Predicate{{Op: OpEquals, Value: 7.0}}

	assert.Len(t, original["price"], 1)
	_, ok := original["duration"]
	assert.False(t, ok)
}

func TestPage_Past(t *testing.T) {
	page := Page{Number: 3, Size: 10}

	assert.True(t, page.Past(20), "offset 20 with total 20 is past the end")
	assert.False(t, page.Past(21))
}

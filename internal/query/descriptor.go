// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The trailbook Authors

// Package query turns untrusted request parameters into immutable query
// descriptors and builds the fixed aggregation pipelines used for tour
// statistics and geospatial lookups.
//
// A Descriptor is fully resolved at construction time: it carries no raw
// user input and is never mutated after Build returns. The document store
// capability consumes descriptors as-is; this package never executes a
// query itself.
package query

// Op identifies a comparison operator inside a filter predicate.
type Op string

// Comparison operators supported by filter predicates. OpNotEquals is
// reserved for internally injected predicates (visibility filters); the
// builder never produces it from request parameters.
const (
	OpEquals         Op = "eq"
	OpNotEquals      Op = "ne"
	OpGreaterThan    Op = "gt"
	OpGreaterOrEqual Op = "gte"
	OpLessThan       Op = "lt"
	OpLessOrEqual    Op = "lte"
)

// Predicate is a single comparison applied to a document field. Value is
// either a float64 (when the raw parameter parses as a number) or a string.
type Predicate struct {
	Op    Op
	Value any
}

// Filter maps a document field to the predicates it must satisfy. Multiple
// predicates on the same field are conjoined (e.g. a gte and an lte bound).
type Filter map[string][]Predicate

// Clone returns an independent copy of the filter. Hooks operate on clones
// so that the originating descriptor stays immutable.
func (f Filter) Clone() Filter {
	if f == nil {
		return Filter{}
	}
	out := make(Filter, len(f))
	for field, preds := range f {
		cp := make([]Predicate, len(preds))
		copy(cp, preds)
		out[field] = cp
	}
	return out
}

// With returns a copy of the filter with an additional predicate on field.
func (f Filter) With(field string, p Predicate) Filter {
	out := f.Clone()
	out[field] = append(out[field], p)
	return out
}

// Direction is a sort direction.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

// SortKey is one (field, direction) pair of an ordered sort specification.
type SortKey struct {
	Field     string
	Direction Direction
}

// Projection restricts the fields returned for each document. Include and
// Exclude are mutually exclusive: at most one of them is non-empty.
type Projection struct {
	Include []string
	Exclude []string
}

// Page is a 1-based pagination window.
type Page struct {
	// Number is the page number, always >= 1.
	Number int

	// Size is the page size, always >= 1.
	Size int
}

// Offset returns the number of documents to skip before the window starts.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

// Past reports whether the window starts at or beyond the given total
// result count, i.e. whether the requested page is empty. Callers that saw
// an explicit page parameter map this to ErrEmptyPage, never to a not-found
// failure.
func (p Page) Past(total int) bool {
	return p.Offset() >= total
}

// Descriptor is an immutable, fully-resolved representation of a find
// query: filter, ordered sort keys, field projection, and pagination
// window. Control parameters (page, sort, limit, fields) are consumed
// during construction and never appear among the filter keys.
type Descriptor struct {
	Filter     Filter
	SortKeys   []SortKey
	Projection Projection
	Page       Page

	// PageRequested records whether the page parameter was explicitly
	// supplied. Only explicitly requested pages participate in the
	// empty-page check; the implicit first page simply returns whatever
	// documents exist.
	PageRequested bool
}

// WithFilter returns a copy of the descriptor carrying the given filter.
// Used by the facade after the hook chain has produced the effective
// filter; the original descriptor is left untouched.
func (d Descriptor) WithFilter(f Filter) Descriptor {
	d.Filter = f
	return d
}

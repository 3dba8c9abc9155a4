// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The trailbook Authors

package query

import (
	"strconv"
	"strings"
)

// Control parameter names consumed by Build. They shape the descriptor and
// are never treated as data filters.
const (
	ParamPage   = "page"
	ParamSort   = "sort"
	ParamLimit  = "limit"
	ParamFields = "fields"
)

// DefaultControlParams is the reserved parameter set used by every resource
// facade.
var DefaultControlParams = map[string]struct{}{
	ParamPage:   {},
	ParamSort:   {},
	ParamLimit:  {},
	ParamFields: {},
}

// Pagination defaults applied when the corresponding parameter is absent.
const (
	DefaultPageNumber = 1
	DefaultPageSize   = 100
)

// DefaultSortField orders results by creation time, newest first, when no
// sort parameter is supplied.
const DefaultSortField = "createdAt"

// RevisionField is the internal revision marker maintained by the store.
// It is excluded from results unless the caller asks for specific fields.
const RevisionField = "__rev"

// comparison suffixes accepted inside bracketed parameter keys, e.g.
// "duration[gte]=5". Any other suffix is rejected.
var comparisonSuffixes = map[string]Op{
	"gt":  OpGreaterThan,
	"gte": OpGreaterOrEqual,
	"lt":  OpLessThan,
	"lte": OpLessOrEqual,
}

// Build translates a raw parameter map (typically url.Values) into an
// immutable Descriptor. Keys listed in control are consumed as control
// parameters; every remaining key becomes a filter predicate: a plain key
// yields an equality predicate, a bracketed key ("field[gte]") yields the
// corresponding comparison predicate.
//
// Numeric parameter values are parsed defensively; a non-numeric page or
// limit, an unknown comparison suffix, or a malformed bracketed key fails
// with *InvalidQueryError naming the offending parameter.
func Build(raw map[string][]string, control map[string]struct{}) (Descriptor, error) {
	if control == nil {
		control = DefaultControlParams
	}

	d := Descriptor{
		Filter: Filter{},
		Page:   Page{Number: DefaultPageNumber, Size: DefaultPageSize},
	}

	for key, values := range raw {
		value := firstValue(values)

		field, suffix, bracketed := splitBracketedKey(key)

		if !bracketed {
			if _, isControl := control[key]; isControl {
				continue // handled below, never a data filter
			}
			d.Filter[key] = append(d.Filter[key], Predicate{Op: OpEquals, Value: coerceValue(value)})
			continue
		}

		op, known := comparisonSuffixes[suffix]
		if !known {
			return Descriptor{}, &InvalidQueryError{Param: key, Reason: "unsupported comparison suffix " + strconv.Quote(suffix)}
		}
		if field == "" {
			return Descriptor{}, &InvalidQueryError{Param: key, Reason: "missing field name before comparison suffix"}
		}
		if _, isControl := control[field]; isControl {
			return Descriptor{}, &InvalidQueryError{Param: key, Reason: "comparison suffix not allowed on control parameter"}
		}

		d.Filter[field] = append(d.Filter[field], Predicate{Op: op, Value: coerceValue(value)})
	}

	if err := buildSort(&d, raw); err != nil {
		return Descriptor{}, err
	}
	buildProjection(&d, raw)
	if err := buildPagination(&d, raw); err != nil {
		return Descriptor{}, err
	}

	return d, nil
}

// buildSort resolves the sort parameter into ordered sort keys. A leading
// '-' marks a descending key. Ties between equal sort-key values are broken
// by document insertion order in the store (stable sort), so repeated
// builds of the same input order results identically.
func buildSort(d *Descriptor, raw map[string][]string) error {
	rawSort := firstValue(raw[ParamSort])
	if rawSort == "" {
		d.SortKeys = []SortKey{{Field: DefaultSortField, Direction: Descending}}
		return nil
	}

	for _, part := range strings.Split(rawSort, ",") {
		part = strings.TrimSpace(part)
		if part == "" || part == "-" {
			return &InvalidQueryError{Param: ParamSort, Reason: "empty sort field"}
		}

		key := SortKey{Field: part, Direction: Ascending}
		if strings.HasPrefix(part, "-") {
			key = SortKey{Field: part[1:], Direction: Descending}
		}
		d.SortKeys = append(d.SortKeys, key)
	}

	return nil
}

// buildProjection resolves the fields parameter into an inclusion list.
// Absent, the projection excludes only the store's internal revision
// marker. Inclusion and exclusion are never mixed in one descriptor.
func buildProjection(d *Descriptor, raw map[string][]string) {
	rawFields := firstValue(raw[ParamFields])
	if rawFields == "" {
		d.Projection = Projection{Exclude: []string{RevisionField}}
		return
	}

	var include []string
	for _, part := range strings.Split(rawFields, ",") {
		if part = strings.TrimSpace(part); part != "" {
			include = append(include, part)
		}
	}
	d.Projection = Projection{Include: include}
}

// buildPagination resolves page and limit into the pagination window.
func buildPagination(d *Descriptor, raw map[string][]string) error {
	if rawPage := firstValue(raw[ParamPage]); rawPage != "" {
		page, err := strconv.Atoi(rawPage)
		if err != nil {
			return &InvalidQueryError{Param: ParamPage, Reason: "not a number"}
		}
		if page < 1 {
			return &InvalidQueryError{Param: ParamPage, Reason: "must be >= 1"}
		}
		d.Page.Number = page
		d.PageRequested = true
	}

	if rawLimit := firstValue(raw[ParamLimit]); rawLimit != "" {
		limit, err := strconv.Atoi(rawLimit)
		if err != nil {
			return &InvalidQueryError{Param: ParamLimit, Reason: "not a number"}
		}
		if limit < 1 {
			return &InvalidQueryError{Param: ParamLimit, Reason: "must be >= 1"}
		}
		d.Page.Size = limit
	}

	return nil
}

// splitBracketedKey splits "duration[gte]" into ("duration", "gte", true).
// Keys without a well-formed "[suffix]" tail are returned unchanged with
// bracketed=false.
func splitBracketedKey(key string) (field, suffix string, bracketed bool) {
	open := strings.IndexByte(key, '[')
	if open < 0 || !strings.HasSuffix(key, "]") {
		return key, "", false
	}
	return key[:open], key[open+1 : len(key)-1], true
}

// coerceValue converts a raw parameter value into its typed form: numbers
// become float64 so that comparison predicates order numerically, booleans
// become bool, everything else stays a string.
func coerceValue(raw string) any {
	if n, err := strconv.ParseFloat(raw, 64); err == nil {
		return n
	}
	if b, err := strconv.ParseBool(raw); err == nil {
		return b
	}
	return raw
}

func firstValue(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

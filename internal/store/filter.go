// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The trailbook Authors

package store

import (
	"fmt"
	"strings"
	"time"

	"github.com/trailbook/trailbook/internal/query"
	"github.com/trailbook/trailbook/models"
)

// matchFilter evaluates a document against a filter. All predicates must
// hold. A comparison against a missing field fails, with one exception:
// a not-equals predicate on a missing field holds; this is what lets the
// visibility filters (secretTour != true, active != false) pass documents
// that never set the flag.
func matchFilter(doc models.Document, f query.Filter) bool {
	for field, predicates := range f {
		value, exists := doc[field]

		for _, p := range predicates {
			if !exists {
				if p.Op == query.OpNotEquals {
					continue
				}
				return false
			}

			cmp := compareValues(value, p.Value)
			switch p.Op {
			case query.OpEquals:
				if cmp != 0 {
					return false
				}
			case query.OpNotEquals:
				if cmp == 0 {
					return false
				}
			case query.OpGreaterThan:
				if cmp <= 0 {
					return false
				}
			case query.OpGreaterOrEqual:
				if cmp < 0 {
					return false
				}
			case query.OpLessThan:
				if cmp >= 0 {
					return false
				}
			case query.OpLessOrEqual:
				if cmp > 0 {
					return false
				}
			default:
				return false
			}
		}
	}

	return true
}

// compareValues compares two document values. Returns -1 if a<b, 0 if
// a==b, 1 if a>b. When both sides convert to numbers the comparison is
// numeric; when both parse as RFC 3339 timestamps it is chronological;
// otherwise both are compared as strings.
func compareValues(a, b any) int {
	if numA, okA := toFloat64(a); okA {
		if numB, okB := toFloat64(b); okB {
			switch {
			case numA < numB:
				return -1
			case numA > numB:
				return 1
			default:
				return 0
			}
		}
	}

	strA := fmt.Sprintf("%v", a)
	strB := fmt.Sprintf("%v", b)
	if cmp, ok := compareTimestamps(strA, strB); ok {
		return cmp
	}

	return strings.Compare(strA, strB)
}

// compareTimestamps compares two strings chronologically when both parse
// as RFC 3339 timestamps. Lexicographic comparison is not safe for stored
// timestamps: the nanosecond format trims trailing fraction zeros, so one
// fraction can be a prefix of another and the shorter value would sort
// after it ('Z' compares greater than any digit).
func compareTimestamps(a, b string) (int, bool) {
	tA, err := time.Parse(time.RFC3339Nano, a)
	if err != nil {
		return 0, false
	}
	tB, err := time.Parse(time.RFC3339Nano, b)
	if err != nil {
		return 0, false
	}

	switch {
	case tA.Before(tB):
		return -1, true
	case tA.After(tB):
		return 1, true
	default:
		return 0, true
	}
}

// toFloat64 attempts to convert a document value to float64. Booleans and
// strings are not numbers; documents loaded through JSON carry float64 for
// every numeric field, the remaining cases cover values built in Go code.
func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

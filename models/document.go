// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The trailbook Authors

package models

// Document is the schemaless unit of storage exchanged with the document
// store capability. Field values follow JSON typing rules: numbers are
// float64, timestamps are RFC 3339 strings, nested objects are
// map[string]any.
type Document map[string]any

// ID returns the document identifier, or the empty string when the
// document has not been persisted yet.
func (d Document) ID() string {
	id, _ := d["id"].(string)
	return id
}

// String returns the named field as a string. Missing fields and fields of
// a different type yield the empty string.
func (d Document) String(field string) string {
	s, _ := d[field].(string)
	return s
}

// Number returns the named field as a float64 together with a flag
// reporting whether the field was present and numeric.
func (d Document) Number(field string) (float64, bool) {
	switch v := d[field].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

// Bool returns the named field as a bool together with a flag reporting
// whether the field was present and boolean.
func (d Document) Bool(field string) (bool, bool) {
	b, ok := d[field].(bool)
	return b, ok
}

// Clone returns a shallow copy of the document. Nested maps and slices are
// shared with the receiver; callers that mutate nested values should use the
// store's deep-cloning reads instead.
func (d Document) Clone() Document {
	if d == nil {
		return nil
	}
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

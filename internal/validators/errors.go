// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The trailbook Authors

package validators

import (
	"fmt"
	"sort"
	"strings"
)

// ValidationError reports schema constraint violations on a write. It
// always carries a field→reason mapping, never a single opaque message, so
// the transport layer can render per-field feedback.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var b strings.Builder
	b.WriteString("validation failed:")
	for _, field := range fields {
		fmt.Fprintf(&b, " %s: %s;", field, e.Fields[field])
	}
	return strings.TrimSuffix(b.String(), ";")
}

// errorFor builds a ValidationError unless the collected field map is
// empty, in which case validation passed.
func errorFor(fields map[string]string) error {
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

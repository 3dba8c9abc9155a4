// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The trailbook Authors

package query

import (
	"errors"
	"fmt"
)

// ErrEmptyPage signals that an explicitly requested page lies past the end
// of the result set. It is a legitimate empty-result marker, not a failure:
// the facade maps it to an empty success payload and the transport layer
// must never translate it to a not-found status.
var ErrEmptyPage = errors.New("requested page is past the end of the result set")

// InvalidQueryError reports a malformed or unsupported request parameter.
// It always names the offending parameter so the caller can correct it.
type InvalidQueryError struct {
	// Param is the raw parameter name as received, e.g. "limit" or
	// "duration[between]".
	Param string

	// Reason describes what is wrong with the parameter value.
	Reason string
}

func (e *InvalidQueryError) Error() string {
	return fmt.Sprintf("invalid query parameter %q: %s", e.Param, e.Reason)
}

// IsInvalidQuery reports whether err is (or wraps) an *InvalidQueryError.
func IsInvalidQuery(err error) bool {
	var iq *InvalidQueryError
	return errors.As(err, &iq)
}

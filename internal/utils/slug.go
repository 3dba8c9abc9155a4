// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The trailbook Authors

package utils

import (
	"strings"
	"unicode"
)

// Slugify derives a URL-safe slug from a display name: letters and digits
// are lower-cased, every other run of characters collapses into a single
// hyphen, and leading/trailing hyphens are trimmed.
//
// Returns the empty string when the input contains no letters or digits at
// all; callers treat that as an error.
func Slugify(name string) string {
	var b strings.Builder
	b.Grow(len(name))

	lastHyphen := true // suppress a leading hyphen
	for _, r := range name {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(unicode.ToLower(r))
			lastHyphen = false
		case !lastHyphen:
			b.WriteByte('-')
			lastHyphen = true
		}
	}

	return strings.TrimSuffix(b.String(), "-")
}

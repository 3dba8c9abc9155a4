// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The trailbook Authors

package utils

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple name", "The Forest Hiker", "the-forest-hiker"},
		{"punctuation collapses", "Sea -- & -- Surf!", "sea-surf"},
		{"digits kept", "Top 10 Trails 2026", "top-10-trails-2026"},
		{"leading and trailing junk", "  ...Snow Adventurer...  ", "snow-adventurer"},
		{"already a slug", "city-wanderer", "city-wanderer"},
		{"unicode letters lowered", "Fjällräven Trek", "fjällräven-trek"},
		{"no sluggable characters", "!!! ---", ""},
		{"empty input", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slugify(tt.in); got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

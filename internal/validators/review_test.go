// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The trailbook Authors

package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trailbook/trailbook/models"
)

func TestValidateReview_Valid(t *testing.T) {
	doc := models.Document{
		"review": "Absolutely stunning views.",
		"rating": 5.0,
		"tour":   "t1",
		"user":   "u1",
	}
	assert.NoError(t, ValidateReview(doc, false))
}

func TestValidateReview_MissingRequiredFields(t *testing.T) {
	err := ValidateReview(models.Document{}, false)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	for _, field := range []string{"review", "rating", "tour", "user"} {
		assert.Contains(t, verr.Fields, field)
	}
}

func TestValidateReview_RatingBounds(t *testing.T) {
	for _, rating := range []float64{0.0, 5.5} {
		doc := models.Document{
			"review": "meh",
			"rating": rating,
			"tour":   "t1",
			"user":   "u1",
		}

		err := ValidateReview(doc, false)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "rating")
	}
}

func TestValidateReview_PartialSkipsAbsentFields(t *testing.T) {
	assert.NoError(t, ValidateReview(models.Document{"rating": 4.0}, true))
}

func TestValidationError_MessageListsFieldsSorted(t *testing.T) {
	err := &ValidationError{Fields: map[string]string{
		"rating": "must be between 1 and 5",
		"review": "a review cannot be empty",
	}}

	assert.Equal(t, "validation failed: rating: must be between 1 and 5; review: a review cannot be empty", err.Error())
}

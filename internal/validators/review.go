// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The trailbook Authors

package validators

import "github.com/trailbook/trailbook/models"

// ValidateReview checks a review document. With partial set, only fields
// present in the document are validated.
func ValidateReview(doc models.Document, partial bool) error {
	fields := map[string]string{}

	checkRequiredString(fields, doc, "review", partial, "a review cannot be empty")
	checkRequiredString(fields, doc, "tour", partial, "a review must belong to a tour")
	checkRequiredString(fields, doc, "user", partial, "a review must belong to a user")

	checkRequiredNumber(fields, doc, "rating", partial, "a review must have a rating")
	if rating, ok := doc.Number("rating"); ok && (rating < 1 || rating > 5) {
		fields["rating"] = "must be between 1 and 5"
	}

	return errorFor(fields)
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The trailbook Authors

// Package validators checks incoming resource documents against their
// schemas before anything reaches the store. Every failure is reported
// per-field; normalization (defaults, rounding) happens here too so the
// policy lives in exactly one place.
package validators

import (
	"math"

	"github.com/trailbook/trailbook/models"
)

// Tour name length bounds.
const (
	TourNameMinLength = 10
	TourNameMaxLength = 40
)

var allowedDifficulties = map[string]struct{}{
	models.DifficultyEasy:      {},
	models.DifficultyMedium:    {},
	models.DifficultyDifficult: {},
}

// ValidateTour checks a tour document. With partial set, only fields
// present in the document are validated (update patches); otherwise all
// required fields must be present (create).
func ValidateTour(doc models.Document, partial bool) error {
	fields := map[string]string{}

	checkRequiredString(fields, doc, "name", partial, "a tour must have a name")
	if name, ok := doc["name"].(string); ok {
		if len(name) < TourNameMinLength {
			fields["name"] = "must have at least 10 characters"
		} else if len(name) > TourNameMaxLength {
			fields["name"] = "must have at most 40 characters"
		}
	}

	checkRequiredNumber(fields, doc, "duration", partial, "a tour must have a duration")
	checkRequiredNumber(fields, doc, "maxGroupSize", partial, "a tour must have a group size")
	checkRequiredNumber(fields, doc, "price", partial, "a tour must have a price")
	checkRequiredString(fields, doc, "summary", partial, "a tour must have a summary")
	checkRequiredString(fields, doc, "imageCover", partial, "a tour must have a cover image")

	if !partial || hasField(doc, "difficulty") {
		difficulty, _ := doc["difficulty"].(string)
		if _, ok := allowedDifficulties[difficulty]; !ok {
			fields["difficulty"] = "must be one of: easy, medium, difficult"
		}
	}

	if rating, ok := doc.Number("ratingsAverage"); ok {
		if rating < 1 || rating > 5 {
			fields["ratingsAverage"] = "must be between 1.0 and 5.0"
		}
	}

	if discount, ok := doc.Number("priceDiscount"); ok {
		price, hasPrice := doc.Number("price")
		if hasPrice && discount >= price {
			fields["priceDiscount"] = "discount price should be below the regular price"
		}
	}

	return errorFor(fields)
}

// NormalizeTour applies write-time normalization: ratingsAverage is
// rounded to one decimal on every write, and a missing rating on create
// gets the 4.5 default. Applied after validation so range checks see the
// raw value.
func NormalizeTour(doc models.Document, partial bool) {
	if rating, ok := doc.Number("ratingsAverage"); ok {
		doc["ratingsAverage"] = math.Round(rating*10) / 10
	} else if !partial {
		doc["ratingsAverage"] = 4.5
	}

	if _, ok := doc.Number("ratingsQuantity"); !ok && !partial {
		doc["ratingsQuantity"] = float64(0)
	}
}

func hasField(doc models.Document, field string) bool {
	_, ok := doc[field]
	return ok
}

func checkRequiredString(fields map[string]string, doc models.Document, field string, partial bool, reason string) {
	if partial && !hasField(doc, field) {
		return
	}
	if s, ok := doc[field].(string); !ok || s == "" {
		fields[field] = reason
	}
}

func checkRequiredNumber(fields map[string]string, doc models.Document, field string, partial bool, reason string) {
	if partial && !hasField(doc, field) {
		return
	}
	if _, ok := doc.Number(field); !ok {
		fields[field] = reason
	}
}

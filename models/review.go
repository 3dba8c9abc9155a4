// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The trailbook Authors

package models

// Review represents a user's rating of a tour.
type Review struct {
	// ID is the server-assigned document identifier.
	ID string `json:"id,omitempty"`

	// Review is the free-form review text.
	Review string `json:"review"`

	// Rating is the numeric rating, 1–5.
	Rating float64 `json:"rating"`

	// Tour references the reviewed tour document.
	Tour string `json:"tour"`

	// User references the authoring user document.
	User string `json:"user"`

	// CreatedAt is the RFC 3339 creation timestamp, assigned by the store.
	CreatedAt string `json:"createdAt,omitempty"`
}

// CollectionReviews is the store collection holding review documents.
const CollectionReviews = "reviews"

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The trailbook Authors

package models

// Difficulty levels accepted for a tour. Any other value is rejected by the
// tour validator at create and update time.
const (
	DifficultyEasy      = "easy"
	DifficultyMedium    = "medium"
	DifficultyDifficult = "difficult"
)

// GeoPoint is a WGS 84 coordinate pair. Longitude comes first to match the
// GeoJSON convention used in persisted location fields.
type GeoPoint struct {
	// Lng is the longitude in decimal degrees, range [-180, 180].
	Lng float64 `json:"lng"`

	// Lat is the latitude in decimal degrees, range [-90, 90].
	Lat float64 `json:"lat"`
}

// Location describes a named stop on a tour itinerary.
type Location struct {
	// Coordinates is the [lng, lat] pair of the stop.
	Coordinates []float64 `json:"coordinates"`

	// Address is the free-form postal address of the stop.
	Address string `json:"address,omitempty"`

	// Description is a short human-readable label for the stop.
	Description string `json:"description,omitempty"`

	// Day is the 1-based itinerary day on which the stop is visited.
	Day int `json:"day,omitempty"`
}

// Tour represents a bookable tour offering. It is the typed counterpart of
// the "tours" collection document; the facade accepts and returns documents,
// this struct exists for seeding and request decoding.
type Tour struct {
	// ID is the server-assigned document identifier.
	ID string `json:"id,omitempty"`

	// Name is the unique display name of the tour, 10–40 characters.
	Name string `json:"name"`

	// Slug is the URL-safe identifier derived from Name at create time.
	// It is never supplied by clients.
	Slug string `json:"slug,omitempty"`

	// Duration is the tour length in days.
	Duration float64 `json:"duration"`

	// MaxGroupSize is the maximum number of participants.
	MaxGroupSize float64 `json:"maxGroupSize"`

	// Difficulty is one of the Difficulty* constants.
	Difficulty string `json:"difficulty"`

	// RatingsAverage is the mean review rating, 1.0–5.0, stored rounded
	// to one decimal.
	RatingsAverage float64 `json:"ratingsAverage,omitempty"`

	// RatingsQuantity is the number of reviews received.
	RatingsQuantity float64 `json:"ratingsQuantity,omitempty"`

	// Price is the per-person price.
	Price float64 `json:"price"`

	// PriceDiscount, when set, must be strictly below Price.
	PriceDiscount float64 `json:"priceDiscount,omitempty"`

	// Summary is the short marketing description.
	Summary string `json:"summary"`

	// Description is the long-form description.
	Description string `json:"description,omitempty"`

	// ImageCover is the cover image file name.
	ImageCover string `json:"imageCover"`

	// Images holds additional image file names.
	Images []string `json:"images,omitempty"`

	// CreatedAt is the RFC 3339 creation timestamp, assigned by the store.
	CreatedAt string `json:"createdAt,omitempty"`

	// StartDates lists the scheduled departures as RFC 3339 timestamps.
	StartDates []string `json:"startDates,omitempty"`

	// SecretTour marks tours hidden from the general query path by the
	// visibility hook. Only explicit administrative access can reach them.
	SecretTour bool `json:"secretTour,omitempty"`

	// StartLocation is the GeoJSON-style departure point.
	StartLocation *Location `json:"startLocation,omitempty"`

	// Locations lists the itinerary stops.
	Locations []Location `json:"locations,omitempty"`
}

// CollectionTours is the store collection holding tour documents.
const CollectionTours = "tours"

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The trailbook Authors

package query

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/trailbook/trailbook/models"
)

// Unit is a distance unit accepted by the geospatial pipelines.
type Unit string

const (
	UnitMiles      Unit = "mi"
	UnitKilometers Unit = "km"
)

// Raw geo distances are meters; these multipliers convert them to the
// requested unit.
const (
	metersToMiles      = 0.000621371
	metersToKilometers = 0.001
)

// ParseUnit validates a raw unit parameter.
func ParseUnit(raw string) (Unit, error) {
	switch Unit(raw) {
	case UnitMiles, UnitKilometers:
		return Unit(raw), nil
	default:
		return "", &InvalidQueryError{Param: "unit", Reason: `must be "mi" or "km"`}
	}
}

// Multiplier returns the meters-to-unit conversion factor.
func (u Unit) Multiplier() float64 {
	if u == UnitMiles {
		return metersToMiles
	}
	return metersToKilometers
}

// ParseLatLng parses a "lat,lng" pair and validates the coordinate ranges.
// Malformed coordinates fail with *InvalidQueryError before any pipeline
// stage is built.
func ParseLatLng(raw string) (models.GeoPoint, error) {
	parts := strings.Split(raw, ",")
	if len(parts) != 2 {
		return models.GeoPoint{}, &InvalidQueryError{Param: "latlng", Reason: "expected format lat,lng"}
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return models.GeoPoint{}, &InvalidQueryError{Param: "latlng", Reason: "latitude is not a number"}
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return models.GeoPoint{}, &InvalidQueryError{Param: "latlng", Reason: "longitude is not a number"}
	}
	if lat < -90 || lat > 90 {
		return models.GeoPoint{}, &InvalidQueryError{Param: "latlng", Reason: "latitude out of range [-90, 90]"}
	}
	if lng < -180 || lng > 180 {
		return models.GeoPoint{}, &InvalidQueryError{Param: "latlng", Reason: "longitude out of range [-180, 180]"}
	}

	return models.GeoPoint{Lat: lat, Lng: lng}, nil
}

// TourStats builds the difficulty-level statistics pipeline: well-rated
// tours (ratingsAverage >= 4.5) grouped by upper-cased difficulty with
// count, rating and price aggregates, ordered by ascending average price,
// with the EASY bucket dropped from the final output.
//
// The stage sequence is fixed and parameterless; it is never assembled
// from request input.
func TourStats() Pipeline {
	return Pipeline{Stages: []Stage{
		MatchStage{Filter: Filter{
			"ratingsAverage": {{Op: OpGreaterOrEqual, Value: 4.5}},
		}},
		GroupStage{
			Key: GroupKey{Field: "difficulty", Transform: TransformUpper},
			Accumulators: []Accumulator{
				{Name: "numTours", Op: AccCount},
				{Name: "numRatings", Op: AccSum, Field: "ratingsQuantity"},
				{Name: "avgRating", Op: AccAvg, Field: "ratingsAverage"},
				{Name: "avgPrice", Op: AccAvg, Field: "price"},
				{Name: "minPrice", Op: AccMin, Field: "price"},
				{Name: "maxPrice", Op: AccMax, Field: "price"},
			},
		},
		SortStage{Keys: []SortKey{{Field: "avgPrice", Direction: Ascending}}},
		MatchStage{Filter: Filter{
			GroupIDField: {{Op: OpNotEquals, Value: "EASY"}},
		}},
	}}
}

// MonthlyPlan builds the per-month departure plan for one calendar year:
// each scheduled start date becomes its own document, dates outside the
// year are dropped, departures are grouped by month with their tour names
// collected, and the busiest months come first, capped at twelve groups.
func MonthlyPlan(year int) Pipeline {
	from := fmt.Sprintf("%d-01-01T00:00:00Z", year)
	to := fmt.Sprintf("%d-12-31T23:59:59Z", year)

	return Pipeline{Stages: []Stage{
		UnwindStage{Field: "startDates"},
		MatchStage{Filter: Filter{
			"startDates": {
				{Op: OpGreaterOrEqual, Value: from},
				{Op: OpLessOrEqual, Value: to},
			},
		}},
		GroupStage{
			Key: GroupKey{Field: "startDates", Transform: TransformMonth},
			Accumulators: []Accumulator{
				{Name: "numTourStarts", Op: AccCount},
				{Name: "tours", Op: AccPush, Field: "name"},
			},
		},
		AddFieldStage{Name: "month", FromField: GroupIDField},
		ProjectStage{Exclude: []string{GroupIDField}},
		SortStage{Keys: []SortKey{{Field: "numTourStarts", Direction: Descending}}},
		LimitStage{N: 12},
	}}
}

// Distances builds the pipeline computing the distance from origin to
// every tour's start location, expressed in the given unit, keeping only
// the distance and name fields. Output is ordered nearest first by the
// GeoNear stage itself.
func Distances(origin models.GeoPoint, unit Unit) Pipeline {
	return Pipeline{Stages: []Stage{
		GeoNearStage{
			Origin:        origin,
			DistanceField: "distance",
			Multiplier:    unit.Multiplier(),
		},
		ProjectStage{Include: []string{"distance", "name"}},
	}}
}

// ToursWithin builds the pipeline selecting the tours whose start location
// lies within maxDistance (in the given unit) of origin: the geo stage
// computes per-tour distances and a match stage keeps the ones inside the
// radius.
func ToursWithin(origin models.GeoPoint, maxDistance float64, unit Unit) Pipeline {
	return Pipeline{Stages: []Stage{
		GeoNearStage{
			Origin:        origin,
			DistanceField: "distance",
			Multiplier:    unit.Multiplier(),
		},
		MatchStage{Filter: Filter{
			"distance": {{Op: OpLessOrEqual, Value: maxDistance}},
		}},
	}}
}

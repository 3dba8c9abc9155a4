// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The trailbook Authors

package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/trailbook/trailbook/internal/query"
)

// aliasTopTours rewrites the query string to the canonical "top five
// cheap" selection before the generic list handler runs: the five
// best-rated tours, cheapest first among equals, trimmed to the summary
// fields.
func aliasTopTours(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		q.Set("limit", "5")
		q.Set("sort", "-ratingsAverage,price")
		q.Set("fields", "name,price,ratingsAverage,summary,difficulty")
		r.URL.RawQuery = q.Encode()

		next.ServeHTTP(w, r)
	})
}

// tourStats handles GET /tour-stats.
func (h *Handler) tourStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.services.Tours.Stats(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, "stats", stats)
}

// monthlyPlan handles GET /monthly-plan/{year}.
func (h *Handler) monthlyPlan(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		respondError(w, r, &query.InvalidQueryError{Param: "year", Reason: "must be a calendar year"})
		return
	}

	plan, err := h.services.Tours.MonthlyPlan(r.Context(), year)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, "plan", plan)
}

// toursWithin handles GET /tours-within/{distance}/center/{latlng}/unit/{unit}.
func (h *Handler) toursWithin(w http.ResponseWriter, r *http.Request) {
	maxDistance, err := strconv.ParseFloat(chi.URLParam(r, "distance"), 64)
	if err != nil || maxDistance < 0 {
		respondError(w, r, &query.InvalidQueryError{Param: "distance", Reason: "must be a non-negative number"})
		return
	}

	origin, err := query.ParseLatLng(chi.URLParam(r, "latlng"))
	if err != nil {
		respondError(w, r, err)
		return
	}

	unit, err := query.ParseUnit(chi.URLParam(r, "unit"))
	if err != nil {
		respondError(w, r, err)
		return
	}

	tours, err := h.services.Tours.ToursWithin(r.Context(), origin, maxDistance, unit)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondList(w, r, "tours", tours, len(tours), 0, false)
}

// tourDistances handles GET /distances/{latlng}/unit/{unit}.
func (h *Handler) tourDistances(w http.ResponseWriter, r *http.Request) {
	origin, err := query.ParseLatLng(chi.URLParam(r, "latlng"))
	if err != nil {
		respondError(w, r, err)
		return
	}

	unit, err := query.ParseUnit(chi.URLParam(r, "unit"))
	if err != nil {
		respondError(w, r, err)
		return
	}

	distances, err := h.services.Tours.Distances(r.Context(), origin, unit)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, "distances", distances)
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The trailbook Authors

package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/trailbook/trailbook/internal/logger"
	"github.com/trailbook/trailbook/internal/service"
	"github.com/trailbook/trailbook/models"
)

// resourceHandlers serves the uniform CRUD surface of one resource type.
// Tours, users, and reviews all share this code; only the facade and the
// payload key names differ per resource.
type resourceHandlers struct {
	svc service.ResourceService

	// singular and plural are the payload keys, e.g. "tour" / "tours".
	singular string
	plural   string
}

func newResourceHandlers(svc service.ResourceService, singular, plural string) *resourceHandlers {
	return &resourceHandlers{svc: svc, singular: singular, plural: plural}
}

// list handles GET /. The full query string is handed to the facade;
// filter, sort, projection, and pagination semantics live there, not here.
func (rh *resourceHandlers) list(w http.ResponseWriter, r *http.Request) {
	result, err := rh.svc.List(r.Context(), r.URL.Query())
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondList(w, r, rh.plural, result.Items, len(result.Items), result.Total, result.HasTotal)
}

// get handles GET /{id}.
func (rh *resourceHandlers) get(w http.ResponseWriter, r *http.Request) {
	doc, err := rh.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, rh.singular, doc)
}

// create handles POST /.
func (rh *resourceHandlers) create(w http.ResponseWriter, r *http.Request) {
	doc, ok := decodeDocument(w, r)
	if !ok {
		return
	}

	created, err := rh.svc.Create(r.Context(), doc)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respond(w, r, http.StatusCreated, rh.singular, created)
}

// update handles PATCH /{id}.
func (rh *resourceHandlers) update(w http.ResponseWriter, r *http.Request) {
	patch, ok := decodeDocument(w, r)
	if !ok {
		return
	}

	updated, err := rh.svc.Update(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, rh.singular, updated)
}

// delete handles DELETE /{id}.
func (rh *resourceHandlers) delete(w http.ResponseWriter, r *http.Request) {
	if err := rh.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// decodeDocument parses the request body as a JSON document. On failure it
// writes the 400 response itself and reports false.
func decodeDocument(w http.ResponseWriter, r *http.Request) (models.Document, bool) {
	var doc models.Document
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		logger.FromRequest(r).Debug().Err(err).Msg("invalid JSON was passed")
		respondError(w, r, service.ErrInvalidDataProvided)
		return nil, false
	}

	return doc, true
}

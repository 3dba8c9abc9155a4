// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The trailbook Authors

package http

import (
	"net/http"

	"github.com/trailbook/trailbook/internal/logger"
	"github.com/trailbook/trailbook/internal/utils"
)

// envelope is the uniform response body. Status is "success" for 2xx,
// "fail" for client errors, and "error" for server errors. Data carries
// the payload keyed by resource name; Results and Total appear on list
// responses, Token on authentication responses.
type envelope struct {
	Status  string         `json:"status"`
	Results *int           `json:"results,omitempty"`
	Total   *int           `json:"total,omitempty"`
	Token   string         `json:"token,omitempty"`
	Data    map[string]any `json:"data,omitempty"`
	Message string         `json:"message,omitempty"`
}

// respond writes a success envelope with the payload stored under key.
func respond(w http.ResponseWriter, r *http.Request, statusCode int, key string, payload any) {
	env := envelope{Status: "success"}
	if key != "" {
		env.Data = map[string]any{key: payload}
	}

	if _, err := utils.WriteJSON(w, env, statusCode); err != nil {
		logger.FromRequest(r).Err(err).Msg("error writing response")
	}
}

// respondList writes a success envelope for a result page. total is
// attached only when the caller requested an explicit page.
func respondList(w http.ResponseWriter, r *http.Request, key string, items any, count int, total int, hasTotal bool) {
	env := envelope{
		Status:  "success",
		Results: &count,
		Data:    map[string]any{key: items},
	}
	if hasTotal {
		env.Total = &total
	}

	if _, err := utils.WriteJSON(w, env, http.StatusOK); err != nil {
		logger.FromRequest(r).Err(err).Msg("error writing response")
	}
}

// respondToken writes a success envelope carrying an authentication token,
// optionally with a payload under key.
func respondToken(w http.ResponseWriter, r *http.Request, statusCode int, token string, key string, payload any) {
	env := envelope{Status: "success", Token: token}
	if key != "" {
		env.Data = map[string]any{key: payload}
	}

	if _, err := utils.WriteJSON(w, env, statusCode); err != nil {
		logger.FromRequest(r).Err(err).Msg("error writing response")
	}
}

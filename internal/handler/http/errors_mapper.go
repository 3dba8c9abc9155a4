// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The trailbook Authors

package http

import (
	"errors"
	"net/http"

	"github.com/trailbook/trailbook/internal/credentials"
	"github.com/trailbook/trailbook/internal/hooks"
	"github.com/trailbook/trailbook/internal/logger"
	"github.com/trailbook/trailbook/internal/query"
	"github.com/trailbook/trailbook/internal/service"
	"github.com/trailbook/trailbook/internal/store"
	"github.com/trailbook/trailbook/internal/utils"
	"github.com/trailbook/trailbook/internal/validators"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:     http.StatusBadRequest,
	service.ErrWrongCredentials:        http.StatusUnauthorized,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,
	service.ErrForbidden:               http.StatusForbidden,

	credentials.ErrExpiredOrInvalid: http.StatusBadRequest,
	credentials.ErrPasswordTooShort: http.StatusBadRequest,

	hooks.ErrMissingName:     http.StatusBadRequest,
	hooks.ErrUnsluggableName: http.StatusBadRequest,

	store.ErrNotFound:         http.StatusNotFound,
	store.ErrStoreUnavailable: http.StatusServiceUnavailable,
}

// statusFromError maps a service-layer failure to its HTTP status.
// Sentinels are matched through errors.Is, so wrapped errors (including
// hook failures) resolve to the underlying cause; the structured
// validation and query errors are matched by type.
func statusFromError(err error) int {
	var validationErr *validators.ValidationError
	if errors.As(err, &validationErr) {
		return http.StatusBadRequest
	}
	var queryErr *query.InvalidQueryError
	if errors.As(err, &queryErr) {
		return http.StatusBadRequest
	}

	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// respondError writes the failure envelope for err. Client errors carry
// the error's own message; server errors carry only the generic status
// text so internals never leak.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	statusCode := statusFromError(err)

	env := envelope{Status: "fail", Message: err.Error()}
	if statusCode >= http.StatusInternalServerError {
		env.Status = "error"
		env.Message = http.StatusText(statusCode)
		logger.FromRequest(r).Err(err).Msg("request failed")
	} else {
		logger.FromRequest(r).Debug().Err(err).Int("status", statusCode).Msg("request rejected")
	}

	if _, writeErr := utils.WriteJSON(w, env, statusCode); writeErr != nil {
		logger.FromRequest(r).Err(writeErr).Msg("error writing response")
	}
}

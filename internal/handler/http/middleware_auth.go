// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The trailbook Authors

// Package http implements the HTTP transport layer of the application.
// It provides middleware, route handlers, and request/response utilities
// for the REST API. Authentication, authorization, logging, tracing, and
// compression concerns are all handled at this layer before requests are
// forwarded to the service layer.
package http

import (
	"net/http"
	"strings"

	"github.com/trailbook/trailbook/internal/logger"
	"github.com/trailbook/trailbook/internal/service"
	"github.com/trailbook/trailbook/internal/utils"
)

// protect is an HTTP middleware that enforces JWT-based authentication.
//
// It inspects the incoming "Authorization" header, extracts the bearer
// token, resolves it to an account via the auth service, and on success
// stores the authenticated user in the request context under
// [utils.IdentityCtxKey] before delegating to the next handler.
//
// The middleware rejects requests with HTTP 401 Unauthorized in the
// following cases:
//   - The "Authorization" header is absent ([ErrEmptyAuthorizationHeader]).
//   - The header value cannot be parsed as a bearer token
//     ([ErrInvalidAuthorizationHeader] or [ErrEmptyToken]).
//   - The token is expired, malformed, issued to a deleted account, or
//     issued before a password change.
func (h *Handler) protect(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Debug().Err(ErrEmptyAuthorizationHeader).Send()
			respondError(w, r, service.ErrTokenIsExpiredOrInvalid)
			return
		}

		tokenString, err := getTokenFromAuthHeader(authHeader)
		if err != nil {
			log.Debug().Err(err).Send()
			respondError(w, r, service.ErrTokenIsExpiredOrInvalid)
			return
		}

		ctx := r.Context()
		identity, err := h.services.Auth.Authenticate(ctx, tokenString)
		if err != nil {
			respondError(w, r, err)
			return
		}

		// Store the authenticated user in the context so that downstream
		// handlers can retrieve it without re-parsing the token.
		ctx = utils.WithIdentity(ctx, identity)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// restrictTo is an HTTP middleware factory limiting a route to the given
// roles. It must run after protect; a request with no identity in context
// is rejected the same way an insufficient role is.
func (h *Handler) restrictTo(allowedRoles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := utils.GetIdentityFromContext(r.Context())
			if !ok || !service.HasRole(identity, allowedRoles...) {
				logger.FromRequest(r).Debug().
					Str("role", identity.Role).
					Strs("allowed", allowedRoles).
					Msg("role check failed")
				respondError(w, r, service.ErrForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// getTokenFromAuthHeader extracts the bearer token string from a raw
// "Authorization" HTTP header value of the standard form:
//
//	Authorization: Bearer <token>
//
// It returns [ErrInvalidAuthorizationHeader] when the header has fewer
// than two space-separated parts and [ErrEmptyToken] when the token part
// is empty.
func getTokenFromAuthHeader(authHeader string) (string, error) {
	parts := strings.Split(authHeader, " ")
	if len(parts) < 2 {
		return "", ErrInvalidAuthorizationHeader
	}

	tokenString := parts[1]
	if tokenString == "" {
		return "", ErrEmptyToken
	}

	return tokenString, nil
}

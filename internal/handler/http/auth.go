// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The trailbook Authors

package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/trailbook/trailbook/internal/logger"
	"github.com/trailbook/trailbook/internal/service"
	"github.com/trailbook/trailbook/internal/utils"
)

// signup handles POST /signup.
func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	doc, ok := decodeDocument(w, r)
	if !ok {
		return
	}

	created, token, err := h.services.Auth.Signup(r.Context(), doc)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondToken(w, r, http.StatusCreated, token.SignedString, "user", created)
}

// login handles POST /login.
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		logger.FromRequest(r).Debug().Err(err).Msg("invalid JSON was passed")
		respondError(w, r, service.ErrInvalidDataProvided)
		return
	}

	user, token, err := h.services.Auth.Login(r.Context(), body.Email, body.Password)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondToken(w, r, http.StatusOK, token.SignedString, "user", user)
}

// forgotPassword handles POST /forgotPassword. The reset token is returned
// in the response body; a production deployment would deliver it by email
// instead, but the issuing flow is identical either way.
func (h *Handler) forgotPassword(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		logger.FromRequest(r).Debug().Err(err).Msg("invalid JSON was passed")
		respondError(w, r, service.ErrInvalidDataProvided)
		return
	}

	resetToken, err := h.services.Auth.ForgotPassword(r.Context(), body.Email)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, "resetToken", resetToken)
}

// resetPassword handles PATCH /resetPassword/{token}.
func (h *Handler) resetPassword(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Password        string `json:"password"`
		PasswordConfirm string `json:"passwordConfirm"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		logger.FromRequest(r).Debug().Err(err).Msg("invalid JSON was passed")
		respondError(w, r, service.ErrInvalidDataProvided)
		return
	}

	token, err := h.services.Auth.ResetPassword(r.Context(), chi.URLParam(r, "token"), body.Password, body.PasswordConfirm)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondToken(w, r, http.StatusOK, token.SignedString, "", nil)
}

// updateMyPassword handles PATCH /updateMyPassword for the authenticated
// user.
func (h *Handler) updateMyPassword(w http.ResponseWriter, r *http.Request) {
	identity, ok := utils.GetIdentityFromContext(r.Context())
	if !ok {
		respondError(w, r, service.ErrTokenIsExpiredOrInvalid)
		return
	}

	var body struct {
		PasswordCurrent string `json:"passwordCurrent"`
		Password        string `json:"password"`
		PasswordConfirm string `json:"passwordConfirm"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		logger.FromRequest(r).Debug().Err(err).Msg("invalid JSON was passed")
		respondError(w, r, service.ErrInvalidDataProvided)
		return
	}

	token, err := h.services.Auth.UpdatePassword(r.Context(), identity, body.PasswordCurrent, body.Password, body.PasswordConfirm)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondToken(w, r, http.StatusOK, token.SignedString, "", nil)
}

// me handles GET /me: the authenticated user's own profile.
func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	identity, ok := utils.GetIdentityFromContext(r.Context())
	if !ok {
		respondError(w, r, service.ErrTokenIsExpiredOrInvalid)
		return
	}

	doc, err := h.services.Users.Get(r.Context(), identity.ID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, "user", doc)
}

// updateMe handles PATCH /updateMe: profile fields only, never credentials
// or roles.
func (h *Handler) updateMe(w http.ResponseWriter, r *http.Request) {
	identity, ok := utils.GetIdentityFromContext(r.Context())
	if !ok {
		respondError(w, r, service.ErrTokenIsExpiredOrInvalid)
		return
	}

	patch, ok := decodeDocument(w, r)
	if !ok {
		return
	}

	updated, err := h.services.Users.UpdateMe(r.Context(), identity, patch)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, "user", updated)
}

// deleteMe handles DELETE /deleteMe: soft-deletes the authenticated user's
// own account.
func (h *Handler) deleteMe(w http.ResponseWriter, r *http.Request) {
	identity, ok := utils.GetIdentityFromContext(r.Context())
	if !ok {
		respondError(w, r, service.ErrTokenIsExpiredOrInvalid)
		return
	}

	if err := h.services.Users.Delete(r.Context(), identity.ID); err != nil {
		respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

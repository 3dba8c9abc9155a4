// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The trailbook Authors

package service

import "errors"

// Sentinel errors returned by the service layer. Lower-layer failures
// (query.InvalidQueryError, validators.ValidationError, store.ErrNotFound,
// credentials.ErrExpiredOrInvalid) pass through unchanged; these cover the
// conditions the service layer itself detects.
var (
	// ErrInvalidDataProvided is returned when a request body is missing
	// data the operation cannot proceed without.
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrWrongCredentials is returned on a failed login. The message is
	// shared between "unknown email" and "wrong password" so callers
	// cannot probe for registered addresses.
	ErrWrongCredentials = errors.New("incorrect email or password")

	// ErrTokenIsExpiredOrInvalid is returned when an authentication token
	// fails validation for any reason, including a password change after
	// the token was issued.
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	// ErrForbidden is returned when the authenticated identity lacks the
	// role required for an operation.
	ErrForbidden = errors.New("you do not have permission to perform this action")
)

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The trailbook Authors

package credentials

import "errors"

// Sentinel errors returned by the credential manager. Callers should match
// against them with [errors.Is].
var (
	// ErrExpiredOrInvalid is returned by ConsumeResetToken for every
	// failure mode: missing, mismatched, or expired token. The message is
	// intentionally generic so callers cannot leak which check failed.
	ErrExpiredOrInvalid = errors.New("reset token is invalid or has expired")

	// ErrPasswordTooShort is returned by SetPassword when the plaintext is
	// shorter than MinPasswordLength.
	ErrPasswordTooShort = errors.New("password is too short")
)

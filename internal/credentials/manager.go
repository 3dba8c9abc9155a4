// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The trailbook Authors

// Package credentials owns the credential lifecycle of a user account:
// password hashing and verification, the password-change marker used to
// invalidate stale authentication tokens, and single-use reset-token
// issuance and validation.
//
// The package never touches storage. Every operation takes a credential
// value and returns an updated value; persisting the result, and
// serializing concurrent credential mutations of one user, is the
// caller's responsibility.
package credentials

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/trailbook/trailbook/internal/utils"
	"github.com/trailbook/trailbook/models"
)

// DefaultBcryptCost is the bcrypt work factor for password hashes. Cost 12
// keeps a single hash in the tens of milliseconds on current hardware,
// slow enough to resist offline brute force. Raise it as hardware gets
// faster; existing hashes keep their recorded cost and still verify.
const DefaultBcryptCost = 12

// DefaultResetTokenTTL is the validity window of an issued reset token.
const DefaultResetTokenTTL = 10 * time.Minute

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 8

// passwordChangedSkew is subtracted from the recorded password-change
// timestamp. An authentication token minted in the same request-response
// cycle as the change carries an issued-at a few microseconds earlier;
// without the skew that token would be rejected as pre-change.
const passwordChangedSkew = time.Second

// dummyHash is a well-formed bcrypt hash used to equalize verification
// timing when no real hash exists (unknown user, never-set password).
const dummyHash = "$2a$12$R9h/cIPz0gi.URNNX3kh2OPST9/PgBkqquzi.Ss7KIUgO2t0jWMUW"

// Manager implements the credential lifecycle. It is stateless apart from
// its configuration and safe for concurrent use; serialization of
// mutations against a single user's stored credential is up to the caller.
type Manager struct {
	cost     int
	resetTTL time.Duration

	// now is the clock source, replaceable in tests.
	now func() time.Time
}

// NewManager constructs a Manager. Non-positive cost or TTL fall back to
// the package defaults.
func NewManager(cost int, resetTTL time.Duration) *Manager {
	if cost <= 0 {
		cost = DefaultBcryptCost
	}
	if resetTTL <= 0 {
		resetTTL = DefaultResetTokenTTL
	}

	return &Manager{
		cost:     cost,
		resetTTL: resetTTL,
		now:      time.Now,
	}
}

// InitialPassword hashes the very first password of a freshly created
// account. Unlike SetPassword it records no change marker: a credential's
// PasswordChangedAt stays nil until the password actually changes, so
// tokens issued right after signup are not treated as pre-change.
func (m *Manager) InitialPassword(plaintext string) (models.Credential, error) {
	if len(plaintext) < MinPasswordLength {
		return models.Credential{}, ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), m.cost)
	if err != nil {
		return models.Credential{}, err
	}

	return models.Credential{PasswordHash: string(hash)}, nil
}

// SetPassword hashes plaintext with bcrypt and returns the updated
// credential: new hash, any pending reset token cleared, and
// PasswordChangedAt set to the current time minus a small skew (see
// passwordChangedSkew).
//
// Clearing the reset pair here is what makes token consumption single-use:
// ConsumeResetToken validates, SetPassword invalidates, and the two run
// back-to-back in the reset flow.
func (m *Manager) SetPassword(c models.Credential, plaintext string) (models.Credential, error) {
	if len(plaintext) < MinPasswordLength {
		return models.Credential{}, ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), m.cost)
	if err != nil {
		return models.Credential{}, err
	}

	changedAt := m.now().Add(-passwordChangedSkew)
	return models.Credential{
		PasswordHash:      string(hash),
		PasswordChangedAt: &changedAt,
	}, nil
}

// VerifyPassword reports whether candidate matches the stored password
// hash. When the credential has no hash at all, a dummy comparison runs
// anyway so the caller's timing does not reveal whether the account
// exists.
func (m *Manager) VerifyPassword(c models.Credential, candidate string) bool {
	hash := c.PasswordHash
	if hash == "" {
		_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(candidate))
		return false
	}

	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(candidate)) == nil
}

// IssueResetToken generates a cryptographically random token, records its
// SHA-256 digest and expiry on the returned credential, and hands the
// plaintext back for out-of-band delivery. The plaintext is never
// persisted.
//
// Issuing a new token replaces any previously pending one.
func (m *Manager) IssueResetToken(c models.Credential) (string, models.Credential, error) {
	token, err := utils.GenerateToken()
	if err != nil {
		return "", models.Credential{}, err
	}

	expiresAt := m.now().Add(m.resetTTL)
	c.ResetTokenHash = utils.HashToken(token)
	c.ResetTokenExpiresAt = &expiresAt

	return token, c, nil
}

// ConsumeResetToken checks candidate against the pending reset token. It
// fails with ErrExpiredOrInvalid when no reset is pending, the token does
// not match, or now is past the expiry; the message is deliberately
// generic so a caller cannot learn which part failed.
//
// On success the caller must immediately call SetPassword with the user's
// new password: that is what clears the token atomically with the
// password change. ConsumeResetToken itself mutates nothing.
func (m *Manager) ConsumeResetToken(c models.Credential, candidate string, now time.Time) error {
	if !c.ResetPending() {
		return ErrExpiredOrInvalid
	}
	if !utils.TokensEqual(c.ResetTokenHash, utils.HashToken(candidate)) {
		return ErrExpiredOrInvalid
	}
	if now.After(*c.ResetTokenExpiresAt) {
		return ErrExpiredOrInvalid
	}

	return nil
}

// WasPasswordChangedAfter reports whether the password was changed after
// the reference timestamp. The authentication flow uses it to invalidate
// tokens issued before a password change. Returns false when no change
// has ever been recorded.
func (m *Manager) WasPasswordChangedAfter(c models.Credential, reference time.Time) bool {
	if c.PasswordChangedAt == nil {
		return false
	}

	return c.PasswordChangedAt.After(reference)
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The trailbook Authors

package models

import "time"

// Roles assignable to a user account. Route-level capability checks compare
// against these values via service.HasRole.
const (
	RoleUser      = "user"
	RoleGuide     = "guide"
	RoleLeadGuide = "lead-guide"
	RoleAdmin     = "admin"
)

// Credential is the security-sensitive subset of a user document: the
// password hash, the password-change marker, and the pending reset-token
// pair. None of these fields is ever serialized outward.
//
// Invariants maintained by credentials.Manager:
//   - ResetTokenHash and ResetTokenExpiresAt are always both set or both nil.
//   - PasswordHash never equals any plaintext value.
//   - A consumed reset token is cleared in the same operation that changes
//     the password.
type Credential struct {
	// PasswordHash is the bcrypt hash of the user's password.
	PasswordHash string `json:"-"`

	// PasswordChangedAt records the last password change. Nil until the
	// password is changed for the first time after account creation.
	PasswordChangedAt *time.Time `json:"-"`

	// ResetTokenHash is the SHA-256 hex digest of the pending reset token,
	// or empty when no reset is pending. The plaintext token is never
	// persisted.
	ResetTokenHash string `json:"-"`

	// ResetTokenExpiresAt bounds the validity of the pending reset token.
	// Valid only while ResetTokenHash is non-empty.
	ResetTokenExpiresAt *time.Time `json:"-"`
}

// ResetPending reports whether a reset token has been issued and not yet
// consumed or cleared.
func (c Credential) ResetPending() bool {
	return c.ResetTokenHash != "" && c.ResetTokenExpiresAt != nil
}

// User represents an account entity used for authentication and
// authorization. Credential fields are embedded but excluded from JSON; the
// user visibility hook additionally strips them from raw documents leaving
// the query path.
type User struct {
	// ID is the server-assigned document identifier.
	ID string `json:"id,omitempty"`

	// Name is the display name of the user.
	Name string `json:"name"`

	// Email is the unique, lower-cased account identifier.
	Email string `json:"email"`

	// Photo is the avatar file name.
	Photo string `json:"photo,omitempty"`

	// Role is one of the Role* constants. Defaults to RoleUser.
	Role string `json:"role,omitempty"`

	// Active marks the account as live. Deleting a user deactivates the
	// account instead of removing the document; inactive accounts are
	// hidden by the user visibility hook.
	Active bool `json:"-"`

	Credential
}

// Credential document field names as persisted in the "users" collection.
// Kept in one place so the manager, the hooks, and the sweep worker agree.
const (
	FieldPasswordHash        = "passwordHash"
	FieldPasswordChangedAt   = "passwordChangedAt"
	FieldResetTokenHash      = "resetTokenHash"
	FieldResetTokenExpiresAt = "resetTokenExpiresAt"
)

// CollectionUsers is the store collection holding user documents.
const CollectionUsers = "users"

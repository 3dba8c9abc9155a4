// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The trailbook Authors

package service

import (
	"context"
	"strings"
	"time"

	"github.com/trailbook/trailbook/internal/credentials"
	"github.com/trailbook/trailbook/internal/hooks"
	"github.com/trailbook/trailbook/internal/logger"
	"github.com/trailbook/trailbook/internal/query"
	"github.com/trailbook/trailbook/internal/store"
	"github.com/trailbook/trailbook/internal/utils"
	"github.com/trailbook/trailbook/internal/validators"
	"github.com/trailbook/trailbook/models"
)

// AuthConfig carries the token-minting parameters of the auth service.
type AuthConfig struct {
	TokenIssuer   string
	TokenSignKey  string
	TokenDuration time.Duration
}

// AuthService implements signup, login, token authentication, and the
// password flows. It is the only service that reads or writes credential
// fields; everything else sees user documents with those fields stripped.
//
// Credential reads here deliberately bypass the hook registry: the login
// and reset flows need the raw stored document, and the visibility
// predicate for deactivated accounts is applied inline instead.
type AuthService struct {
	store    store.DocumentStore
	registry *hooks.Registry
	creds    *credentials.Manager
	users    *UserService
	cfg      AuthConfig

	// now is the clock source, replaceable in tests.
	now func() time.Time
}

// NewAuthService constructs the auth service.
func NewAuthService(s store.DocumentStore, registry *hooks.Registry, creds *credentials.Manager, users *UserService, cfg AuthConfig) *AuthService {
	return &AuthService{
		store:    s,
		registry: registry,
		creds:    creds,
		users:    users,
		cfg:      cfg,
		now:      time.Now,
	}
}

// Signup registers a new account and logs it in. The request document
// carries the profile fields plus password and passwordConfirm; the two
// plaintext fields are consumed here and replaced by the bcrypt hash
// before anything reaches the store.
func (s *AuthService) Signup(ctx context.Context, doc models.Document) (models.Document, models.Token, error) {
	if len(doc) == 0 {
		return nil, models.Token{}, ErrInvalidDataProvided
	}
	doc = doc.Clone()

	password, _ := doc["password"].(string)
	passwordConfirm, _ := doc["passwordConfirm"].(string)
	delete(doc, "password")
	delete(doc, "passwordConfirm")
	// Self-registration never picks its own role or credential state.
	delete(doc, "role")
	delete(doc, "active")
	delete(doc, models.FieldPasswordHash)
	delete(doc, models.FieldPasswordChangedAt)
	delete(doc, models.FieldResetTokenHash)
	delete(doc, models.FieldResetTokenExpiresAt)

	if password != passwordConfirm {
		return nil, models.Token{}, &validators.ValidationError{Fields: map[string]string{
			"passwordConfirm": "passwords do not match",
		}}
	}

	cred, err := s.creds.InitialPassword(password)
	if err != nil {
		return nil, models.Token{}, err
	}
	doc[models.FieldPasswordHash] = cred.PasswordHash

	created, err := s.users.Create(ctx, doc)
	if err != nil {
		return nil, models.Token{}, err
	}

	token, err := s.issueToken(created.ID())
	if err != nil {
		return nil, models.Token{}, err
	}

	logger.FromContext(ctx).Info().Str("user_id", created.ID()).Msg("new account registered")
	return created, token, nil
}

// Login verifies the email/password pair and returns the user with a fresh
// authentication token. Unknown email and wrong password produce the same
// failure, and a password comparison runs in both cases so response timing
// does not distinguish them either.
func (s *AuthService) Login(ctx context.Context, email, password string) (models.Document, models.Token, error) {
	if email == "" || password == "" {
		return nil, models.Token{}, ErrInvalidDataProvided
	}

	raw, found, err := s.findRawUser(ctx, "email", strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, models.Token{}, err
	}

	cred := credentialFromDocument(raw)
	if !s.creds.VerifyPassword(cred, password) || !found {
		return nil, models.Token{}, ErrWrongCredentials
	}

	token, err := s.issueToken(raw.ID())
	if err != nil {
		return nil, models.Token{}, err
	}

	after := &hooks.Context{Resource: hooks.ResourceUser, Documents: []models.Document{raw}}
	if err := s.registry.Apply(ctx, hooks.ResourceUser, hooks.AfterQuery, after); err != nil {
		return nil, models.Token{}, err
	}

	logger.FromContext(ctx).Info().Str("user_id", raw.ID()).Msg("user logged in")
	return after.Documents[0], token, nil
}

// Authenticate resolves a bearer token to the account it was issued for.
// It fails with ErrTokenIsExpiredOrInvalid when the token does not verify,
// the account no longer exists or is deactivated, or the password was
// changed after the token was issued.
func (s *AuthService) Authenticate(ctx context.Context, bearer string) (models.User, error) {
	token, err := utils.ValidateAndParseJWTToken(bearer, s.cfg.TokenSignKey, s.cfg.TokenIssuer)
	if err != nil {
		return models.User{}, ErrTokenIsExpiredOrInvalid
	}

	raw, found, err := s.findRawUser(ctx, "id", token.UserID)
	if err != nil {
		return models.User{}, err
	}
	if !found {
		return models.User{}, ErrTokenIsExpiredOrInvalid
	}

	user := userFromDocument(raw)
	if token.IssuedAt != nil && s.creds.WasPasswordChangedAfter(user.Credential, token.IssuedAt.Time) {
		return models.User{}, ErrTokenIsExpiredOrInvalid
	}

	return user, nil
}

// ForgotPassword issues a reset token for the account behind email and
// records its digest and expiry. The plaintext token is returned for
// out-of-band delivery and is never persisted.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) (string, error) {
	if email == "" {
		return "", ErrInvalidDataProvided
	}

	raw, found, err := s.findRawUser(ctx, "email", strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return "", err
	}
	if !found {
		return "", store.ErrNotFound
	}

	plaintext, cred, err := s.creds.IssueResetToken(credentialFromDocument(raw))
	if err != nil {
		return "", err
	}

	if _, err := s.store.UpdateByID(ctx, models.CollectionUsers, raw.ID(), credentialPatch(cred)); err != nil {
		return "", err
	}

	logger.FromContext(ctx).Info().Str("user_id", raw.ID()).Msg("password reset token issued")
	return plaintext, nil
}

// ResetPassword consumes a pending reset token and sets the new password.
// The account is located by the token's digest, so the route needs no user
// identifier; any failure along the way collapses into the same generic
// expired-or-invalid error.
func (s *AuthService) ResetPassword(ctx context.Context, token, password, passwordConfirm string) (models.Token, error) {
	if password != passwordConfirm {
		return models.Token{}, &validators.ValidationError{Fields: map[string]string{
			"passwordConfirm": "passwords do not match",
		}}
	}

	raw, found, err := s.findRawUser(ctx, models.FieldResetTokenHash, utils.HashToken(token))
	if err != nil {
		return models.Token{}, err
	}
	if !found {
		return models.Token{}, credentials.ErrExpiredOrInvalid
	}

	cred := credentialFromDocument(raw)
	if err := s.creds.ConsumeResetToken(cred, token, s.now()); err != nil {
		return models.Token{}, err
	}

	updated, err := s.creds.SetPassword(cred, password)
	if err != nil {
		return models.Token{}, err
	}
	if _, err := s.store.UpdateByID(ctx, models.CollectionUsers, raw.ID(), credentialPatch(updated)); err != nil {
		return models.Token{}, err
	}

	logger.FromContext(ctx).Info().Str("user_id", raw.ID()).Msg("password reset completed")
	return s.issueToken(raw.ID())
}

// UpdatePassword changes the password of an already-authenticated user
// after re-verifying the current one, and returns a fresh token. Tokens
// issued before the change stop authenticating on their next use.
func (s *AuthService) UpdatePassword(ctx context.Context, identity models.User, current, password, passwordConfirm string) (models.Token, error) {
	if password != passwordConfirm {
		return models.Token{}, &validators.ValidationError{Fields: map[string]string{
			"passwordConfirm": "passwords do not match",
		}}
	}

	raw, found, err := s.findRawUser(ctx, "id", identity.ID)
	if err != nil {
		return models.Token{}, err
	}
	if !found {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	cred := credentialFromDocument(raw)
	if !s.creds.VerifyPassword(cred, current) {
		return models.Token{}, ErrWrongCredentials
	}

	updated, err := s.creds.SetPassword(cred, password)
	if err != nil {
		return models.Token{}, err
	}
	if _, err := s.store.UpdateByID(ctx, models.CollectionUsers, raw.ID(), credentialPatch(updated)); err != nil {
		return models.Token{}, err
	}

	logger.FromContext(ctx).Info().Str("user_id", raw.ID()).Msg("password updated")
	return s.issueToken(raw.ID())
}

func (s *AuthService) issueToken(userID string) (models.Token, error) {
	return utils.GenerateJWTToken(s.cfg.TokenIssuer, userID, s.cfg.TokenDuration, s.cfg.TokenSignKey)
}

// findRawUser fetches one active user document with credential fields
// intact. Deactivated accounts are filtered out the same way the
// visibility hook would, but no hooks run on the result.
func (s *AuthService) findRawUser(ctx context.Context, field string, value any) (models.Document, bool, error) {
	d := query.Descriptor{
		Filter: query.Filter{
			field:    {{Op: query.OpEquals, Value: value}},
			"active": {{Op: query.OpNotEquals, Value: false}},
		},
		Page: query.Page{Number: 1, Size: 1},
	}

	docs, err := s.store.Find(ctx, models.CollectionUsers, d)
	if err != nil {
		return nil, false, err
	}
	if len(docs) == 0 {
		return models.Document{}, false, nil
	}

	return docs[0], true, nil
}

// credentialFromDocument extracts the credential fields of a raw user
// document. Fields absent from the document yield zero values.
func credentialFromDocument(doc models.Document) models.Credential {
	c := models.Credential{
		PasswordHash:   doc.String(models.FieldPasswordHash),
		ResetTokenHash: doc.String(models.FieldResetTokenHash),
	}

	if t, ok := parseDocumentTime(doc, models.FieldPasswordChangedAt); ok {
		c.PasswordChangedAt = &t
	}
	if t, ok := parseDocumentTime(doc, models.FieldResetTokenExpiresAt); ok {
		c.ResetTokenExpiresAt = &t
	}

	return c
}

// credentialPatch renders a credential as a store patch. Cleared fields
// become explicit nulls so the merge removes them from the stored
// document.
func credentialPatch(c models.Credential) models.Document {
	patch := models.Document{
		models.FieldPasswordHash:        c.PasswordHash,
		models.FieldPasswordChangedAt:   nil,
		models.FieldResetTokenHash:      nil,
		models.FieldResetTokenExpiresAt: nil,
	}

	if c.PasswordHash == "" {
		patch[models.FieldPasswordHash] = nil
	}
	if c.PasswordChangedAt != nil {
		patch[models.FieldPasswordChangedAt] = c.PasswordChangedAt.UTC().Format(time.RFC3339Nano)
	}
	if c.ResetTokenHash != "" {
		patch[models.FieldResetTokenHash] = c.ResetTokenHash
	}
	if c.ResetTokenExpiresAt != nil {
		patch[models.FieldResetTokenExpiresAt] = c.ResetTokenExpiresAt.UTC().Format(time.RFC3339Nano)
	}

	return patch
}

// userFromDocument materializes a typed user from a raw store document.
func userFromDocument(doc models.Document) models.User {
	active := true
	if flag, ok := doc.Bool("active"); ok {
		active = flag
	}

	return models.User{
		ID:         doc.ID(),
		Name:       doc.String("name"),
		Email:      doc.String("email"),
		Photo:      doc.String("photo"),
		Role:       doc.String("role"),
		Active:     active,
		Credential: credentialFromDocument(doc),
	}
}

// parseDocumentTime reads an RFC 3339 timestamp field.
func parseDocumentTime(doc models.Document, field string) (time.Time, bool) {
	raw := doc.String(field)
	if raw == "" {
		return time.Time{}, false
	}

	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, false
	}

	return t, true
}

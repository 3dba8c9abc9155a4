// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The trailbook Authors

package service

import (
	"context"

	"github.com/trailbook/trailbook/internal/hooks"
	"github.com/trailbook/trailbook/internal/logger"
	"github.com/trailbook/trailbook/internal/store"
	"github.com/trailbook/trailbook/internal/validators"
	"github.com/trailbook/trailbook/models"
)

// UserService exposes user account CRUD. Deletion is soft: the account is
// deactivated and disappears from the query path, but the document stays
// stored.
type UserService struct {
	resourceFacade
}

// NewUserService constructs the user facade.
func NewUserService(s store.DocumentStore, registry *hooks.Registry) *UserService {
	return &UserService{resourceFacade{
		resource:     hooks.ResourceUser,
		collection:   models.CollectionUsers,
		store:        s,
		registry:     registry,
		validate:     validators.ValidateUser,
		normalize:    validators.NormalizeUser,
		uniqueFields: []string{"email"},
	}}
}

// Delete deactivates the account instead of removing the document. The
// visibility hook hides deactivated accounts from every subsequent query,
// so to callers the outcome is indistinguishable from a hard delete.
func (s *UserService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrInvalidDataProvided
	}

	_, err := s.store.UpdateByID(ctx, s.collection, id, models.Document{"active": false})
	if err != nil {
		return err
	}

	logger.FromContext(ctx).Info().Str("user_id", id).Msg("user account deactivated")
	return nil
}

// profileFields are the only fields a user may patch on their own account.
// Everything else, credential and privilege fields included, is rejected:
// the password flows go through the auth service and roles are assigned by
// administrators.
var profileFields = map[string]struct{}{
	"name":  {},
	"email": {},
	"photo": {},
}

// UpdateMe applies a profile patch on behalf of the authenticated user.
// Only the fields in profileFields pass through.
func (s *UserService) UpdateMe(ctx context.Context, identity models.User, patch models.Document) (models.Document, error) {
	for field := range patch {
		if _, ok := profileFields[field]; !ok {
			return nil, &validators.ValidationError{Fields: map[string]string{
				field: "cannot be updated through this route",
			}}
		}
	}

	return s.Update(ctx, identity.ID, patch)
}

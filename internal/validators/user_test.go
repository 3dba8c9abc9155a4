// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The trailbook Authors

package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trailbook/trailbook/models"
)

func TestValidateUser_Valid(t *testing.T) {
	doc := models.Document{"name": "Jonas", "email": "jonas@trailbook.dev"}
	assert.NoError(t, ValidateUser(doc, false))
}

func TestValidateUser_MissingRequiredFields(t *testing.T) {
	err := ValidateUser(models.Document{}, false)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "name")
	assert.Contains(t, verr.Fields, "email")
}

func TestValidateUser_InvalidEmail(t *testing.T) {
	doc := models.Document{"name": "Jonas", "email": "not-an-email"}

	err := ValidateUser(doc, false)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "email")
}

func TestValidateUser_RoleEnum(t *testing.T) {
	doc := models.Document{"name": "Jonas", "email": "jonas@trailbook.dev", "role": "superadmin"}

	err := ValidateUser(doc, false)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "role")

	for _, role := range []string{models.RoleUser, models.RoleGuide, models.RoleLeadGuide, models.RoleAdmin} {
		doc["role"] = role
		assert.NoError(t, ValidateUser(doc, false), "role %q must be accepted", role)
	}
}

func TestValidateUser_PartialSkipsAbsentFields(t *testing.T) {
	assert.NoError(t, ValidateUser(models.Document{"name": "New Name"}, true))
}

func TestNormalizeUser_LowercasesEmail(t *testing.T) {
	doc := models.Document{"email": "  Jonas@Trailbook.DEV "}
	NormalizeUser(doc, true)

	assert.Equal(t, "jonas@trailbook.dev", doc["email"])
}

func TestNormalizeUser_CreateDefaults(t *testing.T) {
	doc := models.Document{"name": "Jonas", "email": "jonas@trailbook.dev"}
	NormalizeUser(doc, false)

	assert.Equal(t, models.RoleUser, doc["role"])
	assert.Equal(t, true, doc["active"])
}

func TestNormalizeUser_PartialAddsNoDefaults(t *testing.T) {
	doc := models.Document{"name": "Jonas"}
	NormalizeUser(doc, true)

	_, hasRole := doc["role"]
	assert.False(t, hasRole)
	_, hasActive := doc["active"]
	assert.False(t, hasActive)
}

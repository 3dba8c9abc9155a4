// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The trailbook Authors

package validators

import (
	"net/mail"
	"strings"

	"github.com/trailbook/trailbook/models"
)

var allowedRoles = map[string]struct{}{
	models.RoleUser:      {},
	models.RoleGuide:     {},
	models.RoleLeadGuide: {},
	models.RoleAdmin:     {},
}

// ValidateUser checks a user document. With partial set, only fields
// present in the document are validated.
func ValidateUser(doc models.Document, partial bool) error {
	fields := map[string]string{}

	checkRequiredString(fields, doc, "name", partial, "please tell us your name")
	checkRequiredString(fields, doc, "email", partial, "please provide your email")

	if email, ok := doc["email"].(string); ok && email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			fields["email"] = "please provide a valid email"
		}
	}

	if !partial || hasField(doc, "role") {
		role, _ := doc["role"].(string)
		if role != "" {
			if _, ok := allowedRoles[role]; !ok {
				fields["role"] = "must be one of: user, guide, lead-guide, admin"
			}
		}
	}

	return errorFor(fields)
}

// NormalizeUser lower-cases the email and fills in role and active-flag
// defaults on create.
func NormalizeUser(doc models.Document, partial bool) {
	if email, ok := doc["email"].(string); ok {
		doc["email"] = strings.ToLower(strings.TrimSpace(email))
	}

	if partial {
		return
	}
	if role, _ := doc["role"].(string); role == "" {
		doc["role"] = models.RoleUser
	}
	if !hasField(doc, "active") {
		doc["active"] = true
	}
}

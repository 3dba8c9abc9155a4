// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The trailbook Authors

package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
)

// RandomTokenBytes is the entropy of a generated reset token. 32 bytes of
// CSPRNG output make offline guessing of the hex token infeasible.
const RandomTokenBytes = 32

// GenerateToken returns a cryptographically random hex token of
// RandomTokenBytes entropy. The plaintext is handed to the caller for
// out-of-band delivery and never persisted.
//
// Returns an error only if the platform CSPRNG fails.
func GenerateToken() (string, error) {
	buf := make([]byte, RandomTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("error generating random token: %w", err)
	}

	return hex.EncodeToString(buf), nil
}

// HashToken computes the SHA-256 digest of a token and returns it as a
// hex-encoded string. Only this digest is stored; comparing a candidate
// token means hashing it the same way and comparing digests.
//
// SHA-256 without a work factor is adequate here because tokens are
// high-entropy random values, not low-entropy passwords.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// TokensEqual compares two hex digests in constant time.
func TokensEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

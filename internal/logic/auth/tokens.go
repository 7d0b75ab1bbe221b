package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"
)

// RefreshTokenTTL is the lifetime of issued refresh tokens.
const RefreshTokenTTL = 7 * 24 * time.Hour

// ErrInvalidCredentials covers both bad logins and bad or expired
// refresh tokens, so handlers can answer 401 without leaking which
// part of the exchange failed.
var ErrInvalidCredentials = errors.New("incorrect username or password")

// newRefreshToken returns the raw token handed to the client and the
// SHA-256 hash stored server-side. Only the hash ever touches the
// database.
func newRefreshToken() (raw, hash string, err error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", "", err
	}
	raw = hex.EncodeToString(buf)
	return raw, hashToken(raw), nil
}

// hashToken hashes a raw refresh token for storage or lookup.
func hashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

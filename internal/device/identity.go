// Package device implements the anonymous per-install identity that
// stands in for user accounts: a UUID-v4 generated once per install,
// optionally wrapped in a signed device token.
package device

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// NewID generates a fresh device identifier.
func NewID() uuid.UUID {
	return uuid.New()
}

// ValidateID confirms UUID-v4 shape: parseable, version 4, RFC 4122
// variant.
func ValidateID(s string) (uuid.UUID, bool) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, false
	}
	if id.Version() != 4 || id.Variant() != uuid.RFC4122 {
		return uuid.Nil, false
	}
	return id, true
}

// IssueToken signs a device token carrying the device id as subject.
func IssueToken(deviceID uuid.UUID, secret string, expiry time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub": deviceID.String(),
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(expiry).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// DeviceIDFromToken extracts the device id from verified JWT claims.
func DeviceIDFromToken(token *jwt.Token) (uuid.UUID, bool) {
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, false
	}
	sub, ok := claims["sub"].(string)
	if !ok {
		return uuid.Nil, false
	}
	return ValidateID(sub)
}

package service

import (
	"errors"

	"github.com/google/uuid"
)

// Verification failure kinds. The auth middleware collapses all of them
// into one client-facing 401, but they stay distinct here so the cause can
// be logged and tested individually.
var (
	// ErrTokenMalformed means the token could not be parsed at all.
	ErrTokenMalformed = errors.New("token is malformed")

	// ErrTokenSignatureInvalid means the signature does not match the payload.
	ErrTokenSignatureInvalid = errors.New("token signature is invalid")

	// ErrTokenExpired means the token parsed and verified but its expiry has passed.
	ErrTokenExpired = errors.New("token has expired")
)

// TokenClaims is the identity payload carried by a signed token.
type TokenClaims struct {
	UserID uuid.UUID
}

// TokenService defines the interface for issuing and verifying bearer tokens.
// This abstracts the token format (e.g., JWT) from the use cases.
type TokenService interface {
	// Sign encodes the user's identity plus an expiry into an opaque,
	// signed token string.
	Sign(userID uuid.UUID) (string, error)

	// Verify checks the token's signature and expiry and decodes the
	// claims. Failures are one of the sentinel errors above (possibly
	// wrapped).
	Verify(tokenString string) (*TokenClaims, error)
}

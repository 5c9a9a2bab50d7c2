// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User is the core identity record of the marketplace. It is owned by the
// credential store: the store assigns the ID and timestamps at insertion.
type User struct {
	ID           uuid.UUID // The unique identifier for the user, assigned by the store.
	Email        string    // Normalized email address, the case-insensitive uniqueness key.
	PasswordHash string    // One-way bcrypt digest of the password. Never leaves the backend.
	FirstName    string    // The user's given name, shown after login.
	LastName     string    // The user's family name.
	CreatedAt    time.Time // Set once when the record is inserted.
	UpdatedAt    time.Time // Set on every successful mutation.
}

// UserChanges describes a partial update of a User record. Nil fields are
// left untouched by the store.
type UserChanges struct {
	FirstName    *string
	LastName     *string
	PasswordHash *string
	UpdatedAt    time.Time
}

// IsEmpty reports whether the change set would modify no user-supplied field.
func (c UserChanges) IsEmpty() bool {
	return c.FirstName == nil && c.LastName == nil && c.PasswordHash == nil
}

// NormalizeEmail canonicalizes an email address for storage and lookup.
// It is the single normalization policy in the system: every path that
// touches an email must go through it before hitting the store.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

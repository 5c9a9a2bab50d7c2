// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"secondchance/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// ErrEmailConflict is returned by Create when another record with the same
// normalized email already committed. The store's unique index is the
// authoritative guard against concurrent registrations; any service-level
// pre-check is advisory only.
var ErrEmailConflict = errors.New("email already registered")

// UserRepository defines the standard operations for credential persistence.
// The application layer depends on this interface, never on the concrete
// implementation, so tests can substitute a double.
type UserRepository interface {
	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByEmail retrieves a single user by their normalized email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// Create persists a new user and fills in the store-assigned ID and
	// timestamps on the passed entity. Returns ErrEmailConflict if the
	// normalized email is already taken.
	Create(ctx context.Context, user *entity.User) error

	// UpdateByID applies a partial change set to the record with the given
	// ID and returns the record as it stands after the update. Returns
	// ErrUserNotFound if no record with that ID exists.
	UpdateByID(ctx context.Context, id uuid.UUID, changes entity.UserChanges) (*entity.User, error)
}

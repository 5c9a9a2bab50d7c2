package usecase

import (
	"context"

	"secondchance/internal/domain/entity"

	"github.com/google/uuid"
)

// UpdateProfileInput carries the optional fields of a profile update.
// A nil pointer means "leave unchanged"; a present value must satisfy its
// constraint (names non-empty, password at least six characters).
type UpdateProfileInput struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Password  *string `json:"password"`
}

// ProfileUsecase defines the authorized mutation of a caller's own profile.
// The userID comes from a verified token, never from the request body.
type ProfileUsecase interface {
	UpdateProfile(ctx context.Context, userID uuid.UUID, input *UpdateProfileInput) (*entity.User, error)
}

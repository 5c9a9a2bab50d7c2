package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	deliverycontext "secondchance/internal/delivery/context"
	"secondchance/internal/domain/entity"
	domainerrors "secondchance/internal/domain/errors"
	"secondchance/internal/domain/repository"
	"secondchance/internal/domain/service"
	"secondchance/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// minPasswordLength applies only to password changes; the original
// registration flow predates the rule, so existing shorter passwords keep
// working until changed.
const minPasswordLength = 6

// profileService implements the ProfileUsecase interface.
type profileService struct {
	userRepo repository.UserRepository
	hasher   service.PasswordHasher
	logger   *slog.Logger
}

// ProfileServiceParams holds dependencies for profileService, injected by Fx.
type ProfileServiceParams struct {
	fx.In

	UserRepo repository.UserRepository
	Hasher   service.PasswordHasher
	Logger   *slog.Logger
}

// NewProfileService is the constructor for profileService.
func NewProfileService(params ProfileServiceParams) usecase.ProfileUsecase {
	return &profileService{
		userRepo: params.UserRepo,
		hasher:   params.Hasher,
		logger:   params.Logger,
	}
}

func (srv *profileService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// UpdateProfile applies the caller's changes to their own record. Every
// present field is validated and all violations are reported together.
func (srv *profileService) UpdateProfile(ctx context.Context, userID uuid.UUID, input *usecase.UpdateProfileInput) (*entity.User, error) {
	var violations []domainerrors.FieldViolation
	changes := entity.UserChanges{}

	if input.FirstName != nil {
		firstName := strings.TrimSpace(*input.FirstName)
		if firstName == "" {
			violations = append(violations, domainerrors.FieldViolation{
				Field:   "firstName",
				Message: "First name must be a non-empty string",
			})
		} else {
			changes.FirstName = &firstName
		}
	}

	if input.LastName != nil {
		lastName := strings.TrimSpace(*input.LastName)
		if lastName == "" {
			violations = append(violations, domainerrors.FieldViolation{
				Field:   "lastName",
				Message: "Last name must be a non-empty string",
			})
		} else {
			changes.LastName = &lastName
		}
	}

	if input.Password != nil && len(*input.Password) < minPasswordLength {
		violations = append(violations, domainerrors.FieldViolation{
			Field:   "password",
			Message: "Password must be at least 6 characters long",
		})
	}

	if len(violations) > 0 {
		srv.log(ctx).Warn("Profile update input rejected", slog.Any("userID", userID))

		return nil, domainerrors.NewValidationError(violations...)
	}

	if input.FirstName == nil && input.LastName == nil && input.Password == nil {
		srv.log(ctx).Warn("Profile update with no fields", slog.Any("userID", userID))

		return nil, domainerrors.NewValidationError(domainerrors.FieldViolation{
			Field:   "",
			Message: "Nothing to update",
		})
	}

	if input.Password != nil {
		passwordHash, err := srv.hasher.Hash(*input.Password)
		if err != nil {
			srv.log(ctx).Error("Failed to hash new password", slog.Any("error", err), slog.Any("userID", userID))

			return nil, errors.Wrap(domainerrors.ErrPasswordHashFailed, err.Error())
		}
		changes.PasswordHash = &passwordHash
	}

	changes.UpdatedAt = time.Now()

	user, err := srv.userRepo.UpdateByID(ctx, userID, changes)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.log(ctx).Warn("Profile update for missing user", slog.Any("userID", userID))

			return nil, errors.Wrap(domainerrors.ErrUserNotFound, "profile update failed")
		}

		return nil, errors.Wrap(err, "failed to update user profile")
	}

	srv.log(ctx).Info("User profile updated successfully", slog.Any("userID", userID))

	return user, nil
}

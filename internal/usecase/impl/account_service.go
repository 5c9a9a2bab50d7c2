// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "secondchance/internal/delivery/context"
	"secondchance/internal/domain/entity"
	domainerrors "secondchance/internal/domain/errors"
	"secondchance/internal/domain/repository"
	"secondchance/internal/domain/service"
	"secondchance/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// accountService implements the AccountUsecase interface.
type accountService struct {
	userRepo     repository.UserRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger
}

// AccountServiceParams holds dependencies for accountService, injected by Fx.
type AccountServiceParams struct {
	fx.In

	UserRepo     repository.UserRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewAccountService is the constructor for accountService. It receives all dependencies as interfaces.
func NewAccountService(params AccountServiceParams) usecase.AccountUsecase {
	return &accountService{
		userRepo:     params.UserRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *accountService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register orchestrates the complete registration process: validate,
// normalize, check availability, hash, persist, issue a token.
func (srv *accountService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	in := *input
	in.Email = entity.NormalizeEmail(in.Email)
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)

	if err := validateInput(&in); err != nil {
		srv.log(ctx).Warn("Registration input rejected", slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Debug("Starting registration", slog.String("email", in.Email))

	// Advisory pre-check for fast feedback. The unique index at the store
	// is the real guard; a concurrent insert is still caught below.
	if _, err := srv.userRepo.FindByEmail(ctx, in.Email); err == nil {
		srv.log(ctx).Warn("Registration rejected, email already exists", slog.String("email", in.Email))

		return nil, errors.Wrap(domainerrors.ErrEmailTaken, "registration failed")
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, errors.Wrap(err, "failed to look up email during registration")
	}

	passwordHash, err := srv.hasher.Hash(in.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrPasswordHashFailed, err.Error())
	}

	newUser := &entity.User{
		Email:        in.Email,
		PasswordHash: passwordHash,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
	}

	if err := srv.userRepo.Create(ctx, newUser); err != nil {
		if errors.Is(err, repository.ErrEmailConflict) {
			srv.log(ctx).Warn("Registration lost insert race", slog.String("email", in.Email))

			return nil, errors.Wrap(domainerrors.ErrEmailTaken, "registration failed")
		}

		return nil, errors.Wrap(err, "failed to create user during registration")
	}

	token, err := srv.tokenService.Sign(newUser.ID)
	if err != nil {
		srv.log(ctx).Error("Failed to issue token after registration", slog.Any("error", err), slog.Any("userID", newUser.ID))

		return nil, errors.Wrap(domainerrors.ErrTokenIssueFailed, err.Error())
	}

	srv.log(ctx).Info("User registered successfully", slog.Any("userID", newUser.ID))

	return &usecase.RegisterOutput{
		Token: token,
		Email: newUser.Email,
	}, nil
}

// Login orchestrates the user login process. Unknown email and wrong
// password deliberately collapse into the same failure so the response
// never reveals whether an account exists.
func (srv *accountService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	in := *input
	in.Email = entity.NormalizeEmail(in.Email)

	if err := validateInput(&in); err != nil {
		srv.log(ctx).Warn("Login input rejected", slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Debug("Starting login", slog.String("email", in.Email))

	user, err := srv.userRepo.FindByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.log(ctx).Warn("Login failed, unknown email", slog.String("email", in.Email))

			return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
		}

		return nil, errors.Wrap(err, "failed to look up user during login")
	}

	match, err := srv.hasher.Check(in.Password, user.PasswordHash)
	if err != nil {
		srv.log(ctx).Error("Stored password digest is malformed", slog.Any("error", err), slog.Any("userID", user.ID))

		return nil, errors.Wrap(err, "failed to verify password")
	}
	if !match {
		srv.log(ctx).Warn("Login failed, wrong password", slog.Any("userID", user.ID))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
	}

	token, err := srv.tokenService.Sign(user.ID)
	if err != nil {
		srv.log(ctx).Error("Failed to issue token after login", slog.Any("error", err), slog.Any("userID", user.ID))

		return nil, errors.Wrap(domainerrors.ErrTokenIssueFailed, err.Error())
	}

	srv.log(ctx).Info("User logged in successfully", slog.Any("userID", user.ID))

	return &usecase.LoginOutput{
		Token:     token,
		UserName:  user.FirstName,
		UserEmail: user.Email,
	}, nil
}

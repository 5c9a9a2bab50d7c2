package impl

import (
	"context"
	"testing"

	"secondchance/internal/domain/entity"
	domainerrors "secondchance/internal/domain/errors"
	"secondchance/internal/domain/repository"
	mockRepo "secondchance/internal/mocks/repository"
	mockSvc "secondchance/internal/mocks/service"
	"secondchance/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// accountServiceFixtures holds all test dependencies for account service tests.
type accountServiceFixtures struct {
	service      usecase.AccountUsecase
	userRepo     *mockRepo.MockUserRepository
	hasher       *mockSvc.MockPasswordHasher
	tokenService *mockSvc.MockTokenService
}

func createTestAccountService(t *testing.T) accountServiceFixtures {
	userRepo := mockRepo.NewMockUserRepository(t)
	hasher := mockSvc.NewMockPasswordHasher(t)
	tokenService := mockSvc.NewMockTokenService(t)

	service := NewAccountService(AccountServiceParams{
		UserRepo:     userRepo,
		Hasher:       hasher,
		TokenService: tokenService,
		Logger:       newDiscardLogger(),
	})

	return accountServiceFixtures{
		service:      service,
		userRepo:     userRepo,
		hasher:       hasher,
		tokenService: tokenService,
	}
}

func TestAccountService_Register_Success(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	input := &usecase.RegisterInput{
		Email:     "test@example.com",
		Password:  "Password123!",
		FirstName: "Test",
		LastName:  "User",
	}

	userID := uuid.New()

	fx.userRepo.EXPECT().
		FindByEmail(ctx, "test@example.com").
		Return(nil, repository.ErrUserNotFound)

	fx.hasher.EXPECT().Hash(input.Password).Return("hashed_password", nil)

	fx.userRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.User")).
		Run(func(ctx context.Context, user *entity.User) {
			assert.Equal(t, "test@example.com", user.Email)
			assert.Equal(t, "hashed_password", user.PasswordHash)
			user.ID = userID
		}).
		Return(nil)

	fx.tokenService.EXPECT().Sign(userID).Return("signed_token", nil)

	output, err := fx.service.Register(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, "signed_token", output.Token)
	assert.Equal(t, "test@example.com", output.Email)
}

func TestAccountService_Register_NormalizesEmailAndNames(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	input := &usecase.RegisterInput{
		Email:     "  MiXeD@Example.COM ",
		Password:  "Password123!",
		FirstName: "  Test ",
		LastName:  " User  ",
	}

	fx.userRepo.EXPECT().
		FindByEmail(ctx, "mixed@example.com").
		Return(nil, repository.ErrUserNotFound)

	fx.hasher.EXPECT().Hash(input.Password).Return("hashed_password", nil)

	fx.userRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.User")).
		Run(func(ctx context.Context, user *entity.User) {
			assert.Equal(t, "mixed@example.com", user.Email)
			assert.Equal(t, "Test", user.FirstName)
			assert.Equal(t, "User", user.LastName)
			user.ID = uuid.New()
		}).
		Return(nil)

	fx.tokenService.EXPECT().Sign(mock.AnythingOfType("uuid.UUID")).Return("signed_token", nil)

	output, err := fx.service.Register(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, "mixed@example.com", output.Email)
}

func TestAccountService_Register_EmailTaken(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	input := &usecase.RegisterInput{
		Email:     "taken@example.com",
		Password:  "Password123!",
		FirstName: "Test",
		LastName:  "User",
	}

	existing := &entity.User{ID: uuid.New(), Email: "taken@example.com"}
	fx.userRepo.EXPECT().FindByEmail(ctx, "taken@example.com").Return(existing, nil)

	output, err := fx.service.Register(ctx, input)

	require.Error(t, err)
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrEmailTaken)
}

func TestAccountService_Register_LostInsertRace(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	input := &usecase.RegisterInput{
		Email:     "race@example.com",
		Password:  "Password123!",
		FirstName: "Test",
		LastName:  "User",
	}

	// The pre-check sees nothing, but a concurrent insert wins and the
	// unique index rejects ours.
	fx.userRepo.EXPECT().
		FindByEmail(ctx, "race@example.com").
		Return(nil, repository.ErrUserNotFound)

	fx.hasher.EXPECT().Hash(input.Password).Return("hashed_password", nil)

	fx.userRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.User")).
		Return(repository.ErrEmailConflict)

	output, err := fx.service.Register(ctx, input)

	require.Error(t, err)
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrEmailTaken)
}

func TestAccountService_Register_MissingFields(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	input := &usecase.RegisterInput{
		Email: "test@example.com",
	}

	output, err := fx.service.Register(ctx, input)

	require.Error(t, err)
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	// Every missing field is reported at once.
	var validationErr *domainerrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
	fields := make([]string, 0, len(validationErr.Violations()))
	for _, v := range validationErr.Violations() {
		fields = append(fields, v.Field)
	}
	assert.ElementsMatch(t, []string{"password", "firstName", "lastName"}, fields)

	// The store is never touched on invalid input.
	fx.userRepo.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
	fx.userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAccountService_Register_HashFailure(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	input := &usecase.RegisterInput{
		Email:     "test@example.com",
		Password:  "Password123!",
		FirstName: "Test",
		LastName:  "User",
	}

	fx.userRepo.EXPECT().
		FindByEmail(ctx, "test@example.com").
		Return(nil, repository.ErrUserNotFound)

	fx.hasher.EXPECT().Hash(input.Password).Return("", errors.New("bcrypt failure"))

	output, err := fx.service.Register(ctx, input)

	require.Error(t, err)
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrPasswordHashFailed)
}

func TestAccountService_Register_TokenIssueFailure(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	input := &usecase.RegisterInput{
		Email:     "test@example.com",
		Password:  "Password123!",
		FirstName: "Test",
		LastName:  "User",
	}

	fx.userRepo.EXPECT().
		FindByEmail(ctx, "test@example.com").
		Return(nil, repository.ErrUserNotFound)

	fx.hasher.EXPECT().Hash(input.Password).Return("hashed_password", nil)

	fx.userRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.User")).
		Run(func(ctx context.Context, user *entity.User) {
			user.ID = uuid.New()
		}).
		Return(nil)

	fx.tokenService.EXPECT().
		Sign(mock.AnythingOfType("uuid.UUID")).
		Return("", errors.New("signing failure"))

	output, err := fx.service.Register(ctx, input)

	require.Error(t, err)
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrTokenIssueFailed)
}

func TestAccountService_Login_Success(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	input := &usecase.LoginInput{
		Email:    "test@example.com",
		Password: "Password123!",
	}

	user := &entity.User{
		ID:           uuid.New(),
		Email:        "test@example.com",
		PasswordHash: "stored_digest",
		FirstName:    "Test",
		LastName:     "User",
	}

	fx.userRepo.EXPECT().FindByEmail(ctx, "test@example.com").Return(user, nil)
	fx.hasher.EXPECT().Check(input.Password, "stored_digest").Return(true, nil)
	fx.tokenService.EXPECT().Sign(user.ID).Return("signed_token", nil)

	output, err := fx.service.Login(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, "signed_token", output.Token)
	assert.Equal(t, "Test", output.UserName)
	assert.Equal(t, "test@example.com", output.UserEmail)
}

func TestAccountService_Login_NormalizesEmail(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	input := &usecase.LoginInput{
		Email:    " Test@Example.COM ",
		Password: "Password123!",
	}

	user := &entity.User{
		ID:           uuid.New(),
		Email:        "test@example.com",
		PasswordHash: "stored_digest",
		FirstName:    "Test",
	}

	fx.userRepo.EXPECT().FindByEmail(ctx, "test@example.com").Return(user, nil)
	fx.hasher.EXPECT().Check(input.Password, "stored_digest").Return(true, nil)
	fx.tokenService.EXPECT().Sign(user.ID).Return("signed_token", nil)

	output, err := fx.service.Login(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, "test@example.com", output.UserEmail)
}

func TestAccountService_Login_UnknownEmail(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	input := &usecase.LoginInput{
		Email:    "nobody@example.com",
		Password: "Password123!",
	}

	fx.userRepo.EXPECT().
		FindByEmail(ctx, "nobody@example.com").
		Return(nil, repository.ErrUserNotFound)

	output, err := fx.service.Login(ctx, input)

	require.Error(t, err)
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAccountService_Login_WrongPassword(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	input := &usecase.LoginInput{
		Email:    "test@example.com",
		Password: "wrong-password",
	}

	user := &entity.User{
		ID:           uuid.New(),
		Email:        "test@example.com",
		PasswordHash: "stored_digest",
	}

	fx.userRepo.EXPECT().FindByEmail(ctx, "test@example.com").Return(user, nil)
	fx.hasher.EXPECT().Check(input.Password, "stored_digest").Return(false, nil)

	output, err := fx.service.Login(ctx, input)

	require.Error(t, err)
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

// Unknown email and wrong password must be indistinguishable to the caller.
func TestAccountService_Login_FailuresAreUniform(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()

	fx.userRepo.EXPECT().
		FindByEmail(ctx, "nobody@example.com").
		Return(nil, repository.ErrUserNotFound)

	_, unknownEmailErr := fx.service.Login(ctx, &usecase.LoginInput{
		Email:    "nobody@example.com",
		Password: "Password123!",
	})

	user := &entity.User{ID: uuid.New(), Email: "test@example.com", PasswordHash: "stored_digest"}
	fx.userRepo.EXPECT().FindByEmail(ctx, "test@example.com").Return(user, nil)
	fx.hasher.EXPECT().Check("wrong-password", "stored_digest").Return(false, nil)

	_, wrongPasswordErr := fx.service.Login(ctx, &usecase.LoginInput{
		Email:    "test@example.com",
		Password: "wrong-password",
	})

	require.Error(t, unknownEmailErr)
	require.Error(t, wrongPasswordErr)
	assert.ErrorIs(t, unknownEmailErr, domainerrors.ErrInvalidCredentials)
	assert.ErrorIs(t, wrongPasswordErr, domainerrors.ErrInvalidCredentials)
}

func TestAccountService_Login_MalformedDigest(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	input := &usecase.LoginInput{
		Email:    "test@example.com",
		Password: "Password123!",
	}

	user := &entity.User{
		ID:           uuid.New(),
		Email:        "test@example.com",
		PasswordHash: "not-a-bcrypt-digest",
	}

	fx.userRepo.EXPECT().FindByEmail(ctx, "test@example.com").Return(user, nil)
	fx.hasher.EXPECT().
		Check(input.Password, "not-a-bcrypt-digest").
		Return(false, errors.New("malformed password digest"))

	output, err := fx.service.Login(ctx, input)

	require.Error(t, err)
	assert.Nil(t, output)
	assert.NotErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAccountService_Login_MissingFields(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()

	output, err := fx.service.Login(ctx, &usecase.LoginInput{})

	require.Error(t, err)
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	fx.userRepo.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
}

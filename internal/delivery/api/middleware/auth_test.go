package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	domainerrors "secondchance/internal/domain/errors"
	"secondchance/internal/domain/service"
	mockSvc "secondchance/internal/mocks/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newAuthTestContext(t *testing.T, authorization string) echo.Context {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPut, "/auth/update", nil)
	if authorization != "" {
		req.Header.Set(echo.HeaderAuthorization, authorization)
	}
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec)
}

func newTestAuthMiddleware(t *testing.T) (*AuthMiddleware, *mockSvc.MockTokenService) {
	t.Helper()

	tokenService := mockSvc.NewMockTokenService(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewAuthMiddleware(tokenService, logger), tokenService
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	m, tokenService := newTestAuthMiddleware(t)
	userID := uuid.New()

	tokenService.EXPECT().
		Verify("valid-token").
		Return(&service.TokenClaims{UserID: userID}, nil)

	c := newAuthTestContext(t, "Bearer valid-token")

	nextCalled := false
	handler := m.Authenticate(func(c echo.Context) error {
		nextCalled = true

		gotID, ok := GetUserID(c)
		require.True(t, ok)
		assert.Equal(t, userID, gotID)

		return nil
	})

	require.NoError(t, handler(c))
	assert.True(t, nextCalled)
}

func TestAuthMiddleware_LowercaseSchemeAccepted(t *testing.T) {
	m, tokenService := newTestAuthMiddleware(t)
	userID := uuid.New()

	tokenService.EXPECT().
		Verify("valid-token").
		Return(&service.TokenClaims{UserID: userID}, nil)

	c := newAuthTestContext(t, "bearer valid-token")

	handler := m.Authenticate(func(c echo.Context) error { return nil })

	require.NoError(t, handler(c))
}

// Every rejection, whatever its cause, must be the same error so the
// response never reveals which check failed.
func TestAuthMiddleware_RejectionsAreUniform(t *testing.T) {
	tests := []struct {
		name          string
		authorization string
		verifyErr     error
	}{
		{name: "missing header", authorization: ""},
		{name: "wrong scheme", authorization: "Basic dXNlcjpwYXNz"},
		{name: "scheme without token", authorization: "Bearer "},
		{name: "malformed token", authorization: "Bearer garbage", verifyErr: errors.Wrap(service.ErrTokenMalformed, "bad segments")},
		{name: "bad signature", authorization: "Bearer forged", verifyErr: errors.Wrap(service.ErrTokenSignatureInvalid, "signature mismatch")},
		{name: "expired token", authorization: "Bearer expired", verifyErr: errors.Wrap(service.ErrTokenExpired, "token expired")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, tokenService := newTestAuthMiddleware(t)

			if tt.verifyErr != nil {
				tokenService.EXPECT().
					Verify(mock.AnythingOfType("string")).
					Return(nil, tt.verifyErr)
			}

			c := newAuthTestContext(t, tt.authorization)

			handler := m.Authenticate(func(c echo.Context) error {
				t.Fatal("next handler must not run")

				return nil
			})

			err := handler(c)
			require.Error(t, err)
			assert.ErrorIs(t, err, domainerrors.ErrUnauthenticated)

			_, ok := GetUserID(c)
			assert.False(t, ok)
		})
	}
}

func TestGetUserID_AbsentWithoutAuthenticate(t *testing.T) {
	c := newAuthTestContext(t, "")

	_, ok := GetUserID(c)
	assert.False(t, ok)
}

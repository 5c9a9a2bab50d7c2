package middleware

import (
	"log/slog"
	"strings"

	deliverycontext "secondchance/internal/delivery/context"
	domainerrors "secondchance/internal/domain/errors"
	"secondchance/internal/domain/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// userIDContextKey is the Echo context key holding the authenticated user ID.
const userIDContextKey = "auth.userID"

// AuthMiddleware guards routes behind bearer token authentication.
// Every token failure, whatever the cause, yields the same 401 response
// so callers cannot probe which check rejected them.
type AuthMiddleware struct {
	tokenService service.TokenService
	logger       *slog.Logger
}

// NewAuthMiddleware creates a new authentication middleware
func NewAuthMiddleware(tokenService service.TokenService, logger *slog.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		tokenService: tokenService,
		logger:       logger,
	}
}

// Authenticate verifies the Authorization header and stores the
// authenticated user ID on the request context.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		tokenString, ok := extractBearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
		if !ok {
			m.logAuthFailure(c, "missing or malformed authorization header", nil)

			return domainerrors.ErrUnauthenticated
		}

		claims, err := m.tokenService.Verify(tokenString)
		if err != nil {
			m.logAuthFailure(c, "token verification failed", err)

			return domainerrors.ErrUnauthenticated
		}

		c.Set(userIDContextKey, claims.UserID)

		return next(c)
	}
}

func (m *AuthMiddleware) logAuthFailure(c echo.Context, reason string, err error) {
	attrs := []any{
		slog.String("reason", reason),
		slog.String("path", c.Request().URL.Path),
		slog.String("request_id", deliverycontext.GetRequestID(c)),
	}
	if err != nil {
		attrs = append(attrs, slog.Any("error", err))
	}

	m.logger.Warn("Authentication rejected", attrs...)
}

// extractBearerToken splits the Authorization header into its bearer
// token, rejecting any other scheme and empty tokens.
func extractBearerToken(header string) (string, bool) {
	if header == "" {
		return "", false
	}

	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}

	return token, true
}

// GetUserID returns the authenticated user ID stored by Authenticate.
func GetUserID(c echo.Context) (uuid.UUID, bool) {
	userID, ok := c.Get(userIDContextKey).(uuid.UUID)

	return userID, ok
}

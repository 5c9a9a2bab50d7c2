package auth

import (
	"testing"
	"time"

	"secondchance/config"
	"secondchance/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService(t *testing.T, ttl time.Duration) service.TokenService {
	t.Helper()

	svc, err := NewJWTService(&config.Config{
		Auth: &config.AuthConfig{
			TokenSecret: "test-secret",
			TokenTTL:    ttl,
		},
	})
	require.NoError(t, err)

	return svc
}

func TestJWTService_RequiresSecret(t *testing.T) {
	_, err := NewJWTService(&config.Config{})
	require.Error(t, err)

	_, err = NewJWTService(&config.Config{Auth: &config.AuthConfig{}})
	require.Error(t, err)
}

func TestJWTService_SignAndVerify(t *testing.T) {
	svc := newTestJWTService(t, time.Hour)
	userID := uuid.New()

	token, err := svc.Sign(userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
}

func TestJWTService_ExpiredToken(t *testing.T) {
	svc := newTestJWTService(t, -time.Minute)

	token, err := svc.Sign(uuid.New())
	require.NoError(t, err)

	claims, err := svc.Verify(token)
	require.Error(t, err)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, service.ErrTokenExpired)
}

func TestJWTService_TamperedToken(t *testing.T) {
	svc := newTestJWTService(t, time.Hour)

	token, err := svc.Sign(uuid.New())
	require.NoError(t, err)

	tampered := token[:len(token)-2] + "xx"

	claims, err := svc.Verify(tampered)
	require.Error(t, err)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, service.ErrTokenSignatureInvalid)
}

func TestJWTService_WrongSecret(t *testing.T) {
	svc := newTestJWTService(t, time.Hour)

	other, err := NewJWTService(&config.Config{
		Auth: &config.AuthConfig{TokenSecret: "another-secret"},
	})
	require.NoError(t, err)

	token, err := other.Sign(uuid.New())
	require.NoError(t, err)

	claims, err := svc.Verify(token)
	require.Error(t, err)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, service.ErrTokenSignatureInvalid)
}

func TestJWTService_MalformedToken(t *testing.T) {
	svc := newTestJWTService(t, time.Hour)

	claims, err := svc.Verify("definitely.not.a-token")
	require.Error(t, err)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, service.ErrTokenMalformed)
}

// A token signed with an unexpected algorithm must not verify even when
// the signature itself checks out.
func TestJWTService_RejectsUnexpectedAlgorithm(t *testing.T) {
	svc := newTestJWTService(t, time.Hour)

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.RegisteredClaims{
		Subject:   uuid.New().String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	claims, verifyErr := svc.Verify(signed)
	require.Error(t, verifyErr)
	assert.Nil(t, claims)
}

func TestJWTService_RejectsMissingExpiry(t *testing.T) {
	svc := newTestJWTService(t, time.Hour)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject: uuid.New().String(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	claims, verifyErr := svc.Verify(signed)
	require.Error(t, verifyErr)
	assert.Nil(t, claims)
	assert.ErrorIs(t, verifyErr, service.ErrTokenMalformed)
}

func TestJWTService_RejectsNonUUIDSubject(t *testing.T) {
	svc := newTestJWTService(t, time.Hour)

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "not-a-uuid",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	claims, verifyErr := svc.Verify(signed)
	require.Error(t, verifyErr)
	assert.Nil(t, claims)
	assert.ErrorIs(t, verifyErr, service.ErrTokenMalformed)
}

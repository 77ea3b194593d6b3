package server

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/lead-prospector/internal/config"
)

func testJWTService() *JWTService {
	return NewJWTService(&config.JWTConfig{Secret: "test-secret-key", ExpirationHours: 1})
}

func TestJWT_GenerateAndValidateRoundTrip(t *testing.T) {
	svc := testJWTService()
	userID := uuid.New()

	token, err := svc.GenerateToken(userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, userID, claims.GetUserID())
}

func TestJWT_RejectsEmptyToken(t *testing.T) {
	_, err := testJWTService().ValidateToken("")
	assert.Error(t, err)
}

func TestJWT_RejectsMalformedToken(t *testing.T) {
	_, err := testJWTService().ValidateToken("not.a.jwt")
	assert.Error(t, err)
}

func TestJWT_RejectsTokenSignedWithDifferentSecret(t *testing.T) {
	other := NewJWTService(&config.JWTConfig{Secret: "another-secret", ExpirationHours: 1})
	token, err := other.GenerateToken(uuid.New())
	require.NoError(t, err)

	_, err = testJWTService().ValidateToken(token)
	assert.Error(t, err)
}

func TestJWT_ValidatorAdapterExposesUserID(t *testing.T) {
	svc := testJWTService()
	userID := uuid.New()
	token, err := svc.GenerateToken(userID)
	require.NoError(t, err)

	getter, err := svc.AsTokenValidator().ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, getter.GetUserID())
}

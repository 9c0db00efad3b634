package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lfarias/gestor-academico/internal/pkg/apperrors"
	"github.com/lfarias/gestor-academico/internal/pkg/auth"
)

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "gestor-academico-test",
	})
}

func TestLogin(t *testing.T) {
	jwtService := newTestJWTService()
	service, err := NewAuthService("s3cret", jwtService)
	require.NoError(t, err)

	token, err := service.Login("s3cret")
	require.NoError(t, err)
	assert.Equal(t, "Bearer", token.TokenType)
	assert.Equal(t, int(time.Hour.Seconds()), token.ExpiresIn)

	claims, err := jwtService.ValidateToken(token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, AdminRole, claims.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	service, err := NewAuthService("s3cret", newTestJWTService())
	require.NoError(t, err)

	_, err = service.Login("wrong")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

package services

import (
	"fmt"

	"github.com/lfarias/gestor-academico/internal/app/models/dto"
	"github.com/lfarias/gestor-academico/internal/pkg/apperrors"
	"github.com/lfarias/gestor-academico/internal/pkg/auth"
)

// AdminRole is the only role the API issues tokens for.
const AdminRole = "admin"

// AuthService issues access tokens for the administrative credential.
type AuthService struct {
	passwordHash string
	jwtService   *auth.JWTService
}

// NewAuthService hashes the configured admin password and keeps only the
// hash in memory.
func NewAuthService(adminPassword string, jwtService *auth.JWTService) (*AuthService, error) {
	hash, err := auth.HashPassword(adminPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to hash admin password: %w", err)
	}

	return &AuthService{
		passwordHash: hash,
		jwtService:   jwtService,
	}, nil
}

// Login checks the admin credential and returns a signed access token.
func (s *AuthService) Login(password string) (*dto.TokenResponse, error) {
	if !auth.CheckPassword(s.passwordHash, password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, expiresIn, err := s.jwtService.GenerateToken(AdminRole)
	if err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   expiresIn,
	}, nil
}

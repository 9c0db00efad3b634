package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lfarias/gestor-academico/internal/app/models/dto"
	"github.com/lfarias/gestor-academico/internal/pkg/auth"
)

// AuthMiddleware guards the mutating endpoints behind the admin token.
type AuthMiddleware struct {
	jwtService *auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
	}
}

// JWTAuth validates the bearer token and stores the caller's role in the
// request context.
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
			errorDetail = errorDetail.WithDetails("Authorization header missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		tokenString, err := auth.ExtractBearerToken(authHeader)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
			errorDetail = errorDetail.WithDetails("Invalid token format")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		claims, err := m.jwtService.ValidateToken(tokenString)
		if err != nil {
			errorCode := dto.ErrorCodeInvalidToken
			errorDetails := "Invalid token"
			if errors.Is(err, auth.ErrExpiredToken) {
				errorCode = dto.ErrorCodeExpiredToken
				errorDetails = "Token has expired"
			}

			errorDetail := dto.NewErrorDetail(errorCode, "Authentication failed")
			errorDetail = errorDetail.WithDetails(errorDetails)
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		c.Set("role", claims.Role)
		c.Next()
	}
}

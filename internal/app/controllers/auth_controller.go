package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lfarias/gestor-academico/internal/app/models/dto"
	"github.com/lfarias/gestor-academico/internal/app/services"
	"github.com/lfarias/gestor-academico/internal/middleware"
)

// AuthController handles authentication endpoints
type AuthController struct {
	authService *services.AuthService
}

// NewAuthController creates a new AuthController
func NewAuthController(authService *services.AuthService) *AuthController {
	return &AuthController{
		authService: authService,
	}
}

// Login issues an access token for the admin credential
// @Summary Admin login
// @Description Validates the admin password and returns a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Admin credential"
// @Success 200 {object} dto.APIResponse{data=dto.TokenResponse} "Token issued"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid login data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	token, err := c.authService.Login(req.Password)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewDataResponse(token))
}

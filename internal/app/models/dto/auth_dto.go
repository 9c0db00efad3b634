package dto

// LoginRequest carries the admin credential.
type LoginRequest struct {
	Password string `json:"password" binding:"required" example:"change-me"`
}

// TokenResponse returns an issued access token.
type TokenResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType" example:"Bearer"`
	ExpiresIn   int    `json:"expiresIn" example:"3600"`
}

package handler

import (
	"time"

	"github.com/syncworks/backend/internal/application/identity"
)

// LoginRequest represents the login request body
// @Description Login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email,max=200" example:"dispatch@acme-movers.com"`
	Password string `json:"password" binding:"required,min=1,max=128" example:"Password123"`
}

// RefreshTokenRequest represents the refresh request body. The token may
// instead arrive in the refresh_token cookie.
// @Description Refresh token request
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// ChangePasswordRequest represents the change password request body
// @Description Change password request
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=128"`
}

// TokenResponse represents the access token in responses. The refresh
// token travels in an httpOnly cookie and is left out of the body.
// @Description Token information
type TokenResponse struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token,omitempty"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type" example:"Bearer"`
}

// LoginResponse represents the login response
// @Description Login response with token and user info
type LoginResponse struct {
	Token TokenResponse     `json:"token"`
	User  identity.UserInfo `json:"user"`
}

// RefreshTokenResponse represents the refresh response
// @Description Refresh token response
type RefreshTokenResponse struct {
	Token TokenResponse `json:"token"`
}

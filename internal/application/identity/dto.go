package identity

import (
	"time"

	"github.com/google/uuid"
	"github.com/syncworks/backend/internal/domain/identity"
)

// LoginInput contains the input for user login
type LoginInput struct {
	Email    string
	Password string
	IP       string // Client IP for login tracking
}

// LoginResult contains the result of a successful login
type LoginResult struct {
	AccessToken           string
	RefreshToken          string
	AccessTokenExpiresAt  time.Time
	RefreshTokenExpiresAt time.Time
	TokenType             string
	User                  UserInfo
}

// UserInfo contains basic user information returned after login
type UserInfo struct {
	ID          uuid.UUID  `json:"id"`
	CompanyID   uuid.UUID  `json:"company_id"`
	CompanyCode string     `json:"company_code,omitempty"`
	Email       string     `json:"email"`
	DisplayName string     `json:"display_name"`
	Role        string     `json:"role"`
	ReferrerID  *uuid.UUID `json:"referrer_id,omitempty"`
}

// RefreshTokenInput contains the input for token refresh
type RefreshTokenInput struct {
	RefreshToken string
}

// RefreshTokenResult contains the result of a token refresh
type RefreshTokenResult struct {
	AccessToken           string
	RefreshToken          string
	AccessTokenExpiresAt  time.Time
	RefreshTokenExpiresAt time.Time
	TokenType             string
}

// LogoutInput contains the input for user logout
type LogoutInput struct {
	UserID         uuid.UUID
	AccessTokenJTI string
	AccessTokenTTL time.Duration
	RefreshToken   string // optional; revoked too when present
}

// ChangePasswordInput contains the input for password change
type ChangePasswordInput struct {
	UserID      uuid.UUID
	OldPassword string
	NewPassword string
}

// CreateUserInput contains input for creating a user
type CreateUserInput struct {
	CompanyID   uuid.UUID  `json:"-"`
	Email       string     `json:"email" binding:"required,email,max=200"`
	Password    string     `json:"password" binding:"required,min=8,max=128"`
	DisplayName string     `json:"display_name" binding:"max=200"`
	Role        string     `json:"role" binding:"required,oneof=admin staff referrer"`
	ReferrerID  *uuid.UUID `json:"referrer_id"`
}

// UpdateUserInput contains input for updating a user
type UpdateUserInput struct {
	DisplayName *string    `json:"display_name" binding:"omitempty,max=200"`
	Role        *string    `json:"role" binding:"omitempty,oneof=admin staff referrer"`
	ReferrerID  *uuid.UUID `json:"referrer_id"`
}

// ResetPasswordInput sets a user's password without the old one
type ResetPasswordInput struct {
	Password string `json:"password" binding:"required,min=8,max=128"`
}

// UserListFilter narrows the user listing
type UserListFilter struct {
	Keyword   string `form:"keyword"`
	Status    string `form:"status" binding:"omitempty,oneof=active locked deactivated"`
	Role      string `form:"role" binding:"omitempty,oneof=admin staff referrer"`
	Page      int    `form:"page" binding:"omitempty,min=1"`
	PageSize  int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	SortBy    string `form:"sort_by"`
	SortOrder string `form:"sort_order" binding:"omitempty,oneof=asc desc"`
}

// UserDTO represents user data transfer object
type UserDTO struct {
	ID             uuid.UUID  `json:"id"`
	CompanyID      uuid.UUID  `json:"company_id"`
	Email          string     `json:"email"`
	DisplayName    string     `json:"display_name"`
	Role           string     `json:"role"`
	ReferrerID     *uuid.UUID `json:"referrer_id,omitempty"`
	Status         string     `json:"status"`
	FailedAttempts int        `json:"failed_attempts"`
	LockedUntil    *time.Time `json:"locked_until,omitempty"`
	LastLoginAt    *time.Time `json:"last_login_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// UserListResult represents paginated user list result
type UserListResult struct {
	Users      []UserDTO `json:"users"`
	Total      int64     `json:"total"`
	Page       int       `json:"page"`
	PageSize   int       `json:"page_size"`
	TotalPages int       `json:"total_pages"`
}

func toUserInfo(u *identity.User, companyCode string) UserInfo {
	return UserInfo{
		ID:          u.ID,
		CompanyID:   u.CompanyID,
		CompanyCode: companyCode,
		Email:       u.Email,
		DisplayName: u.Name(),
		Role:        string(u.Role),
		ReferrerID:  u.ReferrerID,
	}
}

func toUserDTO(u *identity.User) *UserDTO {
	return &UserDTO{
		ID:             u.ID,
		CompanyID:      u.CompanyID,
		Email:          u.Email,
		DisplayName:    u.DisplayName,
		Role:           string(u.Role),
		ReferrerID:     u.ReferrerID,
		Status:         string(u.Status),
		FailedAttempts: u.FailedAttempts,
		LockedUntil:    u.LockedUntil,
		LastLoginAt:    u.LastLoginAt,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

package identity

import (
	"time"

	"github.com/google/uuid"

	"github.com/fintrack/backend/internal/domain/identity"
)

// RegisterInput contains the data for creating a new account
type RegisterInput struct {
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=8"`
	DisplayName  string `json:"display_name" binding:"required,max=100"`
	Profile      string `json:"profile" binding:"omitempty,oneof=HOUSEHOLD BUSINESS"`
	BaseCurrency string `json:"base_currency" binding:"omitempty,len=3"`
}

// LoginInput contains credentials for authentication
type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshTokenInput contains the refresh token
type RefreshTokenInput struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// LogoutInput identifies the session to terminate
type LogoutInput struct {
	UserID      uuid.UUID
	JTI         string
	TokenExpiry time.Time
	AllSessions bool
}

// ChangePasswordInput contains the old and new passwords
type ChangePasswordInput struct {
	UserID          uuid.UUID
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

// UpdateProfileInput contains mutable profile fields
type UpdateProfileInput struct {
	UserID       uuid.UUID
	DisplayName  *string `json:"display_name" binding:"omitempty,max=100"`
	BaseCurrency *string `json:"base_currency" binding:"omitempty,len=3"`
}

// UserInfo is the user representation returned to clients
type UserInfo struct {
	ID           uuid.UUID  `json:"id"`
	Email        string     `json:"email"`
	DisplayName  string     `json:"display_name"`
	Profile      string     `json:"profile"`
	BaseCurrency string     `json:"base_currency"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
}

// AuthResult bundles tokens with the authenticated user
type AuthResult struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
	User                  UserInfo  `json:"user"`
}

func userInfoFromDomain(u *identity.User) UserInfo {
	return UserInfo{
		ID:           u.ID,
		Email:        u.Email,
		DisplayName:  u.DisplayName,
		Profile:      string(u.Profile),
		BaseCurrency: string(u.BaseCurrency),
		LastLoginAt:  u.LastLoginAt,
	}
}

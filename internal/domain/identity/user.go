package identity

import (
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/fintrack/backend/internal/domain/shared/valueobject"
)

// ProfileType distinguishes a household user from a business user
type ProfileType string

const (
	ProfileHousehold ProfileType = "HOUSEHOLD"
	ProfileBusiness  ProfileType = "BUSINESS"
)

// IsValid checks if the profile type is valid
func (p ProfileType) IsValid() bool {
	return p == ProfileHousehold || p == ProfileBusiness
}

// User is the account owner aggregate root
type User struct {
	shared.BaseEntity
	Email        string               `json:"email"`
	PasswordHash string               `json:"-"`
	DisplayName  string               `json:"display_name"`
	Profile      ProfileType          `json:"profile"`
	BaseCurrency valueobject.Currency `json:"base_currency"`
	Active       bool                 `json:"active"`
	LastLoginAt  *time.Time           `json:"last_login_at"`
}

// NewUser creates a new user with a bcrypt-hashed password
func NewUser(email, password, displayName string, profile ProfileType, baseCurrency valueobject.Currency) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Email address is not valid")
	}
	if len(password) < 8 {
		return nil, shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}
	if displayName == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Display name cannot be empty")
	}
	if !profile.IsValid() {
		profile = ProfileHousehold
	}
	if baseCurrency == "" {
		baseCurrency = valueobject.DefaultCurrency
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return &User{
		BaseEntity:   shared.NewBaseEntity(),
		Email:        email,
		PasswordHash: string(hash),
		DisplayName:  displayName,
		Profile:      profile,
		BaseCurrency: baseCurrency,
		Active:       true,
	}, nil
}

// CheckPassword verifies a plaintext password against the stored hash
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// ChangePassword verifies the current password and sets a new one
func (u *User) ChangePassword(current, next string) error {
	if !u.CheckPassword(current) {
		return shared.NewDomainError("INVALID_PASSWORD", "Current password is incorrect")
	}
	if len(next) < 8 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	u.Touch()
	return nil
}

// RecordLogin stamps the last successful login time
func (u *User) RecordLogin() {
	now := time.Now()
	u.LastLoginAt = &now
	u.Touch()
}

// Deactivate disables the account
func (u *User) Deactivate() {
	u.Active = false
	u.Touch()
}

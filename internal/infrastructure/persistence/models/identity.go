package models

import (
	"time"

	"github.com/fintrack/backend/internal/domain/identity"
	"github.com/fintrack/backend/internal/domain/shared/valueobject"
)

// UserModel is the persistence model for identity.User
type UserModel struct {
	BaseModel
	Email        string     `gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHash string     `gorm:"type:varchar(255);not null"`
	DisplayName  string     `gorm:"type:varchar(100);not null"`
	Profile      string     `gorm:"type:varchar(20);not null;default:'HOUSEHOLD'"`
	BaseCurrency string     `gorm:"type:varchar(3);not null;default:'USD'"`
	Active       bool       `gorm:"not null;default:true"`
	LastLoginAt  *time.Time `gorm:""`
}

// TableName returns the table name for UserModel
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the model to a domain user
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		BaseEntity:   m.BaseModel.ToDomain(),
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		DisplayName:  m.DisplayName,
		Profile:      identity.ProfileType(m.Profile),
		BaseCurrency: valueobject.Currency(m.BaseCurrency),
		Active:       m.Active,
		LastLoginAt:  m.LastLoginAt,
	}
}

// UserModelFromDomain converts a domain user to the persistence model
func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		DisplayName:  u.DisplayName,
		Profile:      string(u.Profile),
		BaseCurrency: string(u.BaseCurrency),
		Active:       u.Active,
		LastLoginAt:  u.LastLoginAt,
	}
	m.FromDomainBaseEntity(u.BaseEntity)
	return m
}

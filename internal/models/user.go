package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// User represents an account in the system. Admin and employee are
// independent flags, not levels of a hierarchy: a user may hold both,
// either, or neither. Every permission check consults both flags at the
// call site.
type User struct {
	BaseModel
	UserName    string `gorm:"uniqueIndex;size:100;not null" json:"userName"`
	Email       string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password    string `gorm:"size:255;not null" json:"-"` // Never send password in JSON
	PhoneNumber string `gorm:"size:30" json:"phoneNumber,omitempty"`
	IsAdmin     bool   `gorm:"default:false" json:"isAdmin"`
	IsEmployee  bool   `gorm:"default:false" json:"isEmployee"`

	// Relations (not always preloaded)
	RefreshTokens []RefreshToken `gorm:"foreignKey:UserID" json:"-"`
}

// UserSanitized represents the user data that is safe to send in API responses.
type UserSanitized struct {
	ID          string    `json:"id"`
	UserName    string    `json:"userName"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phoneNumber,omitempty"`
	IsAdmin     bool      `json:"isAdmin"`
	IsEmployee  bool      `json:"isEmployee"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// SetPassword hashes a password and sets it on the user
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword compares a password with the user's hashed password
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// IsPrivileged reports whether the user may act on appointments beyond
// their own (admins and employees).
func (u *User) IsPrivileged() bool {
	return u.IsAdmin || u.IsEmployee
}

// Sanitize creates a UserSanitized struct from a User model, excluding sensitive data.
func (u *User) Sanitize() UserSanitized {
	return UserSanitized{
		ID:          u.ID,
		UserName:    u.UserName,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		IsAdmin:     u.IsAdmin,
		IsEmployee:  u.IsEmployee,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

package entities

import (
	"errors"
	"time"
)

// User roles
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents an account holder. The password hash never leaves the server.
type User struct {
	ID           int64     `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	FullName     string    `json:"full_name" db:"full_name"`
	AvatarURL    string    `json:"avatar_url" db:"avatar_url"`
	Phone        string    `json:"phone" db:"phone"`
	Address      string    `json:"address" db:"address"`
	Bio          string    `json:"bio" db:"bio"`
	Role         string    `json:"role" db:"role"`
	IsVerified   bool      `json:"is_verified" db:"is_verified"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// UserSummary is the short user projection used in admin listings
type UserSummary struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

// Principal is the authenticated caller of a request
type Principal struct {
	UserID int64
	Role   string
}

// IsAdmin reports whether the caller has the admin role
func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}

// UserPatch holds the fields a profile update may change.
// Role and IsVerified are privileged.
type UserPatch struct {
	FullName   *string `json:"full_name"`
	AvatarURL  *string `json:"avatar_url"`
	Phone      *string `json:"phone"`
	Address    *string `json:"address"`
	Bio        *string `json:"bio"`
	Role       *string `json:"role"`
	IsVerified *bool   `json:"is_verified"`
}

// Privileged reports whether the patch touches admin-only fields
func (p *UserPatch) Privileged() bool {
	return p.Role != nil || p.IsVerified != nil
}

// Validate checks the patch before anything is applied
func (p *UserPatch) Validate() error {
	if p.Role != nil && *p.Role != RoleUser && *p.Role != RoleAdmin {
		return errors.New("role must be 'user' or 'admin'")
	}
	return nil
}

// Apply copies the set fields onto the user
func (p *UserPatch) Apply(u *User) {
	if p.FullName != nil {
		u.FullName = *p.FullName
	}
	if p.AvatarURL != nil {
		u.AvatarURL = *p.AvatarURL
	}
	if p.Phone != nil {
		u.Phone = *p.Phone
	}
	if p.Address != nil {
		u.Address = *p.Address
	}
	if p.Bio != nil {
		u.Bio = *p.Bio
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	if p.IsVerified != nil {
		u.IsVerified = *p.IsVerified
	}
}

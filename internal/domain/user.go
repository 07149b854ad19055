package domain

import "time"

// Role values stored on a user record
const (
	RoleUser  = "USER"  // Regular investor
	RoleAdmin = "ADMIN" // Can manage properties, users and corrections
)

// User Model
type User struct {
	ID           uint         `gorm:"primaryKey" json:"id"`         // Primary key
	Name         string       `gorm:"not null" json:"name"`         // Display name
	Email        string       `gorm:"unique;not null" json:"email"` // Unique email, login identity
	PasswordHash string       `gorm:"not null" json:"-"`            // Bcrypt hash, never serialized
	Role         string       `gorm:"default:USER" json:"role"`     // Role: USER or ADMIN
	CreatedAt    time.Time    `json:"createdAt"`                    // Registration time
	Investments  []Investment `json:"investments,omitempty"`        // Investments made by this user
}

// IsAdmin reports whether the user holds the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

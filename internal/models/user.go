package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Role is a user's access level.
type Role = string

const (
	// RoleUser is the default role assigned on registration.
	RoleUser Role = "user"
	// RoleAdmin grants access to user management and system endpoints.
	RoleAdmin Role = "admin"
)

// ValidRole reports whether role is one of the accepted values.
func ValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}

// User represents a user account in the system.
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`

	ID           int64     `bun:"id,pk,autoincrement" json:"id"`
	Username     string    `bun:"username,notnull,unique" json:"username"`
	Email        *string   `bun:"email,unique,nullzero" json:"email,omitempty"`
	PasswordHash string    `bun:"password_hash,notnull" json:"-"` // Never expose this to the client
	Role         Role      `bun:"role,notnull,default:'user'" json:"role"`
	CreatedAt    time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"createdAt"`
}

// IsAdmin reports whether the user holds the admin role.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

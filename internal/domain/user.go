package domain

import "time"

// Role represents the user's permission level in the system.
type Role string

const (
	// RoleAdmin grants full administrative access, including tier-2 records.
	RoleAdmin Role = "admin"
	// RoleMember grants standard authenticated access.
	RoleMember Role = "member"
)

// UserStatus represents the user's account status.
type UserStatus string

const (
	// UserStatusActive indicates the user can log in and use the system.
	UserStatusActive UserStatus = "active"
	// UserStatusPending indicates the user is awaiting admin approval.
	UserStatusPending UserStatus = "pending"
)

// User represents an authenticated account in the system.
// Users are never exposed to anonymous readers regardless of any tier concept.
type User struct {
	Record
	Email        string     `json:"email"`
	PasswordHash string     `json:"password_hash,omitempty"` // Stored hashed, filter from API responses
	IsRoot       bool       `json:"is_root"`
	Role         Role       `json:"role"`
	Status       UserStatus `json:"status,omitempty"` // empty = active for backward compat
	DisplayName  string     `json:"display_name"`
	// PersonID optionally links the account to its own Person record.
	PersonID    string    `json:"person_id,omitempty"`
	LastLoginAt time.Time `json:"last_login_at"`
}

// IsAdmin returns true if the user has administrative privileges.
// Root users are automatically admins, regardless of their role field.
func (u *User) IsAdmin() bool {
	return u.IsRoot || u.Role == RoleAdmin
}

// IsActive returns true if the user can log in and use the system.
// Empty status is treated as active.
func (u *User) IsActive() bool {
	return u.Status == "" || u.Status == UserStatusActive
}

// Session represents an active user session with refresh token.
type Session struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id"`
	RefreshTokenHash string    `json:"refresh_token_hash,omitempty"` // Stored hashed, filter from API responses
	ExpiresAt        time.Time `json:"expires_at"`
	CreatedAt        time.Time `json:"created_at"`
	LastSeenAt       time.Time `json:"last_seen_at"`
	IPAddress        string    `json:"ip_address,omitempty"`
	ClientName       string    `json:"client_name,omitempty"`
}

// Touch updates the session's last seen timestamp.
func (s *Session) Touch() {
	s.LastSeenAt = time.Now()
}

// IsExpired checks if the session has passed its expiration time.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

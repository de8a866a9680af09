package model

import "time"

// Application roles, stored in the JWT "role" claim and in users.role.
const (
	RoleStudent = "STUDENT"
	RoleFaculty = "FACULTY"
	RoleAdmin   = "ADMIN"
)

// User mirrors the `users` table.
type User struct {
	ID           uint64 // users.id
	Name         string // users.name
	Email        string // users.email
	PasswordHash string // users.password_hash
	Role         string // users.role
	IsActive     bool   // users.is_active
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RefreshToken mirrors the `refresh_tokens` table. Only the SHA-256 hash of
// the token ever reaches the database.
type RefreshToken struct {
	ID        uint64     // refresh_tokens.id
	UserID    uint64     // refresh_tokens.user_id
	TokenHash string     // refresh_tokens.token_hash
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
	CreatedAt time.Time
}

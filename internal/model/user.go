package model

import "time"

// Back-office roles. An ADMIN edits content and handles bookings for one
// branch of the business; the SUPER_ADMIN oversees the admins and pushes
// structural change requests to them.
const (
	RoleAdmin      = "ADMIN"
	RoleSuperAdmin = "SUPER_ADMIN"
)

// User is a back-office account as stored in the `users` table. Handlers
// define separate response types with JSON tags; this struct mirrors the
// schema for the repository layer.
type User struct {
	ID           uint64    // users.id
	Email        string    // users.email
	PasswordHash string    // users.password_hash (bcrypt)
	Role         string    // users.role (ADMIN or SUPER_ADMIN)
	IsActive     bool      // users.is_active
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}

// RefreshToken models a row in `refresh_tokens`. Only the SHA-256 hash of
// the raw token is persisted.
type RefreshToken struct {
	ID        uint64     // refresh_tokens.id
	UserID    uint64     // refresh_tokens.user_id
	TokenHash string     // refresh_tokens.token_hash
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (null while active)
	CreatedAt time.Time  // refresh_tokens.created_at
}

package auth

// Package auth contains domain-level types for authentication and sessions.
// It is pure and free of framework/adapter concerns.

import "time"

// Role represents an application's authorization role.
// Keep string form for easy persistence and cookies.
// Valid values are defined as constants below.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Identity represents the authenticated principal returned by an IdP.
// Adapters map provider-specific claims into this shape.
type Identity struct {
	Subject   string // stable provider identifier (sub claim)
	Name      string
	Email     string
	ExpiresAt time.Time // absolute expiry from IdP token
}

// Profile is the account record the backend API maintains for a user.
type Profile struct {
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Role          Role      `json:"role"`
	EmailVerified bool      `json:"email_verified"`
	CreatedAt     time.Time `json:"created_at"`
}

// Session is the server-side record we persist for a signed-in user.
// ID is an opaque session identifier (e.g., random URL-safe string).
// Token is the backend bearer token attached to API calls made on the
// user's behalf; it never reaches the browser.
type Session struct {
	ID        string    `json:"id"`
	Token     string    `json:"token"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IsAdmin returns true if the session role is admin.
func (s Session) IsAdmin() bool { return s.Role == RoleAdmin }

// HasProfile reports whether the session carries cached profile fields.
// Sessions created straight from a login response may hold only the
// token; the profile is fetched and cached on first use.
func (s Session) HasProfile() bool { return s.Email != "" }

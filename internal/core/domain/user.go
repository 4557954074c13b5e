package domain

import (
	"strings"
	"time"
)

const (
	RoleAdmin    = "ADMIN"
	RoleOperador = "OPERADOR"
)

// ValidRole reports whether role is one of the recognised roles.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleOperador
}

// User models an authenticated actor in the system.
// Emails are stored lowercase; lookups normalise the same way.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NormalizeEmail canonicalises an email address for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// PublicUser is the projection safe to return to clients. It never carries
// the password hash.
type PublicUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Public returns the client-safe projection of u.
func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

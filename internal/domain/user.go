package domain

import "time"

// Role is a user role tag.
type Role string

// Known roles.
const (
	RoleAgent Role = "agente"
	RoleAdmin Role = "admin"
)

// User is an identity record owned by the credential store.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	Active       bool
	CreatedAt    time.Time
}

// Session is the result of a successful login.
type Session struct {
	User      User
	Token     string
	TokenType string
	ExpiresAt time.Time
}

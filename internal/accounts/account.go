// Package accounts registers staff accounts and exchanges their credentials
// for bearer tokens.
package accounts

import (
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Account is a registered user. The password hash is never serialized.
type Account struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// RegisterCommand carries the fields for a new account.
type RegisterCommand struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Normalize trims username and email and checks every field is present.
// The password is kept as sent.
func (c *RegisterCommand) Normalize() error {
	c.Username = strings.TrimSpace(c.Username)
	c.Email = strings.TrimSpace(c.Email)

	if c.Username == "" || c.Email == "" || c.Password == "" {
		return ErrValidation
	}
	if _, err := mail.ParseAddress(c.Email); err != nil {
		return ErrInvalidEmail
	}
	return nil
}

// LoginCommand carries the credentials for a login attempt.
type LoginCommand struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *LoginCommand) Normalize() error {
	c.Email = strings.TrimSpace(c.Email)
	if c.Email == "" || c.Password == "" {
		return ErrValidation
	}
	return nil
}

// LoginResponse is the body returned by a successful login.
type LoginResponse struct {
	Message   string    `json:"message"`
	Token     string    `json:"token"`
	TokenType string    `json:"token_type"`
	ExpiresIn int64     `json:"expires_in"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Copyright (c) 2026 Yonde. All rights reserved.
// Author: duc.phamminh.vn@gmail.com

/*
Package auth implements the user identity layer.

It defines the core domain entity (User) and logic for registration,
authentication, and profile lookup.

# Architecture

This layer is the "Truth" of the system. Entities defined here have no external
dependencies and encapsulate all business rules related to user identity.
*/
package auth

import (
	"time"

	"github.com/phamduc/yonde/internal/platform/sec"
)

// # Domain Entities

// User represents a registered member of the Yonde platform.
type User struct {
	ID           string       `json:"id"`
	Username     string       `json:"username"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"` // Explicitly omitted from JSON for security.
	Image        string       `json:"image,omitempty"`
	Role         sec.UserRole `json:"role"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// PublicProfile is the client-safe projection of a user, used when one
// member views another (comment authors, profile pages).
type PublicProfile struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Image    string `json:"image,omitempty"`
}

// Public returns the client-safe projection of the user.
func (user *User) Public() PublicProfile {
	return PublicProfile{
		ID:       user.ID,
		Username: user.Username,
		Image:    user.Image,
	}
}

// # Field Identifiers

// Global field names for validation and identity mapping in the authentication domain.
const (
	FieldUsername   = "username"
	FieldEmail      = "email"
	FieldPassword   = "password"
	FieldIdentifier = "identifier"
	FieldUser       = "user"
	FieldUserID     = "userID"
	FieldToken      = "token"
)

// # Validation Bounds

const (
	// UsernameMinLen and UsernameMaxLen bound the alphanumeric username.
	UsernameMinLen = 4
	UsernameMaxLen = 32

	// PasswordMinLen is the minimum accepted password length.
	PasswordMinLen = 6
)

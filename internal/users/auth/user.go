// Copyright (c) 2026 Contactbook. All rights reserved.
// Author: igor.ivn.olga@gmail.com

/*
Package auth implements the user identity and session management layer.

It defines the core domain entity (User) and the logic for authentication,
authorization, email confirmation, and password recovery.

# Architecture

This layer is the "Truth" of the system. Entities defined here have no external
dependencies and encapsulate all business rules related to user identity.
*/
package auth

import (
	"time"

	"github.com/igorivnaolga/contactbook/internal/platform/sec"
)

// # Domain Entities

// User represents a registered member of the Contactbook platform.
type User struct {
	ID             string       `json:"id"`
	Username       string       `json:"username"`
	Email          string       `json:"email"`
	PasswordHash   string       `json:"-"` // Explicitly omitted from JSON for security.
	ConfirmedEmail bool         `json:"confirmed_email"`
	AvatarURL      string       `json:"avatar_url,omitempty"`
	Role           sec.UserRole `json:"role"`
	RefreshToken   string       `json:"-"` // Stored mirror of the active refresh token. Omitted for security.
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

// # Cache Snapshot

// UserSnapshot is the subset of [User] that is safe to place in the cache.
//
// The password hash and the stored refresh token are deliberately excluded:
// a compromised cache must never yield credential material. Version is bumped
// whenever the schema changes so stale readers discard foreign entries.
type UserSnapshot struct {
	Version   int          `json:"v"`
	ID        string       `json:"id"`
	Username  string       `json:"username"`
	Email     string       `json:"email"`
	Confirmed bool         `json:"confirmed"`
	AvatarURL string       `json:"avatar_url,omitempty"`
	Role      sec.UserRole `json:"role"`
}

// Snapshot projects the user onto its cacheable subset.
func (user *User) Snapshot() *UserSnapshot {
	return &UserSnapshot{
		Version:   SnapshotVersion,
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Confirmed: user.ConfirmedEmail,
		AvatarURL: user.AvatarURL,
		Role:      user.Role,
	}
}

// User rehydrates a principal from its cached snapshot.
//
// Credential fields stay zero: a snapshot-backed principal can authorize
// requests but can never verify a password or rotate a refresh token.
func (snapshot *UserSnapshot) User() *User {
	return &User{
		ID:             snapshot.ID,
		Username:       snapshot.Username,
		Email:          snapshot.Email,
		ConfirmedEmail: snapshot.Confirmed,
		AvatarURL:      snapshot.AvatarURL,
		Role:           snapshot.Role,
	}
}

// # Field Identifiers

// Global field names for validation and identity mapping in the authentication domain.
const (
	FieldUsername     = "username"
	FieldEmail        = "email"
	FieldPassword     = "password"
	FieldToken        = "token"
	FieldNewPassword  = "new_password"
	FieldAccessToken  = "access_token"
	FieldRefreshToken = "refresh_token"
	FieldTokenType    = "token_type"
	FieldUser         = "user"
	FieldMessage      = "message"
)

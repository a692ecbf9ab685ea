// Copyright (c) 2026 Contactbook. All rights reserved.
// Author: igor.ivn.olga@gmail.com

package sec

// # User Roles

// UserRole represents the authorization level granted to an account.
type UserRole string

const (
	// Unrestricted system access
	RoleAdmin UserRole = "admin"

	// Default role for standard registered users
	RoleUser UserRole = "user"
)

// In reports whether the role is a member of the allowed set.
//
// Authorization is plain set membership, not a hierarchy: a guard built for
// {admin} rejects everyone else, and a guard built for {user, admin} admits
// both.
func (r UserRole) In(allowed ...UserRole) bool {
	for _, candidate := range allowed {
		if r == candidate {
			return true
		}
	}
	return false
}

// Valid reports whether the role is one of the known enum values.
func (r UserRole) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// Copyright (c) 2026 Contactbook. All rights reserved.
// Author: igor.ivn.olga@gmail.com

package auth

// # Cache Schema

const (
	// SnapshotVersion identifies the current UserSnapshot wire schema.
	// Entries carrying any other version are discarded as cache misses.
	SnapshotVersion = 1
)

// # Client-Facing Messages

// These strings are part of the API contract; clients match on them.
const (
	MsgInvalidToken      = "Could not validate credentials"
	MsgEmailConflict     = "User with this email already exist"
	MsgUsernameConflict  = "User with this name already exist"
	MsgInvalidCreds      = "Invalid login credentials"
	MsgEmailNotConfirmed = "Email not confirmed"
	MsgInvalidEmailToken = "Invalid token for email verification"
	MsgVerificationError = "Verification error"
	MsgAlreadyConfirmed  = "Your email is already confirmed"
	MsgEmailConfirmed    = "Email confirmed"
	MsgCheckEmail        = "Check your email for confirmation"
	MsgPasswordChanged   = "Password successfully changed"
)

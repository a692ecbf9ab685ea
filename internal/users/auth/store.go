// Copyright (c) 2026 Contactbook. All rights reserved.
// Author: igor.ivn.olga@gmail.com

package auth

import (
	"context"
)

// # User Data Access

// UserRepository defines the data access contract for user accounts.
//
// Every mutation commits synchronously before returning. The repository never
// talks to the cache; snapshot lifecycle is the resolver's concern.
type UserRepository interface {

	/*
		FindByID returns the account with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *User: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByID(context context.Context, id string) (*User, error)

	/*
		FindByEmail returns the account with the given email.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - *User: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	/*
		FindByUsername returns the account with the given username.

		Parameters:
		  - context: context.Context
		  - username: string

		Returns:
		  - *User: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByUsername(context context.Context, username string) (*User, error)

	/*
		Create persists a brand-new user account to the storage.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, user *User) error

	/*
		MarkConfirmed flips the account's confirmedemail flag to true.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - error: Persistence failures
	*/
	MarkConfirmed(context context.Context, userID string) error

	/*
		UpdateAvatar replaces the account's avatar URL.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - avatarURL: string

		Returns:
		  - error: Persistence failures
	*/
	UpdateAvatar(context context.Context, userID, avatarURL string) error

	/*
		UpdatePassword replaces only the user's password hash.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - newHash: string

		Returns:
		  - error: Persistence failures
	*/
	UpdatePassword(context context.Context, userID, newHash string) error

	/*
		UpdateRefreshToken replaces the stored refresh-token mirror.

		Description: Passing an empty string clears the mirror, invalidating
		the active refresh session.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - refreshToken: string

		Returns:
		  - error: Persistence failures
	*/
	UpdateRefreshToken(context context.Context, userID, refreshToken string) error
}

// # Snapshot Cache Access

// UserCache defines the read-through cache contract keyed by email.
//
// Entries expire via backend TTL; an expired or absent entry surfaces as a
// miss (nil snapshot, nil error). Backend failures surface as errors so the
// caller can fail open to the persistent store.
type UserCache interface {

	/*
		Get returns the cached snapshot for an email, or a miss.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - *UserSnapshot: Cached snapshot, nil on miss
		  - error: Backend connectivity failures
	*/
	Get(context context.Context, email string) (*UserSnapshot, error)

	/*
		Put stores a snapshot, overwriting any prior entry and resetting its TTL.

		Parameters:
		  - context: context.Context
		  - snapshot: *UserSnapshot

		Returns:
		  - error: Backend connectivity failures
	*/
	Put(context context.Context, snapshot *UserSnapshot) error
}

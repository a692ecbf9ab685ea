// Copyright (c) 2026 Contactbook. All rights reserved.
// Author: igor.ivn.olga@gmail.com

package auth_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/igorivnaolga/contactbook/internal/platform/sec"
	"github.com/igorivnaolga/contactbook/internal/users/auth"
)

/*
TestUserSnapshot_ExcludesCredentials verifies that neither the snapshot nor
the JSON form of a user ever carries the password hash or the refresh token
mirror.
*/
func TestUserSnapshot_ExcludesCredentials(t *testing.T) {
	user := &auth.User{
		ID:             "u1",
		Username:       "ada",
		Email:          "ada@example.com",
		PasswordHash:   "$2a$10$secret-bcrypt-digest",
		ConfirmedEmail: true,
		AvatarURL:      "https://www.gravatar.com/avatar/ff?d=identicon",
		Role:           sec.RoleUser,
		RefreshToken:   "eyJhbGciOi.secret.refresh",
	}

	snapshot := user.Snapshot()
	assert.Equal(t, auth.SnapshotVersion, snapshot.Version)

	raw, err := json.Marshal(snapshot)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "secret")

	raw, err = json.Marshal(user)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "secret")
}

/*
TestUserSnapshot_Roundtrip verifies that projecting and rehydrating preserves
every identity field while the credential fields stay zero.
*/
func TestUserSnapshot_Roundtrip(t *testing.T) {
	user := &auth.User{
		ID:             "u1",
		Username:       "ada",
		Email:          "ada@example.com",
		PasswordHash:   "digest",
		ConfirmedEmail: true,
		AvatarURL:      "https://cdn.contactbook.app/avatars/u1/pic.png",
		Role:           sec.RoleAdmin,
		RefreshToken:   "mirror",
	}

	restored := user.Snapshot().User()

	assert.Equal(t, user.ID, restored.ID)
	assert.Equal(t, user.Username, restored.Username)
	assert.Equal(t, user.Email, restored.Email)
	assert.Equal(t, user.ConfirmedEmail, restored.ConfirmedEmail)
	assert.Equal(t, user.AvatarURL, restored.AvatarURL)
	assert.Equal(t, user.Role, restored.Role)
	assert.Empty(t, restored.PasswordHash)
	assert.Empty(t, restored.RefreshToken)
}

// Copyright (c) 2026 Contactbook. All rights reserved.
// Author: igor.ivn.olga@gmail.com

package sec_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/igorivnaolga/contactbook/internal/platform/sec"
)

func newTokenService(t *testing.T) *sec.TokenService {
	t.Helper()
	service, err := sec.NewTokenService(sec.TokenConfig{
		Secret:     "test-secret-key",
		Issuer:     "contactbook.test",
		AccessTTL:  15 * time.Minute,
		RefreshTTL: 360 * time.Hour,
		EmailTTL:   time.Hour,
	})
	require.NoError(t, err)
	return service
}

/*
TestHashPassword_Roundtrip verifies that a hashed password verifies against
its own plaintext and rejects any other plaintext.
*/
func TestHashPassword_Roundtrip(t *testing.T) {
	digest, err := sec.HashPassword("correct horse battery staple")
	require.NoError(t, err)
	require.NotEmpty(t, digest)

	assert.True(t, sec.CheckPasswordHash("correct horse battery staple", digest))
	assert.False(t, sec.CheckPasswordHash("wrong password", digest))
}

/*
TestHashPassword_Salted verifies two hashes of the same input differ but both verify.
*/
func TestHashPassword_Salted(t *testing.T) {
	first, err := sec.HashPassword("secret")
	require.NoError(t, err)
	second, err := sec.HashPassword("secret")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, sec.CheckPasswordHash("secret", first))
	assert.True(t, sec.CheckPasswordHash("secret", second))
}

/*
TestCheckPasswordHash_MalformedDigest verifies a garbage digest returns false
instead of panicking.
*/
func TestCheckPasswordHash_MalformedDigest(t *testing.T) {
	assert.False(t, sec.CheckPasswordHash("anything", "not-a-bcrypt-digest"))
	assert.False(t, sec.CheckPasswordHash("anything", ""))
}

/*
TestTokenService_DecodeRoundtrip verifies a token decodes with its own scope
and carries the subject.
*/
func TestTokenService_DecodeRoundtrip(t *testing.T) {
	service := newTokenService(t)

	token, err := service.CreateAccessToken("alice@example.com")
	require.NoError(t, err)

	claims, err := service.Decode(token, sec.ScopeAccess)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", claims.Subject)
	assert.Equal(t, sec.ScopeAccess, claims.Scope)
}

/*
TestTokenService_ScopeMismatch verifies every cross-scope decode fails, in
both directions, for all three scopes.
*/
func TestTokenService_ScopeMismatch(t *testing.T) {
	service := newTokenService(t)

	access, err := service.CreateAccessToken("alice@example.com")
	require.NoError(t, err)
	refresh, err := service.CreateRefreshToken("alice@example.com")
	require.NoError(t, err)
	email, err := service.CreateEmailToken("alice@example.com")
	require.NoError(t, err)

	tests := []struct {
		name     string
		token    string
		expected sec.TokenScope
	}{
		{"access_as_refresh", access, sec.ScopeRefresh},
		{"access_as_email", access, sec.ScopeEmail},
		{"refresh_as_access", refresh, sec.ScopeAccess},
		{"refresh_as_email", refresh, sec.ScopeEmail},
		{"email_as_access", email, sec.ScopeAccess},
		{"email_as_refresh", email, sec.ScopeRefresh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Decode(tt.token, tt.expected)
			assert.ErrorIs(t, err, sec.ErrScopeMismatch)
		})
	}
}

/*
TestTokenService_Expired verifies an expired token fails decoding even with
the correct scope.
*/
func TestTokenService_Expired(t *testing.T) {
	service, err := sec.NewTokenService(sec.TokenConfig{
		Secret:     "test-secret-key",
		Issuer:     "contactbook.test",
		AccessTTL:  -time.Minute,
		RefreshTTL: -time.Minute,
		EmailTTL:   -time.Minute,
	})
	require.NoError(t, err)

	token, err := service.CreateAccessToken("alice@example.com")
	require.NoError(t, err)

	_, err = service.Decode(token, sec.ScopeAccess)
	assert.ErrorIs(t, err, sec.ErrInvalidToken)
}

/*
TestTokenService_WrongSignature verifies a token signed with another secret
is rejected.
*/
func TestTokenService_WrongSignature(t *testing.T) {
	service := newTokenService(t)

	foreign, err := sec.NewTokenService(sec.TokenConfig{
		Secret:     "a-different-secret",
		Issuer:     "contactbook.test",
		AccessTTL:  15 * time.Minute,
		RefreshTTL: 360 * time.Hour,
		EmailTTL:   time.Hour,
	})
	require.NoError(t, err)

	token, err := foreign.CreateAccessToken("alice@example.com")
	require.NoError(t, err)

	_, err = service.Decode(token, sec.ScopeAccess)
	assert.ErrorIs(t, err, sec.ErrInvalidToken)
}

/*
TestTokenService_Garbage verifies a structurally invalid token is rejected.
*/
func TestTokenService_Garbage(t *testing.T) {
	service := newTokenService(t)

	_, err := service.Decode("not.a.jwt", sec.ScopeAccess)
	assert.ErrorIs(t, err, sec.ErrInvalidToken)
}

/*
TestUserRole_In verifies set-membership checks for the role gate.
*/
func TestUserRole_In(t *testing.T) {
	assert.True(t, sec.RoleAdmin.In(sec.RoleAdmin))
	assert.True(t, sec.RoleUser.In(sec.RoleUser, sec.RoleAdmin))
	assert.False(t, sec.RoleUser.In(sec.RoleAdmin))
	assert.False(t, sec.RoleAdmin.In())
}

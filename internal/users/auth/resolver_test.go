// Copyright (c) 2026 Contactbook. All rights reserved.
// Author: igor.ivn.olga@gmail.com

package auth_test

import (
	"context"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/igorivnaolga/contactbook/internal/platform/apperr"
	"github.com/igorivnaolga/contactbook/internal/platform/sec"
	"github.com/igorivnaolga/contactbook/internal/users/auth"
)

func newTestTokens(t *testing.T) *sec.TokenService {
	t.Helper()
	tokens, err := sec.NewTokenService(sec.TokenConfig{
		Secret:     "resolver-test-secret",
		Issuer:     "contactbook.test",
		AccessTTL:  15 * time.Minute,
		RefreshTTL: 360 * time.Hour,
		EmailTTL:   time.Hour,
	})
	require.NoError(t, err)
	return tokens
}

func seedUser(t *testing.T, repo *fakeUserRepository, emailAddress string) *auth.User {
	t.Helper()
	hash, err := sec.HashPassword("correct horse battery")
	require.NoError(t, err)

	user := &auth.User{
		ID:             "0190a1b2-0000-7000-8000-000000000001",
		Username:       "ada",
		Email:          emailAddress,
		PasswordHash:   hash,
		ConfirmedEmail: true,
		Role:           sec.RoleUser,
	}
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}

/*
TestResolver_CacheMissLoadsAndPopulates verifies the read-through path: a
cache miss falls back to the repository and writes a snapshot back so the
next resolve is served without a repository lookup.
*/
func TestResolver_CacheMissLoadsAndPopulates(t *testing.T) {
	tokens := newTestTokens(t)
	repo := newFakeUserRepository()
	cache := newFakeUserCache()
	seedUser(t, repo, "ada@example.com")

	resolver := auth.NewResolver(tokens, cache, repo, slog.Default())

	bearer, err := tokens.CreateAccessToken("ada@example.com")
	require.NoError(t, err)

	user, err := resolver.Resolve(context.Background(), bearer)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.Equal(t, 1, repo.findCalls)
	assert.Equal(t, 1, cache.puts)

	// Second resolve must be answered from the cache.
	user, err = resolver.Resolve(context.Background(), bearer)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.Equal(t, 1, repo.findCalls)
}

/*
TestResolver_CachedPrincipalCarriesNoCredentials verifies that a principal
rebuilt from a cached snapshot has no password hash or refresh token.
*/
func TestResolver_CachedPrincipalCarriesNoCredentials(t *testing.T) {
	tokens := newTestTokens(t)
	repo := newFakeUserRepository()
	cache := newFakeUserCache()
	seedUser(t, repo, "ada@example.com")

	resolver := auth.NewResolver(tokens, cache, repo, slog.Default())

	bearer, err := tokens.CreateAccessToken("ada@example.com")
	require.NoError(t, err)

	_, err = resolver.Resolve(context.Background(), bearer)
	require.NoError(t, err)

	cached, err := resolver.Resolve(context.Background(), bearer)
	require.NoError(t, err)
	assert.Empty(t, cached.PasswordHash)
	assert.Empty(t, cached.RefreshToken)
}

/*
TestResolver_CacheFailureFallsOpen verifies that a broken cache backend never
blocks authentication: the resolver degrades to repository lookups.
*/
func TestResolver_CacheFailureFallsOpen(t *testing.T) {
	tokens := newTestTokens(t)
	repo := newFakeUserRepository()
	cache := newFakeUserCache()
	cache.failing = true
	seedUser(t, repo, "ada@example.com")

	resolver := auth.NewResolver(tokens, cache, repo, slog.Default())

	bearer, err := tokens.CreateAccessToken("ada@example.com")
	require.NoError(t, err)

	user, err := resolver.Resolve(context.Background(), bearer)
	require.NoError(t, err)
	assert.Equal(t, "ada", user.Username)
	assert.Equal(t, 1, repo.findCalls)
}

// TestResolver_RejectsBadTokens covers the credential-validation failures,
// which must all collapse into the same 401 response.
func TestResolver_RejectsBadTokens(t *testing.T) {
	tokens := newTestTokens(t)
	repo := newFakeUserRepository()
	cache := newFakeUserCache()
	seedUser(t, repo, "ada@example.com")

	foreign, err := sec.NewTokenService(sec.TokenConfig{
		Secret:    "some-other-secret",
		Issuer:    "contactbook.test",
		AccessTTL: 15 * time.Minute,
	})
	require.NoError(t, err)

	refresh, err := tokens.CreateRefreshToken("ada@example.com")
	require.NoError(t, err)
	forged, err := foreign.CreateAccessToken("ada@example.com")
	require.NoError(t, err)
	unknown, err := tokens.CreateAccessToken("ghost@example.com")
	require.NoError(t, err)

	resolver := auth.NewResolver(tokens, cache, repo, slog.Default())

	tests := []struct {
		name   string
		bearer string
	}{
		{name: "garbage", bearer: "not.a.jwt"},
		{name: "wrong signature", bearer: forged},
		{name: "wrong scope", bearer: refresh},
		{name: "unknown subject", bearer: unknown},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := resolver.Resolve(context.Background(), tc.bearer)
			require.Error(t, err)

			appErr := apperr.As(err)
			require.NotNil(t, appErr)
			assert.Equal(t, http.StatusUnauthorized, appErr.HTTPStatus)
			assert.Equal(t, auth.MsgInvalidToken, appErr.Message)
		})
	}
}

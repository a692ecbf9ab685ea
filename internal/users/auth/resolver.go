// Copyright (c) 2026 Contactbook. All rights reserved.
// Author: igor.ivn.olga@gmail.com

package auth

import (
	"context"
	"log/slog"

	"github.com/igorivnaolga/contactbook/internal/platform/apperr"
	"github.com/igorivnaolga/contactbook/internal/platform/sec"
)

// # Current-User Resolver

// Resolver turns a bearer token into an authenticated principal.
//
// Resolution runs on every protected request, so the hot path must avoid the
// database: a valid token whose subject is already cached costs one Redis
// round trip. The cache is a best-effort accelerator, never a consistency
// mechanism — a backend failure degrades to a PostgreSQL lookup.
type Resolver struct {
	tokens     *sec.TokenService
	cache      UserCache
	repository UserRepository
	logger     *slog.Logger
}

// NewResolver constructs a [Resolver] with its collaborators.
func NewResolver(tokens *sec.TokenService, cache UserCache, repository UserRepository, logger *slog.Logger) *Resolver {
	return &Resolver{
		tokens:     tokens,
		cache:      cache,
		repository: repository,
		logger:     logger,
	}
}

/*
Resolve authenticates a bearer token and returns its principal.

Description: Decodes the token requiring the access scope, then performs the
read-through lookup: cache hit returns the snapshot-backed principal, a miss
loads from PostgreSQL and repopulates the cache with a fresh TTL.

Parameters:
  - context: context.Context
  - bearerToken: string (raw JWT, without the "Bearer " prefix)

Returns:
  - *User: Resolved principal
  - error: apperr.Unauthorized on any validation or resolution failure
*/
func (resolver *Resolver) Resolve(context context.Context, bearerToken string) (*User, error) {

	// ── 1. Decode & scope-check the token ────────────────────────────────
	// Invalid signature, expiry, and wrong scope all collapse to the same
	// client-facing failure here; the distinction matters only to email flows.
	claims, err := resolver.tokens.Decode(bearerToken, sec.ScopeAccess)
	if err != nil {
		return nil, apperr.Unauthorized(MsgInvalidToken)
	}

	email := claims.Subject
	if email == "" {
		return nil, apperr.Unauthorized(MsgInvalidToken)
	}

	// ── 2. Cache lookup by subject ───────────────────────────────────────
	// A cache backend failure fails open: authentication must keep working
	// when Redis is down, at the cost of extra database load.
	snapshot, err := resolver.cache.Get(context, email)
	if err != nil {
		resolver.logger.Warn("user_cache_unavailable",
			slog.String("email", email),
			slog.String("error", err.Error()),
		)
		snapshot = nil
	}
	if snapshot != nil {
		return snapshot.User(), nil
	}

	// ── 3. Miss: load from the persistent store and repopulate ───────────
	user, err := resolver.repository.FindByEmail(context, email)
	if err != nil {
		return nil, apperr.Unauthorized(MsgInvalidToken)
	}

	if err := resolver.cache.Put(context, user.Snapshot()); err != nil {
		resolver.logger.Warn("user_cache_put_failed",
			slog.String("email", email),
			slog.String("error", err.Error()),
		)
	}

	return user, nil
}

// Copyright (c) 2026 Contactbook. All rights reserved.
// Author: igor.ivn.olga@gmail.com

// Package middleware provides the HTTP middleware chain for the Contactbook API server.
//
// # Architecture
//
// Middleware intercepts incoming HTTP requests to apply global policies
// before they reach the domain handlers. This includes cross-cutting concerns
// like Logging, AuthZ/AuthN, Rate Limiting, and CORS.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/igorivnaolga/contactbook/internal/platform/apperr"
	"github.com/igorivnaolga/contactbook/internal/platform/ctxkey"
	"github.com/igorivnaolga/contactbook/internal/platform/respond"
	"github.com/igorivnaolga/contactbook/internal/platform/sec"
	"github.com/igorivnaolga/contactbook/internal/users/auth"
)

// PrincipalResolver turns a bearer token into a fully resolved principal.
//
// # Why an interface?
//
// Defining PrincipalResolver here decouples the middleware from the `auth`
// resolver implementation, allowing us to easily inject fakes during unit
// testing. The production implementation is the cache-backed
// [auth.Resolver].
type PrincipalResolver interface {
	Resolve(ctx context.Context, bearerToken string) (*auth.User, error)
}

// Authenticate extracts the JWT from the Authorization header and resolves
// the principal behind it.
//
// # Flow
//  1. Check for 'Authorization: Bearer <token>' header.
//  2. If absent, request proceeds as anonymous.
//  3. If present, resolve the principal via [PrincipalResolver] (token
//     decode, cache lookup, persistent-store fallback).
//  4. Inject [*auth.User] into the request context for downstream use.
func Authenticate(resolver PrincipalResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			authHeader := request.Header.Get("Authorization")

			// ── 1. Anonymous Access ───────────────────────────────────────────
			if authHeader == "" {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 2. Format Validation ──────────────────────────────────────────
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				respond.Error(writer, request, apperr.Unauthorized("Invalid authorization format"))
				return
			}

			// ── 3. Principal Resolution ───────────────────────────────────────
			principal, err := resolver.Resolve(request.Context(), parts[1])
			if err != nil {
				respond.Error(writer, request, err)
				return
			}

			// ── 4. Context Injection ──────────────────────────────────────────
			ctx := context.WithValue(request.Context(), ctxkey.KeyUser, principal)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireAuth blocks requests that are not authenticated.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate].
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		principal := GetPrincipal(request.Context())
		if principal == nil {
			respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// RequireRole blocks requests whose principal's role is not in the allowed set.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate]. It automatically
// implies [RequireAuth] so you don't need to mount both. One instance is
// built per allowed-role set and reused across all routes guarded by it.
//
// # Flow
//  1. Check if a resolved [*auth.User] exists in context (implies AuthN).
//  2. Check set membership of the principal's role via [sec.UserRole.In].
//  3. If not a member, abort with HTTP 403 Forbidden.
func RequireRole(allowed ...sec.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			principal := GetPrincipal(request.Context())

			// ── 1. Authentication Check ───────────────────────────────────────
			if principal == nil {
				respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
				return
			}

			// ── 2. Authorization Check ────────────────────────────────────────
			if !principal.Role.In(allowed...) {
				respond.Error(writer, request, apperr.Forbidden("Access denied: insufficient privileges"))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}

// GetPrincipal retrieves the resolved [*auth.User] from the [context.Context].
//
// # Returns
//   - The principal if the request is authenticated.
//   - nil if the request is anonymous.
func GetPrincipal(ctx context.Context) *auth.User {
	principal, ok := ctx.Value(ctxkey.KeyUser).(*auth.User)
	if !ok {
		return nil
	}
	return principal
}

// RequirePrincipal returns the resolved principal or an Unauthorized error.
// It is a convenience for handlers mounted behind [RequireAuth].
func RequirePrincipal(request *http.Request) (*auth.User, error) {
	principal := GetPrincipal(request.Context())
	if principal == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}
	return principal, nil
}

// Copyright (c) 2026 Contactbook. All rights reserved.
// Author: igor.ivn.olga@gmail.com

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, JWT Signing) from
// the domain logic. It acts as an Infrastructure service injected into the
// Application layer behind small interfaces, never reached through globals.
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/igorivnaolga/contactbook/pkg/uuid"
)

// # Token Scopes

// TokenScope restricts what purpose a signed token may be used for.
//
// # Why scopes?
//
// Separating scopes prevents a stolen access token from being replayed as a
// refresh token or an email-confirmation token. The scope check is a
// mandatory step in every decode path and is never silently coerced.
type TokenScope string

const (
	// ScopeAccess authorizes API requests on behalf of a user.
	ScopeAccess TokenScope = "access_token"

	// ScopeRefresh authorizes minting a fresh token pair.
	ScopeRefresh TokenScope = "refresh_token"

	// ScopeEmail authorizes single-purpose email flows (confirmation, reset).
	ScopeEmail TokenScope = "email_token"
)

// # Validation Errors

var (
	// ErrInvalidToken covers malformed tokens, bad signatures, and expiry.
	ErrInvalidToken = errors.New("sec: invalid or expired token")

	// ErrScopeMismatch is returned when a structurally valid token carries a
	// scope other than the one the call site expects.
	ErrScopeMismatch = errors.New("sec: token scope mismatch")
)

// TokenClaims is the payload embedded inside every Contactbook JWT.
//
// The Subject registered claim carries the user's email, consistently across
// all three scopes, so every consumer resolves principals the same way.
type TokenClaims struct {
	jwt.RegisteredClaims

	Scope TokenScope `json:"scope"`
}

// TokenService signs and verifies JWTs using a process-wide HMAC secret.
//
// # Concurrency
//
// The secret and issuer are fixed at construction and never mutated, so a
// single instance is safe for concurrent use by every request task.
type TokenService struct {
	secret     []byte
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration
	emailTTL   time.Duration
}

// TokenConfig carries the immutable signing configuration.
type TokenConfig struct {
	Secret     string
	Issuer     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	EmailTTL   time.Duration
}

// NewTokenService creates a TokenService from the loaded configuration.
func NewTokenService(cfg TokenConfig) (*TokenService, error) {
	if cfg.Secret == "" {
		return nil, fmt.Errorf("sec: signing secret must not be empty")
	}

	return &TokenService{
		secret:     []byte(cfg.Secret),
		issuer:     cfg.Issuer,
		accessTTL:  cfg.AccessTTL,
		refreshTTL: cfg.RefreshTTL,
		emailTTL:   cfg.EmailTTL,
	}, nil
}

// # Token Creation

// CreateAccessToken mints a short-lived token with scope access_token.
//
// # Parameters
//   - subject: The user's email (stable principal identifier).
//
// # Returns
//   - A signed JWT string, or an error if signing fails.
func (service *TokenService) CreateAccessToken(subject string) (string, error) {
	return service.create(subject, ScopeAccess, service.accessTTL)
}

// CreateRefreshToken mints a long-lived token with scope refresh_token.
func (service *TokenService) CreateRefreshToken(subject string) (string, error) {
	return service.create(subject, ScopeRefresh, service.refreshTTL)
}

// CreateEmailToken mints a single-purpose token with scope email_token.
//
// The same token kind backs both the email-confirmation and password-reset
// flows; the consuming endpoint disambiguates.
func (service *TokenService) CreateEmailToken(subject string) (string, error) {
	return service.create(subject, ScopeEmail, service.emailTTL)
}

func (service *TokenService) create(subject string, scope TokenScope, ttl time.Duration) (string, error) {
	currentTime := time.Now()
	claims := TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			// Unique ID keeps two tokens minted in the same second distinct,
			// which refresh rotation relies on.
			ID:        uuid.New(),
			Subject:   subject,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(ttl)),
		},
		Scope: scope,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign %s token: %w", scope, err)
	}

	return signedToken, nil
}

// # Token Validation

/*
Decode verifies a token's signature and expiry, then enforces its scope.

Description: Signature and expiry failures surface as [ErrInvalidToken];
a structurally valid token with the wrong scope surfaces as
[ErrScopeMismatch]. Call sites map the two to their own status codes.

Parameters:
  - tokenString: string
  - expectedScope: TokenScope

Returns:
  - *TokenClaims: Verified claim set
  - error: ErrInvalidToken or ErrScopeMismatch
*/
func (service *TokenService) Decode(tokenString string, expectedScope TokenScope) (*TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return service.secret, nil
	})

	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	// Scope enforcement is unconditional, even for otherwise valid tokens.
	if claims.Scope != expectedScope {
		return nil, ErrScopeMismatch
	}

	return claims, nil
}

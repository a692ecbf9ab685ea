// Copyright (c) 2026 Contactbook. All rights reserved.
// Author: igor.ivn.olga@gmail.com

/*
Package auth implements the core identity and access management system.

It handles user registration, secure password hashing, the login/refresh token
lifecycle, email confirmation, and password recovery.

Architecture:

  - Service: Orchestrates business logic (Signup, Login, Refresh, recovery).
  - Resolver: Turns bearer tokens into principals via the read-through cache.
  - Repository: Abstracted interfaces for Postgres (Users) and Redis (Cache).
  - Security: Leverages Bcrypt and scoped HS256 JWTs.

The package ensures that identity data remains consistent and secure throughout
the platform's lifecycle.
*/
package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/igorivnaolga/contactbook/internal/platform/apperr"
	"github.com/igorivnaolga/contactbook/internal/platform/avatar"
	"github.com/igorivnaolga/contactbook/internal/platform/email"
	"github.com/igorivnaolga/contactbook/internal/platform/sec"
	"github.com/igorivnaolga/contactbook/pkg/uuid"
)

// # Definitions & Constructors

// Service implements user authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, registration,
// or login logic must be reviewed before merging.
type Service struct {
	userRepository UserRepository
	tokens         *sec.TokenService
	mailer         email.Sender
	logger         *slog.Logger
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(
	userRepo UserRepository,
	tokens *sec.TokenService,
	mailer email.Sender,
	logger *slog.Logger,
) *Service {
	return &Service{
		userRepository: userRepo,
		tokens:         tokens,
		mailer:         mailer,
		logger:         logger,
	}
}

// sendInBackground dispatches mail without blocking or failing the request.
//
// Every email this service sends is a side effect of an already-committed
// state change; delivery failures are logged and swallowed.
func (service *Service) sendInBackground(to, displayName, host, token string, purpose email.Purpose) {
	go func() {
		if err := service.mailer.Send(to, displayName, host, token, purpose); err != nil {
			service.logger.Error("email_dispatch_failed",
				slog.String("to", to),
				slog.String("error", err.Error()),
			)
		}
	}()
}

// # Registration Flow

// SignupInput holds the data required to enroll a new member.
type SignupInput struct {
	Username string
	Email    string
	Password string
}

/*
Signup validates, hashes, and persists a brand new user account.

Description: Enrolls a new member with a hashed password and a Gravatar
default avatar, then dispatches a confirmation email in the background.
The email conflict is checked before the username conflict; clients depend
on that ordering.

Parameters:
  - context: context.Context
  - input: SignupInput
  - host: string (origin host for the confirmation link)

Returns:
  - *User: Created entity
  - error: Conflict (if identity exists) or storage errors
*/
func (service *Service) Signup(context context.Context, input SignupInput, host string) (*User, error) {

	// Verify email uniqueness. Return a client-safe Conflict err.
	_, err := service.userRepository.FindByEmail(context, input.Email)
	if err == nil {
		return nil, apperr.Conflict(MsgEmailConflict)
	}

	// Verify username uniqueness. Return a client-safe Conflict err.
	_, err = service.userRepository.FindByUsername(context, input.Username)
	if err == nil {
		return nil, apperr.Conflict(MsgUsernameConflict)
	}

	// Prevent storing plain-text passwords. Default cost is used for balance
	// between security and CPU utilization during registration spikes.
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	// Construct the new User entity. Time-sortable ID to prevent PG index fragmentation.
	user := &User{
		ID:             uuid.New(),
		Username:       input.Username,
		Email:          input.Email,
		PasswordHash:   hashedPassword,
		ConfirmedEmail: false,
		AvatarURL:      avatar.GravatarURL(input.Email),
		Role:           sec.RoleUser,
	}

	// Persist the user to the database
	if err := service.userRepository.Create(context, user); err != nil {
		return nil, fmt.Errorf("auth_service_signup_failed: %w", err)
	}

	// Dispatch the confirmation email as an async side effect
	token, err := service.tokens.CreateEmailToken(user.Email)
	if err == nil {
		service.sendInBackground(user.Email, user.Username, host, token, email.PurposeConfirm)
	}

	return user, nil
}

// # Authentication Flow

// TokenPair represents a successfully established session.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

/*
Login validates user credentials and issues security tokens.

Description: Verifies identity, performs constant-time password comparison,
requires a confirmed email, and mirrors the fresh refresh token onto the user
row so it can be compared and rotated later.

Parameters:
  - context: context.Context
  - username: string
  - password: string

Returns:
  - *TokenPair: Transport-ready session credentials
  - error: Unauthorized or internal failures
*/
func (service *Service) Login(context context.Context, username, password string) (*TokenPair, error) {

	user, err := service.userRepository.FindByUsername(context, username)

	// If (err != nil) the user does not exist. Generic message to prevent enumeration.
	if err != nil {
		return nil, apperr.Unauthorized(MsgInvalidCreds)
	}

	// Verify password hash using constant-time comparison in bcrypt to prevent timing attacks
	if !sec.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperr.Unauthorized(MsgInvalidCreds)
	}

	// Unconfirmed accounts cannot establish sessions
	if !user.ConfirmedEmail {
		return nil, apperr.Unauthorized(MsgEmailNotConfirmed)
	}

	return service.issueTokenPair(context, user)
}

// issueTokenPair mints an access/refresh pair and persists the refresh mirror.
func (service *Service) issueTokenPair(context context.Context, user *User) (*TokenPair, error) {

	// Generate short-lived Access Token
	accessToken, err := service.tokens.CreateAccessToken(user.Email)
	if err != nil {
		return nil, fmt.Errorf("auth_service_access_token_failed: %w", err)
	}

	// Generate long-lived Refresh Token
	refreshToken, err := service.tokens.CreateRefreshToken(user.Email)
	if err != nil {
		return nil, fmt.Errorf("auth_service_refresh_token_failed: %w", err)
	}

	// Mirror the refresh token onto the user row. The mirror is what makes
	// stateless refresh tokens revocable: only the most recent one is honored.
	if err := service.userRepository.UpdateRefreshToken(context, user.ID, refreshToken); err != nil {
		return nil, fmt.Errorf("auth_service_store_refresh_failed: %w", err)
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
	}, nil
}

// # Session Management

/*
RefreshTokens implements the refresh token rotation mechanism.

Description: Verifies the presented refresh token against its stored mirror,
then issues a fresh pair and rotates the mirror. Any validation failure —
bad signature, expiry, wrong scope, unknown subject, mirror mismatch —
collapses to the same Unauthorized response.

Parameters:
  - context: context.Context
  - refreshToken: string

Returns:
  - *TokenPair: New session credentials
  - error: Unauthorized or storage failures
*/
func (service *Service) RefreshTokens(context context.Context, refreshToken string) (*TokenPair, error) {

	// ── 1. Decode with the refresh scope ─────────────────────────────────
	claims, err := service.tokens.Decode(refreshToken, sec.ScopeRefresh)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid refresh token")
	}

	// ── 2. Resolve the subject ───────────────────────────────────────────
	user, err := service.userRepository.FindByEmail(context, claims.Subject)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid refresh token")
	}

	// ── 3. Compare against the stored mirror ─────────────────────────────
	// A mismatch means the token was already rotated away (or revoked).
	if user.RefreshToken != refreshToken {
		return nil, apperr.Unauthorized("Invalid refresh token")
	}

	// ── 4. Rotate: issue a new pair, overwriting the mirror ──────────────
	return service.issueTokenPair(context, user)
}

// # Email Confirmation

/*
ConfirmEmail confirms a user's email address using an email-scoped token.

Description: An already-confirmed account is a success outcome, not an error;
the operation is idempotent.

Parameters:
  - context: context.Context
  - token: string

Returns:
  - string: Client-facing outcome message
  - error: Unprocessable (bad token), validation, or storage failures
*/
func (service *Service) ConfirmEmail(context context.Context, token string) (string, error) {

	// Email-token failures are a 422 here, unlike the 401 of the access and
	// refresh paths. Clients depend on the split.
	claims, err := service.tokens.Decode(token, sec.ScopeEmail)
	if err != nil {
		return "", apperr.Unprocessable(MsgInvalidEmailToken)
	}

	user, err := service.userRepository.FindByEmail(context, claims.Subject)
	if err != nil {
		return "", apperr.ValidationError(MsgVerificationError)
	}

	// Idempotent outcome: confirming twice is not an error
	if user.ConfirmedEmail {
		return MsgAlreadyConfirmed, nil
	}

	if err := service.userRepository.MarkConfirmed(context, user.ID); err != nil {
		return "", fmt.Errorf("auth_service_confirm_email_failed: %w", err)
	}

	return MsgEmailConfirmed, nil
}

/*
RequestConfirmationEmail re-sends the confirmation email.

Description: Responds with the same generic message whether or not the
address is registered, to prevent user enumeration.

Parameters:
  - context: context.Context
  - emailAddress: string
  - host: string

Returns:
  - string: Client-facing outcome message
  - error: Never fails on an unknown address
*/
func (service *Service) RequestConfirmationEmail(context context.Context, emailAddress, host string) (string, error) {

	user, err := service.userRepository.FindByEmail(context, emailAddress)
	if err != nil {
		// Unknown address: same message as the happy path
		return MsgCheckEmail, nil
	}

	if user.ConfirmedEmail {
		return MsgAlreadyConfirmed, nil
	}

	token, err := service.tokens.CreateEmailToken(user.Email)
	if err == nil {
		service.sendInBackground(user.Email, user.Username, host, token, email.PurposeConfirm)
	}

	return MsgCheckEmail, nil
}

// # Password Recovery

/*
ForgotPassword initiates the password recovery flow.

Description: Dispatches a reset email carrying an email-scoped token. Only
confirmed accounts may recover a password.

Parameters:
  - context: context.Context
  - emailAddress: string
  - host: string

Returns:
  - string: Client-facing outcome message
  - error: Validation or Unauthorized failures
*/
func (service *Service) ForgotPassword(context context.Context, emailAddress, host string) (string, error) {

	user, err := service.userRepository.FindByEmail(context, emailAddress)
	if err != nil {
		return "", apperr.ValidationError(MsgVerificationError)
	}

	if !user.ConfirmedEmail {
		return "", apperr.Unauthorized(MsgEmailNotConfirmed)
	}

	token, err := service.tokens.CreateEmailToken(user.Email)
	if err != nil {
		return "", fmt.Errorf("auth_service_reset_token_failed: %w", err)
	}

	service.sendInBackground(user.Email, user.Username, host, token, email.PurposeReset)

	return MsgCheckEmail, nil
}

/*
ResetPassword completes the forgot-password flow.

Description: Verifies the email-scoped token, hashes the new password, and
updates the account. The old password stops working immediately; cached
snapshots are unaffected since they never carry credential material.

Parameters:
  - context: context.Context
  - token: string
  - newPassword: string

Returns:
  - string: Client-facing outcome message
  - error: Unprocessable, validation, Unauthorized, or storage failures
*/
func (service *Service) ResetPassword(context context.Context, token, newPassword string) (string, error) {

	claims, err := service.tokens.Decode(token, sec.ScopeEmail)
	if err != nil {
		return "", apperr.Unprocessable(MsgInvalidEmailToken)
	}

	user, err := service.userRepository.FindByEmail(context, claims.Subject)
	if err != nil {
		return "", apperr.ValidationError(MsgVerificationError)
	}

	if !user.ConfirmedEmail {
		return "", apperr.Unauthorized(MsgEmailNotConfirmed)
	}

	hashedPassword, err := sec.HashPassword(newPassword)
	if err != nil {
		return "", fmt.Errorf("auth_service_reset_hash_failed: %w", err)
	}

	if err := service.userRepository.UpdatePassword(context, user.ID, hashedPassword); err != nil {
		return "", fmt.Errorf("auth_service_reset_update_failed: %w", err)
	}

	return MsgPasswordChanged, nil
}

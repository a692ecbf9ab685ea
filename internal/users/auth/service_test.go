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
	"github.com/igorivnaolga/contactbook/internal/platform/email"
	"github.com/igorivnaolga/contactbook/internal/platform/sec"
	"github.com/igorivnaolga/contactbook/internal/users/auth"
)

type serviceFixture struct {
	service *auth.Service
	repo    *fakeUserRepository
	sender  *fakeSender
	tokens  *sec.TokenService
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()
	tokens := newTestTokens(t)
	repo := newFakeUserRepository()
	sender := &fakeSender{}
	return &serviceFixture{
		service: auth.NewService(repo, tokens, sender, slog.Default()),
		repo:    repo,
		sender:  sender,
		tokens:  tokens,
	}
}

// sentCount reads the dispatch log; email goes out on a goroutine, so tests
// poll it via assert.Eventually rather than reading immediately.
func (fixture *serviceFixture) sentCount() int {
	fixture.sender.mu.Lock()
	defer fixture.sender.mu.Unlock()
	return len(fixture.sender.sent)
}

func (fixture *serviceFixture) lastSent(t *testing.T) sentMail {
	t.Helper()
	fixture.sender.mu.Lock()
	defer fixture.sender.mu.Unlock()
	require.NotEmpty(t, fixture.sender.sent)
	return fixture.sender.sent[len(fixture.sender.sent)-1]
}

func signup(t *testing.T, fixture *serviceFixture, username, emailAddress, password string) *auth.User {
	t.Helper()
	user, err := fixture.service.Signup(context.Background(), auth.SignupInput{
		Username: username,
		Email:    emailAddress,
		Password: password,
	}, "contactbook.example")
	require.NoError(t, err)
	return user
}

/*
TestService_Signup verifies enrollment: password is stored hashed, the role
defaults to the regular user role, a Gravatar identicon is assigned, and a
confirmation email is dispatched.
*/
func TestService_Signup(t *testing.T) {
	fixture := newServiceFixture(t)

	user := signup(t, fixture, "ada", "ada@example.com", "s3cret-passw0rd")

	assert.NotEmpty(t, user.ID)
	assert.NotEqual(t, "s3cret-passw0rd", user.PasswordHash)
	assert.True(t, sec.CheckPasswordHash("s3cret-passw0rd", user.PasswordHash))
	assert.Equal(t, sec.RoleUser, user.Role)
	assert.False(t, user.ConfirmedEmail)
	assert.Contains(t, user.AvatarURL, "gravatar.com/avatar/")

	assert.Eventually(t, func() bool { return fixture.sentCount() == 1 },
		time.Second, 10*time.Millisecond)
	assert.Equal(t, email.PurposeConfirm, fixture.lastSent(t).purpose)
}

/*
TestService_SignupConflicts verifies duplicate detection. The email check
runs before the username check, so a signup colliding on both reports the
email conflict.
*/
func TestService_SignupConflicts(t *testing.T) {
	fixture := newServiceFixture(t)
	signup(t, fixture, "ada", "ada@example.com", "s3cret-passw0rd")

	tests := []struct {
		name     string
		username string
		email    string
		message  string
	}{
		{name: "email taken", username: "other", email: "ada@example.com", message: auth.MsgEmailConflict},
		{name: "username taken", username: "ada", email: "other@example.com", message: auth.MsgUsernameConflict},
		{name: "both taken reports email first", username: "ada", email: "ada@example.com", message: auth.MsgEmailConflict},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := fixture.service.Signup(context.Background(), auth.SignupInput{
				Username: tc.username,
				Email:    tc.email,
				Password: "s3cret-passw0rd",
			}, "contactbook.example")
			require.Error(t, err)

			appErr := apperr.As(err)
			require.NotNil(t, appErr)
			assert.Equal(t, http.StatusConflict, appErr.HTTPStatus)
			assert.Equal(t, tc.message, appErr.Message)
		})
	}
}

/*
TestService_Login verifies the login guard rails: unknown accounts and wrong
passwords share one generic message, unconfirmed accounts are refused, and a
confirmed login returns a bearer pair with the refresh token mirrored onto
the user row.
*/
func TestService_Login(t *testing.T) {
	fixture := newServiceFixture(t)
	user := signup(t, fixture, "ada", "ada@example.com", "s3cret-passw0rd")

	_, err := fixture.service.Login(context.Background(), "ghost", "s3cret-passw0rd")
	requireUnauthorized(t, err, auth.MsgInvalidCreds)

	_, err = fixture.service.Login(context.Background(), "ada", "wrong-password")
	requireUnauthorized(t, err, auth.MsgInvalidCreds)

	_, err = fixture.service.Login(context.Background(), "ada", "s3cret-passw0rd")
	requireUnauthorized(t, err, auth.MsgEmailNotConfirmed)

	require.NoError(t, fixture.repo.MarkConfirmed(context.Background(), user.ID))

	pair, err := fixture.service.Login(context.Background(), "ada", "s3cret-passw0rd")
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, "bearer", pair.TokenType)

	stored, err := fixture.repo.FindByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, pair.RefreshToken, stored.RefreshToken)
}

/*
TestService_RefreshRotation verifies refresh token rotation: a valid refresh
yields a new pair and invalidates the old token, so replaying it fails.
*/
func TestService_RefreshRotation(t *testing.T) {
	fixture := newServiceFixture(t)
	user := signup(t, fixture, "ada", "ada@example.com", "s3cret-passw0rd")
	require.NoError(t, fixture.repo.MarkConfirmed(context.Background(), user.ID))

	pair, err := fixture.service.Login(context.Background(), "ada", "s3cret-passw0rd")
	require.NoError(t, err)

	rotated, err := fixture.service.RefreshTokens(context.Background(), pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, pair.RefreshToken, rotated.RefreshToken)

	// The old token no longer matches the stored mirror.
	_, err = fixture.service.RefreshTokens(context.Background(), pair.RefreshToken)
	requireUnauthorized(t, err, "Invalid refresh token")

	// An access token is the wrong scope for refreshing.
	_, err = fixture.service.RefreshTokens(context.Background(), rotated.AccessToken)
	requireUnauthorized(t, err, "Invalid refresh token")
}

/*
TestService_ConfirmEmail verifies the confirmation flow, including its
idempotent second run and the 422 status reserved for bad email tokens.
*/
func TestService_ConfirmEmail(t *testing.T) {
	fixture := newServiceFixture(t)
	signup(t, fixture, "ada", "ada@example.com", "s3cret-passw0rd")

	token, err := fixture.tokens.CreateEmailToken("ada@example.com")
	require.NoError(t, err)

	message, err := fixture.service.ConfirmEmail(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, auth.MsgEmailConfirmed, message)

	// Second confirmation is a success, not an error.
	message, err = fixture.service.ConfirmEmail(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, auth.MsgAlreadyConfirmed, message)

	// Garbage token is unprocessable, not unauthorized.
	_, err = fixture.service.ConfirmEmail(context.Background(), "not.a.jwt")
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusUnprocessableEntity, appErr.HTTPStatus)
	assert.Equal(t, auth.MsgInvalidEmailToken, appErr.Message)

	// So is an access token presented where an email token is expected.
	access, err := fixture.tokens.CreateAccessToken("ada@example.com")
	require.NoError(t, err)
	_, err = fixture.service.ConfirmEmail(context.Background(), access)
	appErr = apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusUnprocessableEntity, appErr.HTTPStatus)

	// Valid token for an unknown subject.
	orphan, err := fixture.tokens.CreateEmailToken("ghost@example.com")
	require.NoError(t, err)
	_, err = fixture.service.ConfirmEmail(context.Background(), orphan)
	appErr = apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.HTTPStatus)
	assert.Equal(t, auth.MsgVerificationError, appErr.Message)
}

/*
TestService_RequestConfirmationEmail verifies the anti-enumeration behavior:
unknown addresses receive the same generic message as registered ones, and
already-confirmed accounts are told so without a new email.
*/
func TestService_RequestConfirmationEmail(t *testing.T) {
	fixture := newServiceFixture(t)
	user := signup(t, fixture, "ada", "ada@example.com", "s3cret-passw0rd")
	assert.Eventually(t, func() bool { return fixture.sentCount() == 1 },
		time.Second, 10*time.Millisecond)

	message, err := fixture.service.RequestConfirmationEmail(context.Background(), "ghost@example.com", "contactbook.example")
	require.NoError(t, err)
	assert.Equal(t, auth.MsgCheckEmail, message)

	message, err = fixture.service.RequestConfirmationEmail(context.Background(), "ada@example.com", "contactbook.example")
	require.NoError(t, err)
	assert.Equal(t, auth.MsgCheckEmail, message)
	assert.Eventually(t, func() bool { return fixture.sentCount() == 2 },
		time.Second, 10*time.Millisecond)

	require.NoError(t, fixture.repo.MarkConfirmed(context.Background(), user.ID))
	message, err = fixture.service.RequestConfirmationEmail(context.Background(), "ada@example.com", "contactbook.example")
	require.NoError(t, err)
	assert.Equal(t, auth.MsgAlreadyConfirmed, message)
}

/*
TestService_PasswordReset walks the full recovery flow: forgot-password
dispatches a reset email, reset-password swaps the hash, and login works
only with the new password afterwards.
*/
func TestService_PasswordReset(t *testing.T) {
	fixture := newServiceFixture(t)
	user := signup(t, fixture, "ada", "ada@example.com", "old-passw0rd-123")

	// Recovery demands a confirmed address.
	_, err := fixture.service.ForgotPassword(context.Background(), "ada@example.com", "contactbook.example")
	requireUnauthorized(t, err, auth.MsgEmailNotConfirmed)

	_, err = fixture.service.ForgotPassword(context.Background(), "ghost@example.com", "contactbook.example")
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.HTTPStatus)

	require.NoError(t, fixture.repo.MarkConfirmed(context.Background(), user.ID))

	message, err := fixture.service.ForgotPassword(context.Background(), "ada@example.com", "contactbook.example")
	require.NoError(t, err)
	assert.Equal(t, auth.MsgCheckEmail, message)

	assert.Eventually(t, func() bool { return fixture.sentCount() == 2 },
		time.Second, 10*time.Millisecond)
	reset := fixture.lastSent(t)
	assert.Equal(t, email.PurposeReset, reset.purpose)

	message, err = fixture.service.ResetPassword(context.Background(), reset.token, "new-passw0rd-456")
	require.NoError(t, err)
	assert.Equal(t, auth.MsgPasswordChanged, message)

	_, err = fixture.service.Login(context.Background(), "ada", "old-passw0rd-123")
	requireUnauthorized(t, err, auth.MsgInvalidCreds)

	pair, err := fixture.service.Login(context.Background(), "ada", "new-passw0rd-456")
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
}

func requireUnauthorized(t *testing.T, err error, message string) {
	t.Helper()
	require.Error(t, err)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusUnauthorized, appErr.HTTPStatus)
	assert.Equal(t, message, appErr.Message)
}

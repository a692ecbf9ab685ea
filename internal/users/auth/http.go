// Copyright (c) 2026 Contactbook. All rights reserved.
// Author: igor.ivn.olga@gmail.com

/*
HTTP delivery layer for user identity management.

It implements the gateway for the authentication lifecycle — from account
creation to token refresh and password recovery.

# Architecture

The handler acts as a thin mediation layer between the web and domain services:
  - Protocol: Standard RESTful JSON interface.
  - Security: Orchestrates JWT issuance; every route here is public.
  - Verification: Enforces strict input validation before passing to [Service].

This layer is strictly responsible for transport concerns (status codes, headers, JSON).
*/
package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/igorivnaolga/contactbook/internal/platform/request"
	"github.com/igorivnaolga/contactbook/internal/platform/respond"
	"github.com/igorivnaolga/contactbook/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements authentication-related HTTP endpoints.
//
// # Scope
//
// This handler manages everything related to the user lifecycle entry points
// (Signup, Login, Refresh, Confirmation, Password Reset callbacks).
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// Routes returns a [chi.Router] configured with authentication-specific routes.
//
// # Endpoints
//   - POST /signup        : Creates a new account.
//   - POST /login         : Authenticates and returns a token pair.
//   - POST /refresh_token : Rotates a refresh token into a fresh pair.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public endpoints
	router.Post("/signup", handler.signup)
	router.Post("/login", handler.login)
	router.Post("/refresh_token", handler.refreshToken)
	router.Get("/confirmed_email/{token}", handler.confirmedEmail)
	router.Post("/request_email", handler.requestEmail)
	router.Post("/forgot_password", handler.forgotPassword)
	router.Post("/reset_password/{token}", handler.resetPassword)

	return router
}

// # Request Payloads

type signupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type emailRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	NewPassword string `json:"new_password"`
}

// originHost reconstructs the scheme://host origin used in emailed links.
func originHost(request *http.Request) string {
	scheme := "http"
	if request.TLS != nil || request.Header.Get("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return scheme + "://" + request.Host
}

/*
Signup handles the creation of a new user account.

POST /api/auth/signup

Description: Validates input, checks for identity conflicts, persists a new
user profile, and dispatches a confirmation email in the background.

Request:
  - Body: signupRequest (Username, Email, Password)

Response:
  - 201: User: Created user profile
  - 400: ErrInvalidJSON: Bad input or validation failure
  - 409: ErrConflict: Email or Username already exists
*/
func (handler *Handler) signup(writer http.ResponseWriter, request *http.Request) {
	var input signupRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username).
		MinLen(FieldUsername, input.Username, 3).
		Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		Required(FieldPassword, input.Password).
		MinLen(FieldPassword, input.Password, 8)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.Signup(request.Context(), SignupInput{
		Username: input.Username,
		Email:    input.Email,
		Password: input.Password,
	}, originHost(request))

	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, map[string]any{
		FieldUser:    user,
		FieldMessage: MsgCheckEmail,
	})
}

/*
Login authenticates a user and issues a token pair.

POST /api/auth/login

Description: Verifies credentials and the confirmed-email requirement, then
returns an access/refresh token pair.

Request:
  - Body: loginRequest (Username, Password)

Response:
  - 200: TokenPair: Access and refresh tokens
  - 401: ErrUnauthorized: Invalid credentials or unconfirmed email
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username)
	validator.Required(FieldPassword, input.Password)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	pair, err := handler.authService.Login(request.Context(), input.Username, input.Password)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, pair)
}

/*
RefreshToken rotates a refresh token into a fresh pair.

POST /api/auth/refresh_token

Description: Validates the presented refresh token against its stored mirror
and issues a rotated pair; the presented token stops working immediately.

Request:
  - Body: refreshRequest (RefreshToken)

Response:
  - 200: TokenPair: New credentials
  - 401: ErrUnauthorized: Invalid, expired, or already-rotated token
*/
func (handler *Handler) refreshToken(writer http.ResponseWriter, request *http.Request) {
	var input refreshRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	if input.RefreshToken == "" {
		respond.Error(writer, request, validate.RequiredError(FieldRefreshToken, "is required"))
		return
	}

	pair, err := handler.authService.RefreshTokens(request.Context(), input.RefreshToken)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, pair)
}

/*
ConfirmedEmail confirms a user's email ownership.

GET /api/auth/confirmed_email/{token}

Description: Validates an email-scoped token from the emailed link and marks
the account as confirmed. Confirming twice is a success, not an error.

Response:
  - 200: Success: Email confirmed (or already confirmed)
  - 400: ErrValidation: Token subject resolves to no account
  - 422: ErrUnprocessable: Malformed or wrong-scope token
*/
func (handler *Handler) confirmedEmail(writer http.ResponseWriter, request *http.Request) {
	token := chi.URLParam(request, FieldToken)

	message, err := handler.authService.ConfirmEmail(request.Context(), token)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Message(writer, message)
}

/*
RequestEmail re-sends the confirmation email.

POST /api/auth/request_email

Description: Responds with the same generic message whether or not the email
is registered, to prevent account enumeration.

Request:
  - Body: emailRequest (Email)

Response:
  - 200: Success: Generic dispatch confirmation
  - 400: ErrInvalidJSON: Invalid email format
*/
func (handler *Handler) requestEmail(writer http.ResponseWriter, request *http.Request) {
	var input emailRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email).Email(FieldEmail, input.Email)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	message, err := handler.authService.RequestConfirmationEmail(request.Context(), input.Email, originHost(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Message(writer, message)
}

/*
ForgotPassword initiates the password recovery flow.

POST /api/auth/forgot_password

Description: Sends a password reset link to the provided email. Only
confirmed accounts may recover a password.

Request:
  - Body: emailRequest (Email)

Response:
  - 200: Success: Reset link sent
  - 400: ErrValidation: Unknown email
  - 401: ErrUnauthorized: Email not confirmed
*/
func (handler *Handler) forgotPassword(writer http.ResponseWriter, request *http.Request) {
	var input emailRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email).Email(FieldEmail, input.Email)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	message, err := handler.authService.ForgotPassword(request.Context(), input.Email, originHost(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Message(writer, message)
}

/*
ResetPassword completes the password recovery flow.

POST /api/auth/reset_password/{token}

Description: Validates the emailed reset token and updates the password.

Request:
  - Body: resetPasswordRequest (NewPassword)

Response:
  - 200: Success: Password updated
  - 400: ErrValidation: Weak password or unknown account
  - 401: ErrUnauthorized: Email not confirmed
  - 422: ErrUnprocessable: Malformed or wrong-scope token
*/
func (handler *Handler) resetPassword(writer http.ResponseWriter, request *http.Request) {
	token := chi.URLParam(request, FieldToken)

	var input resetPasswordRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldNewPassword, input.NewPassword).
		MinLen(FieldNewPassword, input.NewPassword, 8)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	message, err := handler.authService.ResetPassword(request.Context(), token, input.NewPassword)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Message(writer, message)
}

// Copyright (c) 2026 Contactbook. All rights reserved.
// Author: igor.ivn.olga@gmail.com

/*
HTTP delivery layer for profile and avatar management.

# Security

All endpoints in this package require an authenticated principal provided by
the Authenticate + RequireAuth middleware chain.
*/
package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/igorivnaolga/contactbook/internal/platform/apperr"
	"github.com/igorivnaolga/contactbook/internal/platform/middleware"
	"github.com/igorivnaolga/contactbook/internal/platform/respond"
)

// MaxAvatarBytes bounds the multipart form held in memory during an upload.
const MaxAvatarBytes = 5 << 20

// Handler implements the HTTP layer for user account management.
type Handler struct {
	accountService *Service
}

// NewHandler constructs a new account [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{accountService: service}
}

// Routes returns a [chi.Router] configured with the account domain's endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/me", handler.getMe)
	router.Patch("/avatar", handler.updateAvatar)

	return router
}

/*
GET /api/users/me.

Description: Retrieves the full private profile of the authenticated user.

Response:
  - 200: User: Fully hydrated user profile
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) getMe(writer http.ResponseWriter, request *http.Request) {
	principal, err := middleware.RequirePrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.GetProfile(request.Context(), principal.ID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
PATCH /api/users/avatar.

Description: Uploads a new profile image from a multipart form and returns
the profile with its fresh public URL.

Request:
  - multipart/form-data with a "file" part

Response:
  - 200: User: Profile with the new avatar URL
  - 400: ErrValidation: Missing or oversized file part
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) updateAvatar(writer http.ResponseWriter, request *http.Request) {
	principal, err := middleware.RequirePrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := request.ParseMultipartForm(MaxAvatarBytes); err != nil {
		respond.Error(writer, request, apperr.ValidationError("Avatar upload must be multipart form data"))
		return
	}

	file, header, err := request.FormFile("file")
	if err != nil {
		respond.Error(writer, request, apperr.ValidationError("Missing avatar file"))
		return
	}
	defer file.Close()

	user, err := handler.accountService.UpdateAvatar(request.Context(), principal, AvatarUpload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Body:        file,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

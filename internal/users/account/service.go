// Copyright (c) 2026 Contactbook. All rights reserved.
// Author: igor.ivn.olga@gmail.com

/*
Package account implements profile management for authenticated users.

It covers the read side of the authenticated profile and the avatar upload
flow; identity and credential concerns stay in the auth package.
*/
package account

import (
	"context"
	"fmt"
	"io"

	"github.com/igorivnaolga/contactbook/internal/platform/avatar"
	"github.com/igorivnaolga/contactbook/internal/users/auth"
)

// Service implements account profile use cases.
type Service struct {
	userRepository auth.UserRepository
	avatars        avatar.Store
}

// NewService constructs a new account [Service].
func NewService(userRepo auth.UserRepository, avatars avatar.Store) *Service {
	return &Service{
		userRepository: userRepo,
		avatars:        avatars,
	}
}

/*
GetProfile returns the full account record for a user.

Description: Reads from the persistent store rather than the resolver's
snapshot, so the response always reflects committed state even inside the
cache staleness window.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *auth.User: Hydrated profile
  - error: apperr.NotFound or database errors
*/
func (service *Service) GetProfile(context context.Context, userID string) (*auth.User, error) {
	return service.userRepository.FindByID(context, userID)
}

// AvatarUpload carries one multipart file destined for object storage.
type AvatarUpload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

/*
UpdateAvatar stores a new profile image and persists its URL.

Description: Uploads to object storage first and commits the URL second, so a
failed upload never leaves the account pointing at a missing object. Upload
failures propagate to the caller, unlike email dispatch.

Parameters:
  - context: context.Context
  - user: *auth.User (resolved principal)
  - upload: AvatarUpload

Returns:
  - *auth.User: Profile with the new avatar URL
  - error: Upload or persistence failures
*/
func (service *Service) UpdateAvatar(context context.Context, user *auth.User, upload AvatarUpload) (*auth.User, error) {

	publicURL, err := service.avatars.Upload(context, user.ID, upload.Filename, upload.ContentType, upload.Body)
	if err != nil {
		return nil, fmt.Errorf("account_service_avatar_upload_failed: %w", err)
	}

	if err := service.userRepository.UpdateAvatar(context, user.ID, publicURL); err != nil {
		return nil, fmt.Errorf("account_service_avatar_update_failed: %w", err)
	}

	return service.userRepository.FindByID(context, user.ID)
}

// Copyright (c) 2026 Contactbook. All rights reserved.
// Author: igor.ivn.olga@gmail.com

package auth_test

import (
	"context"
	"errors"
	"sync"

	"github.com/igorivnaolga/contactbook/internal/platform/apperr"
	"github.com/igorivnaolga/contactbook/internal/platform/email"
	"github.com/igorivnaolga/contactbook/internal/users/auth"
)

// fakeUserRepository is an in-memory UserRepository keyed by user ID.
type fakeUserRepository struct {
	mu        sync.Mutex
	users     map[string]*auth.User
	findCalls int
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: map[string]*auth.User{}}
}

func (repo *fakeUserRepository) FindByID(_ context.Context, id string) (*auth.User, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if user, ok := repo.users[id]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, apperr.NotFound("User")
}

func (repo *fakeUserRepository) FindByEmail(_ context.Context, emailAddress string) (*auth.User, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	repo.findCalls++
	for _, user := range repo.users {
		if user.Email == emailAddress {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (repo *fakeUserRepository) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	for _, user := range repo.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (repo *fakeUserRepository) Create(_ context.Context, user *auth.User) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	copied := *user
	repo.users[user.ID] = &copied
	return nil
}

func (repo *fakeUserRepository) MarkConfirmed(_ context.Context, userID string) error {
	return repo.mutate(userID, func(user *auth.User) { user.ConfirmedEmail = true })
}

func (repo *fakeUserRepository) UpdateAvatar(_ context.Context, userID, avatarURL string) error {
	return repo.mutate(userID, func(user *auth.User) { user.AvatarURL = avatarURL })
}

func (repo *fakeUserRepository) UpdatePassword(_ context.Context, userID, newHash string) error {
	return repo.mutate(userID, func(user *auth.User) { user.PasswordHash = newHash })
}

func (repo *fakeUserRepository) UpdateRefreshToken(_ context.Context, userID, refreshToken string) error {
	return repo.mutate(userID, func(user *auth.User) { user.RefreshToken = refreshToken })
}

func (repo *fakeUserRepository) mutate(userID string, apply func(*auth.User)) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	user, ok := repo.users[userID]
	if !ok {
		return apperr.NotFound("User")
	}
	apply(user)
	return nil
}

// fakeUserCache is an in-memory UserCache; failures are switchable per test.
type fakeUserCache struct {
	mu      sync.Mutex
	entries map[string]*auth.UserSnapshot
	failing bool
	puts    int
}

func newFakeUserCache() *fakeUserCache {
	return &fakeUserCache{entries: map[string]*auth.UserSnapshot{}}
}

func (cache *fakeUserCache) Get(_ context.Context, emailAddress string) (*auth.UserSnapshot, error) {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	if cache.failing {
		return nil, errors.New("cache backend unreachable")
	}
	if snapshot, ok := cache.entries[emailAddress]; ok {
		copied := *snapshot
		return &copied, nil
	}
	return nil, nil
}

func (cache *fakeUserCache) Put(_ context.Context, snapshot *auth.UserSnapshot) error {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	if cache.failing {
		return errors.New("cache backend unreachable")
	}
	copied := *snapshot
	cache.entries[snapshot.Email] = &copied
	cache.puts++
	return nil
}

// fakeSender records dispatched messages instead of talking to SMTP.
type fakeSender struct {
	mu   sync.Mutex
	sent []sentMail
}

type sentMail struct {
	to      string
	token   string
	purpose email.Purpose
}

func (sender *fakeSender) Send(to, _, _, token string, purpose email.Purpose) error {
	sender.mu.Lock()
	defer sender.mu.Unlock()
	sender.sent = append(sender.sent, sentMail{to: to, token: token, purpose: purpose})
	return nil
}

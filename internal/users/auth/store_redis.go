// Copyright (c) 2026 Contactbook. All rights reserved.
// Author: igor.ivn.olga@gmail.com

package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/igorivnaolga/contactbook/internal/platform/constants"
)

// # User Snapshot Cache

// RedisUserCache implements UserCache using Redis.
//
// Keys are prefixed with [constants.RedisPrefixUser] and expire after
// [constants.UserCacheTTL]; expiry is enforced entirely by Redis, this
// component never re-checks entry age. There is no delete operation:
// mutations to the underlying account do not evict the entry, so reads can
// observe stale data for at most one TTL window.
type RedisUserCache struct {
	client *redis.Client
}

// NewUserCache creates a new Redis-backed UserCache.
func NewUserCache(client *redis.Client) *RedisUserCache {
	return &RedisUserCache{client: client}
}

/*
Get retrieves the cached snapshot for an email address.

Description: Absence, TTL expiry, and schema-version drift all surface as a
miss (nil, nil). Only backend connectivity failures are returned as errors so
the resolver can fail open to PostgreSQL.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - *UserSnapshot: Snapshot, nil on miss
  - error: Connectivity errors
*/
func (cache *RedisUserCache) Get(context context.Context, email string) (*UserSnapshot, error) {

	// Use constants for key prefix
	key := constants.RedisPrefixUser + email

	// Get the serialized snapshot from Redis
	payload, err := cache.client.Get(context, key).Bytes()

	// Handle errors: redis.Nil is a plain miss
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis_user_cache_get_failed: %w", err)
	}

	// Deserialize; a corrupt entry is treated as a miss, not a failure
	snapshot := &UserSnapshot{}
	if err := json.Unmarshal(payload, snapshot); err != nil {
		return nil, nil
	}

	// Entries written under an older schema are useless to this reader
	if snapshot.Version != SnapshotVersion {
		return nil, nil
	}

	return snapshot, nil
}

/*
Put stores a snapshot, overwriting any prior entry and resetting its TTL.

Parameters:
  - context: context.Context
  - snapshot: *UserSnapshot

Returns:
  - error: Serialization or connectivity errors
*/
func (cache *RedisUserCache) Put(context context.Context, snapshot *UserSnapshot) error {

	// Use constants for key prefix
	key := constants.RedisPrefixUser + snapshot.Email

	// Serialize the snapshot
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("redis_user_cache_marshal_failed: %w", err)
	}

	// Set the snapshot with the standard TTL
	if err := cache.client.Set(context, key, payload, constants.UserCacheTTL).Err(); err != nil {
		return fmt.Errorf("redis_user_cache_set_failed: %w", err)
	}

	// Return nil on success
	return nil
}

// Copyright (c) 2026 Contactbook. All rights reserved.
// Author: igor.ivn.olga@gmail.com

/*
Package avatar stores uploaded profile images in S3-compatible object storage
and derives default avatar URLs for accounts that never uploaded one.
*/
package avatar

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// Store uploads avatar images and returns their public URLs.
type Store interface {
	Upload(context context.Context, ownerID string, filename, contentType string, body io.Reader) (string, error)
}

// # Default Avatars

/*
GravatarURL derives the deterministic default avatar for an email address.

Description: New accounts start with a Gravatar identicon so every profile
renders an image before any upload happens. The address is lowercased and
trimmed before hashing, per the Gravatar contract.

Parameters:
  - email: string

Returns:
  - string: Gravatar URL with identicon fallback
*/
func GravatarURL(email string) string {
	normalized := strings.ToLower(strings.TrimSpace(email))
	digest := sha256.Sum256([]byte(normalized))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%x?d=identicon", digest)
}

// # S3 Implementation

// S3Config holds the bucket coordinates and static credentials.
//
// Endpoint is optional: leave it empty for AWS proper, set it for
// S3-compatible stores (MinIO, Cloudflare R2).
type S3Config struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
	PublicURL string
}

// S3Store implements [Store] against S3-compatible object storage.
type S3Store struct {
	client *s3.Client
	cfg    S3Config
}

// NewS3Store builds the client with static credentials.
func NewS3Store(context context.Context, cfg S3Config) (*S3Store, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("avatar: s3 config load failed: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(options *s3.Options) {
		if cfg.Endpoint != "" {
			options.BaseEndpoint = aws.String(cfg.Endpoint)
			options.UsePathStyle = true
		}
	})

	return &S3Store{client: client, cfg: cfg}, nil
}

/*
Upload stores an avatar image and returns its public URL.

Description: The object key is namespaced per owner and randomized per upload,
so a new upload never overwrites the previous one and URLs stay cache-safe.

Parameters:
  - context: context.Context
  - ownerID: string (owning user's id, used as the key prefix)
  - filename: string (original filename, used only for its extension)
  - contentType: string
  - body: io.Reader

Returns:
  - string: publicly reachable URL of the stored object
  - error: upload failures
*/
func (store *S3Store) Upload(context context.Context, ownerID string, filename, contentType string, body io.Reader) (string, error) {
	key := fmt.Sprintf("avatars/%s/%s%s", ownerID, uuid.NewString(), strings.ToLower(path.Ext(filename)))

	_, err := store.client.PutObject(context, &s3.PutObjectInput{
		Bucket:      aws.String(store.cfg.Bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("avatar: s3 put failed: %w", err)
	}

	return fmt.Sprintf("%s/%s", strings.TrimSuffix(store.cfg.PublicURL, "/"), key), nil
}

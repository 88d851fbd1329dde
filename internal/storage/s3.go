// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package storage provides an S3-compatible object storage client for
// uploading, deleting, and serving media files. It wraps the AWS SDK v2
// and is configured for path-style access (required by CEPH/Hetzner).
// Object keys are tenant-prefixed so buckets can be shared safely.
package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"
)

// Client uploads storefront media to S3-compatible storage. All assets
// are public; there is no private bucket because nothing the product
// stores needs presigned access.
type Client struct {
	s3           *s3.Client
	publicBucket string
	endpoint     string
	publicURL    string // optional CDN/direct URL in front of the bucket
}

// New creates a storage client with path-style addressing and static
// credentials. Returns (nil, nil) when endpoint or credentials are empty
// so the server can run with media uploads disabled.
func New(endpoint, region, accessKey, secretKey, publicBucket, publicURL string) (*Client, error) {
	if endpoint == "" || accessKey == "" || secretKey == "" {
		return nil, nil
	}

	endpoint = strings.TrimRight(endpoint, "/")
	s3Client := s3.New(s3.Options{
		Region:       region,
		BaseEndpoint: aws.String(endpoint),
		Credentials:  credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		UsePathStyle: true,
	})

	return &Client{
		s3:           s3Client,
		publicBucket: publicBucket,
		endpoint:     endpoint,
		publicURL:    strings.TrimRight(publicURL, "/"),
	}, nil
}

// MediaKey returns the tenant-prefixed object key for an uploaded file.
func MediaKey(tenantID uuid.UUID, filename string) string {
	return fmt.Sprintf("%s/media/%s", tenantID, filename)
}

// ThumbKey returns the tenant-prefixed object key for a thumbnail.
func ThumbKey(tenantID uuid.UUID, filename string) string {
	return fmt.Sprintf("%s/thumbs/%s", tenantID, filename)
}

// Upload stores an object with a public-read ACL so the storefront can
// link it directly.
func (c *Client) Upload(ctx context.Context, bucket, key, contentType string, body io.Reader, size int64) error {
	_, err := c.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
		ACL:           s3types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return fmt.Errorf("s3 upload %s/%s: %w", bucket, key, err)
	}
	return nil
}

// Delete removes one object.
func (c *Client) Delete(ctx context.Context, bucket, key string) error {
	_, err := c.s3.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("s3 delete %s/%s: %w", bucket, key, err)
	}
	return nil
}

// FileURL builds the public URL for an object, preferring the configured
// CDN URL over a path-style endpoint URL.
func (c *Client) FileURL(key string) string {
	if c.publicURL != "" {
		return c.publicURL + "/" + key
	}
	return c.endpoint + "/" + c.publicBucket + "/" + key
}

// PublicBucket returns the bucket new uploads go to.
func (c *Client) PublicBucket() string {
	return c.publicBucket
}

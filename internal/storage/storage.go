// Package storage wraps Google Cloud Storage for user-uploaded images.
package storage

import (
	"context"
	"fmt"
	"net/http"
	"time"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

type Client struct {
	bucket string
	client *gcs.Client
}

func New(ctx context.Context, bucket, credentialsFile string) (*Client, error) {
	if bucket == "" {
		return nil, fmt.Errorf("storage bucket is required")
	}
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return &Client{bucket: bucket, client: client}, nil
}

// SignedUploadURL returns a V4-signed PUT URL for the object, valid for
// ttl. The caller uploads directly; the server never proxies the bytes.
func (c *Client) SignedUploadURL(object, contentType string, ttl time.Duration) (string, error) {
	return c.client.Bucket(c.bucket).SignedURL(object, &gcs.SignedURLOptions{
		Scheme:      gcs.SigningSchemeV4,
		Method:      http.MethodPut,
		Expires:     time.Now().Add(ttl),
		ContentType: contentType,
	})
}

func (c *Client) PublicURL(object string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", c.bucket, object)
}

func (c *Client) Close() error {
	return c.client.Close()
}

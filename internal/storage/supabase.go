// Package storage uploads blobs to a Supabase Storage bucket and hands
// back their public URLs.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"fleetdesk-go/internal/config"
)

var (
	ErrNotConfigured = errors.New("supabase storage is not configured")
	ErrTooLarge      = errors.New("file exceeds the upload size limit")
)

type Client struct {
	baseURL string
	apiKey  string
	bucket  string
	maxSize int64
	client  *http.Client
}

func NewSupabase(supabaseCfg config.SupabaseConfig, storageCfg config.StorageConfig) *Client {
	timeout := storageCfg.UploadTimeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(supabaseCfg.URL, "/"),
		apiKey:  supabaseCfg.PublishableKey,
		bucket:  storageCfg.Bucket,
		maxSize: storageCfg.MaxUploadSize,
		client:  &http.Client{Timeout: timeout},
	}
}

// Upload stores the blob under path in the configured bucket, upserting
// an existing object, and returns the public URL.
func (c *Client) Upload(ctx context.Context, path, contentType string, size int64, r io.Reader) (string, error) {
	if c.baseURL == "" || c.apiKey == "" || c.bucket == "" {
		return "", ErrNotConfigured
	}
	if c.maxSize > 0 && size > c.maxSize {
		return "", ErrTooLarge
	}

	url := fmt.Sprintf("%s/storage/v1/object/%s/%s", c.baseURL, c.bucket, strings.TrimLeft(path, "/"))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, r)
	if err != nil {
		return "", err
	}
	req.ContentLength = size
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Cache-Control", "3600")
	req.Header.Set("x-upsert", "true")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", decodeStorageError(resp)
	}

	return c.PublicURL(path), nil
}

// PublicURL returns the public object URL, valid for buckets with public
// read access.
func (c *Client) PublicURL(path string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", c.baseURL, c.bucket, strings.TrimLeft(path, "/"))
}

func decodeStorageError(resp *http.Response) error {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&payload)

	message := payload.Message
	if message == "" {
		message = payload.Error
	}
	if message == "" {
		message = http.StatusText(resp.StatusCode)
	}
	return fmt.Errorf("storage: upload failed: %s (status %d)", message, resp.StatusCode)
}

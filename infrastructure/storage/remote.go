// Package storage uploads pitch decks to object storage.
package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Remote stores objects through a Supabase-compatible storage API.
type Remote struct {
	baseURL    string
	serviceKey string
	bucket     string
	http       *http.Client
}

// NewRemote creates a Remote bucket client. A nil client uses a default
// with a timeout.
func NewRemote(baseURL, serviceKey, bucket string, client *http.Client) *Remote {
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}
	return &Remote{
		baseURL:    strings.TrimRight(baseURL, "/"),
		serviceKey: serviceKey,
		bucket:     bucket,
		http:       client,
	}
}

// Upload writes body to path and returns the object's public URL. Existing
// objects are overwritten.
func (r *Remote) Upload(ctx context.Context, path, contentType string, body io.Reader) (string, error) {
	path, err := cleanPath(path)
	if err != nil {
		return "", err
	}
	endpoint := fmt.Sprintf("%s/storage/v1/object/%s/%s", r.baseURL, r.bucket, escapePath(path))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return "", fmt.Errorf("create upload request: %w", err)
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+r.serviceKey)
	req.Header.Set("apikey", r.serviceKey)
	req.Header.Set("x-upsert", "true")

	resp, err := r.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("upload %s: status %d: %s", path, resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	return r.PublicURL(path), nil
}

// PublicURL returns the public URL of an object in the bucket.
func (r *Remote) PublicURL(path string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", r.baseURL, r.bucket, escapePath(path))
}

func escapePath(path string) string {
	parts := strings.Split(path, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}

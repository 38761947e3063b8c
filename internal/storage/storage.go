package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/damda-platform/damda-admin/internal/config"
)

// Client is the object storage boundary: store a blob under a path and get
// back a publicly resolvable URL, or delete the object behind a URL.
type Client interface {
	Upload(ctx context.Context, path string, blob []byte, contentType string) (string, error)
	Delete(ctx context.Context, publicURL string) error
}

// ObjectPath namespaces upload paths by entity kind.
func ObjectPath(entityKind, entityID, filename string) string {
	if entityID == "" {
		return fmt.Sprintf("%s/%s", entityKind, filename)
	}
	return fmt.Sprintf("%s-documents/%s/%s", entityKind, entityID, filename)
}

// HTTPClient talks to the hosted object storage API.
type HTTPClient struct {
	endpoint  string
	apiKey    string
	publicURL string
	http      *http.Client
}

func NewHTTPClient(cfg config.StorageConfig) *HTTPClient {
	return &HTTPClient{
		endpoint:  strings.TrimRight(cfg.Endpoint, "/"),
		apiKey:    cfg.APIKey,
		publicURL: strings.TrimRight(cfg.PublicURL, "/"),
		http:      &http.Client{},
	}
}

func (c *HTTPClient) Upload(ctx context.Context, path string, blob []byte, contentType string) (string, error) {
	if c.endpoint == "" {
		return "", fmt.Errorf("object storage not configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.endpoint+"/object/"+path, bytes.NewReader(blob))
	if err != nil {
		return "", fmt.Errorf("building upload request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", contentType)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("uploading object %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("uploading object %s: status %d: %s", path, resp.StatusCode, body)
	}

	return c.publicURL + "/" + path, nil
}

func (c *HTTPClient) Delete(ctx context.Context, publicURL string) error {
	if c.endpoint == "" {
		return fmt.Errorf("object storage not configured")
	}

	path := strings.TrimPrefix(publicURL, c.publicURL+"/")
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.endpoint+"/object/"+path, nil)
	if err != nil {
		return fmt.Errorf("building delete request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("deleting object %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 && resp.StatusCode != http.StatusNotFound {
		return fmt.Errorf("deleting object %s: status %d", path, resp.StatusCode)
	}
	return nil
}

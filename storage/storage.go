// Package storage persists product images under durable, servable URLs.
// Generated images are downloaded from the generator's short-lived URL and
// re-hosted immediately so the stored product never points at an expired
// external link.
package storage

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"path"
	"strings"
)

type Store interface {
	// Save persists raw image bytes under a fresh unique name and returns
	// a servable URL.
	Save(ctx context.Context, r io.Reader, prefix, ext, contentType string) (string, error)
	// SaveFromURL downloads the image at srcURL and persists a durable copy.
	SaveFromURL(ctx context.Context, srcURL, prefix string) (string, error)
	// Delete removes a previously stored image by its public URL.
	Delete(ctx context.Context, publicURL string) error
}

// download fetches image bytes and resolves a file extension from the URL
// path or the response content type.
func download(ctx context.Context, client *http.Client, srcURL string) (io.ReadCloser, string, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srcURL, nil)
	if err != nil {
		return nil, "", "", fmt.Errorf("create download request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, "", "", fmt.Errorf("download image: %w", err)
	}
	if resp.StatusCode >= 400 {
		resp.Body.Close()
		return nil, "", "", fmt.Errorf("download image: %s", resp.Status)
	}

	contentType := resp.Header.Get("Content-Type")
	ext := extensionFor(srcURL, contentType)
	return resp.Body, ext, contentType, nil
}

func extensionFor(srcURL, contentType string) string {
	if u, err := url.Parse(srcURL); err == nil {
		if ext := strings.ToLower(path.Ext(u.Path)); ext != "" && len(ext) <= 5 {
			return ext
		}
	}
	if exts, err := mime.ExtensionsByType(contentType); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return ".png"
}

package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// LocalStore writes images into an uploads directory served from a fixed
// public path prefix. Used outside production.
type LocalStore struct {
	dir          string
	publicPrefix string
	httpClient   *http.Client
}

func NewLocalStore(dir, publicPrefix string, httpClient *http.Client) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &LocalStore{
		dir:          dir,
		publicPrefix: strings.TrimRight(publicPrefix, "/"),
		httpClient:   httpClient,
	}, nil
}

func (s *LocalStore) Save(ctx context.Context, r io.Reader, prefix, ext, contentType string) (string, error) {
	if ext == "" {
		ext = ".png"
	}
	filename := uuid.New().String() + ext
	path := filepath.Join(s.dir, filename)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create image file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("write image file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", err
	}

	return s.publicPrefix + "/" + filename, nil
}

func (s *LocalStore) SaveFromURL(ctx context.Context, srcURL, prefix string) (string, error) {
	body, ext, contentType, err := download(ctx, s.httpClient, srcURL)
	if err != nil {
		return "", err
	}
	defer body.Close()
	return s.Save(ctx, body, prefix, ext, contentType)
}

func (s *LocalStore) Delete(ctx context.Context, publicURL string) error {
	if !strings.HasPrefix(publicURL, s.publicPrefix+"/") {
		return fmt.Errorf("not a local image url: %s", publicURL)
	}
	filename := strings.TrimPrefix(publicURL, s.publicPrefix+"/")
	if filename == "" || strings.Contains(filename, "/") {
		return fmt.Errorf("invalid image filename: %s", filename)
	}
	return os.Remove(filepath.Join(s.dir, filename))
}

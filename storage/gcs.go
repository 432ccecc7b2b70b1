package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	gcs "cloud.google.com/go/storage"
	"github.com/google/uuid"
	"google.golang.org/api/option"
)

// GCSStore hosts product images in a public Google Cloud Storage bucket.
// Used in production so image URLs survive instance restarts.
type GCSStore struct {
	client     *gcs.Client
	bucket     string
	httpClient *http.Client
}

func NewGCSStore(ctx context.Context, bucket, credentialsPath string, httpClient *http.Client) (*GCSStore, error) {
	var opts []option.ClientOption
	if credentialsPath != "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		opts = append(opts, option.WithCredentialsFile(filepath.Join(wd, credentialsPath)))
	}

	client, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("storage.NewClient: %w", err)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &GCSStore{client: client, bucket: bucket, httpClient: httpClient}, nil
}

func (s *GCSStore) Save(ctx context.Context, r io.Reader, prefix, ext, contentType string) (string, error) {
	if ext == "" {
		ext = ".png"
	}
	if prefix == "" {
		prefix = "misc"
	}
	objectName := fmt.Sprintf("products/%s/%s%s", prefix, uuid.New().String(), ext)

	w := s.client.Bucket(s.bucket).Object(objectName).NewWriter(ctx)
	if contentType != "" {
		w.ContentType = contentType
	}
	w.CacheControl = "no-cache"

	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("upload copy: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("upload close: %w", err)
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucket, objectName), nil
}

func (s *GCSStore) SaveFromURL(ctx context.Context, srcURL, prefix string) (string, error) {
	body, ext, contentType, err := download(ctx, s.httpClient, srcURL)
	if err != nil {
		return "", err
	}
	defer body.Close()
	return s.Save(ctx, body, prefix, ext, contentType)
}

func (s *GCSStore) Delete(ctx context.Context, publicURL string) error {
	objectName, err := s.objectName(publicURL)
	if err != nil {
		return err
	}
	return s.client.Bucket(s.bucket).Object(objectName).Delete(ctx)
}

// objectName resolves a public URL back to its bucket object, accepting both
// public URL styles.
func (s *GCSStore) objectName(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid url: %w", err)
	}

	host := strings.ToLower(u.Host)
	objectPath := strings.TrimPrefix(u.Path, "/")

	// style 1: storage.googleapis.com/<bucket>/<object>
	if host == "storage.googleapis.com" {
		bucketPrefix := s.bucket + "/"
		if !strings.HasPrefix(objectPath, bucketPrefix) {
			return "", fmt.Errorf("url bucket mismatch")
		}
		return strings.TrimPrefix(objectPath, bucketPrefix), nil
	}

	// style 2: <bucket>.storage.googleapis.com/<object>
	if host == strings.ToLower(s.bucket)+".storage.googleapis.com" {
		if objectPath == "" {
			return "", fmt.Errorf("missing object path")
		}
		return objectPath, nil
	}

	return "", fmt.Errorf("not a gcs public url")
}

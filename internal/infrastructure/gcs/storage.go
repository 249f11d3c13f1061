package gcs

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// NewClient creates a Google Cloud Storage client. If credsPath is empty, ADC is used.
func NewClient(ctx context.Context, credsPath string) (*storage.Client, error) {
	if credsPath == "" {
		return storage.NewClient(ctx)
	}
	return storage.NewClient(ctx, option.WithCredentialsFile(credsPath))
}

// Storage uploads and deletes image blobs in one bucket and builds the
// public URLs stored on catalog records.
type Storage struct {
	client *storage.Client
	bucket string
}

func NewStorage(client *storage.Client, bucket string) *Storage {
	return &Storage{client: client, bucket: bucket}
}

// Upload writes data into the bucket under objectPath and returns its public URL.
func (s *Storage) Upload(ctx context.Context, objectPath, contentType string, data []byte) (string, error) {
	wc := s.client.Bucket(s.bucket).Object(objectPath).NewWriter(ctx)
	wc.ContentType = contentType
	wc.ChunkSize = 0 // disable chunking for small files
	if _, err := io.Copy(wc, bytes.NewReader(data)); err != nil {
		_ = wc.Close()
		return "", err
	}
	if err := wc.Close(); err != nil {
		return "", err
	}
	return s.PublicURL(objectPath), nil
}

// Delete removes the object at objectPath from the bucket.
func (s *Storage) Delete(ctx context.Context, objectPath string) error {
	return s.client.Bucket(s.bucket).Object(objectPath).Delete(ctx)
}

// PublicURL builds a public URL for an object (assuming public read access).
func (s *Storage) PublicURL(objectPath string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucket, objectPath)
}

// PathFromURL derives the object path from a public URL produced by this
// gateway: everything after the bucket segment. The bool reports whether the
// URL references this bucket at all.
func (s *Storage) PathFromURL(url string) (string, bool) {
	marker := "/" + s.bucket + "/"
	idx := strings.Index(url, marker)
	if idx < 0 {
		return "", false
	}
	path := url[idx+len(marker):]
	if path == "" {
		return "", false
	}
	return path, true
}

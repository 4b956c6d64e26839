package catalog

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	fsjetstream "github.com/go-monolith/mono/plugin/fs-jetstream"
	"github.com/google/uuid"
)

const (
	// ImageBucket is the fs-jetstream bucket holding shoe images.
	ImageBucket = "shoe-images"

	defaultContentType = "application/octet-stream"
)

// ImageStore stores uploaded shoe images by name.
type ImageStore interface {
	Put(ctx context.Context, name string, data []byte, contentType string) error
	Get(ctx context.Context, name string) ([]byte, string, error)
	Delete(ctx context.Context, name string) error
}

// JetStreamImageStore implements ImageStore on an fs-jetstream bucket.
type JetStreamImageStore struct {
	bucket fsjetstream.FileStoragePort
}

// NewJetStreamImageStore creates an ImageStore backed by bucket.
func NewJetStreamImageStore(bucket fsjetstream.FileStoragePort) *JetStreamImageStore {
	return &JetStreamImageStore{bucket: bucket}
}

// Put stores an image under name.
func (s *JetStreamImageStore) Put(ctx context.Context, name string, data []byte, contentType string) error {
	_, err := s.bucket.Put(ctx, name, data,
		fsjetstream.WithDescription(fmt.Sprintf("Shoe image: %s", name)),
		fsjetstream.WithHeaders(map[string]string{
			"Content-Type": contentType,
			"Uploaded-At":  time.Now().Format(time.RFC3339),
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to store image: %w", err)
	}
	return nil
}

// Get returns the image data and its content type.
func (s *JetStreamImageStore) Get(_ context.Context, name string) ([]byte, string, error) {
	obj, err := s.find(name)
	if err != nil {
		return nil, "", err
	}

	data, err := s.bucket.Get(obj.Name)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get image: %w", err)
	}

	contentType := defaultContentType
	if ct, ok := obj.Headers["Content-Type"]; ok && ct != "" {
		contentType = ct
	}
	return data, contentType, nil
}

// Delete removes the image stored under name.
func (s *JetStreamImageStore) Delete(_ context.Context, name string) error {
	obj, err := s.find(name)
	if err != nil {
		return err
	}

	if err := s.bucket.Delete(obj.Name); err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	return nil
}

func (s *JetStreamImageStore) find(name string) (*fsjetstream.ObjectInfo, error) {
	// An empty bucket reports an error from List rather than an empty result.
	objects, err := s.bucket.List(fsjetstream.WithPrefix(name))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageNotFound, err)
	}
	for i := range objects {
		if objects[i].Name == name {
			return &objects[i], nil
		}
	}
	return nil, ErrImageNotFound
}

// newImageName returns a unique object name keeping the upload's extension.
func newImageName(filename string) string {
	return uuid.New().String() + strings.ToLower(filepath.Ext(filepath.Base(filename)))
}

// validImageName reports whether name is a plain object name with no path
// components.
func validImageName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, `/\`)
}

// Package storage implements the object store holding uploaded images and
// documents: a filesystem root with one directory per bucket, addressed
// through public URLs derived from the stored path.
package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// Bucket names used by the site.
const (
	// BucketDocuments holds the public document library files.
	BucketDocuments = "documents"
	// BucketImages holds blog and team images.
	BucketImages = "images"
)

var (
	// ErrEmptyPath is returned when an object path is empty.
	ErrEmptyPath = errors.New("object path cannot be empty")
	// ErrInvalidPath is returned when an object path escapes its bucket.
	ErrInvalidPath = errors.New("object path is invalid")
)

// Store is a disk-backed object store.
type Store struct {
	root          string
	publicBaseURL string
}

// New creates a store rooted at root, deriving public URLs under
// publicBaseURL.
func New(root, publicBaseURL string) *Store {
	return &Store{
		root:          root,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
	}
}

// ObjectName generates a unique storage name preserving the original
// file's extension.
func ObjectName(originalFilename string) string {
	return uuid.NewString() + strings.ToLower(filepath.Ext(originalFilename))
}

// cleanPath validates and normalizes an object path within a bucket. Any
// ".." segment is rejected outright: path.Join would collapse it into the
// neighbouring bucket before the root check ever sees it.
func cleanPath(bucket, objectPath string) (string, error) {
	if objectPath == "" {
		return "", ErrEmptyPath
	}

	for _, segment := range strings.Split(objectPath, "/") {
		if segment == ".." {
			return "", ErrInvalidPath
		}
	}

	joined := path.Join(bucket, objectPath)
	if joined == bucket || strings.HasPrefix(joined, "..") {
		return "", ErrInvalidPath
	}

	return joined, nil
}

// Upload writes the object and returns its detected MIME type and size.
func (s *Store) Upload(bucket, objectPath string, r io.Reader) (mimeType string, size int64, err error) {
	rel, err := cleanPath(bucket, objectPath)
	if err != nil {
		return "", 0, err
	}

	target := filepath.Join(s.root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(target), 0o750); err != nil {
		return "", 0, fmt.Errorf("create bucket directory: %w", err)
	}

	f, err := os.Create(target)
	if err != nil {
		return "", 0, fmt.Errorf("create object: %w", err)
	}
	defer f.Close()

	size, err = io.Copy(f, r)
	if err != nil {
		return "", 0, fmt.Errorf("write object: %w", err)
	}

	mime, err := mimetype.DetectFile(target)
	if err != nil {
		return "", size, fmt.Errorf("detect mime type: %w", err)
	}

	return mime.String(), size, nil
}

// Open returns a reader over a stored object.
func (s *Store) Open(bucket, objectPath string) (io.ReadCloser, error) {
	rel, err := cleanPath(bucket, objectPath)
	if err != nil {
		return nil, err
	}

	return os.Open(filepath.Join(s.root, filepath.FromSlash(rel)))
}

// Delete removes a stored object. Deleting a missing object is not an
// error; the metadata row is authoritative.
func (s *Store) Delete(bucket, objectPath string) error {
	rel, err := cleanPath(bucket, objectPath)
	if err != nil {
		return err
	}

	err = os.Remove(filepath.Join(s.root, filepath.FromSlash(rel)))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete object: %w", err)
	}

	return nil
}

// PublicURL derives the public URL of an object from its stored path. Pure
// string computation; it does not check existence.
func (s *Store) PublicURL(bucket, objectPath string) string {
	rel, err := cleanPath(bucket, objectPath)
	if err != nil {
		return ""
	}

	return s.publicBaseURL + "/" + rel
}

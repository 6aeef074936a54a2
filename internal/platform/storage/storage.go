// Package storage keeps raw uploaded files behind an afs URL, so the same
// code writes to a local directory (file://) or to memory (mem://).
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"
)

var ErrInvalidName = errors.New("invalid storage name")

type FileStorage struct {
	fs      afs.Service
	baseURL string
}

// New returns storage rooted at baseURL, e.g. file:///var/lib/pdfsearch/uploads.
func New(baseURL string) *FileStorage {
	return &FileStorage{
		fs:      afs.New(),
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Store writes data under name and returns the URL it can be read back from.
// name must be a single path element.
func (s *FileStorage) Store(ctx context.Context, name string, data []byte) (string, error) {
	if name == "" || name != path.Base(name) || name == "." || name == ".." {
		return "", ErrInvalidName
	}
	location := url.Join(s.baseURL, name)
	if err := s.fs.Upload(ctx, location, file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
		return "", fmt.Errorf("store file failed: %w", err)
	}
	return location, nil
}

// Contains reports whether location names a file Store could have written,
// i.e. a single element directly under the base URL.
func (s *FileStorage) Contains(location string) bool {
	name := location[strings.LastIndex(location, "/")+1:]
	if name == "" || name == "." || name == ".." {
		return false
	}
	return url.Join(s.baseURL, name) == location
}

func (s *FileStorage) Read(ctx context.Context, location string) ([]byte, error) {
	data, err := s.fs.DownloadWithURL(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("read file failed: %w", err)
	}
	return data, nil
}

func (s *FileStorage) Delete(ctx context.Context, location string) error {
	if err := s.fs.Delete(ctx, location); err != nil {
		return fmt.Errorf("delete file failed: %w", err)
	}
	return nil
}

// Exists reports whether location is present in storage.
func (s *FileStorage) Exists(ctx context.Context, location string) (bool, error) {
	ok, err := s.fs.Exists(ctx, location)
	if err != nil {
		return false, fmt.Errorf("check file failed: %w", err)
	}
	return ok, nil
}

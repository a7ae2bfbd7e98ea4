// Package storage persists generated PDF artifacts outside the database.
// The receipt row is the source of truth for existence; the file store only
// holds the bytes.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// FileStore abstracts the artifact store so services can be tested without
// touching the filesystem.
type FileStore interface {
	// Save writes data under the suggested filename and returns the stored
	// path plus the public URL.
	Save(filename string, data []byte) (path string, url string, err error)
	Open(path string) (io.ReadCloser, error)
	Remove(path string) error
}

// LocalStore keeps PDFs in a directory on local disk.
type LocalStore struct {
	dir     string
	baseURL string
}

func NewLocalStore(dir, baseURL string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir %s: %w", dir, err)
	}
	return &LocalStore{
		dir:     dir,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}, nil
}

func (s *LocalStore) Save(filename string, data []byte) (string, string, error) {
	// Strip any path components so callers cannot escape the storage dir.
	filename = filepath.Base(filename)

	path := filepath.Join(s.dir, filename)
	tmp := path + ".tmp"

	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return "", "", fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return "", "", fmt.Errorf("rename %s: %w", tmp, err)
	}

	return path, s.baseURL + "/" + filename, nil
}

func (s *LocalStore) Open(path string) (io.ReadCloser, error) {
	return os.Open(path)
}

func (s *LocalStore) Remove(path string) error {
	err := os.Remove(path)
	if err != nil && os.IsNotExist(err) {
		return nil
	}
	return err
}

// Package credentials keeps the optional cookie jar forwarded to the extraction engine.
package credentials

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

var (
	ErrEmpty    = errors.New("cookie file is empty")
	ErrTooLarge = errors.New("cookie file exceeds the size limit")
)

// Status describes the stored cookie file.
type Status struct {
	HasCookies bool  `json:"has_cookies"`
	FileSize   int64 `json:"file_size"`
}

// Store holds at most one cookie file at a fixed path. The content is opaque
// and never parsed; the engine reads the file directly.
type Store struct {
	path    string
	maxSize int64
}

func NewStore(path string, maxSize int64) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("cookie file path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cookie directory: %w", err)
	}

	return &Store{
		path:    path,
		maxSize: maxSize,
	}, nil
}

// Upload replaces the stored file wholesale. The content is staged in a
// sibling temp file and renamed into place so readers never see a partial jar.
func (s *Store) Upload(r io.Reader) (int64, error) {
	limit := s.maxSize
	if limit <= 0 {
		limit = 1 << 20
	}

	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return 0, fmt.Errorf("failed to read cookie upload: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return 0, ErrEmpty
	}
	if int64(len(data)) > limit {
		return 0, ErrTooLarge
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".cookies-*.tmp")
	if err != nil {
		return 0, fmt.Errorf("failed to create temp cookie file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return 0, fmt.Errorf("failed to write cookie file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return 0, fmt.Errorf("failed to sync cookie file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return 0, fmt.Errorf("failed to close cookie file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return 0, fmt.Errorf("failed to set cookie file permissions: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		return 0, fmt.Errorf("failed to store cookie file: %w", err)
	}

	return int64(len(data)), nil
}

// Delete removes the stored file. Deleting an absent file succeeds.
func (s *Store) Delete() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete cookie file: %w", err)
	}
	return nil
}

// Status never fails; any stat error is reported as "no cookies".
func (s *Store) Status() Status {
	info, err := os.Stat(s.path)
	if err != nil || !info.Mode().IsRegular() {
		return Status{}
	}
	return Status{HasCookies: true, FileSize: info.Size()}
}

// Path returns the cookie file location and whether it currently exists.
func (s *Store) Path() (string, bool) {
	return s.path, s.Status().HasCookies
}

package media

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"quizzapp-service/internal/domain"
)

// LocalStore writes uploads into a directory served under a public URL prefix.
type LocalStore struct {
	dir      string
	prefix   string
	maxBytes int64
	now      func() time.Time
}

// NewLocalStore creates dir if needed. prefix is the public path the directory is served at.
func NewLocalStore(dir, prefix string, maxBytes int64) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve upload dir: %w", err)
	}
	return &LocalStore{
		dir:      abs,
		prefix:   strings.TrimRight(prefix, "/"),
		maxBytes: maxBytes,
		now:      time.Now,
	}, nil
}

// Dir returns the absolute directory uploads are written to.
func (s *LocalStore) Dir() string {
	return s.dir
}

// Save copies the upload to a temp file and renames it into place.
func (s *LocalStore) Save(_ context.Context, up domain.Upload) (string, error) {
	name := FileName(s.now(), up.Filename)

	tmp, err := os.CreateTemp(s.dir, ".tmp-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	ok := false
	defer func() {
		if !ok {
			os.Remove(tmpPath)
		}
	}()

	n, err := io.Copy(tmp, io.LimitReader(up.Body, s.maxBytes+1))
	if err != nil {
		tmp.Close()
		return "", fmt.Errorf("write upload: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close temp file: %w", err)
	}
	if n > s.maxBytes {
		return "", domain.ErrFileTooLarge
	}
	if err := os.Rename(tmpPath, filepath.Join(s.dir, name)); err != nil {
		return "", fmt.Errorf("rename upload: %w", err)
	}
	ok = true
	return s.prefix + "/" + name, nil
}

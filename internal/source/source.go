// Package source describes a tabular data source: a byte stream plus the
// display name shown to the user and an identity used for caching.
package source

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// Source is a single readable dataset input. It is produced by the locator
// (on-disk files) or by an explicit upload (in-memory bytes) and consumed once
// by the normalizer.
type Source struct {
	// Name is the display name, usually the file's base name.
	Name string
	// Path is the resolved absolute path; empty for uploads.
	Path    string
	ModTime time.Time
	Size    int64

	data []byte
}

// File builds a Source for an on-disk file, resolving its absolute path.
func File(path string) (Source, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return Source{}, fmt.Errorf("resolve path: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}
	info, err := os.Stat(abs)
	if err != nil {
		return Source{}, fmt.Errorf("stat source: %w", err)
	}
	if info.IsDir() {
		return Source{}, fmt.Errorf("source %s is a directory", path)
	}
	return Source{
		Name:    filepath.Base(abs),
		Path:    abs,
		ModTime: info.ModTime(),
		Size:    info.Size(),
	}, nil
}

// Bytes wraps uploaded content. The bytes are copied.
func Bytes(name string, b []byte) Source {
	cp := make([]byte, len(b))
	copy(cp, b)
	return Source{Name: name, Size: int64(len(cp)), data: cp}
}

// IsFile reports whether the source is backed by a file on disk.
func (s Source) IsFile() bool { return s.Path != "" }

// Open returns the byte stream. Callers must close it.
func (s Source) Open() (io.ReadCloser, error) {
	if s.Path != "" {
		f, err := os.Open(s.Path)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", s.Name, err)
		}
		return f, nil
	}
	return io.NopCloser(bytes.NewReader(s.data)), nil
}

// Key identifies the content for caching: path, modification time and size
// for files, a content hash for uploads.
func (s Source) Key() string {
	if s.Path != "" {
		return fmt.Sprintf("%s|%d|%d", s.Path, s.ModTime.UnixNano(), s.Size)
	}
	sum := sha256.Sum256(s.data)
	return "sha256:" + hex.EncodeToString(sum[:])
}

func (s Source) String() string { return s.Name }

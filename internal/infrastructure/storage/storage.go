// Package storage keeps uploaded attachments on the local filesystem.
package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"stockdesk/internal/shared/biztime"
)

var (
	ErrInvalidName = errors.New("invalid file name")
	ErrNotFound    = errors.New("file not found")
	ErrTooLarge    = errors.New("file too large")
)

const (
	fallbackStem = "upload"
	// maxNameAttempts bounds the suffixes tried when uploads share a timestamp.
	maxNameAttempts = 100
)

// LocalStorage writes attachments into a single flat directory.
type LocalStorage struct {
	dir      string
	maxBytes int64
	now      biztime.Clock
}

// NewLocalStorage creates dir when missing. maxBytes <= 0 disables the size check.
func NewLocalStorage(dir string, maxBytes int64) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalStorage{dir: dir, maxBytes: maxBytes, now: biztime.NowUTC}, nil
}

func (s *LocalStorage) Dir() string {
	return s.dir
}

// Save stores r under "<seconds>.<micros>_<sanitized original name>" and returns that name.
// A name already taken within the same microsecond gets a "-<n>" suffix on the timestamp.
func (s *LocalStorage) Save(originalName string, r io.Reader) (string, error) {
	f, name, err := s.create(originalName)
	if err != nil {
		return "", err
	}
	path := filepath.Join(s.dir, name)

	src := r
	if s.maxBytes > 0 {
		src = io.LimitReader(r, s.maxBytes+1)
	}
	written, err := io.Copy(f, src)
	closeErr := f.Close()
	if err == nil && s.maxBytes > 0 && written > s.maxBytes {
		err = ErrTooLarge
	}
	if err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(path)
		if errors.Is(err, ErrTooLarge) {
			return "", err
		}
		return "", fmt.Errorf("failed to write upload: %w", err)
	}
	return name, nil
}

func (s *LocalStorage) create(originalName string) (*os.File, string, error) {
	now := s.now().UTC()
	stamp := fmt.Sprintf("%d.%06d", now.Unix(), now.Nanosecond()/1000)
	clean := SanitizeFilename(originalName)

	for attempt := 0; attempt < maxNameAttempts; attempt++ {
		name := stamp + "_" + clean
		if attempt > 0 {
			name = fmt.Sprintf("%s-%d_%s", stamp, attempt, clean)
		}
		f, err := os.OpenFile(filepath.Join(s.dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			return f, name, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return nil, "", fmt.Errorf("failed to create upload: %w", err)
		}
	}
	return nil, "", fmt.Errorf("failed to create upload: no free name for %q", clean)
}

// Path resolves a stored name to its file, refusing anything outside the directory.
func (s *LocalStorage) Path(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return "", ErrInvalidName
	}
	path := filepath.Join(s.dir, name)
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to stat upload: %w", err)
	}
	if info.IsDir() {
		return "", ErrNotFound
	}
	return path, nil
}

// Remove deletes a stored file. A missing file is not an error.
func (s *LocalStorage) Remove(name string) error {
	if name == "" || name != filepath.Base(name) {
		return ErrInvalidName
	}
	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove upload: %w", err)
	}
	return nil
}

// SanitizeFilename reduces name to ASCII letters, digits, '_', '-' and '.'.
// Accents are stripped; other characters are dropped. An empty stem becomes "upload".
func SanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base("/" + name)

	stripped, _, err := transform.String(transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn))), name)
	if err != nil {
		stripped = name
	}

	var b strings.Builder
	for _, r := range strings.Join(strings.Fields(stripped), "_") {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-', r == '.':
			b.WriteRune(r)
		}
	}
	clean := b.String()

	ext := filepath.Ext(clean)
	if ext == "." {
		ext = ""
	}
	stem := strings.Trim(strings.TrimSuffix(clean, filepath.Ext(clean)), "._")
	if stem == "" {
		stem = fallbackStem
	}
	return stem + ext
}

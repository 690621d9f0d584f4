package local

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alanya-estates/property-service/internal/platform/logger"
)

// URLPrefix is the public path under which locally stored images are served.
const URLPrefix = "/uploads/"

// LocalStorage writes property images to a directory on disk. References are
// paths under /uploads/ that the HTTP layer serves statically; the frontend
// prepends the backend origin to form full URLs.
type LocalStorage struct {
	dir    string
	logger *logger.Logger
}

func NewLocalStorage(dir string, log *logger.Logger) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %s: %w", dir, err)
	}
	log.Info("Initializing local storage", "dir", dir)
	return &LocalStorage{dir: dir, logger: log}, nil
}

// Upload stores the file under a collision-resistant name built from a
// fragment of the original name and a nanosecond timestamp.
func (s *LocalStorage) Upload(ctx context.Context, originalFileName string, data []byte) (string, error) {
	ext := filepath.Ext(originalFileName)
	base := sanitize(strings.TrimSuffix(filepath.Base(originalFileName), ext))
	if base == "" {
		base = "image"
	}
	name := fmt.Sprintf("%s-%d%s", base, time.Now().UnixNano(), ext)

	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		s.logger.Error("LocalStorage.Upload: failed to write file", "path", path, "error", err)
		return "", fmt.Errorf("failed to write file %s: %w", path, err)
	}

	s.logger.Info("LocalStorage.Upload: file stored", "path", path, "size_bytes", len(data))
	return URLPrefix + name, nil
}

// Remove deletes the file behind the reference. References outside the
// /uploads/ namespace are ignored; a file already gone is not an error.
func (s *LocalStorage) Remove(ctx context.Context, fileURL string) error {
	if !s.Owns(fileURL) {
		s.logger.Debug("LocalStorage.Remove: skipping foreign reference", "url", fileURL)
		return nil
	}
	// filepath.Base strips any traversal the reference may carry.
	path := filepath.Join(s.dir, filepath.Base(fileURL))
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		s.logger.Error("LocalStorage.Remove: failed to remove file", "path", path, "error", err)
		return fmt.Errorf("failed to remove file %s: %w", path, err)
	}
	return nil
}

func (s *LocalStorage) Owns(fileURL string) bool {
	return strings.HasPrefix(fileURL, URLPrefix)
}

// Dir is the directory the HTTP layer should expose under /uploads.
func (s *LocalStorage) Dir() string {
	return s.dir
}

func sanitize(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		}
	}
	return b.String()
}

package blobstore

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/prasetyowira/qrgen/constant"
	appLogger "github.com/prasetyowira/qrgen/infrastructure/logger"
)

// Sentinel errors returned by the store.
var (
	ErrNotFound       = errors.New(constant.ErrBlobNotFound)
	ErrUnsafeFilename = errors.New(constant.ErrUnsafeFilename)
)

// Store is a flat-file blob store keyed by sanitized filename.
// There is no directory structure and no metadata; a second write
// under the same name overwrites the first.
type Store struct {
	dir string
}

// New creates a Store rooted at dir, creating the directory if needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		appLogger.Error("Failed to create blob directory", appLogger.LoggerInfo{
			ContextFunction: constant.CtxBlobStore,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeBlobMkdir,
				Message: err.Error(),
				Type:    constant.ErrTypeStorage,
			},
			Data: map[string]interface{}{
				constant.DataPath: dir,
			},
		})
		return nil, err
	}
	return &Store{dir: dir}, nil
}

// SanitizeFilename strips path components and maps every character
// outside [A-Za-z0-9._-] to an underscore. The result is deterministic:
// the same input name always yields the same sanitized name. Leading
// dots are dropped so the result can never be a hidden or dot-dot name.
func SanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(name)

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}

	return strings.TrimLeft(b.String(), ".")
}

// Store sanitizes name and writes data under it, overwriting any
// existing blob with the same sanitized name. Returns the stored name.
func (s *Store) Store(name string, data []byte) (string, error) {
	stored := SanitizeFilename(name)
	if stored == "" {
		return "", ErrUnsafeFilename
	}

	path := filepath.Join(s.dir, stored)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		appLogger.Error("Failed to write blob", appLogger.LoggerInfo{
			ContextFunction: constant.CtxBlobStore,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeBlobWrite,
				Message: err.Error(),
				Type:    constant.ErrTypeStorage,
			},
			Data: map[string]interface{}{
				constant.DataFilename: stored,
				constant.DataPath:     path,
			},
		})
		return "", err
	}

	appLogger.Debug("Blob stored", appLogger.LoggerInfo{
		ContextFunction: constant.CtxBlobStore,
		Data: map[string]interface{}{
			constant.DataFilename: stored,
			constant.DataBytes:    len(data),
		},
	})

	return stored, nil
}

// Open returns a reader for the blob stored under name.
// Names that do not survive sanitization unchanged are rejected,
// so a request can never escape the store directory.
func (s *Store) Open(name string) (io.ReadCloser, error) {
	if name == "" || SanitizeFilename(name) != name {
		return nil, ErrUnsafeFilename
	}

	f, err := os.Open(filepath.Join(s.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return f, nil
}

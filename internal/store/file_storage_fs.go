package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/MKhiriev/dataset-hub/internal/logger"
	"github.com/MKhiriev/dataset-hub/models"
)

const defaultContentType = "application/octet-stream"

// fileSystemStorage stores blobs as regular files below a root directory.
// Keys are slash-separated paths relative to the root.
type fileSystemStorage struct {
	root   string
	logger *logger.Logger
}

// NewFileSystemStorage creates the root directory if needed and returns a
// [FileStorage] over it.
func NewFileSystemStorage(root string, log *logger.Logger) (FileStorage, error) {
	log.Debug().Str("root", root).Msg("creating file system storage")

	if err := os.MkdirAll(root, 0o755); err != nil {
		log.Err(err).Str("func", "NewFileSystemStorage").Msg("error creating storage root")
		return nil, fmt.Errorf("error creating storage root: %w", err)
	}

	return &fileSystemStorage{root: root, logger: log}, nil
}

// cleanKey rejects keys that are empty, absolute, non-canonical or that
// would resolve outside the root.
func cleanKey(key string) (string, error) {
	if key == "" || strings.HasPrefix(key, "/") || path.Clean(key) != key ||
		key == ".." || strings.HasPrefix(key, "../") {
		return "", fmt.Errorf("%w: %q", ErrInvalidFileKey, key)
	}

	return key, nil
}

func (s *fileSystemStorage) path(key string) (string, error) {
	key, err := cleanKey(key)
	if err != nil {
		return "", err
	}

	return filepath.Join(s.root, filepath.FromSlash(key)), nil
}

// Save never overwrites: an existing file under key is an error.
func (s *fileSystemStorage) Save(ctx context.Context, key string, upload models.Upload) error {
	log := logger.FromContext(ctx)

	dst, err := s.path(key)
	if err != nil {
		return err
	}

	if err = os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		log.Err(err).Str("func", "*fileSystemStorage.Save").Msg("error creating directory")
		return fmt.Errorf("error creating directory: %w", err)
	}

	file, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		log.Err(err).Str("func", "*fileSystemStorage.Save").Str("key", key).Msg("error creating file")
		return fmt.Errorf("error creating file: %w", err)
	}

	if _, err = io.Copy(file, readerWithContext(ctx, upload.Reader)); err != nil {
		_ = file.Close()
		_ = os.Remove(dst)
		log.Err(err).Str("func", "*fileSystemStorage.Save").Str("key", key).Msg("error writing file")
		return fmt.Errorf("error writing file: %w", err)
	}

	if err = file.Close(); err != nil {
		_ = os.Remove(dst)
		return fmt.Errorf("error closing file: %w", err)
	}

	return nil
}

func (s *fileSystemStorage) Open(ctx context.Context, key string) (models.StoredFile, error) {
	src, err := s.path(key)
	if err != nil {
		return models.StoredFile{}, err
	}

	file, err := os.Open(src)
	if errors.Is(err, fs.ErrNotExist) {
		return models.StoredFile{}, ErrFileNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*fileSystemStorage.Open").Str("key", key).Msg("error opening file")
		return models.StoredFile{}, fmt.Errorf("error opening file: %w", err)
	}

	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return models.StoredFile{}, fmt.Errorf("error reading file info: %w", err)
	}
	if info.IsDir() {
		_ = file.Close()
		return models.StoredFile{}, ErrFileNotFound
	}

	return models.StoredFile{
		Content:     file,
		ContentType: contentTypeByName(key),
		Size:        info.Size(),
	}, nil
}

func (s *fileSystemStorage) Delete(ctx context.Context, key string) error {
	dst, err := s.path(key)
	if err != nil {
		return err
	}

	if err = os.Remove(dst); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.FromContext(ctx).Err(err).Str("func", "*fileSystemStorage.Delete").Str("key", key).Msg("error removing file")
		return fmt.Errorf("error removing file: %w", err)
	}

	return nil
}

func contentTypeByName(name string) string {
	if contentType := mime.TypeByExtension(path.Ext(name)); contentType != "" {
		return contentType
	}

	return defaultContentType
}

// contextReader stops a copy once ctx is done.
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func readerWithContext(ctx context.Context, r io.Reader) io.Reader {
	return &contextReader{ctx: ctx, r: r}
}

func (c *contextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}

	return c.r.Read(p)
}

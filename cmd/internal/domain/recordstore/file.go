package recordstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileStore keeps a collection in a single JSON file.
//
// Writes go to a temp file in the same directory which is then renamed over
// the canonical path, so a crash mid-write leaves the previous version intact.
type FileStore[T any] struct {
	name string
	file string
}

// NewFileStore stores the collection at <dir>/<name>.json.
func NewFileStore[T any](dir, name string) *FileStore[T] {
	return &FileStore[T]{
		name: name,
		file: filepath.Join(dir, name+".json"),
	}
}

func (s *FileStore[T]) Name() string {
	return s.name
}

// Path is the canonical location of the collection file.
func (s *FileStore[T]) Path() string {
	return s.file
}

func (s *FileStore[T]) Read(ctx context.Context) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.file)
	if errors.Is(err, fs.ErrNotExist) {
		return make([]T, 0), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return decode[T](data)
}

func (s *FileStore[T]) Write(ctx context.Context, records []T) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := encode(records)
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.file)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.file)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	// Anything below that fails must not leave the temp file behind.
	cleanup := func(cause error) error {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return cause
	}

	if _, err := tmp.Write(data); err != nil {
		return cleanup(fmt.Errorf("failed to write temp file: %w", err))
	}
	if err := tmp.Sync(); err != nil {
		return cleanup(fmt.Errorf("failed to sync temp file: %w", err))
	}
	if err := tmp.Close(); err != nil {
		return cleanup(fmt.Errorf("failed to close temp file: %w", err))
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return cleanup(fmt.Errorf("failed to chmod temp file: %w", err))
	}
	if err := os.Rename(tmpName, s.file); err != nil {
		return cleanup(fmt.Errorf("failed to replace %s: %w", s.file, err))
	}
	return nil
}

// Package filesystem provides the operating system backed statica.FileStorage.
// Stat follows symbolic links; reads honour the context the file was opened with.
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"syscall"

	"github.com/sagarc03/statica"
)

// Store provides file system access for static file serving.
type Store struct{}

// NewFileStorage creates a new Store.
func NewFileStorage() *Store {
	return &Store{}
}

// Stat returns the file info of path, following symbolic links. Returns
// statica.ErrNotFound if the path or one of its parents does not exist.
func (s *Store) Stat(ctx context.Context, path string) (fs.FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		if isNotExist(err) {
			return nil, statica.ErrNotFound
		}
		return nil, fmt.Errorf("stat file: %w", err)
	}

	return info, nil
}

// Open opens a file for reading. Returns statica.ErrNotFound if the file does not
// exist. Reads fail with the context error once ctx is done.
func (s *Store) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path) //nolint:gosec // path is resolved inside the static root
	if err != nil {
		if isNotExist(err) {
			return nil, statica.ErrNotFound
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	return &ctxFile{ctx: ctx, f: f}, nil
}

func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR)
}

type ctxFile struct {
	ctx context.Context
	f   *os.File
}

func (r *ctxFile) Read(p []byte) (n int, err error) {
	if err := r.ctx.Err(); err != nil {
		return 0, err
	}
	return r.f.Read(p)
}

func (r *ctxFile) Close() error {
	return r.f.Close()
}

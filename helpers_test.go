package statica_test

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sagarc03/statica"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type SpyFileStorage struct {
	mock.Mock
}

func (s *SpyFileStorage) Stat(ctx context.Context, path string) (fs.FileInfo, error) {
	args := s.Called(ctx, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(fs.FileInfo), args.Error(1)
}

func (s *SpyFileStorage) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	args := s.Called(ctx, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}

type fakeInfo struct {
	name    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
}

func (f fakeInfo) Name() string       { return f.name }
func (f fakeInfo) Size() int64        { return f.size }
func (f fakeInfo) Mode() fs.FileMode  { return f.mode }
func (f fakeInfo) ModTime() time.Time { return f.modTime }
func (f fakeInfo) IsDir() bool        { return f.mode.IsDir() }
func (f fakeInfo) Sys() any           { return nil }

func dirInfo(name string) fakeInfo {
	return fakeInfo{name: name, mode: fs.ModeDir | 0o755, modTime: time.Now()}
}

func fileInfo(name string, size int64, modTime time.Time) fakeInfo {
	return fakeInfo{name: name, size: size, mode: 0o644, modTime: modTime}
}

// trackingReadCloser records whether Close was called.
type trackingReadCloser struct {
	io.Reader
	closed int
}

func (r *trackingReadCloser) Close() error {
	r.closed++
	return nil
}

// failingReader yields data and then fails with err.
type failingReader struct {
	data []byte
	err  error
}

func (r *failingReader) Read(p []byte) (int, error) {
	if len(r.data) == 0 {
		return 0, r.err
	}
	n := copy(p, r.data)
	r.data = r.data[n:]
	return n, nil
}

func writeFile(t *testing.T, dir, name string, content []byte) string {
	t.Helper()

	path := filepath.Join(dir, filepath.FromSlash(name))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, content, 0o644))
	return path
}

func readBody(t *testing.T, resp statica.Response) []byte {
	t.Helper()

	if resp.Body == nil {
		return nil
	}

	var out []byte
	for chunk, err := range statica.Chunks(context.Background(), resp.Body) {
		require.NoError(t, err)
		out = append(out, chunk...)
	}
	return out
}

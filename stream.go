package statica

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"iter"
)

// DefaultChunkSize is the size of the chunks a file body is read in.
const DefaultChunkSize = 4096

// ChunkStream is a lazy, non-restartable file body. The file is opened on the first
// call to Next and closed as soon as the stream ends, fails, or is closed.
//
// A chunk returned by Next is only valid until the following call; the stream reuses
// one buffer so memory stays bounded by the chunk size. A ChunkStream is not safe
// for concurrent use.
type ChunkStream struct {
	storage   FileStorage
	path      string
	chunkSize int

	buf    []byte
	file   io.ReadCloser
	done   bool
	closed bool
}

// NewChunkStream returns a stream over the file at path. Nothing is opened yet.
func NewChunkStream(storage FileStorage, path string, chunkSize int) *ChunkStream {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &ChunkStream{storage: storage, path: path, chunkSize: chunkSize}
}

// Next returns the next chunk of the file. A chunk shorter than the chunk size is the
// last one; afterwards Next returns io.EOF. Open and read failures are returned as
// *StreamError. A done context closes the stream and returns the context error.
func (s *ChunkStream) Next(ctx context.Context) ([]byte, error) {
	if s.closed {
		return nil, fs.ErrClosed
	}
	if s.done {
		return nil, io.EOF
	}

	if err := ctx.Err(); err != nil {
		_ = s.Close()
		return nil, err
	}

	if s.file == nil {
		f, err := s.storage.Open(ctx, s.path)
		if err != nil {
			s.done = true
			if isContextErr(err) {
				return nil, err
			}
			return nil, &StreamError{Path: s.path, Err: err}
		}
		s.file = f
		s.buf = make([]byte, s.chunkSize)
	}

	n, err := io.ReadFull(s.file, s.buf)
	switch {
	case err == nil:
		return s.buf[:n], nil
	case errors.Is(err, io.ErrUnexpectedEOF):
		s.finish()
		return s.buf[:n], nil
	case errors.Is(err, io.EOF):
		s.finish()
		return nil, io.EOF
	case isContextErr(err):
		s.finish()
		return nil, err
	default:
		s.finish()
		return nil, &StreamError{Path: s.path, Err: err}
	}
}

func (s *ChunkStream) finish() {
	s.done = true
	if s.file != nil {
		_ = s.file.Close()
		s.file = nil
	}
}

// Close releases the file. It is safe to call more than once.
func (s *ChunkStream) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.done = true

	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	return err
}

type textBody struct {
	data []byte
	sent bool
}

// TextBody returns a body producing s as a single chunk.
func TextBody(s string) Body {
	return &textBody{data: []byte(s)}
}

func (b *textBody) Next(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if b.sent {
		return nil, io.EOF
	}
	b.sent = true
	return b.data, nil
}

func (b *textBody) Close() error {
	b.sent = true
	return nil
}

// Chunks adapts a body to a range-over-func sequence. The body is closed when the
// loop ends, including when the caller breaks out early. A failing chunk is yielded
// with its error and ends the sequence.
func Chunks(ctx context.Context, b Body) iter.Seq2[[]byte, error] {
	return func(yield func([]byte, error) bool) {
		defer func() { _ = b.Close() }()

		for {
			chunk, err := b.Next(ctx)
			if errors.Is(err, io.EOF) {
				return
			}
			if !yield(chunk, err) || err != nil {
				return
			}
		}
	}
}

// WriteBody drains b into w chunk by chunk and closes it. It returns the number of
// bytes written.
func WriteBody(ctx context.Context, w io.Writer, b Body) (int64, error) {
	var written int64
	for chunk, err := range Chunks(ctx, b) {
		if err != nil {
			return written, err
		}
		n, err := w.Write(chunk)
		written += int64(n)
		if err != nil {
			return written, err
		}
	}
	return written, nil
}

package statica

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"strconv"
)

const (
	bodyNotFound         = "Not Found"
	bodyMethodNotAllowed = "Method Not Allowed"
	bodyInternalError    = "Internal Server Error"
	bodyRootUnavailable  = "Internal Server Error: static root unavailable"
)

// Option configures a StaticFiles handler.
type Option func(*StaticFiles)

// WithChunkSize sets the size of body chunks. Non-positive sizes are ignored.
func WithChunkSize(n int) Option {
	return func(s *StaticFiles) {
		if n > 0 {
			s.chunkSize = n
		}
	}
}

// WithTypeResolver sets the content type lookup used for served files.
func WithTypeResolver(types TypeResolver) Option {
	return func(s *StaticFiles) {
		s.types = types
	}
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *StaticFiles) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithHeaders adds headers to every file response, e.g. cache-control. Headers in the
// 304 allow-list are kept on not-modified responses.
func WithHeaders(h Headers) Option {
	return func(s *StaticFiles) {
		s.headers = h.Clone()
	}
}

// StaticFiles serves the files below one static root.
type StaticFiles struct {
	resolver  *Resolver
	storage   FileStorage
	chunkSize int
	types     TypeResolver
	logger    *slog.Logger
	headers   Headers
}

// NewStaticFiles creates a handler for root. When root.CheckRoot is set the root
// directory is verified now and a *ConfigError is returned if it is unusable;
// otherwise the check happens on the first request.
func NewStaticFiles(root StaticRoot, storage FileStorage, opts ...Option) (*StaticFiles, error) {
	resolver, err := NewResolver(root, storage)
	if err != nil {
		return nil, fmt.Errorf("new static files: %w", err)
	}

	s := &StaticFiles{
		resolver:  resolver,
		storage:   storage,
		chunkSize: DefaultChunkSize,
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	if root.CheckRoot {
		if err := resolver.VerifyRoot(context.Background()); err != nil {
			return nil, fmt.Errorf("new static files: %w", err)
		}
	}

	return s, nil
}

// Root returns the configuration the handler serves.
func (s *StaticFiles) Root() StaticRoot {
	return s.resolver.Root()
}

// Serve handles one request. The caller must close the returned response.
//
// GET and HEAD are served; any other method gets 405. Paths escaping the root, missing
// files and anything that is not a regular file get 404. An unusable root gets 500.
func (s *StaticFiles) Serve(ctx context.Context, req Request) Response {
	if req.Method != http.MethodGet && req.Method != http.MethodHead {
		return errorResponse(ErrMethodNotAllowed)
	}

	resolved, err := s.resolver.Resolve(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrPathEscape):
			s.logger.DebugContext(ctx, "rejected request path", "path", req.Path, "err", err)
		case errors.Is(err, ErrConfiguration):
			s.logger.ErrorContext(ctx, "static root unavailable", "err", err)
		default:
			s.logger.WarnContext(ctx, "resolve request path", "path", req.Path, "err", err)
		}
		return errorResponse(err)
	}

	info, err := s.storage.Stat(ctx, resolved.FullPath)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.logger.ErrorContext(ctx, "stat file", "path", resolved.Relative, "err", err)
		}
		return errorResponse(err)
	}

	if !info.Mode().IsRegular() {
		return errorResponse(ErrNotFound)
	}

	opts := FileOptions{
		Headers:       s.headers,
		CheckModified: true,
		ChunkSize:     s.chunkSize,
	}

	return fileResponse(s.storage, s.types, req, resolved.FullPath, info, opts)
}

// ServeFile builds a response for the single file at path, outside any static root.
// A missing or non-regular file yields 500: the caller chose the path.
func ServeFile(ctx context.Context, storage FileStorage, req Request, path string, opts FileOptions) Response {
	info, err := storage.Stat(ctx, path)
	if err == nil && !info.Mode().IsRegular() {
		err = fmt.Errorf("%s: not a regular file", info.Name())
	}
	if err != nil {
		slog.ErrorContext(ctx, "serve file", "path", path, "err", err)
		return errorResponse(fmt.Errorf("%w: %w", ErrInternal, err))
	}

	return fileResponse(storage, nil, req, path, info, opts)
}

func fileResponse(storage FileStorage, types TypeResolver, req Request, path string, info fs.FileInfo, opts FileOptions) Response {
	meta := MetadataOf(info, path, opts, types)
	headers := BuildHeaders(meta, opts.Headers)

	if opts.CheckModified && IsNotModified(ConditionalFromHeaders(req.Headers), headers) {
		return Response{
			Status:  http.StatusNotModified,
			Headers: NotModifiedHeaders(headers),
		}
	}

	status := opts.Status
	if status == 0 {
		status = http.StatusOK
	}

	if req.Method == http.MethodHead {
		return Response{Status: status, Headers: headers}
	}

	return Response{
		Status:  status,
		Headers: headers,
		Body:    NewChunkStream(storage, path, opts.ChunkSize),
	}
}

// errorResponse maps an error to its plain text response. Nothing of err itself
// reaches the body.
func errorResponse(err error) Response {
	switch {
	case errors.Is(err, ErrInternal):
		return textResponse(http.StatusInternalServerError, bodyInternalError)
	case errors.Is(err, ErrPathEscape), errors.Is(err, ErrNotFound):
		return textResponse(http.StatusNotFound, bodyNotFound)
	case errors.Is(err, ErrMethodNotAllowed):
		return textResponse(http.StatusMethodNotAllowed, bodyMethodNotAllowed)
	case errors.Is(err, ErrConfiguration):
		return textResponse(http.StatusInternalServerError, bodyRootUnavailable)
	default:
		return textResponse(http.StatusInternalServerError, bodyInternalError)
	}
}

func textResponse(status int, text string) Response {
	return Response{
		Status: status,
		Headers: NewHeaders(
			HeaderContentType, "text/plain; charset=utf-8",
			HeaderContentLength, strconv.Itoa(len(text)),
		),
		Body: TextBody(text),
	}
}

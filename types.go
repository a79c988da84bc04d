package statica

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"time"
)

// FileStorage provides the filesystem operations the static file handler needs.
// Implementations return ErrNotFound for paths that do not exist.
type FileStorage interface {
	Stat(ctx context.Context, path string) (fs.FileInfo, error)
	Open(ctx context.Context, path string) (io.ReadCloser, error)
}

// TypeResolver maps a file name to a MIME type by its extension.
type TypeResolver interface {
	ContentType(name string) (string, bool)
}

type ResolutionMode string

const (
	// ModeRequestPath resolves the full request path; used when mounted at "/".
	ModeRequestPath ResolutionMode = "request_path"
	// ModeRouteSuffix resolves the suffix captured by the host router; used when
	// mounted below "/".
	ModeRouteSuffix ResolutionMode = "route_suffix"
)

func (m ResolutionMode) IsValid() bool {
	switch m {
	case ModeRequestPath, ModeRouteSuffix:
		return true
	default:
		return false
	}
}

func ParseResolutionMode(s string) (ResolutionMode, error) {
	mode := ResolutionMode(s)
	if !mode.IsValid() {
		return "", fmt.Errorf("invalid resolution mode: %s (valid modes: request_path, route_suffix)", s)
	}
	return mode, nil
}

// StaticRoot is the configuration of one served directory.
type StaticRoot struct {
	// Root is the directory files are served from.
	Root string
	// MountPrefix is the URL path the root is exposed under. Defaults to "/".
	MountPrefix string
	// IndexFile is appended to paths that are empty or end in "/".
	IndexFile string
	// CheckRoot verifies the root directory when the handler is constructed
	// instead of on the first request.
	CheckRoot bool
	// Mode overrides the resolution mode derived from MountPrefix.
	Mode ResolutionMode
}

// Prefix returns the mount prefix, defaulting to "/".
func (r StaticRoot) Prefix() string {
	if r.MountPrefix == "" {
		return "/"
	}
	return r.MountPrefix
}

// EffectiveMode returns the explicit mode if set, otherwise the mode implied by the
// mount prefix.
func (r StaticRoot) EffectiveMode() ResolutionMode {
	if r.Mode != "" {
		return r.Mode
	}
	if r.Prefix() == "/" {
		return ModeRequestPath
	}
	return ModeRouteSuffix
}

// Validate checks the shape of the configuration. It does not touch the filesystem.
func (r StaticRoot) Validate() error {
	if r.Root == "" {
		return &ConfigError{Root: r.Root, Err: errors.New("root directory cannot be empty")}
	}

	if !strings.HasPrefix(r.Prefix(), "/") {
		return &ConfigError{Root: r.Root, Err: fmt.Errorf("mount prefix %q must start with \"/\"", r.MountPrefix)}
	}

	if r.Mode != "" && !r.Mode.IsValid() {
		return &ConfigError{Root: r.Root, Err: fmt.Errorf("invalid resolution mode: %s", r.Mode)}
	}

	if strings.Contains(r.IndexFile, "/") {
		return &ConfigError{Root: r.Root, Err: fmt.Errorf("index file %q must be a file name", r.IndexFile)}
	}

	return nil
}

// ResolvedPath is a request path mapped into the static root.
type ResolvedPath struct {
	// Relative is the normalized slash-separated path below the root.
	Relative string
	// FullPath is Relative joined onto the root directory.
	FullPath string
}

type FileMetadata struct {
	Size        int64
	ModTime     time.Time
	ContentType string
	Filename    string
	ETag        string
}

// ConditionalContext holds the cache validators sent by the client. Empty strings mean
// the header was absent.
type ConditionalContext struct {
	IfNoneMatch     string
	IfModifiedSince string
}

// ConditionalFromHeaders extracts the cache validators from request headers.
func ConditionalFromHeaders(h Headers) ConditionalContext {
	var c ConditionalContext
	c.IfNoneMatch, _ = h.Get(HeaderIfNoneMatch)
	c.IfModifiedSince, _ = h.Get(HeaderIfModifiedSince)
	return c
}

// Request is the part of an inbound HTTP request the handler consumes.
type Request struct {
	Method string
	// Path is the URL-decoded request path.
	Path string
	// RouteSuffix is the path captured by the host router below the mount prefix.
	RouteSuffix string
	// Headers holds the request headers with lower-case names.
	Headers Headers
}

// Body produces a response body one chunk at a time.
type Body interface {
	// Next returns the next chunk, or io.EOF once the body is exhausted.
	Next(ctx context.Context) ([]byte, error)
	Close() error
}

type Response struct {
	Status  int
	Headers Headers
	// Body is nil for responses without content.
	Body Body
}

// Close releases the body, if any.
func (r Response) Close() error {
	if r.Body == nil {
		return nil
	}
	return r.Body.Close()
}

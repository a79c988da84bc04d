package statica

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a resolved path does not exist or is not a regular file
	ErrNotFound = errors.New("not found")
	// ErrPathEscape is returned when a request path normalizes outside the static root
	ErrPathEscape = errors.New("path escapes static root")
	// ErrMethodNotAllowed is returned for methods other than GET and HEAD
	ErrMethodNotAllowed = errors.New("method not allowed")
	// ErrConfiguration is returned when the static root configuration is unusable
	ErrConfiguration = errors.New("invalid configuration")
	// ErrStreamingIO is returned when a file cannot be opened or read while streaming
	ErrStreamingIO = errors.New("streaming i/o error")
	// ErrInternal is returned when an internal error occurs
	ErrInternal = errors.New("internal error")
)

// RejectReason describes why a request path was refused by the resolver.
type RejectReason string

const (
	ReasonPathEscape RejectReason = "path_escape"
)

// RejectedError is returned by the resolver for request paths that must not be served.
// It matches ErrPathEscape with errors.Is.
type RejectedError struct {
	Reason RejectReason
	Path   string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("rejected request path %q: %s", e.Path, e.Reason)
}

func (e *RejectedError) Is(target error) bool {
	return target == ErrPathEscape && e.Reason == ReasonPathEscape
}

// ConfigError reports a static root that cannot be served from. Once returned by a
// resolver the same error is returned for every later request.
type ConfigError struct {
	Root string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("static root %q: %v", e.Root, e.Err)
}

func (e *ConfigError) Is(target error) bool {
	return target == ErrConfiguration
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// StreamError reports a file that vanished or became unreadable after it was stat'ed.
type StreamError struct {
	Path string
	Err  error
}

func (e *StreamError) Error() string {
	return fmt.Sprintf("stream %q: %v", e.Path, e.Err)
}

func (e *StreamError) Is(target error) bool {
	return target == ErrStreamingIO
}

func (e *StreamError) Unwrap() error {
	return e.Err
}

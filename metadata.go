package statica

import (
	"crypto/md5" //nolint:gosec // checksum of mtime and size, not a security boundary
	"encoding/hex"
	"io/fs"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const defaultContentType = "application/octet-stream"

// FileOptions customizes a file response.
type FileOptions struct {
	// Status is the status of a full response. Defaults to 200.
	Status int
	// Headers are sent before the generated file headers.
	Headers Headers
	// ContentType overrides content type detection.
	ContentType string
	// Filename, if set, is used for content type detection and sent as an
	// attachment content-disposition.
	Filename string
	// CheckModified enables If-None-Match / If-Modified-Since evaluation.
	CheckModified bool
	// ChunkSize is the body chunk size. Defaults to DefaultChunkSize.
	ChunkSize int
}

// ETagOf returns the quoted entity tag for a file with the given modification time and
// size. The same file state always yields the same tag.
func ETagOf(modTime time.Time, size int64) string {
	key := strconv.FormatInt(modTime.UnixNano(), 10) + "-" + strconv.FormatInt(size, 10)
	sum := md5.Sum([]byte(key)) //nolint:gosec // see import
	return `"` + hex.EncodeToString(sum[:]) + `"`
}

// MetadataOf derives the response metadata of the file at path from its stat result.
// Content type precedence: opts.ContentType, then the extension of opts.Filename,
// then the extension of path, then application/octet-stream.
func MetadataOf(info fs.FileInfo, path string, opts FileOptions, types TypeResolver) FileMetadata {
	contentType := opts.ContentType
	if contentType == "" && opts.Filename != "" {
		contentType = detectContentType(opts.Filename, types)
	}
	if contentType == "" {
		contentType = detectContentType(path, types)
	}
	if contentType == "" {
		contentType = defaultContentType
	}

	return FileMetadata{
		Size:        info.Size(),
		ModTime:     info.ModTime(),
		ContentType: contentType,
		Filename:    opts.Filename,
		ETag:        ETagOf(info.ModTime(), info.Size()),
	}
}

func detectContentType(name string, types TypeResolver) string {
	if types != nil {
		if ct, ok := types.ContentType(name); ok {
			return ct
		}
		return ""
	}
	return mime.TypeByExtension(filepath.Ext(name))
}

// FormatLastModified formats t as an HTTP-date in GMT at whole-second resolution.
func FormatLastModified(t time.Time) string {
	return t.UTC().Format(http.TimeFormat)
}

var dispositionEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\r", "", "\n", "")

// BuildHeaders returns extra followed by content-type, content-length, last-modified,
// etag and, when meta.Filename is set, an attachment content-disposition.
func BuildHeaders(meta FileMetadata, extra Headers) Headers {
	h := make(Headers, 0, len(extra)+5)
	h = append(h, extra...)

	h = h.Add(HeaderContentType, meta.ContentType)
	h = h.Add(HeaderContentLength, strconv.FormatInt(meta.Size, 10))
	h = h.Add(HeaderLastModified, FormatLastModified(meta.ModTime))
	h = h.Add(HeaderETag, meta.ETag)

	if meta.Filename != "" {
		h = h.Add(HeaderContentDisposition, `attachment; filename="`+dispositionEscaper.Replace(meta.Filename)+`"`)
	}

	return h
}

// IsNotModified reports whether the client's cached copy, described by cond, matches
// the response headers. It panics if headers carry no last-modified field: headers
// built by BuildHeaders always do.
func IsNotModified(cond ConditionalContext, headers Headers) bool {
	lastModified, ok := headers.Get(HeaderLastModified)
	if !ok {
		panic("statica: conditional evaluation without last-modified header")
	}

	if etag, ok := headers.Get(HeaderETag); ok && cond.IfNoneMatch != "" && cond.IfNoneMatch == etag {
		return true
	}

	if cond.IfModifiedSince == "" {
		return false
	}

	since, err := http.ParseTime(cond.IfModifiedSince)
	if err != nil {
		return false
	}

	modified, err := http.ParseTime(lastModified)
	if err != nil {
		return false
	}

	return !since.Truncate(time.Second).Before(modified.Truncate(time.Second))
}

// NotModifiedHeaders keeps the headers a 304 response is allowed to carry.
func NotModifiedHeaders(headers Headers) Headers {
	return headers.Filter(notModifiedHeaders...)
}

// Package mimetypes resolves content types by file extension, with overrides from
// configuration layered over the standard library's mime table.
package mimetypes

import (
	"fmt"
	"mime"
	"path/filepath"
)

// MapRegistry looks content types up in an in-memory override map first and the
// mime package second.
type MapRegistry struct {
	types map[string]string
}

// NewMapRegistry creates a registry from an extension to type map. Extensions are
// matched case-insensitively, with or without the leading dot.
func NewMapRegistry(types map[string]string) *MapRegistry {
	normalized := make(map[string]string, len(types))
	for ext, t := range types {
		if ext = normalizeExt(ext); ext != "" && t != "" {
			normalized[ext] = t
		}
	}
	return &MapRegistry{types: normalized}
}

// Lookup returns the content type registered for ext.
func (r *MapRegistry) Lookup(ext string) (string, error) {
	ext = normalizeExt(ext)
	if t, found := r.types[ext]; found {
		return t, nil
	}
	if t := mime.TypeByExtension(ext); t != "" {
		return t, nil
	}
	return "", fmt.Errorf("extension %q: %w", ext, ErrTypeNotFound)
}

// ContentType implements statica.TypeResolver.
func (r *MapRegistry) ContentType(name string) (string, bool) {
	ext := filepath.Ext(name)
	if ext == "" {
		return "", false
	}
	t, err := r.Lookup(ext)
	if err != nil {
		return "", false
	}
	return t, true
}

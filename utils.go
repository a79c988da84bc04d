package statica

import (
	"path/filepath"
	"strings"
)

// normalizePath lexically resolves "." and ".." segments of a slash-separated path
// and returns the result relative to the root. It never touches the filesystem.
// It reports false when the path would escape the root:
//   - a ".." segment with nothing left to pop
//   - a segment containing the OS path separator or a NUL byte
//   - a result that is not local to the root on this OS (e.g. a volume name)
//
// An empty result means the root itself.
func normalizePath(p string) (string, bool) {
	segments := strings.Split(p, "/")
	out := make([]string, 0, len(segments))

	for _, seg := range segments {
		switch seg {
		case "", ".":
			continue
		case "..":
			if len(out) == 0 {
				return "", false
			}
			out = out[:len(out)-1]
			continue
		}

		if strings.ContainsRune(seg, 0) {
			return "", false
		}

		if filepath.Separator != '/' && strings.ContainsRune(seg, filepath.Separator) {
			return "", false
		}

		out = append(out, seg)
	}

	rel := strings.Join(out, "/")
	if rel != "" && !filepath.IsLocal(filepath.FromSlash(rel)) {
		return "", false
	}

	return rel, true
}

// wantsIndex reports whether the index file should be appended to p.
func wantsIndex(p string) bool {
	return p == "" || strings.HasSuffix(p, "/")
}

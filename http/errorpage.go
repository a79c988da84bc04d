package http

import (
	"io"
	"net/http"
	"strconv"
)

const bodyNotFound = "Not Found"

// writeNotFound answers requests outside the mount prefix the same way the static
// root answers a missing file.
func writeNotFound(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Length", strconv.Itoa(len(bodyNotFound)))
	w.WriteHeader(http.StatusNotFound)
	_, _ = io.WriteString(w, bodyNotFound)
}

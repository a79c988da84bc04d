package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/sagarc03/statica"
)

const bodyInternalError = "Internal Server Error"

// WriteResponse writes resp to w and closes its body.
//
// The first body chunk is read before any header is committed, so a file that
// vanished between stat and open still turns into a 500. Failures after that point
// truncate the body; the returned error wraps ErrBodyTruncated.
func WriteResponse(ctx context.Context, w http.ResponseWriter, resp statica.Response) error {
	defer func() { _ = resp.Close() }()

	if resp.Body == nil {
		writeHead(w, resp)
		return nil
	}

	first, err := resp.Body.Next(ctx)
	if err != nil && !errors.Is(err, io.EOF) {
		writeInternalError(w)
		return fmt.Errorf("first chunk: %w", err)
	}

	writeHead(w, resp)
	if len(first) == 0 {
		return nil
	}

	if _, err := w.Write(first); err != nil {
		return fmt.Errorf("%w: %w", ErrBodyTruncated, err)
	}

	if _, err := statica.WriteBody(ctx, w, resp.Body); err != nil {
		return fmt.Errorf("%w: %w", ErrBodyTruncated, err)
	}

	return nil
}

func writeHead(w http.ResponseWriter, resp statica.Response) {
	h := w.Header()
	for _, f := range resp.Headers {
		h.Add(f.Name, f.Value)
	}
	w.WriteHeader(resp.Status)
}

func writeInternalError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Length", strconv.Itoa(len(bodyInternalError)))
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = io.WriteString(w, bodyInternalError)
}

package http

import "errors"

// ErrBodyTruncated is returned when a response body fails after its headers were sent.
var ErrBodyTruncated = errors.New("response body truncated")

package statica

import "strings"

const (
	HeaderContentType        = "content-type"
	HeaderContentLength      = "content-length"
	HeaderContentDisposition = "content-disposition"
	HeaderLastModified       = "last-modified"
	HeaderETag               = "etag"
	HeaderIfNoneMatch        = "if-none-match"
	HeaderIfModifiedSince    = "if-modified-since"
)

// notModifiedHeaders are the only headers a 304 response may carry.
var notModifiedHeaders = []string{
	"cache-control",
	"content-location",
	"date",
	"etag",
	"expires",
	"vary",
}

// Header is a single header field. Names are lower-case.
type Header struct {
	Name  string
	Value string
}

// Headers is an ordered list of header fields.
type Headers []Header

// NewHeaders builds a header list from alternating name/value pairs. Names are
// lower-cased; a trailing name without a value is dropped.
func NewHeaders(pairs ...string) Headers {
	h := make(Headers, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		h = h.Add(pairs[i], pairs[i+1])
	}
	return h
}

// Add appends a header and returns the extended list.
func (h Headers) Add(name, value string) Headers {
	return append(h, Header{Name: strings.ToLower(name), Value: value})
}

// Get returns the value of the first header with the given name.
func (h Headers) Get(name string) (string, bool) {
	name = strings.ToLower(name)
	for _, f := range h {
		if f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}

// Filter returns the headers whose names are in allow, keeping their order.
func (h Headers) Filter(allow ...string) Headers {
	out := make(Headers, 0, len(h))
	for _, f := range h {
		for _, name := range allow {
			if f.Name == name {
				out = append(out, f)
				break
			}
		}
	}
	return out
}

// Clone returns a copy that can be appended to without affecting h.
func (h Headers) Clone() Headers {
	if h == nil {
		return nil
	}
	out := make(Headers, len(h))
	copy(out, h)
	return out
}

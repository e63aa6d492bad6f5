package web

import (
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// Request is the normalized inbound request facade. Header keys are
// lower-cased with last-write-wins semantics, the path is stripped of any
// routing prefix and trailing slash, and the body is decoded through a
// parser registry. A Request is created once per inbound call and treated
// as immutable thereafter.
type Request struct {
	// ID identifies the request, taken from the x-request-id header or
	// generated.
	ID string
	// Method is the uppercased HTTP verb.
	Method string
	// Path is the normalized request path.
	Path string
	// Headers maps lower-cased header names to values.
	Headers map[string]string
	// Body is the decoded body value, nil when the body is empty.
	Body any
	// RawBody is the body text as received.
	RawBody string
}

// NewRequest builds a Request from the components supplied by the host
// transport. The body is decoded through the given registry; a nil registry
// leaves Body nil.
func NewRequest(method, path string, headers map[string]string, rawBody string, parsers *ParserRegistry) (*Request, error) {
	normalized := make(map[string]string, len(headers))
	for k, v := range headers {
		normalized[strings.ToLower(k)] = v
	}

	req := &Request{
		ID:      requestID(normalized),
		Method:  strings.ToUpper(method),
		Path:    normalizePath(path, ""),
		Headers: normalized,
		RawBody: rawBody,
	}

	if parsers != nil {
		body, err := parsers.Resolve(normalized, rawBody)
		if err != nil {
			return nil, err
		}
		req.Body = body
	}

	return req, nil
}

// RequestFromHTTP builds a Request from a host *http.Request, consuming its
// body. The prefix, when non-empty, is stripped from the request path before
// normalization.
func RequestFromHTTP(r *http.Request, prefix string, parsers *ParserRegistry) (*Request, error) {
	var rawBody string
	if r.Body != nil {
		b, err := io.ReadAll(r.Body)
		if err != nil {
			return nil, err
		}
		rawBody = string(b)
	}

	headers := make(map[string]string, len(r.Header))
	for k, vals := range r.Header {
		if len(vals) > 0 {
			headers[strings.ToLower(k)] = vals[len(vals)-1]
		}
	}

	req, err := NewRequest(r.Method, normalizePath(r.URL.Path, prefix), headers, rawBody, parsers)
	if err != nil {
		return nil, err
	}
	return req, nil
}

// Header returns the value of a header by case-insensitive name.
func (r *Request) Header(name string) string {
	return r.Headers[strings.ToLower(name)]
}

// normalizePath strips the routing prefix and any trailing slash, and
// guarantees a leading slash. The empty path normalizes to "/".
func normalizePath(path, prefix string) string {
	if prefix != "" {
		path = strings.TrimPrefix(path, prefix)
	}
	path = strings.TrimSuffix(path, "/")
	if path == "" {
		return "/"
	}
	if path[0] != '/' {
		path = "/" + path
	}
	return path
}

// requestID returns the inbound x-request-id header value or a fresh uuid.
func requestID(headers map[string]string) string {
	if id := headers["x-request-id"]; id != "" {
		return id
	}
	return uuid.NewString()
}

package web

import (
	"encoding/json"
	"net/http"
	"strconv"
)

// Response is the outbound response facade. Handlers mutate it through
// chained setters; finalization hands the accumulated status, headers, and
// body to the host transport exactly once. After finalization the response
// is terminal and further mutation is ignored.
type Response struct {
	status    int
	headers   map[string]string
	body      string
	hasBody   bool
	finalized bool
}

// NewResponse returns a Response with status 200 and no body.
func NewResponse() *Response {
	return &Response{
		status:  http.StatusOK,
		headers: make(map[string]string),
	}
}

// Status sets the response status code.
func (r *Response) Status(code int) *Response {
	if !r.finalized {
		r.status = code
	}
	return r
}

// Header sets a response header, replacing any previous value.
func (r *Response) Header(key, value string) *Response {
	if !r.finalized {
		r.headers[key] = value
	}
	return r
}

// Text sets a plain-text body.
func (r *Response) Text(body string) *Response {
	if r.finalized {
		return r
	}
	r.body = body
	r.hasBody = true
	r.headers["Content-Type"] = "text/plain; charset=utf-8"
	return r
}

// JSON encodes v as the response body. Returns an error when v cannot be
// marshaled, leaving the response unchanged.
func (r *Response) JSON(v any) error {
	if r.finalized {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	r.body = string(b)
	r.hasBody = true
	r.headers["Content-Type"] = "application/json"
	return nil
}

// Empty clears the response body.
func (r *Response) Empty() *Response {
	if r.finalized {
		return r
	}
	r.body = ""
	r.hasBody = false
	delete(r.headers, "Content-Type")
	return r
}

// StatusCode returns the current status code.
func (r *Response) StatusCode() int {
	return r.status
}

// Body returns the current body text.
func (r *Response) Body() string {
	return r.body
}

// HeaderValue returns the current value of a response header.
func (r *Response) HeaderValue(key string) string {
	return r.headers[key]
}

// Finalized reports whether the response has been handed to the transport.
func (r *Response) Finalized() bool {
	return r.finalized
}

// failure replaces the response content with the uniform JSON error
// envelope for the given failure, merging its headers.
func (r *Response) failure(e Error) {
	if r.finalized {
		return
	}
	r.status = e.Status
	for k, v := range e.Headers {
		r.headers[k] = v
	}
	// envelope marshaling cannot fail: the payload is plain data.
	b, _ := json.Marshal(e.envelope())
	r.body = string(b)
	r.hasBody = true
	r.headers["Content-Type"] = "application/json"
}

// Finalize writes the response to the host transport. Statuses below 200
// and 204 are bodyless regardless of any body set. Finalize is a no-op
// after the first call.
func (r *Response) Finalize(w http.ResponseWriter) {
	if r.finalized {
		return
	}
	r.finalized = true

	bodyless := r.status < http.StatusOK || r.status == http.StatusNoContent

	for k, v := range r.headers {
		w.Header().Set(k, v)
	}
	if !bodyless {
		w.Header().Set("Content-Length", strconv.Itoa(len(r.body)))
	}

	w.WriteHeader(r.status)

	if !bodyless && r.hasBody {
		w.Write([]byte(r.body))
	}
}

package web

import (
	"fmt"
	"net/http"
)

// Error is a structured HTTP-level failure. It carries everything needed to
// render the uniform JSON error envelope and implements the error interface,
// so handlers can return it directly. An Error is treated as immutable; the
// With* helpers return modified copies.
type Error struct {
	// Status is the HTTP status code of the failure.
	Status int
	// Code is the machine-readable error code. When empty, the envelope
	// uses "http_error_<status>".
	Code string
	// Message is the human-readable message.
	Message string
	// Details carries optional structured context for the client.
	Details map[string]any
	// Headers are merged into the response before the envelope is written.
	Headers map[string]string
}

// NewError creates an Error with the given status and message.
func NewError(status int, message string) Error {
	return Error{Status: status, Message: message}
}

// Error implements the error interface.
func (e Error) Error() string {
	return e.Message
}

// WithCode returns a copy of the error with the given code.
func (e Error) WithCode(code string) Error {
	e.Code = code
	return e
}

// WithDetails returns a copy of the error with the given details.
func (e Error) WithDetails(details map[string]any) Error {
	e.Details = details
	return e
}

// WithHeader returns a copy of the error with an extra response header.
func (e Error) WithHeader(key, value string) Error {
	headers := make(map[string]string, len(e.Headers)+1)
	for k, v := range e.Headers {
		headers[k] = v
	}
	headers[key] = value
	e.Headers = headers
	return e
}

// code returns the effective envelope code.
func (e Error) code() string {
	if e.Code != "" {
		return e.Code
	}
	return fmt.Sprintf("http_error_%d", e.Status)
}

// errNotFound is the uniform failure for requests matching no route.
func errNotFound() Error {
	return Error{
		Status:  http.StatusNotFound,
		Code:    "not_found",
		Message: "resource not found",
	}
}

// internalError wraps a non-HTTP failure raised by a handler into a
// transport-safe 500. The original message is preserved verbatim.
func internalError(err error) Error {
	return Error{
		Status:  http.StatusInternalServerError,
		Message: err.Error(),
	}
}

// envelope is the wire format of an error response.
type envelope struct {
	Status int           `json:"status"`
	Error  envelopeError `json:"error"`
}

type envelopeError struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// envelope returns the wire representation of the error.
func (e Error) envelope() envelope {
	return envelope{
		Status: e.Status,
		Error: envelopeError{
			Code:    e.code(),
			Message: e.Message,
			Details: e.Details,
		},
	}
}

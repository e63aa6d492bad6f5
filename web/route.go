package web

import (
	"errors"
	"strings"
)

// Handler is the callback bound to a route. It receives the normalized
// request, the mutable response, and the path variables extracted from the
// matched address. A returned Error propagates unchanged; any other error is
// wrapped as an internal server error at the route boundary.
type Handler func(*Request, *Response, map[string]string) error

// Route binds an HTTP method, a compiled address, and a handler.
type Route struct {
	method  string
	address *Address
	handler Handler
}

// NewRoute compiles the pattern and returns a route for the given method.
// The method is uppercased; malformed patterns fail here, at registration
// time.
func NewRoute(method, pattern string, handler Handler) (*Route, error) {
	address, err := CompileAddress(pattern)
	if err != nil {
		return nil, err
	}
	return &Route{
		method:  strings.ToUpper(method),
		address: address,
		handler: handler,
	}, nil
}

// Method returns the normalized HTTP verb.
func (r *Route) Method() string {
	return r.method
}

// Address returns the compiled route address.
func (r *Route) Address() *Address {
	return r.address
}

// Matches reports whether the request's method and path satisfy the route.
func (r *Route) Matches(req *Request) bool {
	return req.Method == r.method && r.address.MatchPath(req.Path)
}

// Params extracts the path variables from the request. Once Matches is true
// the capture groups are structurally guaranteed present, so Params never
// returns nil for a matched request.
func (r *Route) Params(req *Request) map[string]string {
	return r.address.Vars(req.Path)
}

// Handle invokes the bound handler. A structured Error raised by the handler
// propagates unchanged; any other error is wrapped as a 500 carrying the
// original message. This is the only place uncaught application errors are
// converted to a transport-safe shape.
func (r *Route) Handle(req *Request, res *Response) error {
	if err := r.handler(req, res, r.Params(req)); err != nil {
		var httpErr Error
		if errors.As(err, &httpErr) {
			return err
		}
		return internalError(err)
	}
	return nil
}

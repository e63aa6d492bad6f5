package web

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"gopkg.in/yaml.v3"
)

// App wires a body parser registry and a router behind a single dispatch
// entry point. It implements http.Handler, so it can be served directly by
// the host transport. Routes are registered during startup, before serving
// begins.
type App struct {
	router  *Router
	parsers *ParserRegistry
	prefix  string
	log     *slog.Logger
}

// AppOption configures an App.
type AppOption func(*App)

// WithParsers replaces the default body parser registry.
func WithParsers(parsers *ParserRegistry) AppOption {
	return func(a *App) { a.parsers = parsers }
}

// WithPrefix sets a routing prefix stripped from inbound paths before
// matching.
func WithPrefix(prefix string) AppOption {
	return func(a *App) { a.prefix = prefix }
}

// WithLogger sets the logger used for server-side failures.
func WithLogger(log *slog.Logger) AppOption {
	return func(a *App) { a.log = log }
}

// NewApp returns an App with the default parser registry.
func NewApp(opts ...AppOption) *App {
	a := &App{
		router:  NewRouter(),
		parsers: DefaultParsers(),
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Route registers a handler for an arbitrary method and pattern.
func (a *App) Route(method, pattern string, handler Handler) error {
	return a.router.Handle(method, pattern, handler)
}

// Head registers a HEAD route.
func (a *App) Head(pattern string, handler Handler) error {
	return a.Route(http.MethodHead, pattern, handler)
}

// Get registers a GET route.
func (a *App) Get(pattern string, handler Handler) error {
	return a.Route(http.MethodGet, pattern, handler)
}

// Post registers a POST route.
func (a *App) Post(pattern string, handler Handler) error {
	return a.Route(http.MethodPost, pattern, handler)
}

// Put registers a PUT route.
func (a *App) Put(pattern string, handler Handler) error {
	return a.Route(http.MethodPut, pattern, handler)
}

// Patch registers a PATCH route.
func (a *App) Patch(pattern string, handler Handler) error {
	return a.Route(http.MethodPatch, pattern, handler)
}

// Delete registers a DELETE route.
func (a *App) Delete(pattern string, handler Handler) error {
	return a.Route(http.MethodDelete, pattern, handler)
}

// Routes returns the registered routes in introspection order, see
// Router.List.
func (a *App) Routes() []RouteInfo {
	return a.router.List()
}

// SitemapHandler returns a handler serving the route table as an ordered
// sequence of {address, method} objects. The payload is JSON unless the
// accept header asks for YAML.
func (a *App) SitemapHandler() Handler {
	return func(req *Request, res *Response, _ map[string]string) error {
		routes := a.Routes()

		if strings.Contains(req.Header("accept"), "yaml") {
			b, err := yaml.Marshal(routes)
			if err != nil {
				return err
			}
			res.Text(string(b)).Header("Content-Type", "application/yaml")
			return nil
		}

		return res.JSON(routes)
	}
}

// Dispatch routes the request and resolves any failure into the uniform
// error envelope on the response. This is the single top-level error
// boundary: a structured Error keeps its status and headers, anything else
// becomes a 500.
func (a *App) Dispatch(req *Request, res *Response) {
	if err := a.router.Dispatch(req, res); err != nil {
		a.resolveFailure(req, res, err)
	}
}

// ServeHTTP builds the request facade from the host transport, dispatches
// it, and finalizes the response. Implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	res := NewResponse()

	req, err := RequestFromHTTP(r, a.prefix, a.parsers)
	if err != nil {
		a.resolveFailure(nil, res, err)
		res.Finalize(w)
		return
	}

	a.Dispatch(req, res)
	res.Finalize(w)
}

// resolveFailure renders err into the envelope and logs server-side
// failures. req may be nil when request construction itself failed.
func (a *App) resolveFailure(req *Request, res *Response, err error) {
	var httpErr Error
	if !errors.As(err, &httpErr) {
		httpErr = internalError(err)
	}

	if httpErr.Status >= http.StatusInternalServerError {
		attrs := []any{
			slog.Int("status", httpErr.Status),
			slog.String("error", httpErr.Message),
		}
		if req != nil {
			attrs = append(attrs,
				slog.String("request_id", req.ID),
				slog.String("method", req.Method),
				slog.String("path", req.Path),
			)
		}
		a.log.Error("request failed", attrs...)
	}

	res.failure(httpErr)
}

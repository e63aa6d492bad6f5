// Package web implements a minimal HTTP request-routing layer: it matches
// requests to registered handlers by method and path pattern, extracts path
// variables, negotiates request-body decoding by content type, and produces
// structured JSON/text responses with a uniform error envelope.
//
// # Application
//
// Create an App, register handlers, and serve it with any http.Server:
//
//	app := web.NewApp()
//	app.Get("/users/{id:int}", func(req *web.Request, res *web.Response, params map[string]string) error {
//	    return res.JSON(map[string]string{"id": params["id"]})
//	})
//	http.ListenAndServe(":8080", app)
//
// # Route Patterns
//
// Patterns are built from literal segments and variables:
//
//	/ping                 literal path
//	/{name}               free-form capture
//	/{id:[0-9]+}          regexp-constrained capture
//	*                     catch-all
//
// Instead of a full regexp, a variable may name a pattern macro:
//
//	/users/{id:uuid}
//	/articles/{page:int}
//	/posts/{slug:slug}
//
// Available macros: uuid, int, float, slug, alpha, alphanum, date, hex,
// domain. An unknown name after the colon is treated as a raw regexp.
//
// Malformed patterns (for example an unmatched brace) are reported at
// registration time, never at request time.
//
// # Handlers
//
// Handlers receive the normalized request, the mutable response, and the
// extracted path variables:
//
//	func(req *web.Request, res *web.Response, params map[string]string) error
//
// A handler returning a web.Error propagates it unchanged to the error
// envelope; any other returned error is wrapped as a 500 carrying the
// original message.
//
// # HEAD Synthesis
//
// Registering any non-HEAD route automatically registers a HEAD route for
// the same address that answers 200 with an empty body, so every readable
// resource supports an existence check.
//
// # Body Parsing
//
// Request bodies are decoded by an ordered parser registry; the first
// parser accepting the content-type header wins. The default registry
// handles JSON, form-encoded, and YAML bodies and falls back to the raw
// text for everything else. A registry without the fallback answers
// unsupported content types with a 415 listing the accepted ones.
//
// # Error Envelope
//
// Every failure surfaces as a single JSON shape:
//
//	{"status": 404, "error": {"code": "not_found", "message": "resource not found"}}
//	{"status": 500, "error": {"code": "http_error_500", "message": "...", "details": {...}}}
//
// # Introspection
//
// App.Routes returns the route table sorted by address and a fixed verb
// precedence (HEAD, GET, POST, PUT, PATCH, DELETE, then anything else);
// App.SitemapHandler serves it as JSON or YAML.
//
// # Concurrency
//
// The route table is built during wiring and read-only afterwards, so an
// App is safe for concurrent use by the host transport; each request gets
// its own Request and Response.
package web

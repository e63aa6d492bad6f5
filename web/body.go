package web

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"gopkg.in/yaml.v3"
)

// BodyParser decodes a raw request body into a structured value. Parsers are
// stateless: Matches and Parse are pure functions of the content-type header
// and the raw body text.
type BodyParser interface {
	// ContentTypes returns the accepted content type substrings, used for
	// matching and for client diagnostics on 415 responses.
	ContentTypes() []string

	// Matches reports whether the parser accepts the given content-type
	// header value.
	Matches(contentType string) bool

	// Parse decodes the raw body.
	Parse(headers map[string]string, raw string) (any, error)
}

// matchContentType reports whether any of the accepted type substrings
// occurs in the content-type header value.
func matchContentType(accepted []string, contentType string) bool {
	for _, t := range accepted {
		if strings.Contains(contentType, t) {
			return true
		}
	}
	return false
}

// JSONParser decodes JSON request bodies.
type JSONParser struct{}

func (JSONParser) ContentTypes() []string {
	return []string{"application/json", "text/json"}
}

func (p JSONParser) Matches(contentType string) bool {
	return matchContentType(p.ContentTypes(), contentType)
}

func (JSONParser) Parse(_ map[string]string, raw string) (any, error) {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return nil, err
	}
	return v, nil
}

// FormParser decodes application/x-www-form-urlencoded request bodies into
// url.Values.
type FormParser struct{}

func (FormParser) ContentTypes() []string {
	return []string{"application/x-www-form-urlencoded"}
}

func (p FormParser) Matches(contentType string) bool {
	return matchContentType(p.ContentTypes(), contentType)
}

func (FormParser) Parse(_ map[string]string, raw string) (any, error) {
	values, err := url.ParseQuery(raw)
	if err != nil {
		return nil, err
	}
	return values, nil
}

// YAMLParser decodes YAML request bodies.
type YAMLParser struct{}

func (YAMLParser) ContentTypes() []string {
	return []string{"application/yaml", "application/x-yaml", "text/yaml"}
}

func (p YAMLParser) Matches(contentType string) bool {
	return matchContentType(p.ContentTypes(), contentType)
}

func (YAMLParser) Parse(_ map[string]string, raw string) (any, error) {
	var v any
	if err := yaml.Unmarshal([]byte(raw), &v); err != nil {
		return nil, err
	}
	return v, nil
}

// TextParser returns the raw body as a string. With Fallback set it accepts
// every content type, guaranteeing that any non-empty body decodes into at
// least a raw string.
type TextParser struct {
	Fallback bool
}

func (TextParser) ContentTypes() []string {
	return []string{"text/plain"}
}

func (p TextParser) Matches(contentType string) bool {
	if p.Fallback {
		return true
	}
	return matchContentType(p.ContentTypes(), contentType)
}

func (TextParser) Parse(_ map[string]string, raw string) (any, error) {
	return raw, nil
}

// ParserRegistry is an ordered set of body parsers. The first registered
// parser accepting the request's content type performs the decode.
type ParserRegistry struct {
	parsers []BodyParser
}

// NewParserRegistry creates a registry with the given parsers, tried in
// argument order.
func NewParserRegistry(parsers ...BodyParser) *ParserRegistry {
	return &ParserRegistry{parsers: parsers}
}

// DefaultParsers returns the standard registry: JSON, form, YAML, and a
// plain-text fallback that accepts everything else.
func DefaultParsers() *ParserRegistry {
	return NewParserRegistry(
		JSONParser{},
		FormParser{},
		YAMLParser{},
		TextParser{Fallback: true},
	)
}

// Register appends a parser to the registry.
func (r *ParserRegistry) Register(p BodyParser) {
	r.parsers = append(r.parsers, p)
}

// ContentTypes returns the union of all accepted content types in
// registration order, without duplicates.
func (r *ParserRegistry) ContentTypes() []string {
	var (
		seen  = make(map[string]bool)
		types []string
	)
	for _, p := range r.parsers {
		for _, t := range p.ContentTypes() {
			if !seen[t] {
				seen[t] = true
				types = append(types, t)
			}
		}
	}
	return types
}

// Resolve decodes the raw body using the first parser accepting the
// request's content type. An empty body resolves to nil without consulting
// any parser. When no parser matches, Resolve fails with a 415 Error listing
// the offending content type and every supported one. Decode failures
// propagate unwrapped.
func (r *ParserRegistry) Resolve(headers map[string]string, raw string) (any, error) {
	if raw == "" {
		return nil, nil
	}

	contentType := headers["content-type"]
	for _, p := range r.parsers {
		if p.Matches(contentType) {
			return p.Parse(headers, raw)
		}
	}

	return nil, NewError(http.StatusUnsupportedMediaType, "unsupported media type").
		WithDetails(map[string]any{
			"content_type":          contentType,
			"allowed_content_types": r.ContentTypes(),
		})
}

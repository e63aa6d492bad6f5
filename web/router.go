package web

import (
	"net/http"
	"sort"
)

// Router holds the registered routes and dispatches requests to the first
// matching one. The route table is assembled during application wiring and
// is read-only during request handling, so a Router is safe for concurrent
// use once serving begins.
type Router struct {
	routes []*Route
}

// NewRouter returns an empty router.
func NewRouter() *Router {
	return &Router{}
}

// Register appends a route to the table. For every non-HEAD route a HEAD
// route with the same address is synthesized whose handler answers 200 with
// an empty body, giving every readable resource an implicit existence
// check. The synthesized handler deliberately skips the original handler's
// own logic; an explicit HEAD route registered earlier wins by scan order.
func (r *Router) Register(route *Route) {
	r.routes = append(r.routes, route)

	if route.method != http.MethodHead {
		r.routes = append(r.routes, &Route{
			method:  http.MethodHead,
			address: route.address,
			handler: headHandler,
		})
	}
}

// Handle compiles a route for the given method and pattern and registers
// it. Malformed patterns are reported here, never at request time.
func (r *Router) Handle(method, pattern string, handler Handler) error {
	route, err := NewRoute(method, pattern, handler)
	if err != nil {
		return err
	}
	r.Register(route)
	return nil
}

// Dispatch finds the first route matching the request, in registration
// order, and delegates to it. When no route matches, the response is
// filled with the uniform 404 envelope and no handler is invoked.
func (r *Router) Dispatch(req *Request, res *Response) error {
	for _, route := range r.routes {
		if route.Matches(req) {
			return route.Handle(req, res)
		}
	}

	res.failure(errNotFound())
	return nil
}

// RouteInfo describes a registered route for introspection payloads.
type RouteInfo struct {
	Address string `json:"address" yaml:"address"`
	Method  string `json:"method" yaml:"method"`
}

// verbRank is the fixed verb precedence used by List. Verbs outside the
// table sort last, tie-broken by name.
var verbRank = map[string]int{
	http.MethodHead:   0,
	http.MethodGet:    1,
	http.MethodPost:   2,
	http.MethodPut:    3,
	http.MethodPatch:  4,
	http.MethodDelete: 5,
}

func rankOf(method string) int {
	if rank, ok := verbRank[method]; ok {
		return rank
	}
	return len(verbRank)
}

// List returns all registered routes sorted by address, then verb
// precedence (HEAD, GET, POST, PUT, PATCH, DELETE, anything else last),
// then verb name. The ordering is independent of registration order.
func (r *Router) List() []RouteInfo {
	infos := make([]RouteInfo, 0, len(r.routes))
	for _, route := range r.routes {
		infos = append(infos, RouteInfo{
			Address: route.address.Raw(),
			Method:  route.method,
		})
	}

	sort.SliceStable(infos, func(i, j int) bool {
		if infos[i].Address != infos[j].Address {
			return infos[i].Address < infos[j].Address
		}
		ri, rj := rankOf(infos[i].Method), rankOf(infos[j].Method)
		if ri != rj {
			return ri < rj
		}
		return infos[i].Method < infos[j].Method
	})

	return infos
}

// headHandler answers synthesized HEAD routes.
func headHandler(_ *Request, res *Response, _ map[string]string) error {
	res.Status(http.StatusOK).Empty()
	return nil
}

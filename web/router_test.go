package web

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouterDispatch(t *testing.T) {
	t.Run("first matching route wins", func(t *testing.T) {
		router := NewRouter()
		require.NoError(t, router.Handle(http.MethodGet, "/{anything}", func(_ *Request, res *Response, _ map[string]string) error {
			res.Text("wildcard")
			return nil
		}))
		require.NoError(t, router.Handle(http.MethodGet, "/ping", func(_ *Request, res *Response, _ map[string]string) error {
			res.Text("pong")
			return nil
		}))

		res := NewResponse()
		require.NoError(t, router.Dispatch(newTestRequest(t, http.MethodGet, "/ping"), res))
		assert.Equal(t, "wildcard", res.Body())
	})

	t.Run("no match fills 404 envelope", func(t *testing.T) {
		router := NewRouter()
		require.NoError(t, router.Handle(http.MethodGet, "/ping", func(_ *Request, _ *Response, _ map[string]string) error {
			return nil
		}))

		res := NewResponse()
		require.NoError(t, router.Dispatch(newTestRequest(t, http.MethodGet, "/missing"), res))
		assert.Equal(t, http.StatusNotFound, res.StatusCode())
		assert.JSONEq(t,
			`{"status":404,"error":{"code":"not_found","message":"resource not found"}}`,
			res.Body(),
		)
	})

	t.Run("method mismatch is not a match", func(t *testing.T) {
		router := NewRouter()
		require.NoError(t, router.Handle(http.MethodGet, "/ping", func(_ *Request, res *Response, _ map[string]string) error {
			res.Text("pong")
			return nil
		}))

		res := NewResponse()
		require.NoError(t, router.Dispatch(newTestRequest(t, http.MethodPost, "/ping"), res))
		assert.Equal(t, http.StatusNotFound, res.StatusCode())
	})

	t.Run("malformed pattern fails at registration", func(t *testing.T) {
		router := NewRouter()
		err := router.Handle(http.MethodGet, "/{broken", nil)
		assert.Error(t, err)
		assert.Empty(t, router.List())
	})
}

func TestRouterHeadSynthesis(t *testing.T) {
	t.Run("GET route implies HEAD route", func(t *testing.T) {
		router := NewRouter()
		require.NoError(t, router.Handle(http.MethodGet, "/ping", func(_ *Request, res *Response, _ map[string]string) error {
			res.Text("pong")
			return nil
		}))

		res := NewResponse()
		require.NoError(t, router.Dispatch(newTestRequest(t, http.MethodHead, "/ping"), res))
		assert.Equal(t, http.StatusOK, res.StatusCode())
		assert.Empty(t, res.Body())
	})

	t.Run("every non-HEAD verb gets a HEAD twin", func(t *testing.T) {
		router := NewRouter()
		require.NoError(t, router.Handle(http.MethodDelete, "/users/{id}", func(_ *Request, _ *Response, _ map[string]string) error {
			return nil
		}))

		res := NewResponse()
		require.NoError(t, router.Dispatch(newTestRequest(t, http.MethodHead, "/users/42"), res))
		assert.Equal(t, http.StatusOK, res.StatusCode())
	})

	t.Run("explicit HEAD route is not duplicated", func(t *testing.T) {
		router := NewRouter()
		require.NoError(t, router.Handle(http.MethodHead, "/ping", func(_ *Request, res *Response, _ map[string]string) error {
			res.Header("X-Custom", "yes")
			return nil
		}))

		assert.Equal(t, []RouteInfo{{Address: "/ping", Method: http.MethodHead}}, router.List())

		res := NewResponse()
		require.NoError(t, router.Dispatch(newTestRequest(t, http.MethodHead, "/ping"), res))
		assert.Equal(t, "yes", res.HeaderValue("X-Custom"))
	})
}

func TestRouterList(t *testing.T) {
	build := func(t *testing.T, order []RouteInfo) *Router {
		t.Helper()
		router := NewRouter()
		for _, info := range order {
			route, err := NewRoute(info.Method, info.Address, nil)
			require.NoError(t, err)
			// Register directly to keep the fixture free of synthesized
			// HEAD twins.
			router.routes = append(router.routes, route)
		}
		return router
	}

	expected := []RouteInfo{
		{Address: "/a", Method: "HEAD"},
		{Address: "/a", Method: "GET"},
		{Address: "/a", Method: "POST"},
		{Address: "/a", Method: "PUT"},
		{Address: "/a", Method: "PATCH"},
		{Address: "/a", Method: "DELETE"},
		{Address: "/a", Method: "PURGE"},
		{Address: "/a", Method: "TRACE"},
		{Address: "/b", Method: "GET"},
	}

	t.Run("sorted regardless of registration order", func(t *testing.T) {
		reversed := make([]RouteInfo, len(expected))
		for i, info := range expected {
			reversed[len(expected)-1-i] = info
		}

		router := build(t, reversed)
		assert.Equal(t, expected, router.List())
	})

	t.Run("sorting is idempotent", func(t *testing.T) {
		router := build(t, expected)
		assert.Equal(t, expected, router.List())
		assert.Equal(t, expected, router.List())
	})
}

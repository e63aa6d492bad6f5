package web

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponseDefaults(t *testing.T) {
	res := NewResponse()
	assert.Equal(t, http.StatusOK, res.StatusCode())
	assert.Empty(t, res.Body())
	assert.False(t, res.Finalized())
}

func TestResponseSetters(t *testing.T) {
	t.Run("chained setters", func(t *testing.T) {
		res := NewResponse().
			Status(http.StatusCreated).
			Header("X-Custom", "yes").
			Text("created")

		assert.Equal(t, http.StatusCreated, res.StatusCode())
		assert.Equal(t, "yes", res.HeaderValue("X-Custom"))
		assert.Equal(t, "created", res.Body())
		assert.Equal(t, "text/plain; charset=utf-8", res.HeaderValue("Content-Type"))
	})

	t.Run("json body", func(t *testing.T) {
		res := NewResponse()
		require.NoError(t, res.JSON(map[string]int{"a": 1}))
		assert.Equal(t, `{"a":1}`, res.Body())
		assert.Equal(t, "application/json", res.HeaderValue("Content-Type"))
	})

	t.Run("json marshal failure", func(t *testing.T) {
		res := NewResponse()
		assert.Error(t, res.JSON(func() {}))
		assert.Empty(t, res.Body())
	})

	t.Run("empty clears body", func(t *testing.T) {
		res := NewResponse().Text("data").Empty()
		assert.Empty(t, res.Body())
		assert.Empty(t, res.HeaderValue("Content-Type"))
	})
}

func TestResponseFinalize(t *testing.T) {
	t.Run("writes status headers and body", func(t *testing.T) {
		res := NewResponse().Status(http.StatusTeapot).Header("X-Custom", "yes").Text("short and stout")

		w := httptest.NewRecorder()
		res.Finalize(w)

		assert.Equal(t, http.StatusTeapot, w.Code)
		assert.Equal(t, "yes", w.Header().Get("X-Custom"))
		assert.Equal(t, "15", w.Header().Get("Content-Length"))
		assert.Equal(t, "short and stout", w.Body.String())
	})

	t.Run("204 is bodyless", func(t *testing.T) {
		res := NewResponse().Status(http.StatusNoContent).Text("ignored")

		w := httptest.NewRecorder()
		res.Finalize(w)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())
		assert.Empty(t, w.Header().Get("Content-Length"))
	})

	t.Run("1xx is bodyless", func(t *testing.T) {
		res := NewResponse().Status(http.StatusContinue).Text("ignored")

		w := httptest.NewRecorder()
		res.Finalize(w)
		assert.Empty(t, w.Body.String())
	})

	t.Run("finalization is terminal", func(t *testing.T) {
		res := NewResponse().Text("first")

		w := httptest.NewRecorder()
		res.Finalize(w)
		require.True(t, res.Finalized())

		res.Status(http.StatusInternalServerError).Text("second")
		assert.Equal(t, http.StatusOK, res.StatusCode())
		assert.Equal(t, "first", res.Body())

		second := httptest.NewRecorder()
		res.Finalize(second)
		assert.Empty(t, second.Body.String())
	})
}

func TestResponseFailure(t *testing.T) {
	res := NewResponse()
	res.failure(NewError(http.StatusForbidden, "no access").WithHeader("X-Reason", "policy"))

	assert.Equal(t, http.StatusForbidden, res.StatusCode())
	assert.Equal(t, "policy", res.HeaderValue("X-Reason"))
	assert.JSONEq(t,
		`{"status":403,"error":{"code":"http_error_403","message":"no access"}}`,
		res.Body(),
	)
}

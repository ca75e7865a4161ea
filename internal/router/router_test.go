package router_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/workout-api/internal/pagination"
	"github.com/maxviazov/workout-api/internal/repository"
	"github.com/maxviazov/workout-api/internal/router"
)

type probe struct {
	Status string `json:"status"`
	code   int
}

func (p probe) StatusCode() int { return p.code }

func letters(calls *int) router.SequenceFunc[string] {
	return func(*gin.Context) ([]string, error) {
		*calls++
		return []string{"a", "b", "c", "d", "e"}, nil
	}
}

func serve(t *testing.T, r router.Route, target string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	e := gin.New()
	e.Handle(r.Method, r.Path, r.Handler(nil))
	w := httptest.NewRecorder()
	e.ServeHTTP(w, httptest.NewRequest(r.Method, target, nil))
	return w
}

func TestNegotiate_MarksOnlySequences(t *testing.T) {
	var calls int
	eps := []router.Endpoint{
		router.Single(http.MethodGet, "/items/:id", "get", func(*gin.Context) (any, error) { return "x", nil }),
		router.Sequence(http.MethodGet, "/items", "list", letters(&calls)),
	}
	routes := router.Negotiate(eps, pagination.Options{DefaultSize: 2, MaxSize: 4})
	require.Len(t, routes, 2)

	assert.False(t, routes[0].Paginated)
	assert.Equal(t, router.ResultSingle, routes[0].Result)
	assert.Empty(t, routes[0].Params)

	assert.True(t, routes[1].Paginated)
	assert.Equal(t, router.ResultEnvelope, routes[1].Result)
	assert.Equal(t, []pagination.ParamSpec{
		{Name: "page", In: "query", Default: 1, Minimum: 1},
		{Name: "size", In: "query", Default: 2, Minimum: 1, Maximum: 4},
	}, routes[1].Params)

	// descriptors are read-only to negotiation
	assert.Equal(t, router.ShapeSequence, eps[1].Shape)
	assert.Zero(t, calls)
}

func TestNegotiate_NoSequencesIsNoop(t *testing.T) {
	routes := router.Negotiate(nil, pagination.DefaultOptions())
	assert.Empty(t, routes)

	single := router.Single(http.MethodGet, "/a", "a", func(*gin.Context) (any, error) { return nil, nil })
	routes = router.Negotiate([]router.Endpoint{single}, pagination.Options{})
	require.Len(t, routes, 1)
	assert.False(t, routes[0].Paginated)
}

func TestRouteHandler_Paginates(t *testing.T) {
	var calls int
	routes := router.Negotiate([]router.Endpoint{
		router.Sequence(http.MethodGet, "/items", "list", letters(&calls)),
	}, pagination.DefaultOptions())

	w := serve(t, routes[0], "/items?page=2&size=2")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"items":["c","d"],"total":5,"page":2,"size":2,"pages":3}`, w.Body.String())

	w = serve(t, routes[0], "/items")
	require.Equal(t, http.StatusOK, w.Code)
	var env pagination.Envelope[string]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, 1, env.Page)
	assert.Equal(t, pagination.DefaultSize, env.Size)
	assert.Len(t, env.Items, 5)

	w = serve(t, routes[0], "/items?page=9&size=2")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"items":[],"total":5,"page":9,"size":2,"pages":3}`, w.Body.String())
	assert.Equal(t, 3, calls)
}

func TestRouteHandler_InvalidParamsSkipHandler(t *testing.T) {
	cases := []struct {
		name   string
		target string
		field  string
	}{
		{"page zero", "/items?page=0", "page"},
		{"negative size", "/items?size=-1", "size"},
		{"size above max", "/items?size=101", "size"},
		{"non integer", "/items?page=two", "page"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var calls int
			routes := router.Negotiate([]router.Endpoint{
				router.Sequence(http.MethodGet, "/items", "list", letters(&calls)),
			}, pagination.DefaultOptions())

			w := serve(t, routes[0], tc.target)
			require.Equal(t, http.StatusBadRequest, w.Code)
			var body struct {
				Error       string `json:"error"`
				FieldErrors []struct {
					Field string `json:"field"`
				} `json:"field_errors"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, "invalid_pagination", body.Error)
			require.Len(t, body.FieldErrors, 1)
			assert.Equal(t, tc.field, body.FieldErrors[0].Field)
			assert.Zero(t, calls, "handler must not run on invalid pagination")
		})
	}
}

func TestRouteHandler_SequenceError(t *testing.T) {
	ep := router.Sequence[int](http.MethodGet, "/items", "list", func(*gin.Context) ([]int, error) {
		return nil, errors.New("db down")
	})
	routes := router.Negotiate([]router.Endpoint{ep}, pagination.DefaultOptions())
	w := serve(t, routes[0], "/items")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"internal_error"}`, w.Body.String())
}

func TestRouteHandler_Single(t *testing.T) {
	t.Run("status", func(t *testing.T) {
		ep := router.Single(http.MethodPost, "/items", "create", func(*gin.Context) (any, error) {
			return gin.H{"id": 1}, nil
		}).WithStatus(http.StatusCreated)
		w := serve(t, router.Negotiate([]router.Endpoint{ep}, pagination.Options{})[0], "/items")
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.JSONEq(t, `{"id":1}`, w.Body.String())
	})
	t.Run("no content", func(t *testing.T) {
		ep := router.Single(http.MethodDelete, "/items/:id", "delete", func(*gin.Context) (any, error) {
			return nil, nil
		}).WithStatus(http.StatusNoContent)
		w := serve(t, router.Negotiate([]router.Endpoint{ep}, pagination.Options{})[0], "/items/1")
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())
	})
	t.Run("status coder overrides", func(t *testing.T) {
		ep := router.Single(http.MethodGet, "/ready", "ready", func(*gin.Context) (any, error) {
			return probe{Status: "unavailable", code: http.StatusServiceUnavailable}, nil
		})
		w := serve(t, router.Negotiate([]router.Endpoint{ep}, pagination.Options{})[0], "/ready")
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.JSONEq(t, `{"status":"unavailable"}`, w.Body.String())
	})
	t.Run("domain error", func(t *testing.T) {
		ep := router.Single(http.MethodGet, "/items/:id", "get", func(*gin.Context) (any, error) {
			return nil, repository.ErrNotFound
		})
		w := serve(t, router.Negotiate([]router.Endpoint{ep}, pagination.Options{})[0], "/items/1")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
	t.Run("native", func(t *testing.T) {
		ep := router.Native(http.MethodGet, "/raw", "raw", func(c *gin.Context) {
			c.Data(http.StatusOK, "text/plain", []byte("hi"))
		})
		w := serve(t, router.Negotiate([]router.Endpoint{ep}, pagination.Options{})[0], "/raw")
		assert.Equal(t, "hi", w.Body.String())
	})
}

func TestPrefixAndMerge(t *testing.T) {
	nop := func(*gin.Context) (any, error) { return nil, nil }
	api := router.Table{
		router.Single(http.MethodGet, "/athletes", "a", nop),
		router.Single(http.MethodGet, "categories", "b", nop),
		router.Single(http.MethodGet, "", "c", nop),
	}
	root := router.Table{router.Single(http.MethodGet, "/live", "live", nop)}

	eps := router.Merge(root, router.Prefix("/api/v1/", api), nil)
	var keys []string
	for _, e := range eps {
		keys = append(keys, e.Key())
	}
	assert.Equal(t, []string{"GET /live", "GET /api/v1/athletes", "GET /api/v1/categories", "GET /api/v1"}, keys)
	// Prefix does not touch the wrapped table
	assert.Equal(t, "/athletes", api[0].Path)
}

func TestEndpointCheck(t *testing.T) {
	nop := func(*gin.Context) (any, error) { return nil, nil }
	assert.NoError(t, router.Single("GET", "/ok", "ok", nop).Check())
	assert.Error(t, router.Single("", "/x", "x", nop).Check())
	assert.Error(t, router.Single("GET", "x", "x", nop).Check())
	assert.Error(t, router.Endpoint{Method: "GET", Path: "/x"}.Check())
	assert.Error(t, router.Single("GET", "/x", "x", nil).Check())
	assert.Equal(t, "sequence", router.ShapeSequence.String())
}

type sizeRecorder struct{ sizes map[string][]int }

func (s *sizeRecorder) ObservePageSize(route string, size int) {
	if s.sizes == nil {
		s.sizes = map[string][]int{}
	}
	s.sizes[route] = append(s.sizes[route], size)
}

func TestRouteHandler_ObservesValidSizesOnly(t *testing.T) {
	var calls int
	route := router.Negotiate([]router.Endpoint{
		router.Sequence(http.MethodGet, "/items/:kind", "list", letters(&calls)),
	}, pagination.DefaultOptions())[0]

	obs := &sizeRecorder{}
	gin.SetMode(gin.TestMode)
	e := gin.New()
	e.GET(route.Path, route.Handler(obs))

	for _, target := range []string{"/items/a?size=5", "/items/b", "/items/a?size=500"} {
		e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, target, nil))
	}
	assert.Equal(t, map[string][]int{"/items/:kind": {5, 50}}, obs.sizes)
}

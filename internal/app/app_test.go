package app_test

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/workout-api/internal/app"
	"github.com/maxviazov/workout-api/internal/config"
	"github.com/maxviazov/workout-api/internal/metrics"
	"github.com/maxviazov/workout-api/internal/pagination"
	"github.com/maxviazov/workout-api/internal/router"
)

func init() { gin.SetMode(gin.TestMode) }

func ok(*gin.Context) (any, error) { return gin.H{"ok": true}, nil }

func numbers(*gin.Context) ([]int, error) { return []int{1, 2, 3, 4, 5, 6, 7}, nil }

func sampleTable() router.Table {
	return router.Table{
		router.Single(http.MethodGet, "/things/:id", "things.get", ok),
		router.Sequence[int](http.MethodGet, "/things", "things.list", numbers),
	}
}

func TestCompose_NegotiatesAndServes(t *testing.T) {
	a, err := app.Compose(app.Options{Title: "Test", Version: "1.2.3"}, router.Prefix("/api", sampleTable()))
	require.NoError(t, err)
	assert.Equal(t, "Test", a.Title())
	assert.Equal(t, "1.2.3", a.Version())

	routes := a.Routes()
	require.Len(t, routes, 2)
	assert.False(t, routes[0].Paginated)
	assert.True(t, routes[1].Paginated)
	assert.Equal(t, "GET /api/things", routes[1].Key())

	w := httptest.NewRecorder()
	a.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/things?page=3&size=3", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"items":[7],"total":7,"page":3,"size":3,"pages":3}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Correlation-ID"))

	w = httptest.NewRecorder()
	a.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/things/1", nil))
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())
}

func TestCompose_RoutesReturnsCopy(t *testing.T) {
	a, err := app.Compose(app.Options{}, sampleTable())
	require.NoError(t, err)
	assert.Equal(t, "WorkoutApi", a.Title())

	r := a.Routes()
	r[0].Path = "/mutated"
	assert.Equal(t, "/things/:id", a.Routes()[0].Path)
}

func TestCompose_NotFoundAndMethodNotAllowed(t *testing.T) {
	a, err := app.Compose(app.Options{}, sampleTable())
	require.NoError(t, err)

	w := httptest.NewRecorder()
	a.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"not_found","message":"Not Found"}`, w.Body.String())

	w = httptest.NewRecorder()
	a.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/things", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.JSONEq(t, `{"error":"method_not_allowed","message":"Method Not Allowed"}`, w.Body.String())
}

func TestCompose_ConfigurationErrors(t *testing.T) {
	cases := []struct {
		name    string
		opts    app.Options
		sources []router.Source
	}{
		{
			name:    "duplicate route across sources",
			sources: []router.Source{sampleTable(), router.Table{router.Single(http.MethodGet, "/things/:id", "dup", ok)}},
		},
		{
			name:    "duplicate after method normalization",
			sources: []router.Source{router.Table{router.Single("get", "/x", "a", ok), router.Single("GET", "/x", "b", ok)}},
		},
		{
			name:    "conflicting wildcard",
			sources: []router.Source{router.Table{router.Single(http.MethodGet, "/x/:id", "a", ok), router.Single(http.MethodGet, "/x/:name", "b", ok)}},
		},
		{
			name:    "empty method",
			sources: []router.Source{router.Table{router.Single("", "/x", "a", ok)}},
		},
		{
			name:    "relative path",
			sources: []router.Source{router.Table{router.Single(http.MethodGet, "x", "a", ok)}},
		},
		{
			name:    "missing handler",
			sources: []router.Source{router.Table{{Method: http.MethodGet, Path: "/x"}}},
		},
		{
			name: "negative default size",
			opts: app.Options{Pagination: pagination.Options{DefaultSize: -1, MaxSize: 10}},
		},
		{
			name: "default above max",
			opts: app.Options{Pagination: pagination.Options{DefaultSize: 20, MaxSize: 10}},
		},
		{
			name: "default above implicit max",
			opts: app.Options{Pagination: pagination.Options{DefaultSize: 500}},
		},
		{
			name:    "metrics path taken",
			opts:    app.Options{Metrics: metrics.New()},
			sources: []router.Source{router.Table{router.Single(http.MethodGet, app.MetricsPath, "mine", ok)}},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a, err := app.Compose(tc.opts, tc.sources...)
			require.Error(t, err)
			assert.Nil(t, a)
			assert.ErrorIs(t, err, app.ErrConfiguration)
			var ce *app.ConfigurationError
			require.True(t, errors.As(err, &ce))
			assert.NotEmpty(t, ce.Op)
		})
	}
}

func TestCompose_EmptyTableIsValid(t *testing.T) {
	a, err := app.Compose(app.Options{})
	require.NoError(t, err)
	assert.Empty(t, a.Routes())
}

func TestCompose_Metrics(t *testing.T) {
	m := metrics.New()
	a, err := app.Compose(app.Options{Metrics: m}, sampleTable())
	require.NoError(t, err)

	a.Handler().ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/things?size=4", nil))

	w := httptest.NewRecorder()
	a.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, app.MetricsPath, nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `workout_http_requests_total{method="GET",route="/things",status="200"} 1`)
	assert.Contains(t, w.Body.String(), `workout_pagination_page_size_sum{route="/things"} 4`)
}

func TestCompose_MetricsCountPanics(t *testing.T) {
	m := metrics.New()
	boom := func(*gin.Context) (any, error) { panic("boom") }
	a, err := app.Compose(app.Options{Metrics: m}, router.Table{
		router.Single(http.MethodGet, "/boom", "boom", boom),
	})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	a.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	require.Equal(t, http.StatusInternalServerError, w.Code)

	w = httptest.NewRecorder()
	a.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, app.MetricsPath, nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `workout_http_requests_total{method="GET",route="/boom",status="500"} 1`)
	assert.Contains(t, w.Body.String(), `workout_http_request_duration_seconds_count{method="GET",route="/boom",status="500"} 1`)
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Name: "workout-api", Port: 0, ReadTimeout: 5, WriteTimeout: 5, ShutdownTimeout: 1},
		CORS: config.CORSConfig{
			AllowedOrigins: []string{"https://coach.example"},
			AllowedMethods: []string{http.MethodGet},
			AllowedHeaders: []string{"Content-Type"},
		},
	}
}

func TestServer_CORS(t *testing.T) {
	a, err := app.Compose(app.Options{}, sampleTable())
	require.NoError(t, err)
	srv := app.NewServer(a, testConfig(), zerolog.New(io.Discard))

	req := httptest.NewRequest(http.MethodGet, "/things", nil)
	req.Header.Set("Origin", "https://coach.example")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://coach.example", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Expose-Headers"), "X-Correlation-Id")

	req = httptest.NewRequest(http.MethodGet, "/things", nil)
	req.Header.Set("Origin", "https://evil.example")
	w = httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestServer_ServeAndShutdown(t *testing.T) {
	a, err := app.Compose(app.Options{}, sampleTable())
	require.NoError(t, err)
	srv := app.NewServer(a, testConfig(), zerolog.New(io.Discard))

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/things/1")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

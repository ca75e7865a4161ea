// Package app composes route sources into a single ready-to-serve HTTP application.
package app

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/maxviazov/workout-api/internal/metrics"
	"github.com/maxviazov/workout-api/internal/middleware"
	"github.com/maxviazov/workout-api/internal/pagination"
	"github.com/maxviazov/workout-api/internal/router"
	"github.com/maxviazov/workout-api/pkg/response"
)

// MetricsPath is where the Prometheus exposition is mounted when metrics are enabled.
const MetricsPath = "/metrics"

// Options configures composition. Zero values are usable: default pagination bounds,
// a silent logger, uuid correlation ids and no metrics.
type Options struct {
	Title      string
	Version    string
	Pagination pagination.Options
	Logger     zerolog.Logger
	// Metrics, when set, instruments every route and mounts MetricsPath.
	Metrics *metrics.Metrics
	// IDs generates correlation ids for requests that do not carry one.
	IDs middleware.Generator
}

// App is the composed application. It is immutable once Compose returns.
type App struct {
	title   string
	version string
	engine  *gin.Engine
	routes  []router.Route
}

// Compose merges the sources, negotiates pagination over the whole table and builds the
// dispatch engine. Duplicate or malformed routes and invalid pagination bounds are reported
// as *ConfigurationError.
func Compose(opts Options, sources ...router.Source) (*App, error) {
	if err := validator.New().Struct(opts.Pagination); err != nil {
		return nil, configErr("pagination options", err)
	}
	pg := opts.Pagination.Normalized()
	if pg.DefaultSize > pg.MaxSize {
		return nil, configErr("pagination options", fmt.Errorf("default_size %d exceeds max_size %d", pg.DefaultSize, pg.MaxSize))
	}

	endpoints := router.Merge(sources...)
	if opts.Metrics != nil {
		endpoints = append(endpoints, router.Native(http.MethodGet, MetricsPath, "metrics", gin.WrapH(opts.Metrics.Handler())))
	}

	seen := make(map[string]string, len(endpoints))
	for i := range endpoints {
		e := &endpoints[i]
		e.Method = strings.ToUpper(strings.TrimSpace(e.Method))
		if err := e.Check(); err != nil {
			return nil, configErr("register route", err)
		}
		if prev, dup := seen[e.Key()]; dup {
			return nil, configErr("register route", fmt.Errorf("duplicate route %s (%q and %q)", e.Key(), prev, e.Name))
		}
		seen[e.Key()] = e.Name
	}

	routes := router.Negotiate(endpoints, pg)
	engine, err := buildEngine(opts, routes)
	if err != nil {
		return nil, err
	}

	title := opts.Title
	if title == "" {
		title = "WorkoutApi"
	}
	return &App{title: title, version: opts.Version, engine: engine, routes: routes}, nil
}

func buildEngine(opts Options, routes []router.Route) (engine *gin.Engine, err error) {
	engine = gin.New()
	engine.HandleMethodNotAllowed = true
	chain := []gin.HandlerFunc{
		middleware.CorrelationID(opts.IDs, opts.Logger),
		middleware.RequestLogger(opts.Logger),
	}
	var obs router.PageObserver
	if opts.Metrics != nil {
		// Outside Recovery, so panicking requests are counted with their 500.
		chain = append(chain, opts.Metrics.Middleware())
		obs = opts.Metrics
	}
	engine.Use(append(chain, middleware.Recovery(opts.Logger))...)

	engine.NoRoute(func(c *gin.Context) { response.WriteStatus(c, http.StatusNotFound, "not_found") })
	engine.NoMethod(func(c *gin.Context) { response.WriteStatus(c, http.StatusMethodNotAllowed, "method_not_allowed") })

	// gin panics on conflicting wildcards; that is still a startup misconfiguration.
	var current string
	defer func() {
		if r := recover(); r != nil {
			engine, err = nil, configErr("register route", fmt.Errorf("%s: %v", current, r))
		}
	}()
	for _, r := range routes {
		current = r.Key()
		engine.Handle(r.Method, r.Path, r.Handler(obs))
	}
	return engine, nil
}

// Handler returns the HTTP handler serving all composed routes.
func (a *App) Handler() http.Handler { return a.engine }

// Routes returns a copy of the negotiated route table in registration order.
func (a *App) Routes() []router.Route {
	out := make([]router.Route, len(a.routes))
	copy(out, a.routes)
	return out
}

func (a *App) Title() string   { return a.title }
func (a *App) Version() string { return a.version }

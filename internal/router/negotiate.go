package router

import (
	"github.com/gin-gonic/gin"
	"github.com/maxviazov/workout-api/internal/pagination"
	"github.com/maxviazov/workout-api/pkg/response"
)

// Result is the response contract a route ends up with after negotiation.
type Result string

const (
	ResultSingle   Result = "single"
	ResultEnvelope Result = "envelope"
)

// Route is an endpoint after negotiation.
type Route struct {
	Endpoint
	Paginated bool
	Params    []pagination.ParamSpec
	Result    Result

	opts pagination.Options
}

// StatusCoder lets a handler result pick its own response status (e.g. a failed readiness probe).
type StatusCoder interface {
	StatusCode() int
}

// PageObserver is notified of the window size each paginated request asks for.
type PageObserver interface {
	ObservePageSize(route string, size int)
}

// Negotiate annotates endpoints: sequence-shaped ones become paginated and accept page/size,
// everything else passes through unchanged. The input slice is not modified.
func Negotiate(endpoints []Endpoint, opts pagination.Options) []Route {
	opts = opts.Normalized()
	out := make([]Route, 0, len(endpoints))
	for _, e := range endpoints {
		r := Route{Endpoint: e, Result: ResultSingle}
		if e.Shape == ShapeSequence {
			r.Paginated = true
			r.Params = opts.QueryParams()
			r.Result = ResultEnvelope
			r.opts = opts
		}
		out = append(out, r)
	}
	return out
}

// Handler compiles the route into a gin handler. Paginated routes validate page and size
// before the endpoint handler is invoked. obs may be nil.
func (r Route) Handler(obs PageObserver) gin.HandlerFunc {
	status := r.successStatus()
	if r.Paginated {
		return func(c *gin.Context) {
			p, err := r.opts.Parse(c.Request.URL.Query())
			if err != nil {
				response.WriteError(c, err)
				return
			}
			if obs != nil {
				obs.ObservePageSize(r.Path, p.Size)
			}
			env, err := r.page(c, p, r.opts)
			if err != nil {
				response.WriteError(c, err)
				return
			}
			response.WriteData(c, status, env)
		}
	}
	if r.native != nil {
		return r.native
	}
	return func(c *gin.Context) {
		res, err := r.single(c)
		if err != nil {
			response.WriteError(c, err)
			return
		}
		if sc, ok := res.(StatusCoder); ok && sc.StatusCode() != 0 {
			response.WriteData(c, sc.StatusCode(), res)
			return
		}
		response.WriteData(c, status, res)
	}
}

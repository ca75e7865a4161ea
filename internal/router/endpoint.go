// Package router describes endpoints independently of the HTTP engine and decides, once at
// startup, which of them are served as paginated envelopes.
package router

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/maxviazov/workout-api/internal/pagination"
)

// Shape is the declared result shape of an endpoint.
type Shape int

const (
	// ShapeSingle endpoints return one value that is serialized as is.
	ShapeSingle Shape = iota
	// ShapeSequence endpoints return the full ordered result set; it is paginated on the way out.
	ShapeSequence
)

func (s Shape) String() string {
	switch s {
	case ShapeSingle:
		return "single"
	case ShapeSequence:
		return "sequence"
	default:
		return "unknown"
	}
}

// SingleFunc handles a single-value endpoint.
type SingleFunc func(c *gin.Context) (any, error)

// SequenceFunc handles a sequence endpoint and returns the complete, already materialized list.
type SequenceFunc[T any] func(c *gin.Context) ([]T, error)

// pageFunc is a SequenceFunc with its element type erased behind Paginate.
type pageFunc func(c *gin.Context, p pagination.Params, opts pagination.Options) (any, error)

// Endpoint is the registration record binding METHOD path to a handler and its result shape.
// Build it with Single or Sequence; the zero value has no handler.
type Endpoint struct {
	Method string
	Path   string
	Name   string
	Shape  Shape
	// Status is the success status; 0 means 200.
	Status int

	single SingleFunc
	page   pageFunc
	native gin.HandlerFunc
}

// Single declares an endpoint returning one value.
func Single(method, path, name string, h SingleFunc) Endpoint {
	return Endpoint{Method: method, Path: path, Name: name, Shape: ShapeSingle, single: h}
}

// Native declares a single-value endpoint that writes its own response, such as an
// exposition format or an embedded document.
func Native(method, path, name string, h gin.HandlerFunc) Endpoint {
	return Endpoint{Method: method, Path: path, Name: name, Shape: ShapeSingle, native: h}
}

// Sequence declares an endpoint returning a list of T. The declaration is what marks the
// endpoint for pagination; result values are never inspected at runtime.
func Sequence[T any](method, path, name string, h SequenceFunc[T]) Endpoint {
	return Endpoint{
		Method: method,
		Path:   path,
		Name:   name,
		Shape:  ShapeSequence,
		page: func(c *gin.Context, p pagination.Params, opts pagination.Options) (any, error) {
			items, err := h(c)
			if err != nil {
				return nil, err
			}
			return pagination.Paginate(items, p, opts)
		},
	}
}

// WithStatus returns a copy of e answering successful calls with status.
func (e Endpoint) WithStatus(status int) Endpoint {
	e.Status = status
	return e
}

// Key identifies the endpoint in a route table, e.g. "GET /api/v1/athletes".
func (e Endpoint) Key() string {
	return strings.ToUpper(e.Method) + " " + e.Path
}

func (e Endpoint) successStatus() int {
	if e.Status == 0 {
		return http.StatusOK
	}
	return e.Status
}

// Check reports a descriptor that cannot be registered.
func (e Endpoint) Check() error {
	switch {
	case strings.TrimSpace(e.Method) == "":
		return fmt.Errorf("endpoint %q: empty method", e.Name)
	case !strings.HasPrefix(e.Path, "/"):
		return fmt.Errorf("endpoint %q: path %q must start with /", e.Name, e.Path)
	case !e.hasHandler():
		return fmt.Errorf("endpoint %q (%s): no handler", e.Name, e.Key())
	}
	return nil
}

func (e Endpoint) hasHandler() bool {
	switch e.Shape {
	case ShapeSingle:
		return e.single != nil || e.native != nil
	case ShapeSequence:
		return e.page != nil
	default:
		return false
	}
}

// Source contributes endpoints to the application.
type Source interface {
	Routes() []Endpoint
}

// Table is a static Source.
type Table []Endpoint

func (t Table) Routes() []Endpoint { return t }

// Prefix mounts every endpoint of src under prefix.
func Prefix(prefix string, src Source) Source {
	return prefixed{prefix: strings.TrimRight(prefix, "/"), src: src}
}

type prefixed struct {
	prefix string
	src    Source
}

func (p prefixed) Routes() []Endpoint {
	in := p.src.Routes()
	out := make([]Endpoint, 0, len(in))
	for _, e := range in {
		switch {
		case e.Path == "" || e.Path == "/":
			e.Path = p.prefix
		case strings.HasPrefix(e.Path, "/"):
			e.Path = p.prefix + e.Path
		default:
			e.Path = p.prefix + "/" + e.Path
		}
		out = append(out, e)
	}
	return out
}

// Merge concatenates the endpoints of several sources in order.
func Merge(sources ...Source) []Endpoint {
	var out []Endpoint
	for _, s := range sources {
		if s == nil {
			continue
		}
		out = append(out, s.Routes()...)
	}
	return out
}

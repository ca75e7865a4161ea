// Package pagination turns fully materialized result sequences into page envelopes.
// Parameters come from the query string; the envelope shape is fixed so clients can rely on it.
package pagination

import (
	"strconv"
)

const (
	// PageParam and SizeParam are the query parameter names accepted by paginated routes.
	PageParam = "page"
	SizeParam = "size"

	DefaultPage    = 1
	DefaultSize    = 50
	DefaultMaxSize = 100
)

// Options carries the negotiated size bounds. Zero values fall back to the package defaults.
type Options struct {
	DefaultSize int `mapstructure:"default_size" json:"default_size" validate:"omitempty,gte=1"`
	MaxSize     int `mapstructure:"max_size" json:"max_size" validate:"omitempty,gte=1,gtefield=DefaultSize"`
}

// DefaultOptions returns size 50 with a cap of 100.
func DefaultOptions() Options {
	return Options{DefaultSize: DefaultSize, MaxSize: DefaultMaxSize}
}

// Normalized fills zero values with the package defaults.
func (o Options) Normalized() Options {
	if o.MaxSize <= 0 {
		o.MaxSize = DefaultMaxSize
	}
	if o.DefaultSize <= 0 {
		o.DefaultSize = DefaultSize
		if o.DefaultSize > o.MaxSize {
			o.DefaultSize = o.MaxSize
		}
	}
	return o
}

// Params is the per-request page window.
type Params struct {
	Page int `json:"page"`
	Size int `json:"size"`
}

// Defaults returns the params used when the request carries neither page nor size.
func (o Options) Defaults() Params {
	o = o.Normalized()
	return Params{Page: DefaultPage, Size: o.DefaultSize}
}

// Validate reports the first out-of-bounds parameter.
func (o Options) Validate(p Params) error {
	o = o.Normalized()
	if p.Page < 1 {
		return newParameterError(PageParam, strconv.Itoa(p.Page), "must be >= 1")
	}
	if p.Size < 1 {
		return newParameterError(SizeParam, strconv.Itoa(p.Size), "must be >= 1")
	}
	if p.Size > o.MaxSize {
		return newParameterError(SizeParam, strconv.Itoa(p.Size), "must be <= "+strconv.Itoa(o.MaxSize))
	}
	return nil
}

// ParamSpec describes one query parameter a paginated route accepts.
type ParamSpec struct {
	Name    string `json:"name"`
	In      string `json:"in"`
	Default int    `json:"default"`
	Minimum int    `json:"minimum"`
	Maximum int    `json:"maximum,omitempty"`
}

// QueryParams lists the parameter contract attached to every paginated route.
func (o Options) QueryParams() []ParamSpec {
	o = o.Normalized()
	return []ParamSpec{
		{Name: PageParam, In: "query", Default: DefaultPage, Minimum: 1},
		{Name: SizeParam, In: "query", Default: o.DefaultSize, Minimum: 1, Maximum: o.MaxSize},
	}
}

// Package middleware holds the gin middleware shared by every route: correlation ids,
// request logging and panic recovery.
package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	// HeaderCorrelationID is the canonical header used to track requests end-to-end.
	HeaderCorrelationID = "X-Correlation-ID"
	// HeaderRequestID is an accepted alternative set by some proxies.
	HeaderRequestID = "X-Request-ID"

	maxCorrelationIDLen = 128
	correlationKey      = "correlation_id"
)

// Generator produces new correlation ids.
type Generator interface {
	Generate() string
}

// UUIDGenerator generates random (v4) UUIDs.
type UUIDGenerator struct{}

func (UUIDGenerator) Generate() string { return uuid.NewString() }

type ctxKey struct{}

func normalizeCID(v string) string {
	v = strings.TrimSpace(v)
	if v == "" || strings.ContainsAny(v, "\r\n") {
		return ""
	}
	if len(v) > maxCorrelationIDLen {
		v = v[:maxCorrelationIDLen]
	}
	return v
}

// CorrelationID reuses the caller's correlation id (or request id) and generates one otherwise.
// The id is echoed in the response and a logger carrying it is attached to the request context.
func CorrelationID(gen Generator, base zerolog.Logger) gin.HandlerFunc {
	if gen == nil {
		gen = UUIDGenerator{}
	}
	return func(c *gin.Context) {
		cid := normalizeCID(c.GetHeader(HeaderCorrelationID))
		if cid == "" {
			cid = normalizeCID(c.GetHeader(HeaderRequestID))
		}
		if cid == "" {
			cid = gen.Generate()
		}

		c.Header(HeaderCorrelationID, cid)
		c.Set(correlationKey, cid)

		l := base.With().Str(correlationKey, cid).Logger()
		ctx := context.WithValue(c.Request.Context(), ctxKey{}, cid)
		c.Request = c.Request.WithContext(l.WithContext(ctx))
		c.Next()
	}
}

// CorrelationIDFrom returns the id stored by CorrelationID, or "".
func CorrelationIDFrom(ctx context.Context) string {
	if v, ok := ctx.Value(ctxKey{}).(string); ok {
		return v
	}
	return ""
}

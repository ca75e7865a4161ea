package handler

import (
	_ "embed"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maxviazov/workout-api/api"
	"github.com/maxviazov/workout-api/internal/router"
)

// Minimal HTML that loads Swagger UI from a CDN and points to /openapi.yaml.
// This avoids bundling assets and keeps the binary small.
//
//go:embed swagger.html
var swaggerHTML []byte

// DocsHandler serves the OpenAPI document and a Swagger UI page at the root.
type DocsHandler struct{}

func (DocsHandler) Routes() []router.Endpoint {
	return []router.Endpoint{
		router.Native(http.MethodGet, "/openapi.yaml", "docs.openapi", func(c *gin.Context) {
			c.Data(http.StatusOK, "application/yaml; charset=utf-8", api.OpenAPI)
		}),
		router.Native(http.MethodGet, "/docs", "docs.ui", func(c *gin.Context) {
			c.Data(http.StatusOK, "text/html; charset=utf-8", swaggerHTML)
		}),
	}
}

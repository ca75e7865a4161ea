package response_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/workout-api/internal/pagination"
	"github.com/maxviazov/workout-api/internal/repository"
	"github.com/maxviazov/workout-api/internal/service"
	"github.com/maxviazov/workout-api/pkg/response"
)

func TestMapError(t *testing.T) {
	_, pageErr := pagination.DefaultOptions().Parse(url.Values{"page": {"0"}})
	require.Error(t, pageErr)

	cases := []struct {
		name      string
		in        error
		wantCode  int
		wantErr   string
		wantField string
	}{
		{"invalid_input", service.NewInvalidInputError([]service.FieldError{{Field: "name", Message: "bad"}}), 400, "invalid_input", "name"},
		{"invalid_pagination", pageErr, 400, "invalid_pagination", "page"},
		{"wrapped_pagination", fmt.Errorf("list: %w", pageErr), 400, "invalid_pagination", "page"},
		{"not_found", repository.ErrNotFound, 404, "not_found", ""},
		{"wrapped_not_found", fmt.Errorf("get athlete: %w", repository.ErrNotFound), 404, "not_found", ""},
		{"already_exists", repository.ErrAlreadyExists, 409, "already_exists", ""},
		{"conflict", repository.ErrConflict, 409, "conflict", ""},
		{"internal", errors.New("boom"), 500, "internal_error", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, payload := response.MapError(tc.in)
			assert.Equal(t, tc.wantCode, code)
			assert.Equal(t, tc.wantErr, payload.Error)
			if tc.wantField != "" {
				require.Len(t, payload.FieldErrors, 1)
				assert.Equal(t, tc.wantField, payload.FieldErrors[0].Field)
			}
		})
	}
}

func TestMapError_InternalHidesDetails(t *testing.T) {
	_, payload := response.MapError(errors.New("dial tcp 10.0.0.1:5432: connection refused"))
	assert.Empty(t, payload.Message)
}

func TestWriteData_NoContent(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.DELETE("/x", func(c *gin.Context) { response.WriteData(c, http.StatusNoContent, gin.H{"ignored": true}) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/x", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestWriteError_AbortsAndRecords(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	var recorded int
	r.Use(func(c *gin.Context) {
		c.Next()
		recorded = len(c.Errors)
	})
	r.GET("/x", func(c *gin.Context) { response.WriteError(c, repository.ErrNotFound) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"not_found"}`, w.Body.String())
	assert.Equal(t, 1, recorded)
}

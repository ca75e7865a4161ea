package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maxviazov/workout-api/internal/model"
	"github.com/maxviazov/workout-api/internal/router"
	"github.com/maxviazov/workout-api/internal/service"
)

type CategoryHandler struct {
	svc service.CategoryService
}

func NewCategoryHandler(svc service.CategoryService) *CategoryHandler {
	useJSONFieldNames()
	return &CategoryHandler{svc: svc}
}

func (h *CategoryHandler) Routes() []router.Endpoint {
	return []router.Endpoint{
		router.Single(http.MethodPost, "/categories", "categories.create", h.create).WithStatus(http.StatusCreated),
		router.Sequence[model.Category](http.MethodGet, "/categories", "categories.list", h.list),
		router.Single(http.MethodGet, "/categories/:id", "categories.get", h.getByID),
	}
}

type createCategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

func (h *CategoryHandler) create(c *gin.Context) (any, error) {
	var req createCategoryRequest
	if err := bindJSON(c, &req); err != nil {
		return nil, err
	}
	return h.svc.CreateCategory(c.Request.Context(), req.Name)
}

func (h *CategoryHandler) getByID(c *gin.Context) (any, error) {
	id, err := pathID(c)
	if err != nil {
		return nil, err
	}
	return h.svc.GetCategory(c.Request.Context(), id)
}

func (h *CategoryHandler) list(c *gin.Context) ([]model.Category, error) {
	return h.svc.ListCategories(c.Request.Context())
}

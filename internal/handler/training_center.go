package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maxviazov/workout-api/internal/model"
	"github.com/maxviazov/workout-api/internal/router"
	"github.com/maxviazov/workout-api/internal/service"
)

type TrainingCenterHandler struct {
	svc service.TrainingCenterService
}

func NewTrainingCenterHandler(svc service.TrainingCenterService) *TrainingCenterHandler {
	useJSONFieldNames()
	return &TrainingCenterHandler{svc: svc}
}

func (h *TrainingCenterHandler) Routes() []router.Endpoint {
	return []router.Endpoint{
		router.Single(http.MethodPost, "/training-centers", "training_centers.create", h.create).WithStatus(http.StatusCreated),
		router.Sequence[model.TrainingCenter](http.MethodGet, "/training-centers", "training_centers.list", h.list),
		router.Single(http.MethodGet, "/training-centers/:id", "training_centers.get", h.getByID),
	}
}

type createTrainingCenterRequest struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address" binding:"required"`
	Owner   string `json:"owner" binding:"required"`
}

func (h *TrainingCenterHandler) create(c *gin.Context) (any, error) {
	var req createTrainingCenterRequest
	if err := bindJSON(c, &req); err != nil {
		return nil, err
	}
	return h.svc.CreateTrainingCenter(c.Request.Context(), model.TrainingCenter{
		Name:    req.Name,
		Address: req.Address,
		Owner:   req.Owner,
	})
}

func (h *TrainingCenterHandler) getByID(c *gin.Context) (any, error) {
	id, err := pathID(c)
	if err != nil {
		return nil, err
	}
	return h.svc.GetTrainingCenter(c.Request.Context(), id)
}

func (h *TrainingCenterHandler) list(c *gin.Context) ([]model.TrainingCenter, error) {
	return h.svc.ListTrainingCenters(c.Request.Context())
}

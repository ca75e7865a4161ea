package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maxviazov/workout-api/internal/model"
	"github.com/maxviazov/workout-api/internal/router"
	"github.com/maxviazov/workout-api/internal/service"
)

type AthleteHandler struct {
	svc service.AthleteService
}

func NewAthleteHandler(svc service.AthleteService) *AthleteHandler {
	useJSONFieldNames()
	return &AthleteHandler{svc: svc}
}

func (h *AthleteHandler) Routes() []router.Endpoint {
	return []router.Endpoint{
		router.Single(http.MethodPost, "/athletes", "athletes.create", h.create).WithStatus(http.StatusCreated),
		// Listing returns summaries; filters narrow the set before pagination.
		router.Sequence[model.AthleteSummary](http.MethodGet, "/athletes", "athletes.list", h.list),
		router.Single(http.MethodGet, "/athletes/:id", "athletes.get", h.getByID),
		router.Single(http.MethodPatch, "/athletes/:id", "athletes.update", h.update),
		router.Single(http.MethodDelete, "/athletes/:id", "athletes.delete", h.delete).WithStatus(http.StatusNoContent),
	}
}

type namedRefRequest struct {
	Name string `json:"name" binding:"required"`
}

type createAthleteRequest struct {
	Name           string          `json:"name" binding:"required"`
	CPF            string          `json:"cpf" binding:"required"`
	Age            int             `json:"age"`
	Weight         float64         `json:"weight"`
	Height         float64         `json:"height"`
	Sex            string          `json:"sex" binding:"required"`
	Category       namedRefRequest `json:"category"`
	TrainingCenter namedRefRequest `json:"training_center"`
}

type updateAthleteRequest struct {
	Name *string `json:"name" binding:"omitempty,max=50"`
	Age  *int    `json:"age" binding:"omitempty,gt=0"`
}

type listAthletesQuery struct {
	Name string `form:"name"`
	CPF  string `form:"cpf" binding:"omitempty,len=11,numeric"`
}

func (h *AthleteHandler) create(c *gin.Context) (any, error) {
	var req createAthleteRequest
	if err := bindJSON(c, &req); err != nil {
		return nil, err
	}
	return h.svc.CreateAthlete(c.Request.Context(), model.Athlete{
		Name:           req.Name,
		CPF:            req.CPF,
		Age:            req.Age,
		Weight:         req.Weight,
		Height:         req.Height,
		Sex:            req.Sex,
		Category:       model.NamedRef{Name: req.Category.Name},
		TrainingCenter: model.NamedRef{Name: req.TrainingCenter.Name},
	})
}

func (h *AthleteHandler) getByID(c *gin.Context) (any, error) {
	id, err := pathID(c)
	if err != nil {
		return nil, err
	}
	return h.svc.GetAthlete(c.Request.Context(), id)
}

func (h *AthleteHandler) list(c *gin.Context) ([]model.AthleteSummary, error) {
	var q listAthletesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		return nil, bindError(err)
	}
	return h.svc.ListAthletes(c.Request.Context(), model.AthleteFilter{Name: q.Name, CPF: q.CPF})
}

func (h *AthleteHandler) update(c *gin.Context) (any, error) {
	id, err := pathID(c)
	if err != nil {
		return nil, err
	}
	var req updateAthleteRequest
	if err := bindJSON(c, &req); err != nil {
		return nil, err
	}
	return h.svc.UpdateAthlete(c.Request.Context(), id, model.AthletePatch{Name: req.Name, Age: req.Age})
}

func (h *AthleteHandler) delete(c *gin.Context) (any, error) {
	id, err := pathID(c)
	if err != nil {
		return nil, err
	}
	return nil, h.svc.DeleteAthlete(c.Request.Context(), id)
}

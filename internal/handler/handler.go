package handler

import (
	"github.com/maxviazov/workout-api/internal/repository"
	"github.com/maxviazov/workout-api/internal/router"
	"github.com/maxviazov/workout-api/internal/service"
)

// Deps are the collaborators the HTTP surface needs.
type Deps struct {
	Pinger          repository.Pinger
	Categories      service.CategoryService
	TrainingCenters service.TrainingCenterService
	Athletes        service.AthleteService
}

// Sources lists every route table of the public API: probes and docs at the root, probes again
// under HealthPrefix, and the domain resources under APIV1Prefix.
func Sources(d Deps) []router.Source {
	health := NewHealthHandler(d.Pinger)
	return []router.Source{
		health,
		DocsHandler{},
		router.Prefix(HealthPrefix, health),
		router.Prefix(APIV1Prefix, NewCategoryHandler(d.Categories)),
		router.Prefix(APIV1Prefix, NewTrainingCenterHandler(d.TrainingCenters)),
		router.Prefix(APIV1Prefix, NewAthleteHandler(d.Athletes)),
	}
}

package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/maxviazov/workout-api/internal/model"
	"github.com/maxviazov/workout-api/internal/repository"
	"github.com/rs/zerolog"
)

type trainingCenterService struct {
	repo repository.TrainingCenterRepository
	log  zerolog.Logger
}

func NewTrainingCenterService(repo repository.TrainingCenterRepository, logger zerolog.Logger) TrainingCenterService {
	l := logger.With().Str("module", "service").Str("component", "training_center").Logger()
	return &trainingCenterService{repo: repo, log: l}
}

func (s *trainingCenterService) CreateTrainingCenter(ctx context.Context, in model.TrainingCenter) (model.TrainingCenter, error) {
	start := time.Now()

	var ferrs []FieldError
	in.Name, ferrs = checkText(ferrs, "name", in.Name, maxCenterName)
	in.Address, ferrs = checkText(ferrs, "address", in.Address, maxCenterAddress)
	in.Owner, ferrs = checkText(ferrs, "owner", in.Owner, maxCenterOwner)
	if err := newInvalidInput(ferrs); err != nil {
		s.log.Debug().Interface("field_errors", ferrs).Msg("training center validation failed")
		return model.TrainingCenter{}, err
	}

	in.ID = uuid.New()
	out, err := s.repo.Create(ctx, in)
	if err != nil {
		if !errors.Is(err, repository.ErrAlreadyExists) {
			s.log.Error().Err(err).Str("name", in.Name).Msg("create training center failed")
		}
		return model.TrainingCenter{}, err
	}
	s.log.Info().Dur("took", time.Since(start)).Str("training_center_id", out.ID.String()).Msg("training center created")
	return out, nil
}

func (s *trainingCenterService) GetTrainingCenter(ctx context.Context, id uuid.UUID) (model.TrainingCenter, error) {
	if id == uuid.Nil {
		return model.TrainingCenter{}, newInvalidInput([]FieldError{{Field: "id", Message: "must be a non-nil uuid"}})
	}
	return s.repo.GetByID(ctx, id)
}

func (s *trainingCenterService) ListTrainingCenters(ctx context.Context) ([]model.TrainingCenter, error) {
	out, err := s.repo.List(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("list training centers failed")
		return nil, err
	}
	return out, nil
}

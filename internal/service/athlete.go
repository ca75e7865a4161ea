package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/maxviazov/workout-api/internal/model"
	"github.com/maxviazov/workout-api/internal/repository"
	"github.com/rs/zerolog"
)

type athleteService struct {
	athletes   repository.AthleteRepository
	categories repository.CategoryRepository
	centers    repository.TrainingCenterRepository
	tx         repository.TxManager
	log        zerolog.Logger
}

func NewAthleteService(
	athletes repository.AthleteRepository,
	categories repository.CategoryRepository,
	centers repository.TrainingCenterRepository,
	tx repository.TxManager,
	logger zerolog.Logger,
) AthleteService {
	l := logger.With().Str("module", "service").Str("component", "athlete").Logger()
	return &athleteService{athletes: athletes, categories: categories, centers: centers, tx: tx, log: l}
}

func (s *athleteService) CreateAthlete(ctx context.Context, in model.Athlete) (model.Athlete, error) {
	start := time.Now()

	var ferrs []FieldError
	in.Name, ferrs = checkText(ferrs, "name", in.Name, maxAthleteName)
	in.CPF = strings.TrimSpace(in.CPF)
	if !isValidCPF(in.CPF) {
		ferrs = append(ferrs, FieldError{Field: "cpf", Message: "must be exactly 11 digits"})
	}
	if in.Age <= 0 {
		ferrs = append(ferrs, FieldError{Field: "age", Message: "must be > 0"})
	}
	if in.Weight <= 0 {
		ferrs = append(ferrs, FieldError{Field: "weight", Message: "must be > 0"})
	}
	if in.Height <= 0 {
		ferrs = append(ferrs, FieldError{Field: "height", Message: "must be > 0"})
	}
	in.Sex = normalizeSex(in.Sex)
	if !isValidSex(in.Sex) {
		ferrs = append(ferrs, FieldError{Field: "sex", Message: "must be one of M, F"})
	}
	in.Category.Name, ferrs = checkText(ferrs, "category.name", in.Category.Name, maxCategoryName)
	in.TrainingCenter.Name, ferrs = checkText(ferrs, "training_center.name", in.TrainingCenter.Name, maxCenterName)
	if err := newInvalidInput(ferrs); err != nil {
		s.log.Debug().Interface("field_errors", ferrs).Msg("athlete validation failed")
		return model.Athlete{}, err
	}

	// References are resolved in the same transaction as the insert so clients get a field
	// error instead of a bare conflict.
	var out model.Athlete
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var refErrs []FieldError
		if _, err := s.categories.GetByName(ctx, in.Category.Name); err != nil {
			if !errors.Is(err, repository.ErrNotFound) {
				return err
			}
			refErrs = append(refErrs, FieldError{Field: "category.name", Message: fmt.Sprintf("category %q not found", in.Category.Name)})
		}
		if _, err := s.centers.GetByName(ctx, in.TrainingCenter.Name); err != nil {
			if !errors.Is(err, repository.ErrNotFound) {
				return err
			}
			refErrs = append(refErrs, FieldError{Field: "training_center.name", Message: fmt.Sprintf("training center %q not found", in.TrainingCenter.Name)})
		}
		if err := newInvalidInput(refErrs); err != nil {
			return err
		}

		in.ID = uuid.New()
		created, err := s.athletes.Create(ctx, in)
		if err != nil {
			return err
		}
		out = created
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
		case errors.Is(err, repository.ErrAlreadyExists):
			return model.Athlete{}, fmt.Errorf("athlete with cpf %s: %w", in.CPF, err)
		default:
			s.log.Error().Err(err).Str("cpf", in.CPF).Msg("create athlete failed")
		}
		return model.Athlete{}, err
	}
	s.log.Info().Dur("took", time.Since(start)).Str("athlete_id", out.ID.String()).Msg("athlete created")
	return out, nil
}

func (s *athleteService) GetAthlete(ctx context.Context, id uuid.UUID) (model.Athlete, error) {
	if id == uuid.Nil {
		return model.Athlete{}, newInvalidInput([]FieldError{{Field: "id", Message: "must be a non-nil uuid"}})
	}
	return s.athletes.GetByID(ctx, id)
}

func (s *athleteService) ListAthletes(ctx context.Context, f model.AthleteFilter) ([]model.AthleteSummary, error) {
	f.Name = strings.TrimSpace(f.Name)
	f.CPF = strings.TrimSpace(f.CPF)

	list, err := s.athletes.List(ctx, f)
	if err != nil {
		s.log.Error().Err(err).Str("name", f.Name).Msg("list athletes failed")
		return nil, err
	}
	out := make([]model.AthleteSummary, 0, len(list))
	for _, a := range list {
		out = append(out, a.Summary())
	}
	return out, nil
}

func (s *athleteService) UpdateAthlete(ctx context.Context, id uuid.UUID, p model.AthletePatch) (model.Athlete, error) {
	var ferrs []FieldError
	if id == uuid.Nil {
		ferrs = append(ferrs, FieldError{Field: "id", Message: "must be a non-nil uuid"})
	}
	if p.Empty() {
		ferrs = append(ferrs, FieldError{Field: "body", Message: "at least one of name, age is required"})
	}
	if p.Name != nil {
		var name string
		name, ferrs = checkText(ferrs, "name", *p.Name, maxAthleteName)
		p.Name = &name
	}
	if p.Age != nil && *p.Age <= 0 {
		ferrs = append(ferrs, FieldError{Field: "age", Message: "must be > 0"})
	}
	if err := newInvalidInput(ferrs); err != nil {
		return model.Athlete{}, err
	}

	out, err := s.athletes.Update(ctx, id, p)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.log.Error().Err(err).Str("athlete_id", id.String()).Msg("update athlete failed")
		}
		return model.Athlete{}, err
	}
	s.log.Info().Str("athlete_id", id.String()).Msg("athlete updated")
	return out, nil
}

func (s *athleteService) DeleteAthlete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return newInvalidInput([]FieldError{{Field: "id", Message: "must be a non-nil uuid"}})
	}
	if err := s.athletes.Delete(ctx, id); err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.log.Error().Err(err).Str("athlete_id", id.String()).Msg("delete athlete failed")
		}
		return err
	}
	s.log.Info().Str("athlete_id", id.String()).Msg("athlete deleted")
	return nil
}

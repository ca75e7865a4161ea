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

type categoryService struct {
	repo repository.CategoryRepository
	log  zerolog.Logger
}

func NewCategoryService(repo repository.CategoryRepository, logger zerolog.Logger) CategoryService {
	l := logger.With().Str("module", "service").Str("component", "category").Logger()
	return &categoryService{repo: repo, log: l}
}

func (s *categoryService) CreateCategory(ctx context.Context, name string) (model.Category, error) {
	start := time.Now()
	raw := name

	var ferrs []FieldError
	name, ferrs = checkText(ferrs, "name", name, maxCategoryName)
	if err := newInvalidInput(ferrs); err != nil {
		s.log.Debug().Str("name_raw", raw).Interface("field_errors", ferrs).Msg("category validation failed")
		return model.Category{}, err
	}

	out, err := s.repo.Create(ctx, model.Category{ID: uuid.New(), Name: name})
	if err != nil {
		if !errors.Is(err, repository.ErrAlreadyExists) {
			s.log.Error().Err(err).Str("name", name).Msg("create category failed")
		}
		return model.Category{}, err
	}
	s.log.Info().Dur("took", time.Since(start)).Str("category_id", out.ID.String()).Msg("category created")
	return out, nil
}

func (s *categoryService) GetCategory(ctx context.Context, id uuid.UUID) (model.Category, error) {
	if id == uuid.Nil {
		return model.Category{}, newInvalidInput([]FieldError{{Field: "id", Message: "must be a non-nil uuid"}})
	}
	return s.repo.GetByID(ctx, id)
}

func (s *categoryService) ListCategories(ctx context.Context) ([]model.Category, error) {
	out, err := s.repo.List(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("list categories failed")
		return nil, err
	}
	return out, nil
}

// Package service holds business logic orchestration across repositories and handlers.
// Kept intentionally lean: only use-case coordination, validation and domain error shaping.
package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/maxviazov/workout-api/internal/model"
)

// ErrInvalidInput is the marker error for aggregated validation failures (maps to HTTP 400).
// Field-level details are retrieved via FieldErrors(err).
var ErrInvalidInput = errors.New("invalid input")

// FieldError describes a single invalid field in a client request.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// invalidInputError aggregates multiple FieldError instances and unwraps to ErrInvalidInput.
type invalidInputError struct {
	fields []FieldError
}

func (e *invalidInputError) Error() string        { return ErrInvalidInput.Error() }
func (e *invalidInputError) Unwrap() error        { return ErrInvalidInput }
func (e *invalidInputError) Fields() []FieldError { return e.fields }

// newInvalidInput builds an aggregated validation error if any field errors are present.
func newInvalidInput(fe []FieldError) error {
	if len(fe) == 0 {
		return nil
	}
	return &invalidInputError{fields: fe}
}

// NewInvalidInputError exposes aggregated validation errors to the transport layer,
// e.g. for malformed path parameters.
func NewInvalidInputError(fe []FieldError) error {
	if len(fe) == 0 {
		return ErrInvalidInput
	}
	return newInvalidInput(fe)
}

// FieldErrors extracts field errors from an aggregated validation error.
func FieldErrors(err error) []FieldError {
	if err == nil {
		return nil
	}
	type feIface interface{ Fields() []FieldError }
	var v feIface
	if errors.As(err, &v) && errors.Is(err, ErrInvalidInput) {
		return v.Fields()
	}
	return nil
}

// CategoryService defines category use cases.
type CategoryService interface {
	CreateCategory(ctx context.Context, name string) (model.Category, error)
	GetCategory(ctx context.Context, id uuid.UUID) (model.Category, error)
	ListCategories(ctx context.Context) ([]model.Category, error)
}

// TrainingCenterService defines training center use cases.
type TrainingCenterService interface {
	CreateTrainingCenter(ctx context.Context, in model.TrainingCenter) (model.TrainingCenter, error)
	GetTrainingCenter(ctx context.Context, id uuid.UUID) (model.TrainingCenter, error)
	ListTrainingCenters(ctx context.Context) ([]model.TrainingCenter, error)
}

// AthleteService defines athlete use cases. ListAthletes returns the full filtered set.
type AthleteService interface {
	CreateAthlete(ctx context.Context, in model.Athlete) (model.Athlete, error)
	GetAthlete(ctx context.Context, id uuid.UUID) (model.Athlete, error)
	ListAthletes(ctx context.Context, f model.AthleteFilter) ([]model.AthleteSummary, error)
	UpdateAthlete(ctx context.Context, id uuid.UUID, p model.AthletePatch) (model.Athlete, error)
	DeleteAthlete(ctx context.Context, id uuid.UUID) error
}

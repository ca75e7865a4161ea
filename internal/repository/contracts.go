package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/maxviazov/workout-api/internal/model"
)

// Pinger represents a minimal readiness probe capability.
// I use it to decouple health checks from storage implementation details.
type Pinger interface {
	Ping(ctx context.Context) error
}

// TxFunc is the unit of work executed within a transaction boundary.
// I pass context through so nested calls can honor cancellations and deadlines.
type TxFunc func(ctx context.Context) error

// TxManager abstracts transactional execution for repositories that support it.
type TxManager interface {
	WithinTx(ctx context.Context, fn TxFunc) error
}

// CategoryRepository declares persistence operations for categories.
// Listings return the full ordered set; windowing happens at the HTTP edge.
type CategoryRepository interface {
	Create(ctx context.Context, c model.Category) (model.Category, error)
	GetByID(ctx context.Context, id uuid.UUID) (model.Category, error)
	GetByName(ctx context.Context, name string) (model.Category, error)
	List(ctx context.Context) ([]model.Category, error)
}

// TrainingCenterRepository declares persistence operations for training centers.
type TrainingCenterRepository interface {
	Create(ctx context.Context, tc model.TrainingCenter) (model.TrainingCenter, error)
	GetByID(ctx context.Context, id uuid.UUID) (model.TrainingCenter, error)
	GetByName(ctx context.Context, name string) (model.TrainingCenter, error)
	List(ctx context.Context) ([]model.TrainingCenter, error)
}

// AthleteRepository declares persistence operations for athletes.
// Create expects Category.Name and TrainingCenter.Name to reference existing rows.
type AthleteRepository interface {
	Create(ctx context.Context, a model.Athlete) (model.Athlete, error)
	GetByID(ctx context.Context, id uuid.UUID) (model.Athlete, error)
	List(ctx context.Context, f model.AthleteFilter) ([]model.Athlete, error)
	Update(ctx context.Context, id uuid.UUID, p model.AthletePatch) (model.Athlete, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

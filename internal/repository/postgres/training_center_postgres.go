package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/maxviazov/workout-api/internal/model"
	"github.com/maxviazov/workout-api/internal/repository"
)

type trainingCenterRepository struct{ pool *pgxpool.Pool }

func NewTrainingCenterRepository(pool *pgxpool.Pool) repository.TrainingCenterRepository {
	return &trainingCenterRepository{pool: pool}
}

const trainingCenterColumns = `id, name, address, owner, created_at`

func scanTrainingCenter(row pgx.Row) (model.TrainingCenter, error) {
	var out model.TrainingCenter
	err := row.Scan(&out.ID, &out.Name, &out.Address, &out.Owner, &out.CreatedAt)
	return out, err
}

func (r *trainingCenterRepository) Create(ctx context.Context, tc model.TrainingCenter) (model.TrainingCenter, error) {
	if err := requirePool(r.pool); err != nil {
		return model.TrainingCenter{}, err
	}
	if tc.ID == uuid.Nil {
		tc.ID = uuid.New()
	}
	row := conn(ctx, r.pool).QueryRow(ctx,
		`INSERT INTO training_centers (id, name, address, owner) VALUES ($1, $2, $3, $4)
		 RETURNING `+trainingCenterColumns,
		tc.ID, tc.Name, tc.Address, tc.Owner,
	)
	out, err := scanTrainingCenter(row)
	if err != nil {
		return model.TrainingCenter{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *trainingCenterRepository) GetByID(ctx context.Context, id uuid.UUID) (model.TrainingCenter, error) {
	return r.getOne(ctx, `SELECT `+trainingCenterColumns+` FROM training_centers WHERE id = $1`, id)
}

func (r *trainingCenterRepository) GetByName(ctx context.Context, name string) (model.TrainingCenter, error) {
	return r.getOne(ctx, `SELECT `+trainingCenterColumns+` FROM training_centers WHERE name = $1`, name)
}

func (r *trainingCenterRepository) getOne(ctx context.Context, sql string, arg any) (model.TrainingCenter, error) {
	if err := requirePool(r.pool); err != nil {
		return model.TrainingCenter{}, err
	}
	out, err := scanTrainingCenter(conn(ctx, r.pool).QueryRow(ctx, sql, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.TrainingCenter{}, repository.ErrNotFound
		}
		return model.TrainingCenter{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *trainingCenterRepository) List(ctx context.Context) ([]model.TrainingCenter, error) {
	if err := requirePool(r.pool); err != nil {
		return nil, err
	}
	rows, err := conn(ctx, r.pool).Query(ctx,
		`SELECT `+trainingCenterColumns+` FROM training_centers ORDER BY name COLLATE "C", id`)
	if err != nil {
		return nil, repository.MapPgError(err)
	}
	defer rows.Close()

	out := make([]model.TrainingCenter, 0)
	for rows.Next() {
		tc, err := scanTrainingCenter(rows)
		if err != nil {
			return nil, repository.MapPgError(err)
		}
		out = append(out, tc)
	}
	if err := rows.Err(); err != nil {
		return nil, repository.MapPgError(err)
	}
	return out, nil
}

var _ repository.TrainingCenterRepository = (*trainingCenterRepository)(nil)

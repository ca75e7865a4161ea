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

type athleteRepository struct{ pool *pgxpool.Pool }

func NewAthleteRepository(pool *pgxpool.Pool) repository.AthleteRepository {
	return &athleteRepository{pool: pool}
}

// athleteSelect resolves category and training center names; callers append WHERE/ORDER.
const athleteSelect = `
	SELECT a.id, a.name, a.cpf, a.age, a.weight, a.height, a.sex, c.name, tc.name, a.created_at
	FROM athletes a
	JOIN categories c ON c.id = a.category_id
	JOIN training_centers tc ON tc.id = a.training_center_id`

func scanAthlete(row pgx.Row) (model.Athlete, error) {
	var out model.Athlete
	err := row.Scan(
		&out.ID, &out.Name, &out.CPF, &out.Age, &out.Weight, &out.Height, &out.Sex,
		&out.Category.Name, &out.TrainingCenter.Name, &out.CreatedAt,
	)
	return out, err
}

// Create resolves the category and training center by name in the same statement.
// When either name is unknown no row is inserted and ErrConflict is returned.
func (r *athleteRepository) Create(ctx context.Context, a model.Athlete) (model.Athlete, error) {
	if err := requirePool(r.pool); err != nil {
		return model.Athlete{}, err
	}
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	exec := conn(ctx, r.pool)
	var id uuid.UUID
	err := exec.QueryRow(ctx,
		`INSERT INTO athletes (id, name, cpf, age, weight, height, sex, category_id, training_center_id)
		 SELECT $1, $2, $3, $4, $5, $6, $7, c.id, tc.id
		 FROM categories c, training_centers tc
		 WHERE c.name = $8 AND tc.name = $9
		 RETURNING id`,
		a.ID, a.Name, a.CPF, a.Age, a.Weight, a.Height, a.Sex, a.Category.Name, a.TrainingCenter.Name,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Athlete{}, repository.ErrConflict
		}
		return model.Athlete{}, repository.MapPgError(err)
	}
	return r.GetByID(ctx, id)
}

func (r *athleteRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Athlete, error) {
	if err := requirePool(r.pool); err != nil {
		return model.Athlete{}, err
	}
	out, err := scanAthlete(conn(ctx, r.pool).QueryRow(ctx, athleteSelect+` WHERE a.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Athlete{}, repository.ErrNotFound
		}
		return model.Athlete{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *athleteRepository) List(ctx context.Context, f model.AthleteFilter) ([]model.Athlete, error) {
	if err := requirePool(r.pool); err != nil {
		return nil, err
	}
	rows, err := conn(ctx, r.pool).Query(ctx,
		athleteSelect+`
		 WHERE ($1::TEXT = '' OR a.name = $1)
		   AND ($2::TEXT = '' OR a.cpf = $2)
		 ORDER BY a.name COLLATE "C", a.id`,
		f.Name, f.CPF,
	)
	if err != nil {
		return nil, repository.MapPgError(err)
	}
	defer rows.Close()

	out := make([]model.Athlete, 0)
	for rows.Next() {
		a, err := scanAthlete(rows)
		if err != nil {
			return nil, repository.MapPgError(err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, repository.MapPgError(err)
	}
	return out, nil
}

// Update applies the non-nil patch fields; NULL parameters keep the stored value.
func (r *athleteRepository) Update(ctx context.Context, id uuid.UUID, p model.AthletePatch) (model.Athlete, error) {
	if err := requirePool(r.pool); err != nil {
		return model.Athlete{}, err
	}
	tag, err := conn(ctx, r.pool).Exec(ctx,
		`UPDATE athletes
		 SET name = COALESCE($2, name), age = COALESCE($3, age)
		 WHERE id = $1`,
		id, p.Name, p.Age,
	)
	if err != nil {
		return model.Athlete{}, repository.MapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return model.Athlete{}, repository.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *athleteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := requirePool(r.pool); err != nil {
		return err
	}
	tag, err := conn(ctx, r.pool).Exec(ctx, `DELETE FROM athletes WHERE id = $1`, id)
	if err != nil {
		return repository.MapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.AthleteRepository = (*athleteRepository)(nil)

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

type categoryRepository struct{ pool *pgxpool.Pool }

func NewCategoryRepository(pool *pgxpool.Pool) repository.CategoryRepository {
	return &categoryRepository{pool: pool}
}

const categoryColumns = `id, name, created_at`

func scanCategory(row pgx.Row) (model.Category, error) {
	var out model.Category
	err := row.Scan(&out.ID, &out.Name, &out.CreatedAt)
	return out, err
}

func (r *categoryRepository) Create(ctx context.Context, c model.Category) (model.Category, error) {
	if err := requirePool(r.pool); err != nil {
		return model.Category{}, err
	}
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	row := conn(ctx, r.pool).QueryRow(ctx,
		`INSERT INTO categories (id, name) VALUES ($1, $2)
		 RETURNING `+categoryColumns,
		c.ID, c.Name,
	)
	out, err := scanCategory(row)
	if err != nil {
		return model.Category{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *categoryRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Category, error) {
	return r.getOne(ctx, `SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id)
}

func (r *categoryRepository) GetByName(ctx context.Context, name string) (model.Category, error) {
	return r.getOne(ctx, `SELECT `+categoryColumns+` FROM categories WHERE name = $1`, name)
}

func (r *categoryRepository) getOne(ctx context.Context, sql string, arg any) (model.Category, error) {
	if err := requirePool(r.pool); err != nil {
		return model.Category{}, err
	}
	out, err := scanCategory(conn(ctx, r.pool).QueryRow(ctx, sql, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Category{}, repository.ErrNotFound
		}
		return model.Category{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *categoryRepository) List(ctx context.Context) ([]model.Category, error) {
	if err := requirePool(r.pool); err != nil {
		return nil, err
	}
	rows, err := conn(ctx, r.pool).Query(ctx, `SELECT `+categoryColumns+` FROM categories ORDER BY name COLLATE "C", id`)
	if err != nil {
		return nil, repository.MapPgError(err)
	}
	defer rows.Close()

	out := make([]model.Category, 0)
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, repository.MapPgError(err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, repository.MapPgError(err)
	}
	return out, nil
}

var _ repository.CategoryRepository = (*categoryRepository)(nil)

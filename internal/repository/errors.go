package repository

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// Sentinel errors shared by every storage backend. Callers match them with errors.Is.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrConflict      = errors.New("conflict")
)

// constraintErrors lists the Postgres violations the service layer reacts to.
var constraintErrors = map[string]error{
	pgerrcode.UniqueViolation:     ErrAlreadyExists,
	pgerrcode.ForeignKeyViolation: ErrConflict,
	pgerrcode.CheckViolation:      ErrConflict,
}

// MapPgError turns a known constraint violation into its sentinel. Anything else, nil
// included, is returned unchanged.
func MapPgError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	if mapped, ok := constraintErrors[pgErr.Code]; ok {
		return mapped
	}
	return err
}

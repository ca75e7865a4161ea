package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/maxviazov/workout-api/internal/repository"
)

var errNoPool = errors.New("postgres: pool is not configured")

// querier is the subset of pgxpool.Pool and pgx.Tx the repositories use.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type activeTx struct{}

// conn returns the transaction opened by WithinTx when ctx carries one, the pool otherwise.
func conn(ctx context.Context, pool *pgxpool.Pool) querier {
	if tx, ok := ctx.Value(activeTx{}).(pgx.Tx); ok {
		return tx
	}
	return pool
}

func requirePool(pool *pgxpool.Pool) error {
	if pool == nil {
		return errNoPool
	}
	return nil
}

type txManager struct{ pool *pgxpool.Pool }

// NewTxManager runs units of work in a single Postgres transaction. Repositories called with the
// ctx handed to fn join it.
func NewTxManager(pool *pgxpool.Pool) repository.TxManager { return &txManager{pool: pool} }

func (m *txManager) WithinTx(ctx context.Context, fn repository.TxFunc) (err error) {
	if err := requirePool(m.pool); err != nil {
		return err
	}
	tx, err := m.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return repository.MapPgError(err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(context.WithoutCancel(ctx))
		}
	}()

	if err = fn(context.WithValue(ctx, activeTx{}, tx)); err != nil {
		return repository.MapPgError(err)
	}
	return repository.MapPgError(tx.Commit(ctx))
}

var _ repository.TxManager = (*txManager)(nil)

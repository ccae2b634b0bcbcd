package store

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"
)

// QueryInterceptor is the subset of *sql.DB and *sql.Tx used by the stores.
type QueryInterceptor interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Transactor is a QueryInterceptor that can also open a transaction.
type Transactor interface {
	QueryInterceptor
	WithTx(ctx context.Context, fn func(tx QueryInterceptor) error) error
}

// queryInterceptor logs every statement at debug level before running it.
type queryInterceptor struct {
	db     QueryInterceptor
	logger *zap.SugaredLogger
	raw    *sql.DB
}

func newQueryInterceptor(db *sql.DB) *queryInterceptor {
	return &queryInterceptor{
		db:     db,
		raw:    db,
		logger: zap.S().Named("store"),
	}
}

func (q *queryInterceptor) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	q.logger.Debugw("query_row", "query", query, "args", args)
	return q.db.QueryRowContext(ctx, query, args...)
}

func (q *queryInterceptor) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	q.logger.Debugw("query", "query", query, "args", args)
	return q.db.QueryContext(ctx, query, args...)
}

func (q *queryInterceptor) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	q.logger.Debugw("exec", "query", query, "args", args)
	return q.db.ExecContext(ctx, query, args...)
}

// WithTx runs fn inside a transaction. The transaction is committed when fn
// returns nil and rolled back otherwise.
func (q *queryInterceptor) WithTx(ctx context.Context, fn func(tx QueryInterceptor) error) error {
	tx, err := q.raw.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	q.logger.Debug("begin")
	if err := fn(&queryInterceptor{db: tx, raw: q.raw, logger: q.logger}); err != nil {
		q.logger.Debugw("rollback", "error", err)
		_ = tx.Rollback()
		return err
	}

	q.logger.Debug("commit")
	return tx.Commit()
}

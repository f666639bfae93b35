package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

// Generic single-table helpers for the keyed reads and writes the services
// issue outside (or inside) a transaction. Anything more involved uses bun on
// the tx handle directly.

// runWithRetry applies the statement-level retry policy only outside a
// transaction. Once a transaction hits a retryable failure Postgres aborts it
// and every follow-up statement fails with 25P02, so retrying the statement
// in place can never succeed; the retry has to replay the whole transaction,
// which is RunInTx's job.
func runWithRetry(ctx context.Context, idb bun.IDB, fn func() error) error {
	if _, ok := idb.(bun.Tx); ok {
		return fn()
	}
	return WithRetry(ctx, fn)
}

// First returns the first row matching the WHERE clause, or nil when there is
// none. No rows is not an error.
func First[T any](ctx context.Context, idb bun.IDB, where string, args ...any) (*T, error) {
	start := time.Now()
	var data T

	err := runWithRetry(ctx, idb, func() error {
		return idb.NewSelect().Model(&data).Where(where, args...).Limit(1).Scan(ctx)
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to execute first query: %w (took %v)", err, time.Since(start))
	}

	return &data, nil
}

// FindByID fetches a row by primary key, nil when absent.
func FindByID[T any](ctx context.Context, idb bun.IDB, id any) (*T, error) {
	return First[T](ctx, idb, "id = ?", id)
}

// All returns every row matching the WHERE clause.
func All[T any](ctx context.Context, idb bun.IDB, where string, args ...any) ([]T, error) {
	start := time.Now()
	var data []T

	err := runWithRetry(ctx, idb, func() error {
		data = nil // reset on retry
		return idb.NewSelect().Model(&data).Where(where, args...).Scan(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to execute select query: %w (took %v)", err, time.Since(start))
	}

	return data, nil
}

// Insert inserts a single row and returns it.
func Insert[T any](ctx context.Context, idb bun.IDB, data *T) (*T, error) {
	start := time.Now()

	err := runWithRetry(ctx, idb, func() error {
		_, err := idb.NewInsert().Model(data).Exec(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to execute insert query: %w (took %v)", err, time.Since(start))
	}

	return data, nil
}

// InsertMany inserts a batch of rows in one statement.
func InsertMany[T any](ctx context.Context, idb bun.IDB, data []T) ([]T, error) {
	start := time.Now()

	if len(data) == 0 {
		return data, nil
	}

	err := runWithRetry(ctx, idb, func() error {
		_, err := idb.NewInsert().Model(&data).Exec(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to execute bulk insert query: %w (took %v)", err, time.Since(start))
	}

	return data, nil
}

// UpdateColumns applies a column map to all rows matching the WHERE clause and
// returns the number of rows affected.
func UpdateColumns[T any](ctx context.Context, idb bun.IDB, values map[string]any, where string, args ...any) (int, error) {
	start := time.Now()
	var rowsAffected int64

	err := runWithRetry(ctx, idb, func() error {
		var model T
		query := idb.NewUpdate().Model(&model).Where(where, args...)
		for key, value := range values {
			query = query.Set("? = ?", bun.Ident(key), value)
		}

		res, err := query.Exec(ctx)
		if err != nil {
			return err
		}
		rowsAffected, _ = res.RowsAffected()
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to execute update query: %w (took %v)", err, time.Since(start))
	}

	return int(rowsAffected), nil
}

// Delete removes all rows matching the WHERE clause.
func Delete[T any](ctx context.Context, idb bun.IDB, where string, args ...any) (int, error) {
	start := time.Now()
	var rowsAffected int64

	err := runWithRetry(ctx, idb, func() error {
		var model T
		res, err := idb.NewDelete().Model(&model).Where(where, args...).Exec(ctx)
		if err != nil {
			return err
		}
		rowsAffected, _ = res.RowsAffected()
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to execute delete query: %w (took %v)", err, time.Since(start))
	}

	return int(rowsAffected), nil
}

// Exists reports whether any row matches the WHERE clause.
func Exists[T any](ctx context.Context, idb bun.IDB, where string, args ...any) (bool, error) {
	var model T
	var exists bool

	err := runWithRetry(ctx, idb, func() error {
		var err error
		exists, err = idb.NewSelect().Model(&model).Where(where, args...).Exists(ctx)
		return err
	})
	if err != nil {
		return false, fmt.Errorf("failed to execute exists query: %w", err)
	}

	return exists, nil
}

package database

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/uptrace/bun"
)

// Once a transaction hits a retryable failure Postgres aborts it, so replaying
// the statement in place can never succeed. Inside a transaction the error must
// surface immediately and leave the replay to RunInTx.
func TestRunWithRetry_InsideTransaction(t *testing.T) {
	serializationFailure := &pgconn.PgError{Code: "40001"}

	calls := 0
	err := runWithRetry(context.Background(), bun.Tx{}, func() error {
		calls++
		return serializationFailure
	})

	assert.Equal(t, 1, calls)
	assert.ErrorIs(t, err, serializationFailure)
}

func TestRunWithRetry_OutsideTransactionRetries(t *testing.T) {
	serializationFailure := &pgconn.PgError{Code: "40001"}

	calls := 0
	err := runWithRetry(context.Background(), &bun.DB{}, func() error {
		calls++
		if calls < 2 {
			return serializationFailure
		}
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestRunWithRetry_NonRetryableError(t *testing.T) {
	uniqueViolation := &pgconn.PgError{Code: "23505"}

	calls := 0
	err := runWithRetry(context.Background(), &bun.DB{}, func() error {
		calls++
		return uniqueViolation
	})

	assert.Equal(t, 1, calls)
	assert.ErrorIs(t, err, uniqueViolation)
}

package services

import (
	"context"
	"testing"

	"merchantdesk_server/database"
	"merchantdesk_server/lib"
	"merchantdesk_server/structs"
	"merchantdesk_server/structs/tables"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
)

func newMockDB(t *testing.T) (*database.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqldb, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqldb.Close() })

	return &database.DB{DB: bun.NewDB(sqldb, pgdialect.New())}, mock
}

// The order counter moves with SQL-side arithmetic so concurrent orders for
// the same customer cannot lose updates, and the decrement never takes the
// counter below zero.
func TestCustomerOrderCounter(t *testing.T) {
	db, mock := newMockDB(t)
	svc := &OrderService{logger: gecho.NewDefaultLogger(), db: db}
	customerId := uuid.New()

	mock.ExpectExec(`UPDATE "customers" (.*)SET total_orders = total_orders \+ 1`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, svc.incrementCustomerOrders(context.Background(), db.DB, customerId))

	mock.ExpectExec(`UPDATE "customers" (.*)SET total_orders = total_orders - 1, (.+)id = (.+) AND total_orders > 0`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, svc.decrementCustomerOrders(context.Background(), db.DB, customerId))

	assert.NoError(t, mock.ExpectationsWereMet())
}

// An order whose payment is paid is locked: the update transaction rolls back
// before restoring stock or touching any line.
func TestUpdateOrder_LockedWhenPaid(t *testing.T) {
	db, mock := newMockDB(t)
	svc := &OrderService{logger: gecho.NewDefaultLogger(), db: db}

	businessId := uuid.New()
	orderId := uuid.New()
	customerId := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM "orders"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "business_id", "customer_id", "total_cents"}).
			AddRow(orderId.String(), businessId.String(), customerId.String(), int64(12500)))
	mock.ExpectQuery(`SELECT (.+) FROM "payments"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "order_id", "pidx", "amount_cents", "status", "method"}).
			AddRow(uuid.New().String(), orderId.String(), "HT6o6PEZRWFJ5ygavzHWd5", int64(12500), "paid", "Khalti"))
	mock.ExpectRollback()

	req := &structs.UpdateOrderRequest{
		Products:         []structs.OrderLineInput{{ProductId: uuid.New(), Quantity: 1}},
		CustomerName:     "Nisha Shrestha",
		CustomerPhone:    "9800000001",
		CustomerEmail:    "nisha@example.com",
		DeliveryLocation: "Patan",
		PaymentMethod:    tables.PaymentMethodKhalti,
	}

	_, err := svc.Update(context.Background(), businessId, orderId, req)
	assert.ErrorIs(t, err, lib.ErrOrderLocked)
	assert.NoError(t, mock.ExpectationsWereMet())
}

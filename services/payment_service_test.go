package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"merchantdesk_server/lib"
	"merchantdesk_server/structs"
	"merchantdesk_server/structs/tables"
	"merchantdesk_server/wallet"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A payment already marked paid reconciles to paid without a provider lookup,
// which makes repeated callbacks for the same reference harmless.
func TestReconcile_AlreadyPaidSkipsProvider(t *testing.T) {
	db, mock := newMockDB(t)

	var providerHits atomic.Int64
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		providerHits.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(provider.Close)

	gateway := wallet.NewClient(&structs.WalletConfig{
		Provider:        "Khalti",
		BaseURL:         provider.URL,
		InitiateTimeout: time.Second,
		LookupTimeout:   time.Second,
	})

	svc := &PaymentService{
		logger:  gecho.NewDefaultLogger(),
		cfg:     &structs.Config{Wallet: &structs.WalletConfig{Provider: "Khalti"}},
		db:      db,
		gateway: gateway,
	}

	orderId := uuid.New()
	mock.ExpectQuery(`SELECT (.+) FROM "payments"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "order_id", "pidx", "amount_cents", "status", "method"}).
			AddRow(uuid.New().String(), orderId.String(), "HT6o6PEZRWFJ5ygavzHWd5", int64(9900), "paid", "Khalti"))

	status, err := svc.Reconcile(context.Background(), "HT6o6PEZRWFJ5ygavzHWd5")
	require.NoError(t, err)
	assert.Equal(t, tables.PaymentStatusPaid, status)
	assert.EqualValues(t, 0, providerHits.Load())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetPaymentByOrder_UnownedOrder(t *testing.T) {
	db, mock := newMockDB(t)
	svc := &PaymentService{logger: gecho.NewDefaultLogger(), db: db}

	mock.ExpectQuery(`SELECT EXISTS`).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	_, err := svc.GetPaymentByOrder(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, lib.ErrOrderNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// The placeholder reference fills every payment row that never reached the
// provider; reconciling it must fail fast without touching the database.
func TestReconcile_PlaceholderReference(t *testing.T) {
	db, mock := newMockDB(t)
	svc := &PaymentService{logger: gecho.NewDefaultLogger(), db: db}

	for _, pidx := range []string{"", tables.PidxPlaceholder} {
		_, err := svc.Reconcile(context.Background(), pidx)
		assert.ErrorIs(t, err, lib.ErrPaymentNotFound)
	}

	assert.NoError(t, mock.ExpectationsWereMet())
}

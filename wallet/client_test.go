package wallet

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"merchantdesk_server/lib"
	"merchantdesk_server/structs"
	"merchantdesk_server/structs/tables"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(baseURL string) *Client {
	return NewClient(&structs.WalletConfig{
		Provider:        "Khalti",
		BaseURL:         baseURL,
		WebsiteURL:      "http://shop.example",
		ReturnURL:       "http://api.example/payment/callback",
		InitiateTimeout: 2 * time.Second,
		LookupTimeout:   2 * time.Second,
	})
}

func testParams() InitiateParams {
	return InitiateParams{
		AmountCents: 18050,
		OrderId:     uuid.New(),
		OrderName:   "Order test",
		Customer: CustomerInfo{
			Name:  "Ana",
			Email: "ana@example.com",
			Phone: "9800000001",
		},
		SecretKey: "live_secret_key",
	}
}

func TestInitiate_Success(t *testing.T) {
	var gotAuth string
	var gotBody initiateRequest

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/epayment/initiate/", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		json.NewEncoder(w).Encode(map[string]string{
			"pidx":        "HT6o6PEZRWFJ5ygavzHWd5",
			"payment_url": "https://pay.example/?pidx=HT6o6PEZRWFJ5ygavzHWd5",
			"expires_at":  "2026-01-01T00:00:00Z",
		})
	}))
	defer ts.Close()

	result, err := testClient(ts.URL).Initiate(context.Background(), testParams())
	require.NoError(t, err)

	assert.Equal(t, "HT6o6PEZRWFJ5ygavzHWd5", result.Pidx)
	assert.Contains(t, result.PaymentURL, "pidx=")

	assert.Equal(t, "Key live_secret_key", gotAuth)
	assert.Equal(t, int64(18050), gotBody.Amount)
	assert.Equal(t, "http://api.example/payment/callback", gotBody.ReturnURL)
	assert.Equal(t, "http://shop.example", gotBody.WebsiteURL)
	assert.Equal(t, "Ana", gotBody.CustomerInfo.Name)
}

func TestInitiate_MissingPidx(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"payment_url": "https://pay.example/"})
	}))
	defer ts.Close()

	_, err := testClient(ts.URL).Initiate(context.Background(), testParams())
	require.Error(t, err)

	var gwErr *lib.GatewayError
	require.ErrorAs(t, err, &gwErr)
	assert.Equal(t, "initiate", gwErr.Op)
}

func TestInitiate_ProviderRejects(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"Invalid token."}`, http.StatusUnauthorized)
	}))
	defer ts.Close()

	_, err := testClient(ts.URL).Initiate(context.Background(), testParams())
	require.Error(t, err)

	var gwErr *lib.GatewayError
	require.ErrorAs(t, err, &gwErr)
	assert.Contains(t, gwErr.Error(), "401")
}

func TestInitiate_Timeout(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer ts.Close()

	c := testClient(ts.URL)
	c.initiateTimeout = 20 * time.Millisecond

	_, err := c.Initiate(context.Background(), testParams())
	require.Error(t, err)

	var gwErr *lib.GatewayError
	assert.True(t, errors.As(err, &gwErr))
}

func TestLookup_Success(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/epayment/lookup/", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "HT6o6PEZ", body["pidx"])

		json.NewEncoder(w).Encode(map[string]any{
			"pidx":           "HT6o6PEZ",
			"status":         "Completed",
			"transaction_id": "txn-42",
			"total_amount":   18050,
		})
	}))
	defer ts.Close()

	result, err := testClient(ts.URL).Lookup(context.Background(), "HT6o6PEZ", "live_secret_key")
	require.NoError(t, err)

	assert.Equal(t, "Completed", result.Status)
	assert.Equal(t, "txn-42", result.TransactionId)
	assert.Equal(t, int64(18050), result.TotalAmount)
	assert.Contains(t, string(result.Raw), `"transaction_id"`)
}

func TestLookup_MissingStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"pidx": "HT6o6PEZ"})
	}))
	defer ts.Close()

	_, err := testClient(ts.URL).Lookup(context.Background(), "HT6o6PEZ", "key")
	require.Error(t, err)

	var gwErr *lib.GatewayError
	require.ErrorAs(t, err, &gwErr)
	assert.Equal(t, "lookup", gwErr.Op)
}

func TestMapStatus(t *testing.T) {
	tests := []struct {
		provider string
		want     tables.PaymentStatus
	}{
		{StatusCompleted, tables.PaymentStatusPaid},
		{StatusPending, tables.PaymentStatusPending},
		{StatusFailed, tables.PaymentStatusFailed},
		{StatusExpired, tables.PaymentStatusFailed},
		{StatusCanceled, tables.PaymentStatusFailed},
		{StatusRefunded, tables.PaymentStatusFailed},
		{"Something The Provider Invented", tables.PaymentStatusFailed},
		{"", tables.PaymentStatusFailed},
	}

	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			assert.Equal(t, tt.want, MapStatus(tt.provider))
		})
	}
}

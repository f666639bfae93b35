package wallet

import (
	"encoding/json"

	"merchantdesk_server/structs/tables"

	"github.com/google/uuid"
)

// Provider-side transaction states. Anything not listed here maps to failed.
const (
	StatusCompleted = "Completed"
	StatusPending   = "Pending"
	StatusFailed    = "Failed"
	StatusExpired   = "Expired"
	StatusCanceled  = "User canceled"
	StatusRefunded  = "Refunded"
)

// CustomerInfo is the contact block the provider shows on its checkout page.
type CustomerInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// InitiateParams describes one payment attempt. SecretKey is the business's
// wallet credential, resolved by the caller.
type InitiateParams struct {
	AmountCents int64
	OrderId     uuid.UUID
	OrderName   string
	Customer    CustomerInfo
	SecretKey   string
}

// InitiateResult carries the provider reference for the attempt and the URL
// the shopper must be redirected to.
type InitiateResult struct {
	Pidx       string `json:"pidx"`
	PaymentURL string `json:"payment_url"`
	ExpiresAt  string `json:"expires_at,omitempty"`
}

// LookupResult is the provider's view of a payment attempt. Raw keeps the
// untouched response body for the audit column.
type LookupResult struct {
	Pidx          string `json:"pidx"`
	Status        string `json:"status"`
	TransactionId string `json:"transaction_id"`
	TotalAmount   int64  `json:"total_amount"`

	Raw json.RawMessage `json:"-"`
}

// MapStatus translates a provider state into the internal payment status.
// Unrecognized values map to failed, never to paid or pending.
func MapStatus(providerStatus string) tables.PaymentStatus {
	switch providerStatus {
	case StatusCompleted:
		return tables.PaymentStatusPaid
	case StatusPending:
		return tables.PaymentStatusPending
	default:
		return tables.PaymentStatusFailed
	}
}

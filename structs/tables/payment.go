package tables

import (
	"time"

	"github.com/google/uuid"
)

type Payment struct {
	tableName struct{}  `bun:"table:payments,alias:pay"`
	Id        uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	OrderId   uuid.UUID `bun:"order_id,notnull,type:uuid" json:"order_id"`

	// Provider reference ("pidx"). Holds a placeholder until gateway
	// initiation succeeds; afterwards it is the only key the callback carries.
	Pidx          string `bun:"pidx,notnull" json:"pidx"`
	TransactionId string `bun:"transaction_id" json:"transaction_id,omitempty"`

	AmountCents int64         `bun:"amount_cents,notnull" json:"amount_cents"` // stored in cents
	Status      PaymentStatus `bun:"status,notnull,default:'pending'" json:"status" validate:"required,oneof=pending paid failed"`
	Method      PaymentMethod `bun:"method,notnull" json:"method" validate:"required,oneof=Khalti Other"`

	PaymentDate     *time.Time `bun:"payment_date,nullzero" json:"payment_date,omitempty"`
	ProviderPayload string     `bun:"provider_payload,type:jsonb" json:"provider_payload,omitempty"` // raw lookup response, kept for audit
	ErrorNote       string     `bun:"error_note" json:"error_note,omitempty"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`
}

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)

type PaymentMethod string

const (
	PaymentMethodKhalti PaymentMethod = "Khalti"
	PaymentMethodOther  PaymentMethod = "Other"
)

// PidxPlaceholder fills the provider reference column before (or instead of)
// a successful gateway initiation.
const PidxPlaceholder = "N/A"

package structs

import "merchantdesk_server/structs/tables"

// UpdatePaymentRequest is the manual status override for offline payments.
// Only rows with method "Other" accept it.
type UpdatePaymentRequest struct {
	Status tables.PaymentStatus `json:"status" validate:"required,oneof=pending paid failed"`
}

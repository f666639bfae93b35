package structs

import (
	"merchantdesk_server/structs/tables"

	"github.com/google/uuid"
)

type OrderLineInput struct {
	ProductId uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,min=1"`
}

// CreateOrderRequest carries either an existing customer id or the contact
// fields to find-or-create one. Promo codes are accepted on update only.
type CreateOrderRequest struct {
	Products []OrderLineInput `json:"products" validate:"required,min=1,dive"`

	CustomerId    *uuid.UUID `json:"customer_id,omitempty"`
	CustomerName  string     `json:"customer_name" validate:"required_without=CustomerId,omitempty,min=2,max=100"`
	CustomerPhone string     `json:"customer_phone" validate:"required_without=CustomerId,omitempty,min=7,max=20"`
	CustomerEmail string     `json:"customer_email" validate:"required_without=CustomerId,omitempty,email"`

	DeliveryLocation string               `json:"delivery_location" validate:"required,min=2,max=300"`
	PaymentMethod    tables.PaymentMethod `json:"payment_method" validate:"required,oneof=Khalti Other"`
}

// UpdateOrderRequest replaces the order's line items wholesale.
type UpdateOrderRequest struct {
	Products []OrderLineInput `json:"products" validate:"required,min=1,dive"`

	CustomerName  string `json:"customer_name" validate:"required,min=2,max=100"`
	CustomerPhone string `json:"customer_phone" validate:"required,min=7,max=20"`
	CustomerEmail string `json:"customer_email" validate:"required,email"`

	DeliveryLocation string               `json:"delivery_location" validate:"required,min=2,max=300"`
	PaymentMethod    tables.PaymentMethod `json:"payment_method" validate:"required,oneof=Khalti Other"`
	PromoCode        *string              `json:"promo_code,omitempty" validate:"omitempty,min=1,max=50"`
}

// OrderMutationResult is what Create and Update hand back to the handler.
// GatewayWarning carries a gateway-initiation failure that happened after the
// order transaction committed; it degrades the response, never fails it.
type OrderMutationResult struct {
	OrderId        uuid.UUID `json:"order_id"`
	TotalCents     int64     `json:"total_cents"`
	DiscountCents  int64     `json:"discount_cents,omitempty"`
	PaymentURL     string    `json:"payment_url,omitempty"`
	GatewayWarning string    `json:"gateway_warning,omitempty"`
}

// OrderDetail is the GET /orders/{id} shape.
type OrderDetail struct {
	Order   *tables.Order      `json:"order"`
	Lines   []tables.OrderLine `json:"lines"`
	Payment *tables.Payment    `json:"payment,omitempty"`
}

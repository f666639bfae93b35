package tables

import (
	"time"

	"github.com/google/uuid"
)

type Order struct {
	tableName struct{}  `bun:"table:orders,alias:o"`
	Id        uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`

	BusinessId uuid.UUID `bun:"business_id,notnull,type:uuid" json:"business_id" validate:"required,uuid4"`
	CustomerId uuid.UUID `bun:"customer_id,notnull,type:uuid" json:"customer_id" validate:"required,uuid4"`

	// Customer contact snapshot at order time, not a live join.
	CustomerName  string `bun:"customer_name,notnull" json:"customer_name" validate:"required,min=2,max=100"`
	CustomerPhone string `bun:"customer_phone,notnull" json:"customer_phone" validate:"required,min=7,max=20"`
	CustomerEmail string `bun:"customer_email,notnull" json:"customer_email" validate:"required,email"`

	DeliveryLocation string `bun:"delivery_location,notnull" json:"delivery_location" validate:"required,min=2,max=300"`

	TotalCents      int64   `bun:"total_cents,notnull" json:"total_cents"` // post-discount, stored in cents
	DiscountPercent float64 `bun:"discount_percent,notnull,default:0" json:"discount_percent"`
	DiscountCents   int64   `bun:"discount_cents,notnull,default:0" json:"discount_cents"`
	PromoCode       *string `bun:"promo_code" json:"promo_code,omitempty"`

	OrderDate time.Time `bun:"order_date,notnull,default:current_timestamp" json:"order_date"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`
}

// OrderLine lives and dies with the owning order's current version: an order
// update deletes every prior line and inserts the replacement set.
type OrderLine struct {
	tableName struct{}  `bun:"table:order_lines,alias:ol"`
	Id        uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	OrderId   uuid.UUID `bun:"order_id,notnull,type:uuid" json:"order_id" validate:"required,uuid4"`
	ProductId uuid.UUID `bun:"product_id,notnull,type:uuid" json:"product_id" validate:"required,uuid4"`
	Quantity  int       `bun:"quantity,notnull" json:"quantity" validate:"required,min=1"`

	// Snapshot of pricing at time of order
	UnitPriceCents int64 `bun:"unit_price_cents,notnull" json:"unit_price_cents"` // price when ordered
	DiscountCents  int64 `bun:"discount_cents,notnull,default:0" json:"discount_cents"`
	LineTotalCents int64 `bun:"line_total_cents,notnull" json:"line_total_cents"` // quantity * unit price - discount

	ProductName string `bun:"product_name,notnull" json:"product_name"` // name when ordered
}

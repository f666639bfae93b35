package tables

import (
	"time"

	"github.com/google/uuid"
)

// SalesRecord feeds the analytics dashboards. One row per order line,
// regenerated alongside the lines on every order update.
type SalesRecord struct {
	tableName  struct{}  `bun:"table:sales_records,alias:sr"`
	Id         uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	BusinessId uuid.UUID `bun:"business_id,notnull,type:uuid" json:"business_id"`
	OrderId    uuid.UUID `bun:"order_id,notnull,type:uuid" json:"order_id"`
	ProductId  uuid.UUID `bun:"product_id,notnull,type:uuid" json:"product_id"`

	Quantity      int   `bun:"quantity,notnull" json:"quantity"`
	RevenueCents  int64 `bun:"revenue_cents,notnull" json:"revenue_cents"` // line amount after discount
	DiscountCents int64 `bun:"discount_cents,notnull,default:0" json:"discount_cents"`

	SaleDate  time.Time `bun:"sale_date,notnull,default:current_timestamp" json:"sale_date"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
}

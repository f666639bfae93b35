package tables

import (
	"time"

	"github.com/google/uuid"
)

type Product struct {
	tableName  struct{}  `bun:"table:products,alias:p"`
	Id         uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	BusinessId uuid.UUID `bun:"business_id,notnull,type:uuid" json:"business_id" validate:"required,uuid4"`
	Name       string    `bun:"name,notnull" json:"name" validate:"required,min=1,max=200"`
	PriceCents int64     `bun:"price_cents,notnull" json:"price_cents" validate:"gte=0"` // stored in cents
	Stock      int       `bun:"stock,notnull" json:"stock" validate:"gte=0"`             // never below zero, enforced by conditional decrement
	CreatedAt  time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt  time.Time `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`
}

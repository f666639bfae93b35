package tables

import (
	"time"

	"github.com/google/uuid"
)

// Customer is identified within a business by its (phone, email) pair.
// TotalOrders moves with order creation and deletion.
type Customer struct {
	tableName   struct{}  `bun:"table:customers,alias:c"`
	Id          uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	BusinessId  uuid.UUID `bun:"business_id,notnull,type:uuid,unique:customers_contact_key" json:"business_id" validate:"required,uuid4"`
	Name        string    `bun:"name,notnull" json:"name" validate:"required,min=2,max=100"`
	Phone       string    `bun:"phone,notnull,unique:customers_contact_key" json:"phone" validate:"required,min=7,max=20"`
	Email       string    `bun:"email,notnull,unique:customers_contact_key" json:"email" validate:"required,email"`
	TotalOrders int       `bun:"total_orders,notnull,default:0" json:"total_orders"`
	CreatedAt   time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt   time.Time `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`
}

package tables

import (
	"time"

	"github.com/google/uuid"
)

// PromoCampaign is read-only from this service's perspective; the marketing
// module owns creation and editing.
type PromoCampaign struct {
	tableName       struct{}  `bun:"table:promo_campaigns,alias:pc"`
	Id              uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	BusinessId      uuid.UUID `bun:"business_id,notnull,type:uuid" json:"business_id"`
	Code            string    `bun:"code,notnull,unique" json:"code"`
	DiscountPercent float64   `bun:"discount_percent,notnull" json:"discount_percent"`
	StartDate       time.Time `bun:"start_date,notnull" json:"start_date"`
	EndDate         time.Time `bun:"end_date,notnull" json:"end_date"`
	CreatedAt       time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
}

// ActiveAt reports whether the campaign window covers t, inclusive of the
// start and exclusive of the end.
func (pc *PromoCampaign) ActiveAt(t time.Time) bool {
	return !t.Before(pc.StartDate) && t.Before(pc.EndDate)
}

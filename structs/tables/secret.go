package tables

import (
	"time"

	"github.com/google/uuid"
)

// PaymentSecret stores a business's wallet credential. The key column holds
// AES-GCM ciphertext; the settings module writes it, this service only reads.
type PaymentSecret struct {
	tableName    struct{}  `bun:"table:payment_secrets,alias:ps"`
	Id           uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	BusinessId   uuid.UUID `bun:"business_id,notnull,type:uuid,unique:payment_secrets_provider_key" json:"business_id"`
	Provider     string    `bun:"provider,notnull,unique:payment_secrets_provider_key" json:"provider"`
	EncryptedKey string    `bun:"encrypted_key,notnull" json:"-"`
	CreatedAt    time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt    time.Time `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`
}

package services

import (
	"context"

	"merchantdesk_server/database"
	"merchantdesk_server/lib"
	"merchantdesk_server/structs"
	"merchantdesk_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
)

// CredentialService resolves a business's wallet credential. The settings
// module owns the payment_secrets rows; this service only reads and decrypts.
type CredentialService struct {
	logger *gecho.Logger
	cfg    *structs.Config
	db     *database.DB
	cache  *CacheService
}

func NewCredentialService(logger *gecho.Logger, cfg *structs.Config, db *database.DB, cache *CacheService) *CredentialService {
	return &CredentialService{
		logger: logger,
		cfg:    cfg,
		db:     db,
		cache:  cache,
	}
}

// GetGatewayCredential returns the decrypted wallet key for a business.
// A business without a stored credential gets ErrGatewayNotConfigured, which
// callers must keep distinct from provider-side failures.
func (crs *CredentialService) GetGatewayCredential(ctx context.Context, businessId uuid.UUID, provider string) (string, error) {
	if cached, err := crs.cache.GetWalletKey(ctx, businessId, provider); err == nil && cached != "" {
		return cached, nil
	}

	secret, err := database.First[tables.PaymentSecret](ctx, crs.db.DB, "business_id = ? AND provider = ?", businessId, provider)
	if err != nil {
		return "", lib.MapPgError(err)
	}
	if secret == nil {
		return "", lib.ErrGatewayNotConfigured
	}

	key, err := lib.Decrypt(secret.EncryptedKey, crs.cfg.Encryption.Key)
	if err != nil {
		crs.logger.Error("Failed to decrypt wallet credential",
			gecho.Field("error", err),
			gecho.Field("business_id", businessId))
		return "", err
	}
	if key == "" {
		return "", lib.ErrGatewayNotConfigured
	}

	if err := crs.cache.SetWalletKey(ctx, businessId, provider, key); err != nil {
		crs.logger.Warn("Failed to cache wallet credential", gecho.Field("error", err))
	}

	return key, nil
}

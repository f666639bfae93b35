package services

import (
	"context"
	"time"

	"merchantdesk_server/database"
	"merchantdesk_server/lib"
	"merchantdesk_server/structs"
	"merchantdesk_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
)

// PromoService resolves promo codes against the marketing module's campaigns.
// Campaigns are read-only here.
type PromoService struct {
	logger *gecho.Logger
	cfg    *structs.Config
	db     *database.DB
	cache  *CacheService
}

func NewPromoService(logger *gecho.Logger, cfg *structs.Config, db *database.DB, cache *CacheService) *PromoService {
	return &PromoService{
		logger: logger,
		cfg:    cfg,
		db:     db,
		cache:  cache,
	}
}

// ResolvePromo returns the campaign for a code when it belongs to the
// business and its window covers now. A missing or lapsed code returns
// (nil, nil): callers treat nil as an invalid code and reject the operation,
// never as "skip the discount".
func (ps *PromoService) ResolvePromo(ctx context.Context, code string, businessId uuid.UUID) (*tables.PromoCampaign, error) {
	now := time.Now()

	if cached, err := ps.cache.GetPromo(ctx, businessId, code); err == nil && cached != nil {
		// The cached row may have lapsed since it was stored.
		if cached.ActiveAt(now) {
			return cached, nil
		}
		return nil, nil
	}

	promo, err := database.First[tables.PromoCampaign](ctx, ps.db.DB, "code = ? AND business_id = ?", code, businessId)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	if promo == nil || !promo.ActiveAt(now) {
		return nil, nil
	}

	if err := ps.cache.SetPromo(ctx, promo); err != nil {
		ps.logger.Warn("Failed to cache promo", gecho.Field("error", err), gecho.Field("code", code))
	}

	return promo, nil
}

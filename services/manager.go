package services

import (
	"merchantdesk_server/database"
	"merchantdesk_server/structs"
	"merchantdesk_server/wallet"

	"github.com/MonkyMars/gecho"
)

type ServiceManager struct {
	EmailService      *EmailService
	CacheService      *CacheService
	HealthService     *HealthService
	PromoService      *PromoService
	CredentialService *CredentialService
	OrderService      *OrderService
	PaymentService    *PaymentService
}

func NewServiceManager(logger *gecho.Logger, cfg *structs.Config, db *database.DB) *ServiceManager {
	gateway := wallet.NewClient(cfg.Wallet)
	stock := NewStockLedger(logger)

	cacheService := NewCacheService(logger, cfg)
	emailService := NewEmailService(logger, cfg)
	healthService := NewHealthService(logger, db, cacheService)
	promoService := NewPromoService(logger, cfg, db, cacheService)
	credentialService := NewCredentialService(logger, cfg, db, cacheService)
	orderService := NewOrderService(logger, cfg, db, stock, promoService, credentialService, gateway, emailService)
	paymentService := NewPaymentService(logger, cfg, db, credentialService, gateway, emailService)

	return &ServiceManager{
		EmailService:      emailService,
		CacheService:      cacheService,
		HealthService:     healthService,
		PromoService:      promoService,
		CredentialService: credentialService,
		OrderService:      orderService,
		PaymentService:    paymentService,
	}
}

package api

import (
	"merchantdesk_server/api/health"
	"merchantdesk_server/api/middleware"
	"merchantdesk_server/api/orders"
	"merchantdesk_server/api/payments"
	"merchantdesk_server/services"
	"merchantdesk_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type routerManager struct {
	orderRoutes   *orders.OrderRoutesManager
	paymentRoutes *payments.PaymentRoutesManager
	healthRoutes  *health.HealthRoutesManager
}

func NewRouterManager(logger *gecho.Logger, cfg *structs.Config, sm *services.ServiceManager, mw *middleware.Middleware) *routerManager {
	return &routerManager{
		orderRoutes:   orders.NewOrderRoutesManager(logger, sm.OrderService, mw),
		paymentRoutes: payments.NewPaymentRoutesManager(logger, cfg, sm.PaymentService, mw),
		healthRoutes:  health.NewHealthRoutesManager(sm.HealthService),
	}
}

func (rm *routerManager) RegisterRoutes(r chi.Router) {
	rm.orderRoutes.RegisterRoutes(r)
	rm.paymentRoutes.RegisterRoutes(r)
	rm.healthRoutes.RegisterRoutes(r)
}

package payments

import (
	"merchantdesk_server/api/middleware"
	"merchantdesk_server/services"
	"merchantdesk_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type PaymentRoutesManager struct {
	logger         *gecho.Logger
	cfg            *structs.Config
	paymentService *services.PaymentService
	mw             *middleware.Middleware
}

func NewPaymentRoutesManager(logger *gecho.Logger, cfg *structs.Config, paymentService *services.PaymentService, mw *middleware.Middleware) *PaymentRoutesManager {
	return &PaymentRoutesManager{
		logger:         logger,
		cfg:            cfg,
		paymentService: paymentService,
		mw:             mw,
	}
}

func (prm *PaymentRoutesManager) RegisterRoutes(r chi.Router) {
	r.Route("/payment", func(r chi.Router) {
		// The gateway redirect carries no auth; it identifies the payment by
		// its provider reference alone.
		r.Get("/callback", prm.PaymentCallback)

		r.Group(func(r chi.Router) {
			r.Use(prm.mw.BusinessAuthMiddleware)
			r.Get("/{orderId}", prm.GetPayment)
			r.Put("/{orderId}", prm.UpdatePayment)
		})
	})
}

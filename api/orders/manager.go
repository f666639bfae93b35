package orders

import (
	"merchantdesk_server/api/middleware"
	"merchantdesk_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type OrderRoutesManager struct {
	logger       *gecho.Logger
	orderService *services.OrderService
	mw           *middleware.Middleware
}

func NewOrderRoutesManager(logger *gecho.Logger, orderService *services.OrderService, mw *middleware.Middleware) *OrderRoutesManager {
	return &OrderRoutesManager{
		logger:       logger,
		orderService: orderService,
		mw:           mw,
	}
}

func (orm *OrderRoutesManager) RegisterRoutes(r chi.Router) {
	r.Route("/orders", func(r chi.Router) {
		r.Use(orm.mw.BusinessAuthMiddleware)

		r.Get("/", orm.ListOrders)
		r.Post("/", orm.CreateOrder)
		r.Get("/{orderId}", orm.GetOrder)
		r.Put("/{orderId}", orm.UpdateOrder)
		r.Delete("/{orderId}", orm.DeleteOrder)
	})
}

package orders

import (
	"net/http"

	"merchantdesk_server/api/health"
	"merchantdesk_server/api/middleware"
	"merchantdesk_server/handling"
	"merchantdesk_server/lib"
	"merchantdesk_server/structs"

	"github.com/MonkyMars/gecho"
)

func (orm *OrderRoutesManager) CreateOrder(w http.ResponseWriter, r *http.Request) {
	businessId, ok := middleware.BusinessIdFromContext(r.Context())
	if !ok {
		gecho.Unauthorized(w, gecho.Send())
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.CreateOrderRequest](r)
	if err != nil {
		handling.RespondError(w, orm.logger, err)
		return
	}

	result, err := orm.orderService.Create(r.Context(), businessId, body)
	if err != nil {
		handling.RespondError(w, orm.logger, err)
		return
	}

	health.OrdersCreated.Inc()
	if result.GatewayWarning != "" {
		health.GatewayInitiationFailures.Inc()
	}

	gecho.Success(w,
		gecho.WithMessage("Order created"),
		gecho.WithData(result),
		gecho.Send(),
	)
}

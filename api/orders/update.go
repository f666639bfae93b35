package orders

import (
	"net/http"

	"merchantdesk_server/api/health"
	"merchantdesk_server/api/middleware"
	"merchantdesk_server/handling"
	"merchantdesk_server/lib"
	"merchantdesk_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func (orm *OrderRoutesManager) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	businessId, ok := middleware.BusinessIdFromContext(r.Context())
	if !ok {
		gecho.Unauthorized(w, gecho.Send())
		return
	}

	orderId, err := uuid.Parse(chi.URLParam(r, "orderId"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid order id"), gecho.Send())
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.UpdateOrderRequest](r)
	if err != nil {
		handling.RespondError(w, orm.logger, err)
		return
	}

	result, err := orm.orderService.Update(r.Context(), businessId, orderId, body)
	if err != nil {
		handling.RespondError(w, orm.logger, err)
		return
	}

	if result.GatewayWarning != "" {
		health.GatewayInitiationFailures.Inc()
	}

	gecho.Success(w,
		gecho.WithMessage("Order updated"),
		gecho.WithData(result),
		gecho.Send(),
	)
}

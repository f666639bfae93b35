package orders

import (
	"net/http"

	"merchantdesk_server/api/middleware"
	"merchantdesk_server/handling"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func (orm *OrderRoutesManager) DeleteOrder(w http.ResponseWriter, r *http.Request) {
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

	if err := orm.orderService.Delete(r.Context(), businessId, orderId); err != nil {
		handling.RespondError(w, orm.logger, err)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Order deleted"),
		gecho.Send(),
	)
}

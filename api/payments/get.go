package payments

import (
	"net/http"

	"merchantdesk_server/api/middleware"
	"merchantdesk_server/handling"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func (prm *PaymentRoutesManager) GetPayment(w http.ResponseWriter, r *http.Request) {
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

	payment, err := prm.paymentService.GetPaymentByOrder(r.Context(), businessId, orderId)
	if err != nil {
		handling.RespondError(w, prm.logger, err)
		return
	}

	gecho.Success(w,
		gecho.WithData(payment),
		gecho.Send(),
	)
}

package payments

import (
	"net/http"

	"merchantdesk_server/api/middleware"
	"merchantdesk_server/handling"
	"merchantdesk_server/lib"
	"merchantdesk_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func (prm *PaymentRoutesManager) UpdatePayment(w http.ResponseWriter, r *http.Request) {
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

	body, err := lib.ExtractAndValidateBody[structs.UpdatePaymentRequest](r)
	if err != nil {
		handling.RespondError(w, prm.logger, err)
		return
	}

	payment, err := prm.paymentService.UpdatePaymentStatus(r.Context(), businessId, orderId, body)
	if err != nil {
		handling.RespondError(w, prm.logger, err)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Payment updated"),
		gecho.WithData(payment),
		gecho.Send(),
	)
}

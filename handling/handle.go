package handling

import (
	"errors"
	"net/http"

	"merchantdesk_server/lib"

	"github.com/MonkyMars/gecho"
)

// HandleError logs an unexpected error and returns a bare 500. For errors the
// caller can classify, use RespondError instead.
func HandleError(err error, msg string, logger *gecho.Logger, w http.ResponseWriter) *gecho.Response {
	logger.Error("An error occurred", gecho.Field("error", err), gecho.Field("msg", msg), gecho.WithCallerSkip(3))

	return gecho.InternalServerError(w, gecho.Send())
}

// RespondError maps a service-layer error onto the HTTP response it deserves.
// Classified errors carry messages safe to show the merchant; everything else
// is logged and collapsed into a bare 500.
func RespondError(w http.ResponseWriter, logger *gecho.Logger, err error) {
	var validationErr *lib.ValidationError
	if errors.As(err, &validationErr) {
		gecho.BadRequest(w,
			gecho.WithMessage("Request validation failed"),
			gecho.WithData(validationErr.Errors),
			gecho.Send(),
		)
		return
	}

	var productErr *lib.ProductNotFoundError
	if errors.As(err, &productErr) {
		gecho.NotFound(w,
			gecho.WithMessage(productErr.Error()),
			gecho.Send(),
		)
		return
	}

	var stockErr *lib.InsufficientStockError
	if errors.As(err, &stockErr) {
		gecho.BadRequest(w,
			gecho.WithMessage(stockErr.Error()),
			gecho.WithData(map[string]any{
				"product_id": stockErr.ProductId,
				"requested":  stockErr.Requested,
				"available":  stockErr.Available,
			}),
			gecho.Send(),
		)
		return
	}

	switch {
	case errors.Is(err, lib.ErrOrderNotFound),
		errors.Is(err, lib.ErrPaymentNotFound),
		errors.Is(err, lib.ErrCustomerNotFound),
		errors.Is(err, lib.ErrNotFound):
		gecho.NotFound(w, gecho.WithMessage(err.Error()), gecho.Send())

	case errors.Is(err, lib.ErrConflict):
		gecho.Conflict(w, gecho.WithMessage(err.Error()), gecho.Send())

	case errors.Is(err, lib.ErrOrderLocked),
		errors.Is(err, lib.ErrInvalidPromoCode),
		errors.Is(err, lib.ErrPaymentNotEditable):
		gecho.BadRequest(w, gecho.WithMessage(err.Error()), gecho.Send())

	case errors.Is(err, lib.ErrInvalidToken):
		gecho.Unauthorized(w, gecho.WithMessage("Invalid or missing access token"), gecho.Send())

	default:
		logger.Error("Unhandled error", gecho.Field("error", err), gecho.WithCallerSkip(3))
		gecho.InternalServerError(w, gecho.Send())
	}
}

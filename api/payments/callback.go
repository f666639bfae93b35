package payments

import (
	"net/http"

	"merchantdesk_server/api/health"
	"merchantdesk_server/structs/tables"

	"github.com/MonkyMars/gecho"
)

// PaymentCallback handles the gateway redirect after checkout. Whatever
// happens here the shopper lands on one of two pages: success when the
// payment reconciled to paid, failure for every other outcome. Error detail
// stays in the logs; the redirect leaks nothing.
func (prm *PaymentRoutesManager) PaymentCallback(w http.ResponseWriter, r *http.Request) {
	pidx := r.URL.Query().Get("pidx")
	if pidx == "" {
		http.Redirect(w, r, prm.cfg.Wallet.FailureURL, http.StatusSeeOther)
		return
	}

	status, err := prm.paymentService.Reconcile(r.Context(), pidx)
	if err != nil {
		prm.logger.Warn("Payment callback reconciliation failed",
			gecho.Field("error", err),
			gecho.Field("pidx", pidx))
		http.Redirect(w, r, prm.cfg.Wallet.FailureURL, http.StatusSeeOther)
		return
	}

	health.PaymentsReconciled.WithLabelValues(string(status)).Inc()

	if status == tables.PaymentStatusPaid {
		http.Redirect(w, r, prm.cfg.Wallet.SuccessURL, http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, prm.cfg.Wallet.FailureURL, http.StatusSeeOther)
}

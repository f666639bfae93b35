package handling

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"merchantdesk_server/lib"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestRespondError_StatusMapping(t *testing.T) {
	logger := gecho.NewDefaultLogger()

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"order not found", lib.ErrOrderNotFound, http.StatusNotFound},
		{"payment not found", lib.ErrPaymentNotFound, http.StatusNotFound},
		{"customer not found", lib.ErrCustomerNotFound, http.StatusNotFound},
		{"order locked", lib.ErrOrderLocked, http.StatusBadRequest},
		{"conflict", lib.ErrConflict, http.StatusConflict},
		{"invalid promo", lib.ErrInvalidPromoCode, http.StatusBadRequest},
		{"payment not editable", lib.ErrPaymentNotEditable, http.StatusBadRequest},
		{"invalid token", lib.ErrInvalidToken, http.StatusUnauthorized},
		{"product not found", &lib.ProductNotFoundError{ProductId: uuid.New()}, http.StatusNotFound},
		{"insufficient stock", &lib.InsufficientStockError{ProductId: uuid.New(), Requested: 5, Available: 2}, http.StatusBadRequest},
		{"validation", &lib.ValidationError{}, http.StatusBadRequest},
		{"anything else", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			RespondError(w, logger, tt.err)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

// Wrapped classified errors still map to their status.
func TestRespondError_WrappedError(t *testing.T) {
	logger := gecho.NewDefaultLogger()

	w := httptest.NewRecorder()
	RespondError(w, logger, errors.Join(errors.New("while updating"), lib.ErrOrderLocked))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

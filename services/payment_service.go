package services

import (
	"context"
	"time"

	"merchantdesk_server/database"
	"merchantdesk_server/lib"
	"merchantdesk_server/structs"
	"merchantdesk_server/structs/tables"
	"merchantdesk_server/wallet"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
)

// PaymentService handles the payment views of an order, manual settlement for
// non-gateway payments and reconciliation against the wallet provider.
type PaymentService struct {
	logger      *gecho.Logger
	cfg         *structs.Config
	db          *database.DB
	credentials *CredentialService
	gateway     *wallet.Client
	emails      *EmailService
}

func NewPaymentService(
	logger *gecho.Logger,
	cfg *structs.Config,
	db *database.DB,
	credentials *CredentialService,
	gateway *wallet.Client,
	emails *EmailService,
) *PaymentService {
	return &PaymentService{
		logger:      logger,
		cfg:         cfg,
		db:          db,
		credentials: credentials,
		gateway:     gateway,
		emails:      emails,
	}
}

// GetPaymentByOrder returns the payment row for an order the business owns.
func (ps *PaymentService) GetPaymentByOrder(ctx context.Context, businessId, orderId uuid.UUID) (*tables.Payment, error) {
	owned, err := database.Exists[tables.Order](ctx, ps.db.DB, "id = ? AND business_id = ?", orderId, businessId)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	if !owned {
		return nil, lib.ErrOrderNotFound
	}

	payment, err := database.First[tables.Payment](ctx, ps.db.DB, "order_id = ?", orderId)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	if payment == nil {
		return nil, lib.ErrPaymentNotFound
	}

	return payment, nil
}

// UpdatePaymentStatus lets the merchant settle a payment by hand. Only
// payments with method Other are editable; gateway payments change status
// through reconciliation exclusively.
func (ps *PaymentService) UpdatePaymentStatus(ctx context.Context, businessId, orderId uuid.UUID, req *structs.UpdatePaymentRequest) (*tables.Payment, error) {
	payment, err := ps.GetPaymentByOrder(ctx, businessId, orderId)
	if err != nil {
		return nil, err
	}

	if payment.Method != tables.PaymentMethodOther {
		return nil, lib.ErrPaymentNotEditable
	}

	// Paid is terminal even for manual payments.
	if payment.Status == tables.PaymentStatusPaid && req.Status != tables.PaymentStatusPaid {
		return nil, lib.ErrOrderLocked
	}

	now := time.Now()
	status := req.Status
	values := map[string]any{
		"status":     status,
		"updated_at": now,
	}
	if status == tables.PaymentStatusPaid {
		values["payment_date"] = now
	} else {
		values["payment_date"] = nil
	}

	if _, err := database.UpdateColumns[tables.Payment](ctx, ps.db.DB, values, "id = ?", payment.Id); err != nil {
		return nil, lib.MapPgError(err)
	}

	payment.Status = status
	payment.UpdatedAt = now
	if status == tables.PaymentStatusPaid {
		payment.PaymentDate = &now
	} else {
		payment.PaymentDate = nil
	}

	return payment, nil
}

// Reconcile resolves a provider reference to its authoritative state by asking
// the provider and persisting the answer. A payment already marked paid is
// returned as-is without touching the provider, which makes repeated callbacks
// for the same reference harmless.
func (ps *PaymentService) Reconcile(ctx context.Context, pidx string) (tables.PaymentStatus, error) {
	// The placeholder fills every never-initiated payment row; treating it as
	// a real reference would match an arbitrary row and waste a provider call.
	if pidx == "" || pidx == tables.PidxPlaceholder {
		return "", lib.ErrPaymentNotFound
	}

	payment, err := database.First[tables.Payment](ctx, ps.db.DB, "pidx = ?", pidx)
	if err != nil {
		return "", lib.MapPgError(err)
	}
	if payment == nil {
		return "", lib.ErrPaymentNotFound
	}

	if payment.Status == tables.PaymentStatusPaid {
		return tables.PaymentStatusPaid, nil
	}

	order, err := database.FindByID[tables.Order](ctx, ps.db.DB, payment.OrderId)
	if err != nil {
		return "", lib.MapPgError(err)
	}
	if order == nil {
		return "", lib.ErrOrderNotFound
	}

	secretKey, err := ps.credentials.GetGatewayCredential(ctx, order.BusinessId, ps.cfg.Wallet.Provider)
	if err != nil {
		return "", err
	}

	lookup, err := ps.gateway.Lookup(ctx, pidx, secretKey)
	if err != nil {
		return "", err
	}

	status := wallet.MapStatus(lookup.Status)
	ps.logger.Info("Reconciled payment against provider",
		gecho.Field("pidx", pidx),
		gecho.Field("provider_status", lookup.Status),
		gecho.Field("status", status))

	now := time.Now()
	values := map[string]any{
		"status":           status,
		"transaction_id":   lookup.TransactionId,
		"provider_payload": string(lookup.Raw),
		"updated_at":       now,
	}
	if status == tables.PaymentStatusPaid {
		values["payment_date"] = now
	}

	if _, err := database.UpdateColumns[tables.Payment](ctx, ps.db.DB, values, "pidx = ?", pidx); err != nil {
		return "", lib.MapPgError(err)
	}

	if status == tables.PaymentStatusPaid {
		go func() {
			if err := ps.emails.SendPaymentReceiptEmail(order.CustomerEmail, order.CustomerName, order.Id, payment.AmountCents); err != nil {
				ps.logger.Error("Failed to send payment receipt email",
					gecho.Field("error", err),
					gecho.Field("order_id", order.Id))
			}
		}()
	}

	return status, nil
}

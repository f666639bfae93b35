package services

import (
	"context"
	"fmt"
	"time"

	"merchantdesk_server/database"
	"merchantdesk_server/lib"
	"merchantdesk_server/structs"
	"merchantdesk_server/structs/tables"
	"merchantdesk_server/wallet"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// OrderService owns the order lifecycle: create, update, delete and reads.
// Every mutation runs stock, lines, sales records and the payment row inside
// one transaction; gateway initiation happens strictly after commit.
type OrderService struct {
	logger      *gecho.Logger
	cfg         *structs.Config
	db          *database.DB
	stock       *StockLedger
	promos      *PromoService
	credentials *CredentialService
	gateway     *wallet.Client
	emails      *EmailService
}

func NewOrderService(
	logger *gecho.Logger,
	cfg *structs.Config,
	db *database.DB,
	stock *StockLedger,
	promos *PromoService,
	credentials *CredentialService,
	gateway *wallet.Client,
	emails *EmailService,
) *OrderService {
	return &OrderService{
		logger:      logger,
		cfg:         cfg,
		db:          db,
		stock:       stock,
		promos:      promos,
		credentials: credentials,
		gateway:     gateway,
		emails:      emails,
	}
}

// pricedLine is one validated, priced line item ready to be written.
type pricedLine struct {
	product        *tables.Product
	quantity       int
	unitPriceCents int64
	discountCents  int64
	lineTotalCents int64
}

// priceLines validates each requested line against the product catalog and
// prices it with the product's current price and the given discount percent.
// Discounts round per line so the order total always equals the sum of its
// lines.
func (os *OrderService) priceLines(ctx context.Context, idb bun.IDB, businessId uuid.UUID, inputs []structs.OrderLineInput, discountPercent float64) ([]pricedLine, int64, int64, error) {
	lines := make([]pricedLine, 0, len(inputs))
	var totalCents, totalDiscountCents int64

	for _, input := range inputs {
		product, err := database.First[tables.Product](ctx, idb, "id = ? AND business_id = ?", input.ProductId, businessId)
		if err != nil {
			return nil, 0, 0, lib.MapPgError(err)
		}
		if product == nil {
			return nil, 0, 0, &lib.ProductNotFoundError{ProductId: input.ProductId}
		}

		if err := os.stock.CheckAvailability(ctx, idb, product, input.Quantity); err != nil {
			return nil, 0, 0, err
		}

		gross := product.PriceCents * int64(input.Quantity)
		lineTotal, discount := lib.ApplyDiscount(gross, discountPercent)

		lines = append(lines, pricedLine{
			product:        product,
			quantity:       input.Quantity,
			unitPriceCents: product.PriceCents,
			discountCents:  discount,
			lineTotalCents: lineTotal,
		})

		totalCents += lineTotal
		totalDiscountCents += discount
	}

	return lines, totalCents, totalDiscountCents, nil
}

// writeLines decrements stock and inserts the order lines and sales records
// for a priced set. Runs on the caller's transaction.
func (os *OrderService) writeLines(ctx context.Context, tx bun.Tx, order *tables.Order, lines []pricedLine) error {
	orderLines := make([]tables.OrderLine, 0, len(lines))
	salesRecords := make([]tables.SalesRecord, 0, len(lines))
	now := time.Now()

	for _, line := range lines {
		if err := os.stock.Decrement(ctx, tx, line.product.Id, line.quantity); err != nil {
			return err
		}

		orderLines = append(orderLines, tables.OrderLine{
			OrderId:        order.Id,
			ProductId:      line.product.Id,
			Quantity:       line.quantity,
			UnitPriceCents: line.unitPriceCents,
			DiscountCents:  line.discountCents,
			LineTotalCents: line.lineTotalCents,
			ProductName:    line.product.Name,
		})

		salesRecords = append(salesRecords, tables.SalesRecord{
			BusinessId:    order.BusinessId,
			OrderId:       order.Id,
			ProductId:     line.product.Id,
			Quantity:      line.quantity,
			RevenueCents:  line.lineTotalCents,
			DiscountCents: line.discountCents,
			SaleDate:      now,
		})
	}

	if _, err := database.InsertMany(ctx, tx, orderLines); err != nil {
		return lib.MapPgError(err)
	}
	if _, err := database.InsertMany(ctx, tx, salesRecords); err != nil {
		return lib.MapPgError(err)
	}

	return nil
}

// restoreLines puts an order's current line quantities back into stock. Used
// before an update replaces the lines and before a delete removes the order.
func (os *OrderService) restoreLines(ctx context.Context, tx bun.Tx, orderId uuid.UUID) error {
	lines, err := database.All[tables.OrderLine](ctx, tx, "order_id = ?", orderId)
	if err != nil {
		return lib.MapPgError(err)
	}

	for _, line := range lines {
		if err := os.stock.Increment(ctx, tx, line.ProductId, line.Quantity); err != nil {
			return err
		}
	}

	return nil
}

// resolveCustomer returns the customer the order belongs to: by id when one
// is supplied, otherwise find-or-create on the (phone, email) pair. Runs on
// the order transaction so the total_orders bump commits with the order.
func (os *OrderService) resolveCustomer(ctx context.Context, tx bun.Tx, businessId uuid.UUID, req *structs.CreateOrderRequest) (*tables.Customer, error) {
	if req.CustomerId != nil {
		customer, err := database.First[tables.Customer](ctx, tx, "id = ? AND business_id = ?", *req.CustomerId, businessId)
		if err != nil {
			return nil, lib.MapPgError(err)
		}
		if customer == nil {
			return nil, lib.ErrCustomerNotFound
		}
		return customer, nil
	}

	customer, err := database.First[tables.Customer](ctx, tx, "business_id = ? AND phone = ? AND email = ?", businessId, req.CustomerPhone, req.CustomerEmail)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	if customer != nil {
		return customer, nil
	}

	created, err := database.Insert(ctx, tx, &tables.Customer{
		BusinessId: businessId,
		Name:       req.CustomerName,
		Phone:      req.CustomerPhone,
		Email:      req.CustomerEmail,
	})
	if err != nil {
		return nil, lib.MapPgError(err)
	}

	return created, nil
}

// incrementCustomerOrders bumps the customer's order counter in place. The
// arithmetic runs in SQL so concurrent orders for the same customer cannot
// lose updates the way a read-modify-write would.
func (os *OrderService) incrementCustomerOrders(ctx context.Context, idb bun.IDB, customerId uuid.UUID) error {
	_, err := idb.NewUpdate().
		Model((*tables.Customer)(nil)).
		Set("total_orders = total_orders + 1").
		Set("updated_at = ?", time.Now()).
		Where("id = ?", customerId).
		Exec(ctx)
	if err != nil {
		return lib.MapPgError(err)
	}
	return nil
}

// decrementCustomerOrders is the inverse, guarded so the counter never goes
// below zero.
func (os *OrderService) decrementCustomerOrders(ctx context.Context, idb bun.IDB, customerId uuid.UUID) error {
	_, err := idb.NewUpdate().
		Model((*tables.Customer)(nil)).
		Set("total_orders = total_orders - 1").
		Set("updated_at = ?", time.Now()).
		Where("id = ? AND total_orders > 0", customerId).
		Exec(ctx)
	if err != nil {
		return lib.MapPgError(err)
	}
	return nil
}

// initiateGatewayPayment registers a committed order with the wallet provider
// and records the returned reference on the payment row. Any failure here is
// recorded on the payment and surfaced as a warning; the order stands.
func (os *OrderService) initiateGatewayPayment(ctx context.Context, order *tables.Order) (string, error) {
	secretKey, err := os.credentials.GetGatewayCredential(ctx, order.BusinessId, os.cfg.Wallet.Provider)
	if err != nil {
		return "", err
	}

	result, err := os.gateway.Initiate(ctx, wallet.InitiateParams{
		AmountCents: order.TotalCents,
		OrderId:     order.Id,
		OrderName:   fmt.Sprintf("Order %s", order.Id),
		Customer: wallet.CustomerInfo{
			Name:  order.CustomerName,
			Email: order.CustomerEmail,
			Phone: order.CustomerPhone,
		},
		SecretKey: secretKey,
	})
	if err != nil {
		return "", err
	}

	if _, err := database.UpdateColumns[tables.Payment](ctx, os.db.DB, map[string]any{
		"pidx":       result.Pidx,
		"updated_at": time.Now(),
	}, "order_id = ?", order.Id); err != nil {
		return "", lib.MapPgError(err)
	}

	return result.PaymentURL, nil
}

// recordGatewayFailure writes a note on the payment row after a failed
// initiation. When downgrade is set the method flips to Other so the payment
// can be settled manually.
func (os *OrderService) recordGatewayFailure(ctx context.Context, orderId uuid.UUID, gatewayErr error, downgrade bool) {
	values := map[string]any{
		"error_note": gatewayErr.Error(),
		"updated_at": time.Now(),
	}
	if downgrade {
		values["method"] = tables.PaymentMethodOther
	}

	if _, err := database.UpdateColumns[tables.Payment](ctx, os.db.DB, values, "order_id = ?", orderId); err != nil {
		os.logger.Error("Failed to record gateway failure on payment",
			gecho.Field("error", err),
			gecho.Field("order_id", orderId))
	}
}

// Create validates, prices and persists a new order with its lines, sales
// records and pending payment row, then initiates the wallet payment when the
// method asks for it.
func (os *OrderService) Create(ctx context.Context, businessId uuid.UUID, req *structs.CreateOrderRequest) (*structs.OrderMutationResult, error) {
	var order *tables.Order

	err := os.db.RunInTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		customer, err := os.resolveCustomer(ctx, tx, businessId, req)
		if err != nil {
			return err
		}

		lines, totalCents, _, err := os.priceLines(ctx, tx, businessId, req.Products, 0)
		if err != nil {
			return err
		}

		now := time.Now()
		order, err = database.Insert(ctx, tx, &tables.Order{
			BusinessId:       businessId,
			CustomerId:       customer.Id,
			CustomerName:     customer.Name,
			CustomerPhone:    customer.Phone,
			CustomerEmail:    customer.Email,
			DeliveryLocation: req.DeliveryLocation,
			TotalCents:       totalCents,
			OrderDate:        now,
		})
		if err != nil {
			return lib.MapPgError(err)
		}

		if err := os.writeLines(ctx, tx, order, lines); err != nil {
			return err
		}

		if _, err := database.Insert(ctx, tx, &tables.Payment{
			OrderId:     order.Id,
			Pidx:        tables.PidxPlaceholder,
			AmountCents: totalCents,
			Status:      tables.PaymentStatusPending,
			Method:      req.PaymentMethod,
		}); err != nil {
			return lib.MapPgError(err)
		}

		if err := os.incrementCustomerOrders(ctx, tx, customer.Id); err != nil {
			return err
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	result := &structs.OrderMutationResult{
		OrderId:    order.Id,
		TotalCents: order.TotalCents,
	}

	if req.PaymentMethod == tables.PaymentMethodKhalti {
		paymentURL, gwErr := os.initiateGatewayPayment(ctx, order)
		if gwErr != nil {
			os.logger.Warn("Gateway initiation failed after order commit",
				gecho.Field("error", gwErr),
				gecho.Field("order_id", order.Id))
			os.recordGatewayFailure(ctx, order.Id, gwErr, false)
			result.GatewayWarning = "order created, but payment initiation failed; retry via the payment page"
		} else {
			result.PaymentURL = paymentURL
		}
	}

	go func() {
		if err := os.emails.SendOrderConfirmationEmail(order.CustomerEmail, order.CustomerName, order.Id, order.TotalCents); err != nil {
			os.logger.Error("Failed to send order confirmation email",
				gecho.Field("error", err),
				gecho.Field("order_id", order.Id))
		}
	}()

	return result, nil
}

// Update replaces an order's line items, contact snapshot and payment wholesale.
// Old stock is restored first, then the new set is validated and written at
// current prices. A paid order is locked. A promo code, when present, must
// resolve to an active campaign or the whole update is rejected.
func (os *OrderService) Update(ctx context.Context, businessId, orderId uuid.UUID, req *structs.UpdateOrderRequest) (*structs.OrderMutationResult, error) {
	var promo *tables.PromoCampaign
	if req.PromoCode != nil {
		resolved, err := os.promos.ResolvePromo(ctx, *req.PromoCode, businessId)
		if err != nil {
			return nil, err
		}
		if resolved == nil {
			return nil, lib.ErrInvalidPromoCode
		}
		promo = resolved
	}

	var order *tables.Order
	var totalCents, discountCents int64

	err := os.db.RunInTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		var err error
		order, err = database.First[tables.Order](ctx, tx, "id = ? AND business_id = ?", orderId, businessId)
		if err != nil {
			return lib.MapPgError(err)
		}
		if order == nil {
			return lib.ErrOrderNotFound
		}

		payment, err := database.First[tables.Payment](ctx, tx, "order_id = ?", orderId)
		if err != nil {
			return lib.MapPgError(err)
		}
		if payment != nil && payment.Status == tables.PaymentStatusPaid {
			return lib.ErrOrderLocked
		}

		if err := os.restoreLines(ctx, tx, orderId); err != nil {
			return err
		}
		if _, err := database.Delete[tables.OrderLine](ctx, tx, "order_id = ?", orderId); err != nil {
			return lib.MapPgError(err)
		}
		if _, err := database.Delete[tables.SalesRecord](ctx, tx, "order_id = ?", orderId); err != nil {
			return lib.MapPgError(err)
		}
		if _, err := database.Delete[tables.Payment](ctx, tx, "order_id = ?", orderId); err != nil {
			return lib.MapPgError(err)
		}

		discountPercent := 0.0
		if promo != nil {
			discountPercent = promo.DiscountPercent
		}

		var lines []pricedLine
		lines, totalCents, discountCents, err = os.priceLines(ctx, tx, businessId, req.Products, discountPercent)
		if err != nil {
			return err
		}

		now := time.Now()
		values := map[string]any{
			"customer_name":     req.CustomerName,
			"customer_phone":    req.CustomerPhone,
			"customer_email":    req.CustomerEmail,
			"delivery_location": req.DeliveryLocation,
			"total_cents":       totalCents,
			"discount_percent":  discountPercent,
			"discount_cents":    discountCents,
			"promo_code":        req.PromoCode,
			"updated_at":        now,
		}
		if _, err := database.UpdateColumns[tables.Order](ctx, tx, values, "id = ?", orderId); err != nil {
			return lib.MapPgError(err)
		}

		order.CustomerName = req.CustomerName
		order.CustomerPhone = req.CustomerPhone
		order.CustomerEmail = req.CustomerEmail
		order.TotalCents = totalCents
		order.DiscountCents = discountCents

		if err := os.writeLines(ctx, tx, order, lines); err != nil {
			return err
		}

		if _, err := database.Insert(ctx, tx, &tables.Payment{
			OrderId:     orderId,
			Pidx:        tables.PidxPlaceholder,
			AmountCents: totalCents,
			Status:      tables.PaymentStatusPending,
			Method:      req.PaymentMethod,
		}); err != nil {
			return lib.MapPgError(err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	result := &structs.OrderMutationResult{
		OrderId:       orderId,
		TotalCents:    totalCents,
		DiscountCents: discountCents,
	}

	if req.PaymentMethod == tables.PaymentMethodKhalti {
		paymentURL, gwErr := os.initiateGatewayPayment(ctx, order)
		if gwErr != nil {
			os.logger.Warn("Gateway initiation failed after order update",
				gecho.Field("error", gwErr),
				gecho.Field("order_id", orderId))
			// The replacement payment row cannot reach the provider, so it is
			// downgraded to manual settlement rather than left dangling.
			os.recordGatewayFailure(ctx, orderId, gwErr, true)
			result.GatewayWarning = "order updated, but payment initiation failed; payment method set to Other"
		} else {
			result.PaymentURL = paymentURL
		}
	}

	return result, nil
}

// Delete removes an order with its lines, sales records and payment, restoring
// stock. A paid order is locked.
func (os *OrderService) Delete(ctx context.Context, businessId, orderId uuid.UUID) error {
	return os.db.RunInTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		order, err := database.First[tables.Order](ctx, tx, "id = ? AND business_id = ?", orderId, businessId)
		if err != nil {
			return lib.MapPgError(err)
		}
		if order == nil {
			return lib.ErrOrderNotFound
		}

		payment, err := database.First[tables.Payment](ctx, tx, "order_id = ?", orderId)
		if err != nil {
			return lib.MapPgError(err)
		}
		if payment != nil && payment.Status == tables.PaymentStatusPaid {
			return lib.ErrOrderLocked
		}

		if err := os.restoreLines(ctx, tx, orderId); err != nil {
			return err
		}

		if _, err := database.Delete[tables.Payment](ctx, tx, "order_id = ?", orderId); err != nil {
			return lib.MapPgError(err)
		}
		if _, err := database.Delete[tables.SalesRecord](ctx, tx, "order_id = ?", orderId); err != nil {
			return lib.MapPgError(err)
		}
		if _, err := database.Delete[tables.OrderLine](ctx, tx, "order_id = ?", orderId); err != nil {
			return lib.MapPgError(err)
		}

		if err := os.decrementCustomerOrders(ctx, tx, order.CustomerId); err != nil {
			return err
		}

		if _, err := database.Delete[tables.Order](ctx, tx, "id = ?", orderId); err != nil {
			return lib.MapPgError(err)
		}

		return nil
	})
}

// GetOrder returns one order with its lines and payment.
func (os *OrderService) GetOrder(ctx context.Context, businessId, orderId uuid.UUID) (*structs.OrderDetail, error) {
	order, err := database.First[tables.Order](ctx, os.db.DB, "id = ? AND business_id = ?", orderId, businessId)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	if order == nil {
		return nil, lib.ErrOrderNotFound
	}

	lines, err := database.All[tables.OrderLine](ctx, os.db.DB, "order_id = ?", orderId)
	if err != nil {
		return nil, lib.MapPgError(err)
	}

	payment, err := database.First[tables.Payment](ctx, os.db.DB, "order_id = ?", orderId)
	if err != nil {
		return nil, lib.MapPgError(err)
	}

	return &structs.OrderDetail{
		Order:   order,
		Lines:   lines,
		Payment: payment,
	}, nil
}

// ListOrders returns every order for the business, newest first.
func (os *OrderService) ListOrders(ctx context.Context, businessId uuid.UUID) ([]tables.Order, error) {
	var orders []tables.Order

	err := database.WithRetry(ctx, func() error {
		orders = nil
		return os.db.NewSelect().
			Model(&orders).
			Where("business_id = ?", businessId).
			Order("order_date DESC").
			Scan(ctx)
	})
	if err != nil {
		return nil, lib.MapPgError(err)
	}

	if orders == nil {
		orders = []tables.Order{}
	}

	return orders, nil
}

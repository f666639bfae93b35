package services

import (
	"context"
	"time"

	"merchantdesk_server/lib"
	"merchantdesk_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// StockLedger is the only code allowed to move product stock. Every mutation
// runs on the caller's transaction handle so stock changes commit or fail
// together with the order rows they belong to.
type StockLedger struct {
	logger *gecho.Logger
}

func NewStockLedger(logger *gecho.Logger) *StockLedger {
	return &StockLedger{logger: logger}
}

// CheckAvailability verifies a product exists within the business and has at
// least qty units. Used for the validation pass that precedes any write.
func (sl *StockLedger) CheckAvailability(ctx context.Context, idb bun.IDB, product *tables.Product, qty int) error {
	if product == nil {
		return lib.ErrNotFound
	}
	if product.Stock < qty {
		return &lib.InsufficientStockError{
			ProductId:   product.Id,
			ProductName: product.Name,
			Requested:   qty,
			Available:   product.Stock,
		}
	}
	return nil
}

// Decrement subtracts qty from a product's stock. The WHERE clause re-checks
// availability inside the transaction: the earlier validation pass and this
// write are not atomic with each other, and a concurrent order may have taken
// the units in between. Zero rows affected means the stock is gone and the
// whole transaction aborts.
func (sl *StockLedger) Decrement(ctx context.Context, idb bun.IDB, productId uuid.UUID, qty int) error {
	res, err := idb.NewUpdate().
		Model((*tables.Product)(nil)).
		Set("stock = stock - ?", qty).
		Set("updated_at = ?", time.Now()).
		Where("id = ? AND stock >= ?", productId, qty).
		Exec(ctx)
	if err != nil {
		return lib.MapPgError(err)
	}

	rows, _ := res.RowsAffected()
	if rows == 0 {
		var current tables.Product
		available := 0
		if scanErr := idb.NewSelect().Model(&current).Where("id = ?", productId).Limit(1).Scan(ctx); scanErr == nil {
			available = current.Stock
		}
		sl.logger.Warn("Stock decrement lost a race",
			gecho.Field("product_id", productId),
			gecho.Field("requested", qty),
			gecho.Field("available", available))
		return &lib.InsufficientStockError{
			ProductId:   productId,
			ProductName: current.Name,
			Requested:   qty,
			Available:   available,
		}
	}

	return nil
}

// Increment adds qty back to a product's stock, used when an order's line
// items are restored on update or delete.
func (sl *StockLedger) Increment(ctx context.Context, idb bun.IDB, productId uuid.UUID, qty int) error {
	_, err := idb.NewUpdate().
		Model((*tables.Product)(nil)).
		Set("stock = stock + ?", qty).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", productId).
		Exec(ctx)
	if err != nil {
		return lib.MapPgError(err)
	}
	return nil
}

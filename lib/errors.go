package lib

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/uptrace/bun/driver/pgdriver"
)

// Database errors
var (
	ErrConflict = errors.New("conflict")
	ErrNotFound = errors.New("not found")
)

// Auth errors
var (
	ErrInvalidToken = errors.New("invalid token")
)

// Order/payment conflict errors. These block the operation and are safe to
// show to the merchant.
var (
	ErrOrderLocked        = errors.New("order is locked: payment already completed")
	ErrInvalidPromoCode   = errors.New("invalid or expired promo code")
	ErrPaymentNotEditable = errors.New("only payments with method Other can be edited manually")
)

// Not-found errors for the order subsystem.
var (
	ErrOrderNotFound    = errors.New("order not found")
	ErrPaymentNotFound  = errors.New("payment not found")
	ErrCustomerNotFound = errors.New("customer not found")
)

// ErrGatewayNotConfigured means the business has no stored wallet credential.
// Distinct from a provider-side failure.
var ErrGatewayNotConfigured = errors.New("payment gateway not configured for this business")

// ProductNotFoundError names the missing product so the caller can fix the
// request.
type ProductNotFoundError struct {
	ProductId uuid.UUID
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product %s not found", e.ProductId)
}

// InsufficientStockError reports which product is short and how many units
// are actually available.
type InsufficientStockError struct {
	ProductId   uuid.UUID
	ProductName string
	Requested   int
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s: requested %d, available %d",
		e.ProductId, e.Requested, e.Available)
}

// GatewayError wraps a wallet provider failure. Once the order transaction
// has committed it is reported as a warning, never as a rollback trigger.
type GatewayError struct {
	Op  string // "initiate" or "lookup"
	Err error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("payment gateway %s failed: %v", e.Op, e.Err)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

// MapPgError translates driver-level constraint failures into the taxonomy.
func MapPgError(err error) error {
	if err == nil {
		return nil
	}

	var drvErr pgdriver.Error
	if errors.As(err, &drvErr) {
		switch drvErr.Field('C') { // SQLSTATE
		case "23505": // unique_violation
			return ErrConflict
		case "P0002": // no_data_found
			return ErrNotFound
		}
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return ErrConflict
		case "P0002":
			return ErrNotFound
		}
	}

	return err
}

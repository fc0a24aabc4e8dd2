package repository

import (
	"context"

	"github.com/reqpay/reqpay/internal/domain/model"
)

// OrderRepository describes the order state gateway consumed by the core.
// Status transitions are conditional on the current status so concurrent
// callbacks for the same order cannot double-process a payment.
type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) (*model.Order, error)
	GetByID(ctx context.Context, id int64) (*model.Order, error)
	SetTxid(ctx context.Context, orderID int64, txid string) error
	SetPayerAddress(ctx context.Context, orderID int64, address string) error
	// MarkPaid moves the order to processing if it is still awaitable and
	// returns ErrDuplicateCallback otherwise.
	MarkPaid(ctx context.Context, orderID int64, note string) error
	// UpdateStatus transitions the order to the target status only when its
	// current status is one of from.
	UpdateStatus(ctx context.Context, orderID int64, from []model.OrderStatus, to model.OrderStatus, note string) error
	AddNote(ctx context.Context, orderID int64, note string) error
	// SelectForReconciliation picks on-hold orders carrying a submitted txid
	// for background re-verification.
	SelectForReconciliation(ctx context.Context, limit int) ([]model.Order, error)
}

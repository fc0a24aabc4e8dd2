package usecase

import (
	"context"
	"fmt"

	domainErrors "github.com/reqpay/reqpay/internal/domain/errors"
	"github.com/reqpay/reqpay/internal/domain/model"
	"github.com/reqpay/reqpay/internal/domain/repository"
	"github.com/reqpay/reqpay/internal/pkg/orderkey"
)

// OrderUseCase encapsulates order lifecycle logic. Order keys are derived
// from the order ID with an HMAC signature, never stored.
type OrderUseCase struct {
	orders repository.OrderRepository
	keys   *orderkey.Strategy
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository, keys *orderkey.Strategy) *OrderUseCase {
	return &OrderUseCase{orders: orders, keys: keys}
}

// Register persists a new pending order expectation and returns it with its
// signed key.
func (u *OrderUseCase) Register(ctx context.Context, order *model.Order) (*model.Order, error) {
	order.Status = model.OrderStatusPending
	created, err := u.orders.Create(ctx, order)
	if err != nil {
		return nil, err
	}
	created.Key = u.keys.Issue(created.ID)
	return created, nil
}

// Resolve maps a signed order key to its order.
func (u *OrderUseCase) Resolve(ctx context.Context, key string) (*model.Order, error) {
	orderID, err := u.keys.Parse(key)
	if err != nil {
		return nil, domainErrors.ErrOrderKeyInvalid
	}

	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	order.Key = key
	return order, nil
}

// RecordTxid persists a not-yet-confirmed transaction id and moves the order
// to on-hold so automatic stock-hold expiry does not cancel it while the
// chain is slow to confirm.
func (u *OrderUseCase) RecordTxid(ctx context.Context, orderID int64, txid string) error {
	if txid == "" {
		return domainErrors.ErrEmptyTxid
	}

	if err := u.orders.SetTxid(ctx, orderID, txid); err != nil {
		return err
	}

	note := fmt.Sprintf("Payment has been submitted, the TXID for this payment is: %s.", txid)
	return u.orders.UpdateStatus(ctx, orderID,
		[]model.OrderStatus{model.OrderStatusPending, model.OrderStatusOnHold, model.OrderStatusFailed},
		model.OrderStatusOnHold, note)
}

// CompletePayment persists the verified txid and payer address and marks the
// order paid. The conditional update reports a duplicate callback when the
// order already advanced.
func (u *OrderUseCase) CompletePayment(ctx context.Context, order *model.Order, txid, payerAddress string) error {
	if err := u.orders.SetTxid(ctx, order.ID, txid); err != nil {
		return err
	}

	if payerAddress != "" {
		if err := u.orders.SetPayerAddress(ctx, order.ID, payerAddress); err != nil {
			return err
		}
	}

	note := fmt.Sprintf("%s %s has been received. Transaction ID = %s", order.ExpectedAmount, order.Currency, txid)
	return u.orders.MarkPaid(ctx, order.ID, note)
}

// SavePayerAddress records the observed from address for later refund use.
func (u *OrderUseCase) SavePayerAddress(ctx context.Context, orderID int64, address string) error {
	return u.orders.SetPayerAddress(ctx, orderID, address)
}

// Fail marks an awaitable order as failed with the error detail attached.
func (u *OrderUseCase) Fail(ctx context.Context, orderID int64, detail string) error {
	note := fmt.Sprintf("Request payment failed: %s", detail)
	return u.orders.UpdateStatus(ctx, orderID,
		[]model.OrderStatus{model.OrderStatusPending, model.OrderStatusOnHold, model.OrderStatusFailed, model.OrderStatusCancelled},
		model.OrderStatusFailed, note)
}

// ForReconciliation returns on-hold orders with a submitted txid awaiting
// background re-verification.
func (u *OrderUseCase) ForReconciliation(ctx context.Context, limit int) ([]model.Order, error) {
	return u.orders.SelectForReconciliation(ctx, limit)
}

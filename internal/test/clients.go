package test

import (
	"context"
	"sync"

	"github.com/reqpay/reqpay/internal/domain/model"
)

// SignClientStub returns canned verification service responses.
type SignClientStub struct {
	CheckFn func(context.Context, string) (*model.TransactionRecord, error)
	Record  *model.TransactionRecord
	Err     error
}

// CheckTxid returns the configured response or a mined default.
func (s SignClientStub) CheckTxid(ctx context.Context, txid string) (*model.TransactionRecord, error) {
	if s.CheckFn != nil {
		return s.CheckFn(ctx, txid)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Record != nil {
		return s.Record, nil
	}
	return &model.TransactionRecord{Mined: true}, nil
}

// StorefrontCall stores a single storefront webhook invocation.
type StorefrontCall struct {
	Event   string
	OrderID int64
	Message string
}

// StorefrontClientStub records storefront webhook calls.
type StorefrontClientStub struct {
	Calls []StorefrontCall
	Err   error
	mu    sync.Mutex
}

// ClearCart records a cart-clear webhook.
func (s *StorefrontClientStub) ClearCart(ctx context.Context, orderID int64) error {
	return s.record("cart-clear", orderID, "")
}

// NotifyBuyer records a buyer-notice webhook.
func (s *StorefrontClientStub) NotifyBuyer(ctx context.Context, orderID int64, message string) error {
	return s.record("buyer-notice", orderID, message)
}

// OrderFailed records an order-failed webhook.
func (s *StorefrontClientStub) OrderFailed(ctx context.Context, orderID int64, reason string) error {
	return s.record("order-failed", orderID, reason)
}

func (s *StorefrontClientStub) record(event string, orderID int64, message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls = append(s.Calls, StorefrontCall{Event: event, OrderID: orderID, Message: message})
	return s.Err
}

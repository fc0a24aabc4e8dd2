package test

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/reqpay/reqpay/internal/domain/model"
)

// PaymentFacadeStub provides controllable behaviour for the HTTP handlers.
type PaymentFacadeStub struct {
	ResolveFn     func(context.Context, string) (*model.Order, error)
	VerifyFn      func(context.Context, *model.Order, string) model.VerificationResult
	CompleteFn    func(context.Context, *model.Order, string, model.VerificationResult) error
	SaveAddressFn func(context.Context, int64, string)
	SubmitTxidFn  func(context.Context, int64, string) error
	FailFn        func(context.Context, *model.Order, string)
	NotifyFn      func(context.Context, int64, string)
	RegisterFn    func(context.Context, *model.Order) (*model.Order, error)
	Checkout      string
	ReceivedFn    func(*model.Order) string
}

// ResolveOrder delegates to the configured function or returns a default
// pending order.
func (s PaymentFacadeStub) ResolveOrder(ctx context.Context, key string) (*model.Order, error) {
	if s.ResolveFn != nil {
		return s.ResolveFn(ctx, key)
	}
	return &model.Order{ID: 1, Key: key, Status: model.OrderStatusPending}, nil
}

// VerifyPayment returns the configured verification result, accepted by default.
func (s PaymentFacadeStub) VerifyPayment(ctx context.Context, order *model.Order, txid string) model.VerificationResult {
	if s.VerifyFn != nil {
		return s.VerifyFn(ctx, order, txid)
	}
	return model.VerificationResult{Outcome: model.VerificationAccepted}
}

// CompletePayment executes the configured completion handler.
func (s PaymentFacadeStub) CompletePayment(ctx context.Context, order *model.Order, txid string, result model.VerificationResult) error {
	if s.CompleteFn != nil {
		return s.CompleteFn(ctx, order, txid, result)
	}
	return nil
}

// SavePayerAddress records the observed payer address.
func (s PaymentFacadeStub) SavePayerAddress(ctx context.Context, orderID int64, address string) {
	if s.SaveAddressFn != nil {
		s.SaveAddressFn(ctx, orderID, address)
	}
}

// SubmitTxid executes the configured early txid handler.
func (s PaymentFacadeStub) SubmitTxid(ctx context.Context, orderID int64, txid string) error {
	if s.SubmitTxidFn != nil {
		return s.SubmitTxidFn(ctx, orderID, txid)
	}
	return nil
}

// FailOrder executes the configured failure handler.
func (s PaymentFacadeStub) FailOrder(ctx context.Context, order *model.Order, detail string) {
	if s.FailFn != nil {
		s.FailFn(ctx, order, detail)
	}
}

// NotifyBuyer executes the configured notification handler.
func (s PaymentFacadeStub) NotifyBuyer(ctx context.Context, orderID int64, message string) {
	if s.NotifyFn != nil {
		s.NotifyFn(ctx, orderID, message)
	}
}

// CheckoutURL returns the configured storefront checkout URL.
func (s PaymentFacadeStub) CheckoutURL() string {
	if s.Checkout != "" {
		return s.Checkout
	}
	return "https://shop.example/checkout"
}

// OrderReceivedURL returns the configured thank-you page URL.
func (s PaymentFacadeStub) OrderReceivedURL(order *model.Order) string {
	if s.ReceivedFn != nil {
		return s.ReceivedFn(order)
	}
	return "https://shop.example/order-received"
}

// RegisterOrder executes the configured registration handler.
func (s PaymentFacadeStub) RegisterOrder(ctx context.Context, order *model.Order) (*model.Order, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, order)
	}
	registered := *order
	registered.ID = 1
	registered.Key = "wr_stub"
	registered.Status = model.OrderStatusPending
	registered.CreatedAt = time.Unix(0, 0)
	return &registered, nil
}

// CompletionCall stores information about CompletePayment invocations.
type CompletionCall struct {
	OrderID int64
	Txid    string
	Result  model.VerificationResult
}

// FailureCall stores information about FailOrder invocations.
type FailureCall struct {
	OrderID int64
	Detail  string
}

// ReconcilerFacadeStub mimics reconciler interactions with the payment facade.
type ReconcilerFacadeStub struct {
	Batches         [][]model.Order
	OrdersFn        func(context.Context, int) ([]model.Order, error)
	VerifyFn        func(context.Context, *model.Order, string) model.VerificationResult
	CompleteFn      func(context.Context, *model.Order, string, model.VerificationResult) error
	FailFn          func(context.Context, *model.Order, string)
	Completions     []CompletionCall
	Failures        []FailureCall
	mu              sync.Mutex
	ordersCallCount int32
}

// Lock exposes internal mutex for external synchronization.
func (s *ReconcilerFacadeStub) Lock() { s.mu.Lock() }

// Unlock releases previously acquired lock.
func (s *ReconcilerFacadeStub) Unlock() { s.mu.Unlock() }

// OrdersForReconciliation returns batches from the configured queue.
func (s *ReconcilerFacadeStub) OrdersForReconciliation(ctx context.Context, limit int) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, limit)
	}
	call := atomic.AddInt32(&s.ordersCallCount, 1)
	if int(call) <= len(s.Batches) {
		return s.Batches[call-1], nil
	}
	time.Sleep(10 * time.Millisecond)
	return nil, nil
}

// VerifyPayment returns the configured verification result, accepted by default.
func (s *ReconcilerFacadeStub) VerifyPayment(ctx context.Context, order *model.Order, txid string) model.VerificationResult {
	if s.VerifyFn != nil {
		return s.VerifyFn(ctx, order, txid)
	}
	return model.VerificationResult{Outcome: model.VerificationAccepted}
}

// CompletePayment records completion requests.
func (s *ReconcilerFacadeStub) CompletePayment(ctx context.Context, order *model.Order, txid string, result model.VerificationResult) error {
	if s.CompleteFn != nil {
		return s.CompleteFn(ctx, order, txid, result)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Completions = append(s.Completions, CompletionCall{OrderID: order.ID, Txid: txid, Result: result})
	return nil
}

// FailOrder records failure requests.
func (s *ReconcilerFacadeStub) FailOrder(ctx context.Context, order *model.Order, detail string) {
	if s.FailFn != nil {
		s.FailFn(ctx, order, detail)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Failures = append(s.Failures, FailureCall{OrderID: order.ID, Detail: detail})
}

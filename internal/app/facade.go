package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/reqpay/reqpay/internal/adapter/storefront"
	"github.com/reqpay/reqpay/internal/config"
	"github.com/reqpay/reqpay/internal/domain/model"
	"github.com/reqpay/reqpay/internal/usecase"
)

// PaymentFacade glues the order lifecycle, transaction verification and
// storefront notifications behind the surface the HTTP handlers and the
// reconciler consume. Storefront webhooks are best-effort: a failed webhook
// never rolls back a recorded payment.
type PaymentFacade struct {
	orders           *usecase.OrderUseCase
	verifier         *usecase.VerifyUseCase
	storefront       storefront.Client
	checkoutURL      string
	orderReceivedURL string
	logger           *slog.Logger
}

// NewPaymentFacade constructs PaymentFacade.
func NewPaymentFacade(orders *usecase.OrderUseCase, verifier *usecase.VerifyUseCase, sf storefront.Client, cfg *config.Config, logger *slog.Logger) *PaymentFacade {
	return &PaymentFacade{
		orders:           orders,
		verifier:         verifier,
		storefront:       sf,
		checkoutURL:      cfg.CheckoutURL,
		orderReceivedURL: cfg.OrderReceivedURL,
		logger:           logger,
	}
}

// RegisterOrder stores a new payment expectation.
func (f *PaymentFacade) RegisterOrder(ctx context.Context, order *model.Order) (*model.Order, error) {
	return f.orders.Register(ctx, order)
}

// ResolveOrder maps a signed order key to its order.
func (f *PaymentFacade) ResolveOrder(ctx context.Context, key string) (*model.Order, error) {
	return f.orders.Resolve(ctx, key)
}

// VerifyPayment checks the submitted txid against the order expectation.
func (f *PaymentFacade) VerifyPayment(ctx context.Context, order *model.Order, txid string) model.VerificationResult {
	return f.verifier.Verify(ctx, order, txid)
}

// CompletePayment marks the order paid and asks the storefront to clear the
// buyer's cart.
func (f *PaymentFacade) CompletePayment(ctx context.Context, order *model.Order, txid string, result model.VerificationResult) error {
	if err := f.orders.CompletePayment(ctx, order, txid, result.PayerAddress); err != nil {
		return err
	}

	if err := f.storefront.ClearCart(ctx, order.ID); err != nil {
		f.logger.Warn("cart clear webhook failed",
			slog.Int64("order_id", order.ID),
			slog.String("error", err.Error()))
	}
	return nil
}

// SavePayerAddress records the observed from address even when verification
// rejected the payment, so a refund stays possible.
func (f *PaymentFacade) SavePayerAddress(ctx context.Context, orderID int64, address string) {
	if err := f.orders.SavePayerAddress(ctx, orderID, address); err != nil {
		f.logger.Error("payer address save failed",
			slog.Int64("order_id", orderID),
			slog.String("error", err.Error()))
	}
}

// SubmitTxid stores an unconfirmed txid and puts the order on hold.
func (f *PaymentFacade) SubmitTxid(ctx context.Context, orderID int64, txid string) error {
	return f.orders.RecordTxid(ctx, orderID, txid)
}

// FailOrder moves the order to failed and informs the storefront.
func (f *PaymentFacade) FailOrder(ctx context.Context, order *model.Order, detail string) {
	if err := f.orders.Fail(ctx, order.ID, detail); err != nil {
		f.logger.Error("order failure transition failed",
			slog.Int64("order_id", order.ID),
			slog.String("error", err.Error()))
		return
	}

	// Orders that already advanced past pending/failed were resolved some
	// other way; re-notifying the storefront would be noise.
	if order.Status != model.OrderStatusPending && order.Status != model.OrderStatusFailed {
		return
	}
	if err := f.storefront.OrderFailed(ctx, order.ID, detail); err != nil {
		f.logger.Warn("order failed webhook failed",
			slog.Int64("order_id", order.ID),
			slog.String("error", err.Error()))
	}
}

// NotifyBuyer delivers a buyer-facing message through the storefront.
func (f *PaymentFacade) NotifyBuyer(ctx context.Context, orderID int64, message string) {
	if err := f.storefront.NotifyBuyer(ctx, orderID, message); err != nil {
		f.logger.Warn("buyer notice webhook failed",
			slog.Int64("order_id", orderID),
			slog.String("error", err.Error()))
	}
}

// OrdersForReconciliation returns on-hold orders to re-verify in background.
func (f *PaymentFacade) OrdersForReconciliation(ctx context.Context, limit int) ([]model.Order, error) {
	return f.orders.ForReconciliation(ctx, limit)
}

// CheckoutURL is the storefront page buyers land on after a rejected or
// cancelled payment.
func (f *PaymentFacade) CheckoutURL() string {
	return f.checkoutURL
}

// OrderReceivedURL is the storefront thank-you page for a paid order.
func (f *PaymentFacade) OrderReceivedURL(order *model.Order) string {
	u, err := url.Parse(f.orderReceivedURL)
	if err != nil {
		return f.orderReceivedURL
	}
	q := u.Query()
	q.Set("order", fmt.Sprintf("%d", order.ID))
	q.Set("key", order.Key)
	u.RawQuery = q.Encode()
	return u.String()
}

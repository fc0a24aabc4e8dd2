package handlers

import (
	"context"

	"github.com/reqpay/reqpay/internal/domain/model"
)

// CallbackFacade describes the payment operations required by the callback
// endpoints.
type CallbackFacade interface {
	ResolveOrder(ctx context.Context, key string) (*model.Order, error)
	VerifyPayment(ctx context.Context, order *model.Order, txid string) model.VerificationResult
	CompletePayment(ctx context.Context, order *model.Order, txid string, result model.VerificationResult) error
	SavePayerAddress(ctx context.Context, orderID int64, address string)
	SubmitTxid(ctx context.Context, orderID int64, txid string) error
	FailOrder(ctx context.Context, order *model.Order, detail string)
	NotifyBuyer(ctx context.Context, orderID int64, message string)
	CheckoutURL() string
	OrderReceivedURL(order *model.Order) string
}

// OrderFacade encapsulates order registration exposed to storefronts.
type OrderFacade interface {
	RegisterOrder(ctx context.Context, order *model.Order) (*model.Order, error)
}

// PaymentFacade aggregates the full set of operations used across handlers.
type PaymentFacade interface {
	CallbackFacade
	OrderFacade
}

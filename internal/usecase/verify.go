package usecase

import (
	"context"
	"log/slog"

	"github.com/reqpay/reqpay/internal/adapter/sign"
	"github.com/reqpay/reqpay/internal/domain/model"
	"github.com/reqpay/reqpay/internal/pkg/normalize"
)

// VerifyUseCase reconciles a submitted transaction against the amount,
// currency and destination address an order expects.
type VerifyUseCase struct {
	client      sign.Client
	testNetwork string
	decimals    int32
	logger      *slog.Logger
}

// NewVerifyUseCase constructs VerifyUseCase.
func NewVerifyUseCase(client sign.Client, testNetwork string, decimals int32, logger *slog.Logger) *VerifyUseCase {
	return &VerifyUseCase{client: client, testNetwork: testNetwork, decimals: decimals, logger: logger}
}

// Verify produces the authoritative accept/reject decision for txid against
// the order's recorded expectations. Every rejection is logged with the
// compared values so store owners can reconcile manually.
func (u *VerifyUseCase) Verify(ctx context.Context, order *model.Order, txid string) model.VerificationResult {
	// Test network payments are accepted without an outbound call.
	if order.Network == u.testNetwork {
		return model.VerificationResult{Outcome: model.VerificationAccepted}
	}

	record, err := u.client.CheckTxid(ctx, txid)
	if err != nil {
		u.logger.Error("transaction fetch failed",
			slog.Int64("order_id", order.ID),
			slog.String("txid", txid),
			slog.String("error", err.Error()),
		)
		return model.VerificationResult{Outcome: model.VerificationTransportError}
	}

	if !record.Mined {
		u.logger.Info("transaction has not been mined",
			slog.Int64("order_id", order.ID),
			slog.String("txid", txid),
			slog.String("response", string(record.Raw)),
		)
		return model.VerificationResult{Outcome: model.VerificationUnmined}
	}

	// The payer address is kept for refunds only. A missing or malformed
	// one is logged, not rejected.
	var payer string
	if normalize.ValidAddress(record.FromAddress) {
		payer = record.FromAddress
	} else {
		u.logger.Warn("from address check failed",
			slog.Int64("order_id", order.ID),
			slog.String("txid", txid),
			slog.String("from_address", record.FromAddress),
		)
	}

	if order.PayeeAddress == "" {
		u.logger.Error("order has no expected payee address",
			slog.Int64("order_id", order.ID),
			slog.String("txid", txid),
		)
		return model.VerificationResult{Outcome: model.VerificationAddressMismatch, PayerAddress: payer}
	}

	payee := record.PayeeAddress()
	if normalize.Address(payee) != normalize.Address(order.PayeeAddress) {
		u.logger.Error("payee address mismatch",
			slog.Int64("order_id", order.ID),
			slog.String("txid", txid),
			slog.String("transaction_payee", payee),
			slog.String("expected_payee", order.PayeeAddress),
		)
		return model.VerificationResult{Outcome: model.VerificationAddressMismatch, PayerAddress: payer}
	}

	amount := record.PayeeAmount()
	if normalize.ZeroAmount(amount) {
		u.logger.Error("transaction amount missing or zero",
			slog.Int64("order_id", order.ID),
			slog.String("txid", txid),
			slog.String("amount", amount),
		)
		return model.VerificationResult{Outcome: model.VerificationAmountMismatch, PayerAddress: payer}
	}

	if !normalize.AmountEqual(amount, order.ExpectedAmount, u.decimals) {
		u.logger.Error("amount mismatch",
			slog.Int64("order_id", order.ID),
			slog.String("txid", txid),
			slog.String("value_sent", amount),
			slog.String("expected_amount", order.ExpectedAmount),
		)
		return model.VerificationResult{Outcome: model.VerificationAmountMismatch, PayerAddress: payer}
	}

	return model.VerificationResult{Outcome: model.VerificationAccepted, PayerAddress: payer}
}

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/reqpay/reqpay/internal/domain/errors"
	"github.com/reqpay/reqpay/internal/server/http/dto"
)

const (
	orderKeyParam = "key"
	txidParam     = "wooreq_txid"

	// Reserved txid literal signalling a buyer-initiated cancellation.
	cancelledSentinel = "cancelled"

	noticeGatewayError = "There was an error from the Request Network payment gateway, please contact the store owner."
	noticeCancelled    = "Payment has been cancelled"
	noticeDuplicate    = "It looks like your order is already in process or completed."
	noticeNotVerified  = "The transaction could not be verified, please contact the store owner."
	noticeUnexpected   = "Something went wrong, please contact the store owner."
)

// CallbackHandler serves the two inbound payment callbacks. Buyer-facing
// messages stay generic; the exact failure cause goes to the operator log.
type CallbackHandler struct {
	facade CallbackFacade
	logger *slog.Logger
}

// NewCallbackHandler constructs CallbackHandler.
func NewCallbackHandler(facade CallbackFacade, logger *slog.Logger) *CallbackHandler {
	return &CallbackHandler{facade: facade, logger: logger}
}

// Process handles GET /api/callback/process, the payment confirmation
// callback the buyer's browser is sent through after paying.
func (h *CallbackHandler) Process(c *gin.Context) {
	ctx := c.Request.Context()

	key := c.Query(orderKeyParam)
	txid := c.Query(txidParam)
	if key == "" || txid == "" {
		h.logger.Error("incoming callback failed validation",
			slog.String("query", c.Request.URL.RawQuery))
		h.redirectCheckout(c, noticeGatewayError)
		return
	}

	if txid == cancelledSentinel {
		h.logger.Info("order has been cancelled by buyer",
			slog.String("query", c.Request.URL.RawQuery))
		h.redirectCheckout(c, noticeCancelled)
		return
	}

	order, err := h.facade.ResolveOrder(ctx, key)
	if err != nil {
		h.logger.Error("order resolution failed",
			slog.String("key", key),
			slog.String("error", err.Error()))
		h.redirectCheckout(c, noticeGatewayError)
		return
	}

	if !order.AwaitingPayment() {
		// Duplicate callback, e.g. browser back. Must not double-process.
		h.logger.Info("order already in process or completed",
			slog.Int64("order_id", order.ID),
			slog.String("status", string(order.Status)))
		h.redirectCheckout(c, noticeDuplicate)
		return
	}

	result := h.facade.VerifyPayment(ctx, order, txid)
	if !result.Accepted() {
		if result.PayerAddress != "" {
			h.facade.SavePayerAddress(ctx, order.ID, result.PayerAddress)
		}
		h.facade.NotifyBuyer(ctx, order.ID, noticeNotVerified)
		h.redirectCheckout(c, noticeNotVerified)
		return
	}

	if err := h.facade.CompletePayment(ctx, order, txid, result); err != nil {
		if errors.Is(err, domainErrors.ErrDuplicateCallback) {
			h.redirectCheckout(c, noticeDuplicate)
			return
		}
		h.logger.Error("payment completion failed",
			slog.Int64("order_id", order.ID),
			slog.String("txid", txid),
			slog.String("error", err.Error()))
		h.facade.FailOrder(ctx, order, err.Error())
		h.redirectCheckout(c, noticeUnexpected)
		return
	}

	h.redirect(c, h.facade.OrderReceivedURL(order))
}

// Txid handles GET /api/callback/txid, the early submission of a
// not-yet-confirmed transaction id from the buyer's wallet.
func (h *CallbackHandler) Txid(c *gin.Context) {
	ctx := c.Request.Context()

	key := c.Query(orderKeyParam)
	txid := c.Query(txidParam)
	if key == "" || txid == "" {
		h.logger.Error("incoming txid callback failed validation",
			slog.String("query", c.Request.URL.RawQuery))
		c.JSON(http.StatusBadRequest, dto.CallbackResponse{Success: false})
		return
	}

	order, err := h.facade.ResolveOrder(ctx, key)
	if err != nil {
		h.logger.Error("order resolution failed in txid callback",
			slog.String("key", key),
			slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, dto.CallbackResponse{Success: false})
		return
	}

	if !order.AwaitingPayment() {
		h.logger.Info("txid callback for order already in process or completed",
			slog.Int64("order_id", order.ID),
			slog.String("status", string(order.Status)))
		c.JSON(http.StatusConflict, dto.CallbackResponse{Success: false})
		return
	}

	if err := h.facade.SubmitTxid(ctx, order.ID, txid); err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrEmptyTxid):
			c.JSON(http.StatusBadRequest, dto.CallbackResponse{Success: false})
		case errors.Is(err, domainErrors.ErrDuplicateCallback):
			c.JSON(http.StatusConflict, dto.CallbackResponse{Success: false})
		default:
			h.logger.Error("txid submission failed",
				slog.Int64("order_id", order.ID),
				slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, dto.CallbackResponse{Success: false})
		}
		return
	}

	c.JSON(http.StatusOK, dto.CallbackResponse{Success: true})
}

func (h *CallbackHandler) redirectCheckout(c *gin.Context, notice string) {
	h.redirect(c, withNotice(h.facade.CheckoutURL(), notice))
}

func (h *CallbackHandler) redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusFound, location)
}

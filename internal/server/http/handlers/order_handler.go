package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/reqpay/reqpay/internal/domain/model"
	"github.com/reqpay/reqpay/internal/pkg/normalize"
	"github.com/reqpay/reqpay/internal/server/http/dto"
)

// OrderHandler registers payment expectations on behalf of storefronts.
type OrderHandler struct {
	facade OrderFacade
	logger *slog.Logger
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{facade: facade, logger: logger}
}

// Create handles POST /api/orders.
func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	if !normalize.ValidAddress(req.PayeeAddress) {
		h.logger.Error("order registration rejected",
			slog.String("payee_address", req.PayeeAddress))
		c.AbortWithStatus(http.StatusUnprocessableEntity)
		return
	}

	order := &model.Order{
		ExpectedAmount: req.ExpectedAmount,
		Currency:       req.Currency,
		Network:        req.Network,
		PayeeAddress:   normalize.Address(req.PayeeAddress),
	}

	created, err := h.facade.RegisterOrder(c.Request.Context(), order)
	if err != nil {
		h.logger.Error("order registration failed",
			slog.String("error", err.Error()))
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusCreated, dto.CreateOrderResponse{
		ID:        created.ID,
		Key:       created.Key,
		Status:    string(created.Status),
		CreatedAt: created.CreatedAt,
	})
}

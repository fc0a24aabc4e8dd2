package dto

import "time"

// CreateOrderRequest registers a payment expectation for a storefront order.
type CreateOrderRequest struct {
	ExpectedAmount string `json:"expected_amount" binding:"required"`
	Currency       string `json:"currency" binding:"required"`
	Network        string `json:"network" binding:"required"`
	PayeeAddress   string `json:"payee_address" binding:"required"`
}

// CreateOrderResponse carries the signed key the storefront embeds in its
// callback URLs.
type CreateOrderResponse struct {
	ID        int64     `json:"id"`
	Key       string    `json:"key"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

package model

import "time"

// OrderStatus describes payment lifecycle.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusOnHold     OrderStatus = "on-hold"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusFailed     OrderStatus = "failed"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// Order describes a purchase awaiting an on-chain payment.
type Order struct {
	ID             int64
	Key            string
	Status         OrderStatus
	ExpectedAmount string
	Currency       string
	Network        string
	PayeeAddress   string
	Txid           string
	PayerAddress   string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// AwaitingPayment reports whether the order may still accept a payment
// callback. Orders already in process or completed must not be re-processed.
func (o *Order) AwaitingPayment() bool {
	return o.Status != OrderStatusProcessing && o.Status != OrderStatusCompleted
}

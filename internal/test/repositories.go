package test

import (
	"context"
	"time"

	domainErrors "github.com/reqpay/reqpay/internal/domain/errors"
	"github.com/reqpay/reqpay/internal/domain/model"
)

// OrderRepositoryStub stores orders in-memory for tests.
type OrderRepositoryStub struct {
	Orders map[int64]*model.Order
	Notes  map[int64][]string
	Next   int64
	Err    error
}

// NewOrderRepositoryStub constructs stub repository with initialized maps.
func NewOrderRepositoryStub() *OrderRepositoryStub {
	return &OrderRepositoryStub{
		Orders: make(map[int64]*model.Order),
		Notes:  make(map[int64][]string),
		Next:   1,
	}
}

// Create assigns an id and stores the order.
func (s *OrderRepositoryStub) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Orders == nil {
		s.Orders = make(map[int64]*model.Order)
	}
	if s.Next == 0 {
		s.Next = 1
	}
	stored := *order
	stored.ID = s.Next
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	s.Next++
	s.Orders[stored.ID] = &stored
	result := stored
	return &result, nil
}

// GetByID fetches a copy of the stored order or returns not found.
func (s *OrderRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if order, ok := s.Orders[id]; ok {
		result := *order
		return &result, nil
	}
	return nil, domainErrors.ErrNotFound
}

// SetTxid stores the txid on the order.
func (s *OrderRepositoryStub) SetTxid(ctx context.Context, orderID int64, txid string) error {
	if s.Err != nil {
		return s.Err
	}
	order, ok := s.Orders[orderID]
	if !ok {
		return domainErrors.ErrNotFound
	}
	order.Txid = txid
	return nil
}

// SetPayerAddress stores the payer address on the order.
func (s *OrderRepositoryStub) SetPayerAddress(ctx context.Context, orderID int64, address string) error {
	if s.Err != nil {
		return s.Err
	}
	order, ok := s.Orders[orderID]
	if !ok {
		return domainErrors.ErrNotFound
	}
	order.PayerAddress = address
	return nil
}

// MarkPaid moves the order to processing unless it already advanced.
func (s *OrderRepositoryStub) MarkPaid(ctx context.Context, orderID int64, note string) error {
	if s.Err != nil {
		return s.Err
	}
	order, ok := s.Orders[orderID]
	if !ok {
		return domainErrors.ErrNotFound
	}
	if !order.AwaitingPayment() {
		return domainErrors.ErrDuplicateCallback
	}
	order.Status = model.OrderStatusProcessing
	s.appendNote(orderID, note)
	return nil
}

// UpdateStatus transitions the order when its current status is in from.
func (s *OrderRepositoryStub) UpdateStatus(ctx context.Context, orderID int64, from []model.OrderStatus, to model.OrderStatus, note string) error {
	if s.Err != nil {
		return s.Err
	}
	order, ok := s.Orders[orderID]
	if !ok {
		return domainErrors.ErrNotFound
	}
	if len(from) > 0 {
		allowed := false
		for _, status := range from {
			if order.Status == status {
				allowed = true
				break
			}
		}
		if !allowed {
			return domainErrors.ErrDuplicateCallback
		}
	}
	order.Status = to
	if note != "" {
		s.appendNote(orderID, note)
	}
	return nil
}

// AddNote records an operator note for the order.
func (s *OrderRepositoryStub) AddNote(ctx context.Context, orderID int64, note string) error {
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.Orders[orderID]; !ok {
		return domainErrors.ErrNotFound
	}
	s.appendNote(orderID, note)
	return nil
}

// SelectForReconciliation returns on-hold orders carrying a txid.
func (s *OrderRepositoryStub) SelectForReconciliation(ctx context.Context, limit int) ([]model.Order, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var batch []model.Order
	for _, order := range s.Orders {
		if order.Status == model.OrderStatusOnHold && order.Txid != "" {
			batch = append(batch, *order)
			if len(batch) == limit {
				break
			}
		}
	}
	return batch, nil
}

func (s *OrderRepositoryStub) appendNote(orderID int64, note string) {
	if s.Notes == nil {
		s.Notes = make(map[int64][]string)
	}
	s.Notes[orderID] = append(s.Notes[orderID], note)
}

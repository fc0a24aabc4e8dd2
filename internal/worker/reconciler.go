package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	domainErrors "github.com/reqpay/reqpay/internal/domain/errors"
	"github.com/reqpay/reqpay/internal/domain/model"
)

// PaymentFacade exposes the subset of application functionality required by the reconciler.
type PaymentFacade interface {
	OrdersForReconciliation(ctx context.Context, limit int) ([]model.Order, error)
	VerifyPayment(ctx context.Context, order *model.Order, txid string) model.VerificationResult
	CompletePayment(ctx context.Context, order *model.Order, txid string, result model.VerificationResult) error
	FailOrder(ctx context.Context, order *model.Order, detail string)
}

// Reconciler re-verifies on-hold orders whose txid arrived before the
// transaction was mined, completing or failing them concurrently.
type Reconciler struct {
	facade       PaymentFacade
	pollInterval time.Duration
	batchSize    int
	workers      int
	logger       *slog.Logger

	jobs   chan model.Order
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewReconciler constructs reconciliation worker pool.
func NewReconciler(facade PaymentFacade, pollInterval time.Duration, batchSize, workers int, logger *slog.Logger) *Reconciler {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	return &Reconciler{
		facade:       facade,
		pollInterval: pollInterval,
		batchSize:    batchSize,
		workers:      workers,
		logger:       logger,
		jobs:         make(chan model.Order, batchSize*workers),
	}
}

// Start launches background reconciliation.
func (r *Reconciler) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	for i := 0; i < r.workers; i++ {
		r.wg.Add(1)
		go r.worker(runCtx)
	}

	r.wg.Add(1)
	go r.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (r *Reconciler) Stop() {
	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.mu.Unlock()

	r.wg.Wait()
}

func (r *Reconciler) dispatch(ctx context.Context) {
	defer r.wg.Done()
	defer close(r.jobs)
	ticker := time.NewTicker(r.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.fetchAndDispatch(ctx)
		}
	}
}

func (r *Reconciler) fetchAndDispatch(ctx context.Context) {
	orders, err := r.facade.OrdersForReconciliation(ctx, r.batchSize)
	if err != nil {
		r.logger.Error("fetch orders for reconciliation failed", slog.String("error", err.Error()))
		return
	}
	for _, order := range orders {
		select {
		case <-ctx.Done():
			return
		case r.jobs <- order:
		}
	}
}

func (r *Reconciler) worker(ctx context.Context) {
	defer r.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case order, ok := <-r.jobs:
			if !ok {
				return
			}
			r.handleOrder(ctx, order)
		}
	}
}

func (r *Reconciler) handleOrder(ctx context.Context, order model.Order) {
	result := r.facade.VerifyPayment(ctx, &order, order.Txid)

	switch result.Outcome {
	case model.VerificationAccepted:
		err := r.facade.CompletePayment(ctx, &order, order.Txid, result)
		if err != nil && !errors.Is(err, domainErrors.ErrDuplicateCallback) {
			r.logger.Error("reconciliation completion failed",
				slog.Int64("order_id", order.ID),
				slog.String("error", err.Error()))
		}
	case model.VerificationAddressMismatch, model.VerificationAmountMismatch:
		r.facade.FailOrder(ctx, &order, string(result.Outcome))
	case model.VerificationUnmined, model.VerificationTransportError:
		// Still pending on chain or the verifier is unreachable. The order
		// stays on hold for the next pass.
		r.logger.Debug("order left on hold",
			slog.Int64("order_id", order.ID),
			slog.String("outcome", string(result.Outcome)))
	}
}

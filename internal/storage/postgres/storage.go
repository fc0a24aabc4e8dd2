package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/reqpay/reqpay/internal/domain/errors"
	"github.com/reqpay/reqpay/internal/domain/model"
)

// Pool abstracts the pgx pool so tests can substitute a mock.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

// Storage implements the order state gateway backed by PostgreSQL.
type Storage struct {
	pool   Pool
	logger *slog.Logger
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS orders (
            id SERIAL PRIMARY KEY,
            status TEXT NOT NULL,
            expected_amount TEXT NOT NULL,
            currency TEXT NOT NULL,
            network TEXT NOT NULL,
            payee_address TEXT NOT NULL,
            txid TEXT NOT NULL DEFAULT '',
            payer_address TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS order_notes (
            id SERIAL PRIMARY KEY,
            order_id BIGINT NOT NULL REFERENCES orders(id),
            note TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status, updated_at)`,
		`CREATE INDEX IF NOT EXISTS idx_order_notes_order ON order_notes(order_id, created_at DESC)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

const orderColumns = `id, status, expected_amount, currency, network, payee_address, txid, payer_address, created_at, updated_at`

func scanOrder(row pgx.Row) (*model.Order, error) {
	var o model.Order
	err := row.Scan(&o.ID, &o.Status, &o.ExpectedAmount, &o.Currency, &o.Network,
		&o.PayeeAddress, &o.Txid, &o.PayerAddress, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

// Create persists a new order expectation.
func (s *Storage) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	const query = `INSERT INTO orders (status, expected_amount, currency, network, payee_address)
                   VALUES ($1, $2, $3, $4, $5)
                   RETURNING id, created_at, updated_at`
	err := s.pool.QueryRow(ctx, query, order.Status, order.ExpectedAmount, order.Currency,
		order.Network, order.PayeeAddress).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return order, nil
}

// GetByID loads a single order.
func (s *Storage) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id=$1`
	return scanOrder(s.pool.QueryRow(ctx, query, id))
}

// SetTxid records the submitted transaction id.
func (s *Storage) SetTxid(ctx context.Context, orderID int64, txid string) error {
	const query = `UPDATE orders SET txid=$1, updated_at=NOW() WHERE id=$2`
	tag, err := s.pool.Exec(ctx, query, txid, orderID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// SetPayerAddress records the observed from address for later refund use.
func (s *Storage) SetPayerAddress(ctx context.Context, orderID int64, address string) error {
	const query = `UPDATE orders SET payer_address=$1, updated_at=NOW() WHERE id=$2`
	tag, err := s.pool.Exec(ctx, query, address, orderID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// MarkPaid moves the order to processing unless it already advanced. The
// conditional update is what makes concurrent duplicate callbacks safe.
func (s *Storage) MarkPaid(ctx context.Context, orderID int64, note string) error {
	return s.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const update = `UPDATE orders SET status=$1, updated_at=NOW()
                        WHERE id=$2 AND status NOT IN ($3, $4)`
		tag, err := tx.Exec(ctx, update, model.OrderStatusProcessing, orderID,
			model.OrderStatusProcessing, model.OrderStatusCompleted)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domainErrors.ErrDuplicateCallback
		}
		return addNoteTx(ctx, tx, orderID, note)
	})
}

// UpdateStatus transitions the order only when its current status is one of
// from; an empty from list makes the transition unconditional.
func (s *Storage) UpdateStatus(ctx context.Context, orderID int64, from []model.OrderStatus, to model.OrderStatus, note string) error {
	return s.WithinTransaction(ctx, func(tx pgx.Tx) error {
		var (
			tag pgconn.CommandTag
			err error
		)
		if len(from) == 0 {
			const update = `UPDATE orders SET status=$1, updated_at=NOW() WHERE id=$2`
			tag, err = tx.Exec(ctx, update, to, orderID)
		} else {
			const update = `UPDATE orders SET status=$1, updated_at=NOW() WHERE id=$2 AND status=ANY($3)`
			statuses := make([]string, 0, len(from))
			for _, status := range from {
				statuses = append(statuses, string(status))
			}
			tag, err = tx.Exec(ctx, update, to, orderID, statuses)
		}
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domainErrors.ErrDuplicateCallback
		}
		if note == "" {
			return nil
		}
		return addNoteTx(ctx, tx, orderID, note)
	})
}

// AddNote appends an audit note to the order.
func (s *Storage) AddNote(ctx context.Context, orderID int64, note string) error {
	const query = `INSERT INTO order_notes (order_id, note) VALUES ($1, $2)`
	_, err := s.pool.Exec(ctx, query, orderID, note)
	return err
}

func addNoteTx(ctx context.Context, tx pgx.Tx, orderID int64, note string) error {
	const query = `INSERT INTO order_notes (order_id, note) VALUES ($1, $2)`
	_, err := tx.Exec(ctx, query, orderID, note)
	return err
}

// SelectForReconciliation picks on-hold orders carrying a submitted txid and
// bumps their updated_at so a busy queue rotates fairly between polls.
func (s *Storage) SelectForReconciliation(ctx context.Context, limit int) ([]model.Order, error) {
	selectQuery := `SELECT ` + orderColumns + `
                    FROM orders
                    WHERE status=$1 AND txid <> ''
                    ORDER BY updated_at
                    LIMIT $2
                    FOR UPDATE SKIP LOCKED`

	var orders []model.Order
	err := s.WithinTransaction(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, selectQuery, model.OrderStatusOnHold, limit)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var o model.Order
			if err := rows.Scan(&o.ID, &o.Status, &o.ExpectedAmount, &o.Currency, &o.Network,
				&o.PayeeAddress, &o.Txid, &o.PayerAddress, &o.CreatedAt, &o.UpdatedAt); err != nil {
				return err
			}
			orders = append(orders, o)
		}
		if err := rows.Err(); err != nil {
			return err
		}

		for _, o := range orders {
			if _, err := tx.Exec(ctx, `UPDATE orders SET updated_at=NOW() WHERE id=$1`, o.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}

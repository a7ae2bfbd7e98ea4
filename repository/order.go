package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/muhammadMilon/FruitPanda-sub001/database"
	"github.com/muhammadMilon/FruitPanda-sub001/lib"
	"github.com/muhammadMilon/FruitPanda-sub001/structs/tables"
)

// OrderRepository persists orders in Postgres via bun.
type OrderRepository struct {
	db *database.DB
}

func NewOrderRepository(db *database.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) Insert(ctx context.Context, order *tables.Order) error {
	err := database.WithRetry(ctx, func() error {
		_, err := r.db.NewInsert().Model(order).Exec(ctx)
		return err
	})
	return lib.MapPgError(err)
}

func (r *OrderRepository) GetByID(ctx context.Context, orderId uuid.UUID) (*tables.Order, error) {
	var order tables.Order
	err := database.WithRetry(ctx, func() error {
		return r.db.NewSelect().Model(&order).Where("o.id = ?", orderId).Scan(ctx)
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, lib.ErrNotFound
		}
		return nil, lib.MapPgError(err)
	}
	return &order, nil
}

func (r *OrderRepository) GetByOrderNumber(ctx context.Context, orderNumber string) (*tables.Order, error) {
	var order tables.Order
	err := database.WithRetry(ctx, func() error {
		return r.db.NewSelect().Model(&order).Where("o.order_number = ?", orderNumber).Scan(ctx)
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, lib.ErrNotFound
		}
		return nil, lib.MapPgError(err)
	}
	return &order, nil
}

func (r *OrderRepository) ListByCustomer(ctx context.Context, customerId uuid.UUID, limit, offset int) ([]tables.Order, int, error) {
	var orders []tables.Order
	var count int
	err := database.WithRetry(ctx, func() error {
		var err error
		count, err = r.db.NewSelect().
			Model(&orders).
			Where("o.customer_id = ?", customerId).
			Order("created_at DESC").
			Limit(limit).
			Offset(offset).
			ScanAndCount(ctx)
		return err
	})
	if err != nil {
		return nil, 0, lib.MapPgError(err)
	}
	return orders, count, nil
}

// ListAll returns every order, optionally filtered by fulfillment and payment
// status. Admin listing surface.
func (r *OrderRepository) ListAll(ctx context.Context, status *tables.OrderStatus, paymentStatus *tables.PaymentStatus, limit, offset int) ([]tables.Order, int, error) {
	var orders []tables.Order
	var count int
	err := database.WithRetry(ctx, func() error {
		q := r.db.NewSelect().Model(&orders)
		if status != nil {
			q = q.Where("o.status = ?", *status)
		}
		if paymentStatus != nil {
			q = q.Where("o.payment_status = ?", *paymentStatus)
		}
		var err error
		count, err = q.Order("created_at DESC").Limit(limit).Offset(offset).ScanAndCount(ctx)
		return err
	})
	if err != nil {
		return nil, 0, lib.MapPgError(err)
	}
	return orders, count, nil
}

// ListPaidWithoutReceipt returns paid orders that have no receipt row yet.
// A nil customerId widens the scope to all customers (admin backfill).
func (r *OrderRepository) ListPaidWithoutReceipt(ctx context.Context, customerId *uuid.UUID) ([]tables.Order, error) {
	var orders []tables.Order
	err := database.WithRetry(ctx, func() error {
		q := r.db.NewSelect().
			Model(&orders).
			Where("o.payment_status = ?", tables.PaymentStatusPaid).
			Where("NOT EXISTS (SELECT 1 FROM receipts rc WHERE rc.order_id = o.id)")
		if customerId != nil {
			q = q.Where("o.customer_id = ?", *customerId)
		}
		return q.Order("created_at ASC").Scan(ctx)
	})
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	return orders, nil
}

// Update writes the full order row back by primary key.
func (r *OrderRepository) Update(ctx context.Context, order *tables.Order) error {
	order.UpdatedAt = time.Now()
	err := database.WithRetry(ctx, func() error {
		_, err := r.db.NewUpdate().Model(order).WherePK().Exec(ctx)
		return err
	})
	return lib.MapPgError(err)
}

// TransitionPayment atomically flips payment_status from one state to another
// and applies mutate to the locked row inside the same transaction. Two
// concurrent confirmations cannot both pass the guard: the conditional UPDATE
// serializes them, and the loser gets lib.ErrInvalidState.
func (r *OrderRepository) TransitionPayment(
	ctx context.Context,
	orderId uuid.UUID,
	from, to tables.PaymentStatus,
	mutate func(*tables.Order) error,
) (*tables.Order, error) {
	var order tables.Order

	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		res, err := tx.NewUpdate().
			Model((*tables.Order)(nil)).
			Set("payment_status = ?", to).
			Set("updated_at = ?", time.Now()).
			Where("id = ?", orderId).
			Where("payment_status = ?", from).
			Exec(ctx)
		if err != nil {
			return err
		}

		rows, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if rows == 0 {
			// Guard failed: either the order is gone or its payment already
			// moved past the expected state.
			exists, err := tx.NewSelect().
				Model((*tables.Order)(nil)).
				Where("id = ?", orderId).
				Exists(ctx)
			if err != nil {
				return err
			}
			if !exists {
				return lib.ErrNotFound
			}
			return lib.ErrInvalidState
		}

		if err := tx.NewSelect().Model(&order).Where("o.id = ?", orderId).Scan(ctx); err != nil {
			return err
		}

		if err := mutate(&order); err != nil {
			return err
		}
		order.PaymentStatus = to
		order.Payment.Status = to
		order.UpdatedAt = time.Now()

		_, err = tx.NewUpdate().Model(&order).WherePK().Exec(ctx)
		return err
	})
	if err != nil {
		if errors.Is(err, lib.ErrNotFound) || errors.Is(err, lib.ErrInvalidState) {
			return nil, err
		}
		return nil, lib.MapPgError(err)
	}

	return &order, nil
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/muhammadMilon/FruitPanda-sub001/database"
	"github.com/muhammadMilon/FruitPanda-sub001/lib"
	"github.com/muhammadMilon/FruitPanda-sub001/structs/tables"
)

// ReceiptRepository persists receipts in Postgres via bun.
type ReceiptRepository struct {
	db *database.DB
}

func NewReceiptRepository(db *database.DB) *ReceiptRepository {
	return &ReceiptRepository{db: db}
}

// InsertIgnoreDuplicate inserts a receipt unless one already exists for the
// same order. Returns false when the order_id conflict suppressed the insert.
// A receipt_number collision is NOT suppressed: it surfaces as lib.ErrConflict
// so the caller can retry with the next daily sequence.
func (r *ReceiptRepository) InsertIgnoreDuplicate(ctx context.Context, receipt *tables.Receipt) (bool, error) {
	res, err := r.db.NewInsert().
		Model(receipt).
		On("CONFLICT (order_id) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return false, lib.MapPgError(err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (r *ReceiptRepository) GetByID(ctx context.Context, receiptId uuid.UUID) (*tables.Receipt, error) {
	var receipt tables.Receipt
	err := database.WithRetry(ctx, func() error {
		return r.db.NewSelect().Model(&receipt).Where("rc.id = ?", receiptId).Scan(ctx)
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, lib.ErrNotFound
		}
		return nil, lib.MapPgError(err)
	}
	return &receipt, nil
}

func (r *ReceiptRepository) GetByOrderID(ctx context.Context, orderId uuid.UUID) (*tables.Receipt, error) {
	var receipt tables.Receipt
	err := database.WithRetry(ctx, func() error {
		return r.db.NewSelect().Model(&receipt).Where("rc.order_id = ?", orderId).Scan(ctx)
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, lib.ErrNotFound
		}
		return nil, lib.MapPgError(err)
	}
	return &receipt, nil
}

func (r *ReceiptRepository) GetByOrderNumber(ctx context.Context, orderNumber string) (*tables.Receipt, error) {
	var receipt tables.Receipt
	err := database.WithRetry(ctx, func() error {
		return r.db.NewSelect().Model(&receipt).Where("rc.order_number = ?", orderNumber).Scan(ctx)
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, lib.ErrNotFound
		}
		return nil, lib.MapPgError(err)
	}
	return &receipt, nil
}

func (r *ReceiptRepository) ListByCustomer(ctx context.Context, customerId uuid.UUID, limit, offset int) ([]tables.Receipt, int, error) {
	var receipts []tables.Receipt
	var count int
	err := database.WithRetry(ctx, func() error {
		var err error
		count, err = r.db.NewSelect().
			Model(&receipts).
			Where("rc.customer_id = ?", customerId).
			Order("created_at DESC").
			Limit(limit).
			Offset(offset).
			ScanAndCount(ctx)
		return err
	})
	if err != nil {
		return nil, 0, lib.MapPgError(err)
	}
	return receipts, count, nil
}

// CountForDay returns the number of receipts created on the given calendar
// day. Used to seed the daily receipt-number sequence.
func (r *ReceiptRepository) CountForDay(ctx context.Context, day time.Time) (int, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)

	var count int
	err := database.WithRetry(ctx, func() error {
		var err error
		count, err = r.db.NewSelect().
			Model((*tables.Receipt)(nil)).
			Where("created_at >= ? AND created_at < ?", start, end).
			Count(ctx)
		return err
	})
	if err != nil {
		return 0, lib.MapPgError(err)
	}
	return count, nil
}

// SetPDFLocation records the stored artifact location; second phase of
// receipt generation.
func (r *ReceiptRepository) SetPDFLocation(ctx context.Context, receiptId uuid.UUID, pdfPath, pdfUrl string) error {
	err := database.WithRetry(ctx, func() error {
		_, err := r.db.NewUpdate().
			Model((*tables.Receipt)(nil)).
			Set("pdf_path = ?", pdfPath).
			Set("pdf_url = ?", pdfUrl).
			Set("updated_at = ?", time.Now()).
			Where("id = ?", receiptId).
			Exec(ctx)
		return err
	})
	return lib.MapPgError(err)
}

// RecordDownload bumps download_count by exactly one and advances the status
// to downloaded in a single UPDATE, returning the updated row.
func (r *ReceiptRepository) RecordDownload(ctx context.Context, receiptId uuid.UUID) (*tables.Receipt, error) {
	var receipt tables.Receipt
	res, err := r.db.NewUpdate().
		Model(&receipt).
		Set("download_count = download_count + 1").
		Set("status = ?", tables.ReceiptStatusDownloaded).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", receiptId).
		Returning("*").
		Exec(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, lib.ErrNotFound
	}
	return &receipt, nil
}

func (r *ReceiptRepository) Delete(ctx context.Context, receiptId uuid.UUID) error {
	res, err := r.db.NewDelete().
		Model((*tables.Receipt)(nil)).
		Where("id = ?", receiptId).
		Exec(ctx)
	if err != nil {
		return lib.MapPgError(err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return lib.ErrNotFound
	}
	return nil
}

package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"

	"github.com/muhammadMilon/FruitPanda-sub001/lib"
	"github.com/muhammadMilon/FruitPanda-sub001/pdf"
	"github.com/muhammadMilon/FruitPanda-sub001/storage"
	"github.com/muhammadMilon/FruitPanda-sub001/structs"
	"github.com/muhammadMilon/FruitPanda-sub001/structs/tables"
)

// receiptNumberRetries bounds the daily-sequence retry loop when concurrent
// generations race for the same receipt number.
const receiptNumberRetries = 5

// ReceiptService owns receipt generation, listing, download, backfill, and
// deletion. A receipt is an immutable snapshot of its order taken at payment
// confirmation; later order edits never reach it.
type ReceiptService struct {
	logger   *gecho.Logger
	cfg      *structs.Config
	receipts ReceiptStore
	orders   OrderStore
	store    storage.FileStore
	cache    Cache
}

func NewReceiptService(
	logger *gecho.Logger,
	cfg *structs.Config,
	receipts ReceiptStore,
	orders OrderStore,
	store storage.FileStore,
	cache Cache,
) *ReceiptService {
	return &ReceiptService{
		logger:   logger,
		cfg:      cfg,
		receipts: receipts,
		orders:   orders,
		store:    store,
		cache:    cache,
	}
}

// DownloadResult bundles the streaming artifact with its metadata.
type DownloadResult struct {
	Reader   io.ReadCloser
	Filename string
	Receipt  *tables.Receipt
}

// BackfillResult reports what a backfill run created.
type BackfillResult struct {
	Scanned        int      `json:"scanned"`
	Created        int      `json:"created"`
	ReceiptNumbers []string `json:"receipt_numbers"`
}

// GenerateForOrder creates the receipt for a paid order, or returns the
// existing one. The boolean reports whether a new record was created. The
// record insert and the PDF write are separate phases: a failed PDF leaves a
// valid record with an empty pdf_path that backfill can repair.
func (rs *ReceiptService) GenerateForOrder(ctx context.Context, order *tables.Order) (*tables.Receipt, bool, error) {
	if order.Payment.Status != tables.PaymentStatusPaid {
		return nil, false, lib.ErrInvalidState
	}

	existing, err := rs.receipts.GetByOrderID(ctx, order.Id)
	if err == nil {
		if existing.PdfPath == "" {
			rs.renderAndStore(ctx, existing)
		}
		return existing, false, nil
	}
	if !errors.Is(err, lib.ErrNotFound) {
		return nil, false, err
	}

	now := time.Now()
	receipt := &tables.Receipt{
		Id:              uuid.New(),
		OrderId:         order.Id,
		OrderNumber:     order.OrderNumber,
		CustomerId:      order.CustomerId,
		CustomerInfo:    order.CustomerInfo,
		Items:           order.Items,
		Pricing:         order.Pricing,
		Payment:         order.Payment,
		ShippingAddress: order.ShippingAddress,
		Status:          tables.ReceiptStatusGenerated,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	count, err := rs.receipts.CountForDay(ctx, now)
	if err != nil {
		return nil, false, err
	}

	// The daily count seeds the sequence; a unique-constraint conflict means
	// another generation took the number first, so try the next one.
	seq := count + 1
	created := false
	for attempt := 0; attempt < receiptNumberRetries; attempt++ {
		receipt.ReceiptNumber = lib.FormatReceiptNumber(now, seq)
		created, err = rs.receipts.InsertIgnoreDuplicate(ctx, receipt)
		if errors.Is(err, lib.ErrConflict) {
			seq++
			continue
		}
		if err != nil {
			return nil, false, err
		}
		break
	}
	if errors.Is(err, lib.ErrConflict) {
		return nil, false, fmt.Errorf("allocate receipt number for order %s: %w", order.OrderNumber, err)
	}

	if !created {
		// Lost the race to a concurrent generation for the same order.
		existing, err := rs.receipts.GetByOrderID(ctx, order.Id)
		if err != nil {
			return nil, false, err
		}
		return existing, false, nil
	}

	rs.renderAndStore(ctx, receipt)
	rs.invalidateListCache(receipt.CustomerId)

	rs.logger.Info("Receipt generated",
		gecho.Field("receipt_number", receipt.ReceiptNumber),
		gecho.Field("order_number", receipt.OrderNumber))

	return receipt, true, nil
}

// renderAndStore renders the PDF and records its location. Failures are
// logged, not returned: the receipt record stands on its own and backfill
// regenerates missing artifacts.
func (rs *ReceiptService) renderAndStore(ctx context.Context, receipt *tables.Receipt) {
	data := pdf.ReceiptData{
		ReceiptNumber:   receipt.ReceiptNumber,
		OrderNumber:     receipt.OrderNumber,
		GeneratedAt:     receipt.CreatedAt,
		CustomerInfo:    receipt.CustomerInfo,
		ShippingAddress: receipt.ShippingAddress,
		Payment:         receipt.Payment,
		Items:           receipt.Items,
		Pricing:         receipt.Pricing,
		SupportEmail:    rs.cfg.Server.SupportEmail,
		SupportPhone:    rs.cfg.Server.SupportPhone,
	}

	rendered, err := pdf.RenderReceipt(data)
	if err != nil {
		rs.logger.Error("Failed to render receipt PDF",
			gecho.Field("receipt_number", receipt.ReceiptNumber),
			gecho.Field("error", err))
		return
	}

	filename := fmt.Sprintf("receipt-%s.pdf", receipt.OrderNumber)
	path, url, err := rs.store.Save(filename, rendered)
	if err != nil {
		rs.logger.Error("Failed to store receipt PDF",
			gecho.Field("receipt_number", receipt.ReceiptNumber),
			gecho.Field("error", err))
		return
	}

	if err := rs.receipts.SetPDFLocation(ctx, receipt.Id, path, url); err != nil {
		rs.logger.Error("Failed to record receipt PDF location",
			gecho.Field("receipt_number", receipt.ReceiptNumber),
			gecho.Field("error", err))
		return
	}

	receipt.PdfPath = path
	receipt.PdfUrl = url
}

// GenerateForOrderID is the admin surface for generating a single order's
// receipt on demand.
func (rs *ReceiptService) GenerateForOrderID(ctx context.Context, claims *structs.AuthClaims, orderId uuid.UUID) (*tables.Receipt, error) {
	if !claims.IsAdmin() {
		return nil, lib.ErrForbidden
	}
	order, err := rs.orders.GetByID(ctx, orderId)
	if err != nil {
		return nil, err
	}
	receipt, _, err := rs.GenerateForOrder(ctx, order)
	return receipt, err
}

// receiptListPage is the cached shape of a receipt listing.
type receiptListPage struct {
	Receipts   []structs.ReceiptSummary `json:"receipts"`
	Pagination structs.Pagination       `json:"pagination"`
}

// ListForCustomer pages through the caller's receipts, newest first. Pages are
// cached per customer and invalidated on any receipt write.
func (rs *ReceiptService) ListForCustomer(ctx context.Context, claims *structs.AuthClaims, page, pageSize int) ([]structs.ReceiptSummary, *structs.Pagination, error) {
	page, pageSize = normalizePagination(page, pageSize)

	key := fmt.Sprintf("receipts:%s:%d:%d", claims.Sub, page, pageSize)
	if cached, err := rs.cache.Get(key); err == nil && cached != "" {
		var listing receiptListPage
		if err := json.Unmarshal([]byte(cached), &listing); err == nil {
			return listing.Receipts, &listing.Pagination, nil
		}
	}

	receipts, total, err := rs.receipts.ListByCustomer(ctx, claims.Sub, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, nil, err
	}

	summaries := make([]structs.ReceiptSummary, 0, len(receipts))
	for i := range receipts {
		summaries = append(summaries, structs.NewReceiptSummary(&receipts[i]))
	}
	pagination := structs.NewPagination(page, pageSize, total)

	if encoded, err := json.Marshal(receiptListPage{Receipts: summaries, Pagination: pagination}); err == nil {
		if err := rs.cache.Set(key, string(encoded), rs.cfg.Cache.DefaultTTL); err != nil {
			rs.logger.Warn("Failed to cache receipt listing", gecho.Field("error", err))
		}
	}

	return summaries, &pagination, nil
}

// Download streams the receipt PDF to its owner or an admin, bumping the
// download count by exactly one.
func (rs *ReceiptService) Download(ctx context.Context, claims *structs.AuthClaims, receiptId uuid.UUID) (*DownloadResult, error) {
	receipt, err := rs.receipts.GetByID(ctx, receiptId)
	if err != nil {
		return nil, err
	}
	return rs.download(ctx, claims, receipt)
}

// DownloadByOrderNumber resolves the receipt through its order number and
// streams it.
func (rs *ReceiptService) DownloadByOrderNumber(ctx context.Context, claims *structs.AuthClaims, orderNumber string) (*DownloadResult, error) {
	receipt, err := rs.receipts.GetByOrderNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	return rs.download(ctx, claims, receipt)
}

func (rs *ReceiptService) download(ctx context.Context, claims *structs.AuthClaims, receipt *tables.Receipt) (*DownloadResult, error) {
	if receipt.CustomerId != claims.Sub && !claims.IsAdmin() {
		return nil, lib.ErrForbidden
	}
	if receipt.PdfPath == "" {
		return nil, lib.ErrNotFound
	}

	reader, err := rs.store.Open(receipt.PdfPath)
	if err != nil {
		rs.logger.Error("Failed to open receipt PDF",
			gecho.Field("receipt_number", receipt.ReceiptNumber),
			gecho.Field("pdf_path", receipt.PdfPath),
			gecho.Field("error", err))
		return nil, lib.ErrStorage
	}

	updated, err := rs.receipts.RecordDownload(ctx, receipt.Id)
	if err != nil {
		reader.Close()
		return nil, err
	}
	rs.invalidateListCache(receipt.CustomerId)

	return &DownloadResult{
		Reader:   reader,
		Filename: fmt.Sprintf("receipt-%s.pdf", receipt.OrderNumber),
		Receipt:  updated,
	}, nil
}

// BackfillMissing generates receipts for paid orders that have none. With all
// set, an admin sweeps every customer; otherwise the scope is the caller's own
// orders. Orders whose generation fails are logged and skipped.
func (rs *ReceiptService) BackfillMissing(ctx context.Context, claims *structs.AuthClaims, all bool) (*BackfillResult, error) {
	var customerId *uuid.UUID
	if all {
		if !claims.IsAdmin() {
			return nil, lib.ErrForbidden
		}
	} else {
		customerId = &claims.Sub
	}

	orders, err := rs.orders.ListPaidWithoutReceipt(ctx, customerId)
	if err != nil {
		return nil, err
	}

	result := &BackfillResult{Scanned: len(orders), ReceiptNumbers: []string{}}
	for i := range orders {
		receipt, created, err := rs.GenerateForOrder(ctx, &orders[i])
		if err != nil {
			rs.logger.Error("Backfill failed for order",
				gecho.Field("order_number", orders[i].OrderNumber),
				gecho.Field("error", err))
			continue
		}
		if created {
			result.Created++
			result.ReceiptNumbers = append(result.ReceiptNumbers, receipt.ReceiptNumber)
		}
	}

	rs.logger.Info("Receipt backfill finished",
		gecho.Field("scanned", result.Scanned),
		gecho.Field("created", result.Created))

	return result, nil
}

// Delete removes a receipt record and its stored PDF. Admin only.
func (rs *ReceiptService) Delete(ctx context.Context, claims *structs.AuthClaims, receiptId uuid.UUID) error {
	if !claims.IsAdmin() {
		return lib.ErrForbidden
	}

	receipt, err := rs.receipts.GetByID(ctx, receiptId)
	if err != nil {
		return err
	}

	if receipt.PdfPath != "" {
		if err := rs.store.Remove(receipt.PdfPath); err != nil {
			rs.logger.Warn("Failed to remove receipt PDF",
				gecho.Field("pdf_path", receipt.PdfPath),
				gecho.Field("error", err))
		}
	}

	if err := rs.receipts.Delete(ctx, receiptId); err != nil {
		return err
	}
	rs.invalidateListCache(receipt.CustomerId)

	rs.logger.Info("Receipt deleted",
		gecho.Field("receipt_number", receipt.ReceiptNumber),
		gecho.Field("deleted_by", claims.Sub))

	return nil
}

func (rs *ReceiptService) invalidateListCache(customerId uuid.UUID) {
	if err := rs.cache.DeleteByPrefix(fmt.Sprintf("receipts:%s:", customerId)); err != nil {
		rs.logger.Warn("Failed to invalidate receipt cache",
			gecho.Field("customer_id", customerId),
			gecho.Field("error", err))
	}
}

package structs

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/muhammadMilon/FruitPanda-sub001/structs/tables"
)

// ReceiptSummary is the list-view projection of a receipt.
type ReceiptSummary struct {
	ReceiptNumber string          `json:"receipt_number"`
	OrderNumber   string          `json:"order_number"`
	Total         decimal.Decimal `json:"total"`
	Status        string          `json:"status"`
	GeneratedAt   time.Time       `json:"generated_at"`
	DownloadCount int             `json:"download_count"`
	PdfUrl        string          `json:"pdf_url,omitempty"`
}

// NewReceiptSummary projects a receipt row into its list view.
func NewReceiptSummary(rc *tables.Receipt) ReceiptSummary {
	return ReceiptSummary{
		ReceiptNumber: rc.ReceiptNumber,
		OrderNumber:   rc.OrderNumber,
		Total:         rc.Pricing.Total,
		Status:        string(rc.Status),
		GeneratedAt:   rc.CreatedAt,
		DownloadCount: rc.DownloadCount,
		PdfUrl:        rc.PdfUrl,
	}
}

// Pagination is the shared paging metadata for list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalPages int `json:"total_pages"`
	Total      int `json:"total"`
}

// NewPagination computes paging metadata from a total row count.
func NewPagination(page, pageSize, total int) Pagination {
	totalPages := total / pageSize
	if total%pageSize != 0 {
		totalPages++
	}
	return Pagination{
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
		Total:      total,
	}
}

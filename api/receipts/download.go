package receipts

import (
	"fmt"
	"io"
	"net/http"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/muhammadMilon/FruitPanda-sub001/api/middleware"
	"github.com/muhammadMilon/FruitPanda-sub001/handling"
	"github.com/muhammadMilon/FruitPanda-sub001/services"
)

// DownloadReceipt streams the receipt PDF to its owner or an admin.
func (rrm *ReceiptRoutesManager) DownloadReceipt(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		gecho.Unauthorized(w, gecho.WithMessage("error.auth.invalidOrMissingAccessToken"), gecho.Send())
		return
	}

	receiptId, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.receipt.invalidReceiptId"), gecho.Send())
		return
	}

	result, err := rrm.receiptService.Download(r.Context(), claims, receiptId)
	if err != nil {
		handling.HandleServiceError(err, rrm.logger, w)
		return
	}

	rrm.streamPDF(w, result)
}

// DownloadReceiptByOrderNumber resolves the receipt through its order number
// and streams it.
func (rrm *ReceiptRoutesManager) DownloadReceiptByOrderNumber(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		gecho.Unauthorized(w, gecho.WithMessage("error.auth.invalidOrMissingAccessToken"), gecho.Send())
		return
	}

	orderNumber := chi.URLParam(r, "orderNumber")
	if orderNumber == "" {
		gecho.BadRequest(w, gecho.WithMessage("error.order.invalidOrderNumber"), gecho.Send())
		return
	}

	result, err := rrm.receiptService.DownloadByOrderNumber(r.Context(), claims, orderNumber)
	if err != nil {
		handling.HandleServiceError(err, rrm.logger, w)
		return
	}

	rrm.streamPDF(w, result)
}

func (rrm *ReceiptRoutesManager) streamPDF(w http.ResponseWriter, result *services.DownloadResult) {
	defer result.Reader.Close()

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))

	if _, err := io.Copy(w, result.Reader); err != nil {
		// Headers are already on the wire; all we can do is log.
		rrm.logger.Error("Failed to stream receipt PDF",
			gecho.Field("receipt_number", result.Receipt.ReceiptNumber),
			gecho.Field("error", err))
	}
}

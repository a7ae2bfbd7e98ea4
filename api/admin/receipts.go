package admin

import (
	"net/http"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/muhammadMilon/FruitPanda-sub001/api/middleware"
	"github.com/muhammadMilon/FruitPanda-sub001/handling"
	"github.com/muhammadMilon/FruitPanda-sub001/structs"
)

// GenerateReceipt generates (or returns) the receipt for a single paid order.
func (arm *AdminRoutesManager) GenerateReceipt(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		gecho.Forbidden(w, gecho.WithMessage("error.auth.accessDenied"), gecho.Send())
		return
	}

	orderId, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.order.invalidOrderId"), gecho.Send())
		return
	}

	receipt, err := arm.receiptService.GenerateForOrderID(r.Context(), claims, orderId)
	if err != nil {
		handling.HandleServiceError(err, arm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.receipt.generated"),
		gecho.WithData(structs.NewReceiptSummary(receipt)),
		gecho.Send(),
	)
}

// BackfillAllReceipts sweeps every customer's paid orders for missing
// receipts.
func (arm *AdminRoutesManager) BackfillAllReceipts(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		gecho.Forbidden(w, gecho.WithMessage("error.auth.accessDenied"), gecho.Send())
		return
	}

	result, err := arm.receiptService.BackfillMissing(r.Context(), claims, true)
	if err != nil {
		handling.HandleServiceError(err, arm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.receipt.backfillCompleted"),
		gecho.WithData(result),
		gecho.Send(),
	)
}

// DeleteReceipt removes a receipt record and its stored PDF.
func (arm *AdminRoutesManager) DeleteReceipt(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		gecho.Forbidden(w, gecho.WithMessage("error.auth.accessDenied"), gecho.Send())
		return
	}

	receiptId, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.receipt.invalidReceiptId"), gecho.Send())
		return
	}

	if err := arm.receiptService.Delete(r.Context(), claims, receiptId); err != nil {
		handling.HandleServiceError(err, arm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.receipt.deleted"),
		gecho.Send(),
	)
}

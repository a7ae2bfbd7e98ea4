package receipts

import (
	"net/http"

	"github.com/MonkyMars/gecho"

	"github.com/muhammadMilon/FruitPanda-sub001/api/middleware"
	"github.com/muhammadMilon/FruitPanda-sub001/handling"
)

// BackfillReceipts generates receipts for the caller's paid orders that have
// none. With ?scope=all an admin sweeps every customer.
func (rrm *ReceiptRoutesManager) BackfillReceipts(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		gecho.Unauthorized(w, gecho.WithMessage("error.auth.invalidOrMissingAccessToken"), gecho.Send())
		return
	}

	all := r.URL.Query().Get("scope") == "all"

	result, err := rrm.receiptService.BackfillMissing(r.Context(), claims, all)
	if err != nil {
		handling.HandleServiceError(err, rrm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.receipt.backfillCompleted"),
		gecho.WithData(result),
		gecho.Send(),
	)
}

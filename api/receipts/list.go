package receipts

import (
	"net/http"
	"strconv"

	"github.com/MonkyMars/gecho"

	"github.com/muhammadMilon/FruitPanda-sub001/api/middleware"
	"github.com/muhammadMilon/FruitPanda-sub001/handling"
)

// GetMyReceipts returns the caller's receipt summaries, newest first.
func (rrm *ReceiptRoutesManager) GetMyReceipts(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		gecho.Unauthorized(w, gecho.WithMessage("error.auth.invalidOrMissingAccessToken"), gecho.Send())
		return
	}

	query := r.URL.Query()
	page, _ := strconv.Atoi(query.Get("page"))
	pageSize, _ := strconv.Atoi(query.Get("page_size"))

	receipts, pagination, err := rrm.receiptService.ListForCustomer(r.Context(), claims, page, pageSize)
	if err != nil {
		handling.HandleServiceError(err, rrm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.receipt.receiptsFetched"),
		gecho.WithData(map[string]any{
			"receipts":   receipts,
			"pagination": pagination,
		}),
		gecho.Send(),
	)
}

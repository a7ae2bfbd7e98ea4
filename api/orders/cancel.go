package orders

import (
	"net/http"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/muhammadMilon/FruitPanda-sub001/api/middleware"
	"github.com/muhammadMilon/FruitPanda-sub001/handling"
	"github.com/muhammadMilon/FruitPanda-sub001/lib"
	"github.com/muhammadMilon/FruitPanda-sub001/structs"
)

// CancelOrder cancels a pending or confirmed order on the customer's behalf.
func (orm *OrderRoutesManager) CancelOrder(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		gecho.Unauthorized(w, gecho.WithMessage("error.auth.invalidOrMissingAccessToken"), gecho.Send())
		return
	}

	orderId, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.order.invalidOrderId"), gecho.Send())
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.CancelOrderRequest](r)
	if err != nil {
		gecho.BadRequest(w,
			gecho.WithMessage("error.order.invalidRequestBody"),
			gecho.WithData(err),
			gecho.Send(),
		)
		return
	}

	order, err := orm.orderService.CancelOrder(r.Context(), claims, orderId, body)
	if err != nil {
		handling.HandleServiceError(err, orm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.order.cancelled"),
		gecho.WithData(map[string]any{
			"order_number": order.OrderNumber,
			"status":       order.Status,
			"cancellation": order.Cancellation,
		}),
		gecho.Send(),
	)
}

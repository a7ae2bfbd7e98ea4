package orders

import (
	"net/http"

	"github.com/MonkyMars/gecho"

	"github.com/muhammadMilon/FruitPanda-sub001/api/middleware"
	"github.com/muhammadMilon/FruitPanda-sub001/handling"
	"github.com/muhammadMilon/FruitPanda-sub001/lib"
	"github.com/muhammadMilon/FruitPanda-sub001/structs"
)

func (orm *OrderRoutesManager) CreateOrder(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		gecho.Unauthorized(w, gecho.WithMessage("error.auth.invalidOrMissingAccessToken"), gecho.Send())
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.OrderRequest](r)
	if err != nil {
		gecho.BadRequest(w,
			gecho.WithMessage("error.order.invalidRequestBody"),
			gecho.WithData(err),
			gecho.Send(),
		)
		return
	}

	order, err := orm.orderService.CreateOrder(r.Context(), claims, body)
	if err != nil {
		handling.HandleServiceError(err, orm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.order.created"),
		gecho.WithData(map[string]any{
			"order_id":     order.Id,
			"order_number": order.OrderNumber,
			"status":       order.Status,
			"pricing":      order.Pricing,
		}),
		gecho.Send(),
	)
}

package admin

import (
	"net/http"
	"strconv"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/muhammadMilon/FruitPanda-sub001/api/middleware"
	"github.com/muhammadMilon/FruitPanda-sub001/handling"
	"github.com/muhammadMilon/FruitPanda-sub001/lib"
	"github.com/muhammadMilon/FruitPanda-sub001/structs"
	"github.com/muhammadMilon/FruitPanda-sub001/structs/tables"
)

// ListOrders is the admin order listing with optional status filters.
func (arm *AdminRoutesManager) ListOrders(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		gecho.Forbidden(w, gecho.WithMessage("error.auth.accessDenied"), gecho.Send())
		return
	}

	query := r.URL.Query()
	page, _ := strconv.Atoi(query.Get("page"))
	pageSize, _ := strconv.Atoi(query.Get("page_size"))

	var status *tables.OrderStatus
	if s := query.Get("status"); s != "" {
		v := tables.OrderStatus(s)
		status = &v
	}
	var paymentStatus *tables.PaymentStatus
	if s := query.Get("payment_status"); s != "" {
		v := tables.PaymentStatus(s)
		paymentStatus = &v
	}

	orders, pagination, err := arm.orderService.ListOrders(r.Context(), claims, status, paymentStatus, page, pageSize)
	if err != nil {
		handling.HandleServiceError(err, arm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.order.ordersFetched"),
		gecho.WithData(map[string]any{
			"orders":     orders,
			"pagination": pagination,
		}),
		gecho.Send(),
	)
}

// UpdateOrderStatus moves an order along the fulfillment lifecycle.
func (arm *AdminRoutesManager) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
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

	body, err := lib.ExtractAndValidateBody[structs.UpdateStatusRequest](r)
	if err != nil {
		gecho.BadRequest(w,
			gecho.WithMessage("error.order.invalidRequestBody"),
			gecho.WithData(err),
			gecho.Send(),
		)
		return
	}

	order, err := arm.orderService.UpdateStatus(r.Context(), claims, orderId, body)
	if err != nil {
		handling.HandleServiceError(err, arm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.order.statusUpdated"),
		gecho.WithData(map[string]any{
			"order_number": order.OrderNumber,
			"status":       order.Status,
			"timeline":     order.Timeline,
		}),
		gecho.Send(),
	)
}

package orders

import (
	"net/http"
	"strconv"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/muhammadMilon/FruitPanda-sub001/api/middleware"
	"github.com/muhammadMilon/FruitPanda-sub001/handling"
)

// GetMyOrders returns the caller's orders, newest first.
func (orm *OrderRoutesManager) GetMyOrders(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		gecho.Unauthorized(w, gecho.WithMessage("error.auth.invalidOrMissingAccessToken"), gecho.Send())
		return
	}

	page, pageSize := parsePagination(r)

	orders, pagination, err := orm.orderService.ListMyOrders(r.Context(), claims, page, pageSize)
	if err != nil {
		handling.HandleServiceError(err, orm.logger, w)
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

// GetMyOrderById returns a single order with its full timeline.
func (orm *OrderRoutesManager) GetMyOrderById(w http.ResponseWriter, r *http.Request) {
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

	order, err := orm.orderService.GetOrder(r.Context(), claims, orderId)
	if err != nil {
		handling.HandleServiceError(err, orm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.order.orderFetched"),
		gecho.WithData(order),
		gecho.Send(),
	)
}

// GetMyOrderByNumber resolves an order through its human-facing number.
func (orm *OrderRoutesManager) GetMyOrderByNumber(w http.ResponseWriter, r *http.Request) {
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

	order, err := orm.orderService.GetOrderByNumber(r.Context(), claims, orderNumber)
	if err != nil {
		handling.HandleServiceError(err, orm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.order.orderFetched"),
		gecho.WithData(order),
		gecho.Send(),
	)
}

func parsePagination(r *http.Request) (int, int) {
	query := r.URL.Query()
	page, _ := strconv.Atoi(query.Get("page"))
	pageSize, _ := strconv.Atoi(query.Get("page_size"))
	return page, pageSize
}

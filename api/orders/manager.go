package orders

import (
	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"

	"github.com/muhammadMilon/FruitPanda-sub001/api/middleware"
	"github.com/muhammadMilon/FruitPanda-sub001/services"
)

type OrderRoutesManager struct {
	logger       *gecho.Logger
	orderService *services.OrderService
	mw           *middleware.Middleware
}

func NewOrderRoutesManager(logger *gecho.Logger, orderService *services.OrderService, mw *middleware.Middleware) *OrderRoutesManager {
	return &OrderRoutesManager{
		logger:       logger,
		orderService: orderService,
		mw:           mw,
	}
}

func (orm *OrderRoutesManager) RegisterRoutes(r chi.Router) {
	r.Route("/orders", func(r chi.Router) {
		r.Use(orm.mw.UserAuth)

		r.Post("/", orm.CreateOrder)
		r.Get("/me", orm.GetMyOrders)
		r.Get("/{id}", orm.GetMyOrderById)
		r.Get("/number/{orderNumber}", orm.GetMyOrderByNumber)
		r.Post("/{id}/payment", orm.SubmitPayment)
		r.Post("/{id}/cancel", orm.CancelOrder)
	})
}

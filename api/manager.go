package api

import (
	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"

	"github.com/muhammadMilon/FruitPanda-sub001/api/admin"
	"github.com/muhammadMilon/FruitPanda-sub001/api/health"
	"github.com/muhammadMilon/FruitPanda-sub001/api/middleware"
	"github.com/muhammadMilon/FruitPanda-sub001/api/orders"
	"github.com/muhammadMilon/FruitPanda-sub001/api/products"
	"github.com/muhammadMilon/FruitPanda-sub001/api/receipts"
	"github.com/muhammadMilon/FruitPanda-sub001/services"
)

type routerManager struct {
	productRoutes *products.ProductRoutesManager
	healthRoutes  *health.HealthRoutesManager
	orderRoutes   *orders.OrderRoutesManager
	receiptRoutes *receipts.ReceiptRoutesManager
	adminRoutes   *admin.AdminRoutesManager
}

func NewRouterManager(logger *gecho.Logger, sm *services.ServiceManager, mw *middleware.Middleware) *routerManager {
	return &routerManager{
		productRoutes: products.NewProductRoutesManager(logger, sm.ProductService),
		healthRoutes:  health.NewHealthRoutesManager(sm.HealthService),
		orderRoutes:   orders.NewOrderRoutesManager(logger, sm.OrderService, mw),
		receiptRoutes: receipts.NewReceiptRoutesManager(logger, sm.ReceiptService, mw),
		adminRoutes:   admin.NewAdminRoutesManager(logger, sm.OrderService, sm.ReceiptService, mw),
	}
}

func (rm *routerManager) RegisterRoutes(r chi.Router) {
	rm.productRoutes.RegisterRoutes(r)
	rm.healthRoutes.RegisterRoutes(r)
	rm.orderRoutes.RegisterRoutes(r)
	rm.receiptRoutes.RegisterRoutes(r)
	rm.adminRoutes.RegisterRoutes(r)
}

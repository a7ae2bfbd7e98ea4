package admin

import (
	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"

	"github.com/muhammadMilon/FruitPanda-sub001/api/middleware"
	"github.com/muhammadMilon/FruitPanda-sub001/services"
)

type AdminRoutesManager struct {
	logger         *gecho.Logger
	orderService   *services.OrderService
	receiptService *services.ReceiptService
	mw             *middleware.Middleware
}

func NewAdminRoutesManager(
	logger *gecho.Logger,
	orderService *services.OrderService,
	receiptService *services.ReceiptService,
	mw *middleware.Middleware,
) *AdminRoutesManager {
	return &AdminRoutesManager{
		logger:         logger,
		orderService:   orderService,
		receiptService: receiptService,
		mw:             mw,
	}
}

func (arm *AdminRoutesManager) RegisterRoutes(r chi.Router) {
	r.Route("/admin", func(r chi.Router) {
		r.Use(arm.mw.AdminAuth)

		r.Get("/orders", arm.ListOrders)
		r.Patch("/orders/{id}/status", arm.UpdateOrderStatus)
		r.Post("/orders/{id}/payment/confirm", arm.ConfirmPayment)
		r.Post("/orders/{id}/payment/reject", arm.RejectPayment)
		r.Post("/orders/{id}/receipt", arm.GenerateReceipt)
		r.Post("/receipts/backfill", arm.BackfillAllReceipts)
		r.Delete("/receipts/{id}", arm.DeleteReceipt)
	})
}

package receipts

import (
	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"

	"github.com/muhammadMilon/FruitPanda-sub001/api/middleware"
	"github.com/muhammadMilon/FruitPanda-sub001/services"
)

type ReceiptRoutesManager struct {
	logger         *gecho.Logger
	receiptService *services.ReceiptService
	mw             *middleware.Middleware
}

func NewReceiptRoutesManager(logger *gecho.Logger, receiptService *services.ReceiptService, mw *middleware.Middleware) *ReceiptRoutesManager {
	return &ReceiptRoutesManager{
		logger:         logger,
		receiptService: receiptService,
		mw:             mw,
	}
}

func (rrm *ReceiptRoutesManager) RegisterRoutes(r chi.Router) {
	r.Route("/receipts", func(r chi.Router) {
		r.Use(rrm.mw.UserAuth)

		r.Get("/me", rrm.GetMyReceipts)
		r.Get("/{id}/download", rrm.DownloadReceipt)
		r.Get("/order/{orderNumber}/download", rrm.DownloadReceiptByOrderNumber)
		r.Post("/backfill", rrm.BackfillReceipts)
	})
}

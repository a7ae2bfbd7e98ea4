package admin

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

// ConfirmPayment marks a pending payment as paid. Receipt generation and the
// customer email happen as part of the confirmation.
func (arm *AdminRoutesManager) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
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

	body, err := lib.ExtractAndValidateBody[structs.ConfirmPaymentRequest](r)
	if err != nil {
		gecho.BadRequest(w,
			gecho.WithMessage("error.payment.invalidRequestBody"),
			gecho.WithData(err),
			gecho.Send(),
		)
		return
	}

	order, receipt, err := arm.orderService.ConfirmPayment(r.Context(), claims, orderId, body)
	if err != nil {
		handling.HandleServiceError(err, arm.logger, w)
		return
	}

	data := map[string]any{
		"order_number":   order.OrderNumber,
		"status":         order.Status,
		"payment_status": order.Payment.Status,
	}
	if receipt != nil {
		data["receipt"] = structs.NewReceiptSummary(receipt)
	}

	gecho.Success(w,
		gecho.WithMessage("success.payment.confirmed"),
		gecho.WithData(data),
		gecho.Send(),
	)
}

// RejectPayment marks a pending payment as failed and cancels the order.
func (arm *AdminRoutesManager) RejectPayment(w http.ResponseWriter, r *http.Request) {
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

	body, err := lib.ExtractAndValidateBody[structs.RejectPaymentRequest](r)
	if err != nil {
		gecho.BadRequest(w,
			gecho.WithMessage("error.payment.invalidRequestBody"),
			gecho.WithData(err),
			gecho.Send(),
		)
		return
	}

	order, err := arm.orderService.RejectPayment(r.Context(), claims, orderId, body)
	if err != nil {
		handling.HandleServiceError(err, arm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.payment.rejected"),
		gecho.WithData(map[string]any{
			"order_number":   order.OrderNumber,
			"status":         order.Status,
			"payment_status": order.Payment.Status,
			"rejection":      order.Payment.RejectionReason,
		}),
		gecho.Send(),
	)
}

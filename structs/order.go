package structs

import (
	"github.com/shopspring/decimal"

	"github.com/muhammadMilon/FruitPanda-sub001/structs/tables"
)

// OrderRequest is the checkout submission body.
type OrderRequest struct {
	Items           []OrderItemRequest     `json:"items" validate:"required,min=1,dive"`
	ShippingAddress tables.ShippingAddress `json:"shipping_address" validate:"required"`
	PaymentMethod   tables.PaymentMethod   `json:"payment_method" validate:"required,oneof=bkash nagad cod card"`
}

type OrderItemRequest struct {
	ProductId string          `json:"product_id,omitempty" validate:"omitempty,uuid4"`
	Name      string          `json:"name" validate:"required,min=1,max=200"`
	NameBn    string          `json:"name_bn,omitempty"`
	Image     string          `json:"image,omitempty"`
	Quantity  int             `json:"quantity" validate:"required,min=1"`
	Price     decimal.Decimal `json:"price"`
	Weight    string          `json:"weight,omitempty"`
	// Subtotal is trusted as submitted by the client. Recomputing it from a
	// catalog price would change behavior for frontend-only items, so the
	// original contract is kept.
	Subtotal decimal.Decimal `json:"subtotal"`
}

// SubmitPaymentRequest carries manually-submitted payment details.
type SubmitPaymentRequest struct {
	TransactionId string               `json:"transaction_id,omitempty" validate:"omitempty,max=100"`
	PaymentMethod tables.PaymentMethod `json:"payment_method" validate:"required,oneof=bkash nagad cod card"`
	Amount        decimal.Decimal      `json:"amount" validate:"required"`
}

// ConfirmPaymentRequest is the admin confirmation body.
type ConfirmPaymentRequest struct {
	TransactionId string `json:"transaction_id,omitempty" validate:"omitempty,max=100"`
	Notes         string `json:"notes,omitempty" validate:"omitempty,max=500"`
}

// RejectPaymentRequest is the admin rejection body.
type RejectPaymentRequest struct {
	Reason string `json:"reason" validate:"required,min=1,max=500"`
}

// CancelOrderRequest carries the customer's cancellation reason.
type CancelOrderRequest struct {
	Reason string `json:"reason" validate:"required,min=5,max=500"`
}

// UpdateStatusRequest is the admin fulfillment-status update body.
type UpdateStatusRequest struct {
	Status  tables.OrderStatus `json:"status" validate:"required,oneof=pending confirmed processing shipped delivered cancelled returned"`
	Message string             `json:"message,omitempty" validate:"omitempty,max=500"`
}

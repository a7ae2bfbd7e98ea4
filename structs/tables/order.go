package tables

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FreeDeliveryThreshold and FlatDeliveryFee implement the flat delivery fee
// rule: orders with a subtotal of at least 1000 BDT ship free, everything
// below pays a flat 60 BDT.
var (
	FreeDeliveryThreshold = decimal.NewFromInt(1000)
	FlatDeliveryFee       = decimal.NewFromInt(60)
)

type Order struct {
	tableName   struct{}  `bun:"table:orders,alias:o"`
	Id          uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id" validate:"omitempty,uuid4"`
	OrderNumber string    `bun:"order_number,notnull,unique" json:"order_number" validate:"omitempty,min=8,max=50"`

	// Customer Data (snapshot, decoupled from the live user record)
	CustomerId   uuid.UUID    `bun:"customer_id,notnull,type:uuid" json:"customer_id" validate:"required,uuid4"`
	CustomerInfo CustomerInfo `bun:"customer_info,notnull,type:jsonb" json:"customer_info"`

	// Line items with pricing snapshots taken at order time
	Items []OrderItem `bun:"items,notnull,type:jsonb" json:"items" validate:"required,min=1,dive"`

	ShippingAddress ShippingAddress `bun:"shipping_address,notnull,type:jsonb" json:"shipping_address"`

	Pricing Pricing `bun:"pricing,notnull,type:jsonb" json:"pricing"`

	// Payment Data. PaymentStatus mirrors Payment.Status as a first-class
	// column so the pending->paid guard can be a conditional UPDATE.
	Payment       PaymentInfo   `bun:"payment,notnull,type:jsonb" json:"payment"`
	PaymentStatus PaymentStatus `bun:"payment_status,notnull,default:'pending'" json:"payment_status" validate:"required,oneof=pending paid failed refunded"`

	// Order Data
	Status       OrderStatus     `bun:"status,notnull,default:'pending'" json:"status" validate:"required,oneof=pending confirmed processing shipped delivered cancelled returned"`
	Timeline     []TimelineEntry `bun:"timeline,notnull,type:jsonb" json:"timeline"`
	Cancellation *Cancellation   `bun:"cancellation,type:jsonb" json:"cancellation,omitempty"`
	CreatedAt    time.Time       `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt    time.Time       `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`
}

// CustomerInfo is the denormalized contact snapshot captured at order time.
type CustomerInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type OrderItem struct {
	ProductInfo ProductInfo     `json:"product_info"`
	Quantity    int             `json:"quantity" validate:"required,min=1"`
	Price       decimal.Decimal `json:"price"` // unit price when ordered
	Weight      string          `json:"weight,omitempty"`
	Subtotal    decimal.Decimal `json:"subtotal"` // price * quantity, stored as submitted
}

// ProductInfo is the per-line product snapshot. ProductId is nil for
// frontend-only line items that have no backing catalog product.
type ProductInfo struct {
	ProductId *uuid.UUID `json:"product_id,omitempty"`
	Name      string     `json:"name" validate:"required,min=1,max=200"`
	NameBn    string     `json:"name_bn,omitempty"`
	Image     string     `json:"image,omitempty"`
}

type ShippingAddress struct {
	FullName     string `json:"full_name" validate:"required,min=2,max=100"`
	Phone        string `json:"phone" validate:"required,min=10,max=20"`
	Address      string `json:"address" validate:"required,min=5,max=300"`
	City         string `json:"city" validate:"required,min=2,max=100"`
	Area         string `json:"area,omitempty" validate:"omitempty,max=100"`
	Instructions string `json:"instructions,omitempty" validate:"omitempty,max=500"`
}

type Pricing struct {
	Subtotal    decimal.Decimal `json:"subtotal"`
	DeliveryFee decimal.Decimal `json:"delivery_fee"`
	Discount    decimal.Decimal `json:"discount"`
	Total       decimal.Decimal `json:"total"`
}

// Recompute enforces the pricing invariant total = subtotal + delivery_fee - discount.
func (p *Pricing) Recompute() {
	p.Total = p.Subtotal.Add(p.DeliveryFee).Sub(p.Discount)
}

// DeliveryFeeFor returns the delivery fee owed for the given subtotal.
func DeliveryFeeFor(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.GreaterThanOrEqual(FreeDeliveryThreshold) {
		return decimal.Zero
	}
	return FlatDeliveryFee
}

type PaymentInfo struct {
	Method          PaymentMethod `json:"method" validate:"required,oneof=bkash nagad cod card"`
	Status          PaymentStatus `json:"status"`
	TransactionId   string        `json:"transaction_id,omitempty"`
	PaidAt          *time.Time    `json:"paid_at,omitempty"`
	SubmittedAt     *time.Time    `json:"submitted_at,omitempty"`
	RejectedAt      *time.Time    `json:"rejected_at,omitempty"`
	RejectedBy      *uuid.UUID    `json:"rejected_by,omitempty"`
	RejectionReason string        `json:"rejection_reason,omitempty"`
	AdminNotes      string        `json:"admin_notes,omitempty"`
}

type TimelineEntry struct {
	Status    OrderStatus `json:"status"`
	Message   string      `json:"message"`
	Timestamp time.Time   `json:"timestamp"`
	UpdatedBy *uuid.UUID  `json:"updated_by,omitempty"`
}

type Cancellation struct {
	Reason       string    `json:"reason"`
	CancelledBy  uuid.UUID `json:"cancelled_by"`
	CancelledAt  time.Time `json:"cancelled_at"`
	RefundStatus string    `json:"refund_status,omitempty"`
}

// AppendTimeline pushes an audit entry onto the order's timeline.
func (o *Order) AppendTimeline(status OrderStatus, message string, updatedBy *uuid.UUID) {
	o.Timeline = append(o.Timeline, TimelineEntry{
		Status:    status,
		Message:   message,
		Timestamp: time.Now(),
		UpdatedBy: updatedBy,
	})
}

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
	OrderStatusReturned   OrderStatus = "returned"
)

// orderTransitions defines the allowed fulfillment state machine. The states
// themselves match the externally observable set; illegal jumps such as
// delivered -> pending are rejected.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed:  {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusShipped},
	OrderStatusShipped:    {OrderStatusDelivered},
	OrderStatusDelivered:  {OrderStatusReturned},
	OrderStatusCancelled:  {},
	OrderStatusReturned:   {},
}

// CanTransition reports whether moving from current to next is a legal
// fulfillment transition.
func CanTransition(current, next OrderStatus) bool {
	allowed, ok := orderTransitions[current]
	if !ok {
		return false
	}
	for _, s := range allowed {
		if s == next {
			return true
		}
	}
	return false
}

// Cancellable reports whether the order may still be cancelled.
func (o *Order) Cancellable() bool {
	switch o.Status {
	case OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return false
	}
	return true
}

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

type PaymentMethod string

const (
	PaymentMethodBkash PaymentMethod = "bkash"
	PaymentMethodNagad PaymentMethod = "nagad"
	PaymentMethodCOD   PaymentMethod = "cod"
	PaymentMethodCard  PaymentMethod = "card"
)

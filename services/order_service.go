package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/muhammadMilon/FruitPanda-sub001/lib"
	"github.com/muhammadMilon/FruitPanda-sub001/structs"
	"github.com/muhammadMilon/FruitPanda-sub001/structs/tables"
)

// amountTolerance absorbs rounding differences between the client's payment
// amount and the stored order total.
var amountTolerance = decimal.NewFromFloat(0.01)

const (
	defaultPageSize = 10
	maxPageSize     = 50

	// Order-number collisions are millisecond-plus-random, so one retry is
	// already generous.
	orderNumberRetries = 2
)

// OrderService owns the order lifecycle: checkout, payment submission, admin
// confirmation and rejection, fulfillment status, and cancellation.
type OrderService struct {
	logger         *gecho.Logger
	cfg            *structs.Config
	orders         OrderStore
	productService *ProductService
	receiptService *ReceiptService
	mailer         Mailer
}

func NewOrderService(
	logger *gecho.Logger,
	cfg *structs.Config,
	orders OrderStore,
	productService *ProductService,
	receiptService *ReceiptService,
	mailer Mailer,
) *OrderService {
	return &OrderService{
		logger:         logger,
		cfg:            cfg,
		orders:         orders,
		productService: productService,
		receiptService: receiptService,
		mailer:         mailer,
	}
}

// CreateOrder validates the checkout request, prices the order, and persists
// it in the pending state with an opening timeline entry.
func (os *OrderService) CreateOrder(ctx context.Context, claims *structs.AuthClaims, req *structs.OrderRequest) (*tables.Order, error) {
	items, err := os.buildItems(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.Subtotal)
	}

	pricing := tables.Pricing{
		Subtotal:    subtotal,
		DeliveryFee: tables.DeliveryFeeFor(subtotal),
		Discount:    decimal.Zero,
	}
	pricing.Recompute()

	order := &tables.Order{
		Id:         uuid.New(),
		CustomerId: claims.Sub,
		CustomerInfo: tables.CustomerInfo{
			Name:  req.ShippingAddress.FullName,
			Email: claims.Email,
			Phone: req.ShippingAddress.Phone,
		},
		Items:           items,
		ShippingAddress: req.ShippingAddress,
		Pricing:         pricing,
		Payment: tables.PaymentInfo{
			Method: req.PaymentMethod,
			Status: tables.PaymentStatusPending,
		},
		PaymentStatus: tables.PaymentStatusPending,
		Status:        tables.OrderStatusPending,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	order.AppendTimeline(tables.OrderStatusPending, "Order placed successfully", nil)

	for attempt := 0; ; attempt++ {
		order.OrderNumber = lib.GenerateOrderNumber()
		err = os.orders.Insert(ctx, order)
		if err == nil {
			break
		}
		if errors.Is(err, lib.ErrConflict) && attempt < orderNumberRetries {
			continue
		}
		return nil, err
	}

	os.productService.ReserveItems(ctx, order.Items)

	os.logger.Info("Order created",
		gecho.Field("order_number", order.OrderNumber),
		gecho.Field("customer_id", order.CustomerId),
		gecho.Field("total", order.Pricing.Total.String()))

	return order, nil
}

// buildItems converts request items into stored line items, snapshotting the
// catalog row for items that reference one.
func (os *OrderService) buildItems(ctx context.Context, reqItems []structs.OrderItemRequest) ([]tables.OrderItem, error) {
	catalogIds := make([]uuid.UUID, 0, len(reqItems))
	for _, item := range reqItems {
		if item.Price.IsNegative() {
			return nil, lib.NewValidationError("items", "item price cannot be negative")
		}
		if item.Subtotal.IsNegative() {
			return nil, lib.NewValidationError("items", "item subtotal cannot be negative")
		}
		if item.ProductId != "" {
			id, err := uuid.Parse(item.ProductId)
			if err != nil {
				return nil, lib.NewValidationError("items", fmt.Sprintf("invalid product id: %s", item.ProductId))
			}
			catalogIds = append(catalogIds, id)
		}
	}

	catalog := map[uuid.UUID]tables.Product{}
	if len(catalogIds) > 0 {
		var err error
		catalog, err = os.productService.GetProductsByIds(ctx, catalogIds)
		if err != nil {
			return nil, lib.NewValidationError("items", err.Error())
		}
	}

	items := make([]tables.OrderItem, 0, len(reqItems))
	for _, item := range reqItems {
		info := tables.ProductInfo{
			Name:   item.Name,
			NameBn: item.NameBn,
			Image:  item.Image,
		}
		if item.ProductId != "" {
			id, _ := uuid.Parse(item.ProductId)
			product, ok := catalog[id]
			if !ok {
				return nil, lib.NewValidationError("items", fmt.Sprintf("product not found: %s", item.ProductId))
			}
			// Snapshot the canonical catalog identity; price stays as submitted.
			info.ProductId = &product.ID
			info.Name = product.Name
			info.NameBn = product.NameBn
			info.Image = product.Image
		}

		items = append(items, tables.OrderItem{
			ProductInfo: info,
			Quantity:    item.Quantity,
			Price:       item.Price,
			Weight:      item.Weight,
			Subtotal:    item.Subtotal,
		})
	}
	return items, nil
}

// SubmitPayment records the customer's manual payment details. The payment
// stays pending until an admin confirms it.
func (os *OrderService) SubmitPayment(ctx context.Context, claims *structs.AuthClaims, orderId uuid.UUID, req *structs.SubmitPaymentRequest) (*tables.Order, error) {
	order, err := os.getOwned(ctx, claims, orderId)
	if err != nil {
		return nil, err
	}

	if order.Payment.Status != tables.PaymentStatusPending {
		return nil, lib.ErrInvalidState
	}

	if req.Amount.Sub(order.Pricing.Total).Abs().GreaterThan(amountTolerance) {
		return nil, lib.ErrAmountMismatch
	}

	now := time.Now()
	order.Payment.Method = req.PaymentMethod
	order.Payment.TransactionId = req.TransactionId
	order.Payment.SubmittedAt = &now
	order.AppendTimeline(order.Status, fmt.Sprintf("Payment submitted via %s", req.PaymentMethod), &claims.Sub)

	if err := os.orders.Update(ctx, order); err != nil {
		return nil, err
	}

	os.logger.Info("Payment submitted",
		gecho.Field("order_number", order.OrderNumber),
		gecho.Field("method", string(req.PaymentMethod)))

	return order, nil
}

// ConfirmPayment flips the payment from pending to paid, generates the
// receipt, and emails the customer. The pending->paid guard is a conditional
// database update, so a concurrent second confirmation fails with an invalid
// state error instead of double-confirming.
func (os *OrderService) ConfirmPayment(ctx context.Context, claims *structs.AuthClaims, orderId uuid.UUID, req *structs.ConfirmPaymentRequest) (*tables.Order, *tables.Receipt, error) {
	if !claims.IsAdmin() {
		return nil, nil, lib.ErrForbidden
	}

	order, err := os.orders.TransitionPayment(ctx, orderId, tables.PaymentStatusPending, tables.PaymentStatusPaid, func(o *tables.Order) error {
		now := time.Now()
		o.Payment.PaidAt = &now
		if req.TransactionId != "" {
			o.Payment.TransactionId = req.TransactionId
		}
		o.Payment.AdminNotes = req.Notes
		if o.Status == tables.OrderStatusPending {
			o.Status = tables.OrderStatusConfirmed
		}
		o.AppendTimeline(o.Status, "Payment confirmed", &claims.Sub)
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	// Receipt generation is idempotent; a storage failure is logged and left
	// for backfill rather than rolling back the confirmation.
	receipt, _, err := os.receiptService.GenerateForOrder(ctx, order)
	if err != nil {
		os.logger.Error("Failed to generate receipt after payment confirmation",
			gecho.Field("order_number", order.OrderNumber),
			gecho.Field("error", err))
		receipt = nil
	}

	go os.sendConfirmationEmail(order, receipt)

	os.logger.Info("Payment confirmed",
		gecho.Field("order_number", order.OrderNumber),
		gecho.Field("admin_id", claims.Sub))

	return order, receipt, nil
}

// sendConfirmationEmail runs on its own goroutine; notification failure never
// fails the confirmation.
func (os *OrderService) sendConfirmationEmail(order *tables.Order, receipt *tables.Receipt) {
	receiptUrl := ""
	if receipt != nil && receipt.PdfUrl != "" {
		receiptUrl = os.cfg.Server.ServerURL + receipt.PdfUrl
	}
	if err := os.mailer.SendPaymentConfirmation(order, receiptUrl); err != nil {
		os.logger.Error("Failed to send payment confirmation email",
			gecho.Field("order_number", order.OrderNumber),
			gecho.Field("error", err))
	}
}

// RejectPayment flips the payment from pending to failed, cancels the order,
// and releases any reserved inventory.
func (os *OrderService) RejectPayment(ctx context.Context, claims *structs.AuthClaims, orderId uuid.UUID, req *structs.RejectPaymentRequest) (*tables.Order, error) {
	if !claims.IsAdmin() {
		return nil, lib.ErrForbidden
	}

	order, err := os.orders.TransitionPayment(ctx, orderId, tables.PaymentStatusPending, tables.PaymentStatusFailed, func(o *tables.Order) error {
		now := time.Now()
		o.Payment.RejectedAt = &now
		o.Payment.RejectedBy = &claims.Sub
		o.Payment.RejectionReason = req.Reason
		o.Status = tables.OrderStatusCancelled
		o.AppendTimeline(tables.OrderStatusCancelled, fmt.Sprintf("Payment rejected: %s", req.Reason), &claims.Sub)
		return nil
	})
	if err != nil {
		return nil, err
	}

	os.productService.ReleaseItems(ctx, order.Items)

	os.logger.Info("Payment rejected",
		gecho.Field("order_number", order.OrderNumber),
		gecho.Field("reason", req.Reason))

	return order, nil
}

// UpdateStatus moves the order through the fulfillment lifecycle. Transitions
// outside the lifecycle graph are rejected.
func (os *OrderService) UpdateStatus(ctx context.Context, claims *structs.AuthClaims, orderId uuid.UUID, req *structs.UpdateStatusRequest) (*tables.Order, error) {
	if !claims.IsAdmin() {
		return nil, lib.ErrForbidden
	}

	order, err := os.orders.GetByID(ctx, orderId)
	if err != nil {
		return nil, err
	}

	if !tables.CanTransition(order.Status, req.Status) {
		return nil, lib.ErrInvalidState
	}

	message := req.Message
	if message == "" {
		message = fmt.Sprintf("Order status updated to %s", req.Status)
	}

	order.Status = req.Status
	order.AppendTimeline(req.Status, message, &claims.Sub)

	if err := os.orders.Update(ctx, order); err != nil {
		return nil, err
	}

	os.logger.Info("Order status updated",
		gecho.Field("order_number", order.OrderNumber),
		gecho.Field("status", string(req.Status)))

	return order, nil
}

// CancelOrder cancels a pending or confirmed order. Shipped, delivered, and
// already-cancelled orders cannot be cancelled.
func (os *OrderService) CancelOrder(ctx context.Context, claims *structs.AuthClaims, orderId uuid.UUID, req *structs.CancelOrderRequest) (*tables.Order, error) {
	order, err := os.getOwned(ctx, claims, orderId)
	if err != nil {
		return nil, err
	}

	if !order.Cancellable() {
		return nil, lib.ErrInvalidState
	}

	refundStatus := "not_applicable"
	if order.Payment.Status == tables.PaymentStatusPaid {
		refundStatus = "pending"
	}

	order.Status = tables.OrderStatusCancelled
	order.Cancellation = &tables.Cancellation{
		Reason:       req.Reason,
		CancelledBy:  claims.Sub,
		CancelledAt:  time.Now(),
		RefundStatus: refundStatus,
	}
	order.AppendTimeline(tables.OrderStatusCancelled, fmt.Sprintf("Order cancelled: %s", req.Reason), &claims.Sub)

	if err := os.orders.Update(ctx, order); err != nil {
		return nil, err
	}

	os.productService.ReleaseItems(ctx, order.Items)

	os.logger.Info("Order cancelled",
		gecho.Field("order_number", order.OrderNumber),
		gecho.Field("cancelled_by", claims.Sub))

	return order, nil
}

// GetOrder returns a single order, restricted to its owner or an admin.
func (os *OrderService) GetOrder(ctx context.Context, claims *structs.AuthClaims, orderId uuid.UUID) (*tables.Order, error) {
	return os.getOwned(ctx, claims, orderId)
}

// GetOrderByNumber resolves the human-facing order number.
func (os *OrderService) GetOrderByNumber(ctx context.Context, claims *structs.AuthClaims, orderNumber string) (*tables.Order, error) {
	order, err := os.orders.GetByOrderNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	if order.CustomerId != claims.Sub && !claims.IsAdmin() {
		return nil, lib.ErrForbidden
	}
	return order, nil
}

// ListMyOrders pages through the caller's own orders, newest first.
func (os *OrderService) ListMyOrders(ctx context.Context, claims *structs.AuthClaims, page, pageSize int) ([]tables.Order, *structs.Pagination, error) {
	page, pageSize = normalizePagination(page, pageSize)

	orders, total, err := os.orders.ListByCustomer(ctx, claims.Sub, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, nil, err
	}

	pagination := structs.NewPagination(page, pageSize, total)
	return orders, &pagination, nil
}

// ListOrders is the admin listing with optional status filters.
func (os *OrderService) ListOrders(ctx context.Context, claims *structs.AuthClaims, status *tables.OrderStatus, paymentStatus *tables.PaymentStatus, page, pageSize int) ([]tables.Order, *structs.Pagination, error) {
	if !claims.IsAdmin() {
		return nil, nil, lib.ErrForbidden
	}
	page, pageSize = normalizePagination(page, pageSize)

	orders, total, err := os.orders.ListAll(ctx, status, paymentStatus, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, nil, err
	}

	pagination := structs.NewPagination(page, pageSize, total)
	return orders, &pagination, nil
}

func (os *OrderService) getOwned(ctx context.Context, claims *structs.AuthClaims, orderId uuid.UUID) (*tables.Order, error) {
	order, err := os.orders.GetByID(ctx, orderId)
	if err != nil {
		return nil, err
	}
	if order.CustomerId != claims.Sub && !claims.IsAdmin() {
		return nil, lib.ErrForbidden
	}
	return order, nil
}

func normalizePagination(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}

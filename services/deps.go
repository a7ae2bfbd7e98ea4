package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/muhammadMilon/FruitPanda-sub001/structs/tables"
)

// OrderStore is the persistence surface OrderService and ReceiptService need.
// repository.OrderRepository is the production implementation; tests swap in
// in-memory fakes.
type OrderStore interface {
	Insert(ctx context.Context, order *tables.Order) error
	GetByID(ctx context.Context, orderId uuid.UUID) (*tables.Order, error)
	GetByOrderNumber(ctx context.Context, orderNumber string) (*tables.Order, error)
	ListByCustomer(ctx context.Context, customerId uuid.UUID, limit, offset int) ([]tables.Order, int, error)
	ListAll(ctx context.Context, status *tables.OrderStatus, paymentStatus *tables.PaymentStatus, limit, offset int) ([]tables.Order, int, error)
	ListPaidWithoutReceipt(ctx context.Context, customerId *uuid.UUID) ([]tables.Order, error)
	Update(ctx context.Context, order *tables.Order) error
	TransitionPayment(ctx context.Context, orderId uuid.UUID, from, to tables.PaymentStatus, mutate func(*tables.Order) error) (*tables.Order, error)
}

type ReceiptStore interface {
	InsertIgnoreDuplicate(ctx context.Context, receipt *tables.Receipt) (bool, error)
	GetByID(ctx context.Context, receiptId uuid.UUID) (*tables.Receipt, error)
	GetByOrderID(ctx context.Context, orderId uuid.UUID) (*tables.Receipt, error)
	GetByOrderNumber(ctx context.Context, orderNumber string) (*tables.Receipt, error)
	ListByCustomer(ctx context.Context, customerId uuid.UUID, limit, offset int) ([]tables.Receipt, int, error)
	CountForDay(ctx context.Context, day time.Time) (int, error)
	SetPDFLocation(ctx context.Context, receiptId uuid.UUID, pdfPath, pdfUrl string) error
	RecordDownload(ctx context.Context, receiptId uuid.UUID) (*tables.Receipt, error)
	Delete(ctx context.Context, receiptId uuid.UUID) error
}

type ProductStore interface {
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]tables.Product, error)
	ListActive(ctx context.Context) ([]tables.Product, error)
	Reserve(ctx context.Context, productId uuid.UUID, qty int) error
	Release(ctx context.Context, productId uuid.UUID, qty int) error
}

// Mailer sends customer-facing notifications. Failures are logged by the
// implementation and never abort the calling operation.
type Mailer interface {
	SendPaymentConfirmation(order *tables.Order, receiptUrl string) error
}

// Cache is the subset of CacheService the domain services depend on.
type Cache interface {
	Get(key string) (string, error)
	Set(key string, value any, ttl time.Duration) error
	Delete(key string) error
	DeleteByPrefix(prefix string) error
}

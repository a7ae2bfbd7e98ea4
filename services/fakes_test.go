package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/muhammadMilon/FruitPanda-sub001/lib"
	"github.com/muhammadMilon/FruitPanda-sub001/structs"
	"github.com/muhammadMilon/FruitPanda-sub001/structs/tables"
)

// --- In-memory stores ---

type fakeOrderStore struct {
	mu       sync.Mutex
	orders   map[uuid.UUID]*tables.Order
	receipts *fakeReceiptStore
}

func newFakeOrderStore(receipts *fakeReceiptStore) *fakeOrderStore {
	return &fakeOrderStore{
		orders:   make(map[uuid.UUID]*tables.Order),
		receipts: receipts,
	}
}

func (f *fakeOrderStore) Insert(_ context.Context, order *tables.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.orders {
		if existing.OrderNumber == order.OrderNumber {
			return lib.ErrConflict
		}
	}
	f.orders[order.Id] = order
	return nil
}

func (f *fakeOrderStore) GetByID(_ context.Context, orderId uuid.UUID) (*tables.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	order, ok := f.orders[orderId]
	if !ok {
		return nil, lib.ErrNotFound
	}
	return order, nil
}

func (f *fakeOrderStore) GetByOrderNumber(_ context.Context, orderNumber string) (*tables.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, order := range f.orders {
		if order.OrderNumber == orderNumber {
			return order, nil
		}
	}
	return nil, lib.ErrNotFound
}

func (f *fakeOrderStore) ListByCustomer(_ context.Context, customerId uuid.UUID, limit, offset int) ([]tables.Order, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var all []tables.Order
	for _, order := range f.orders {
		if order.CustomerId == customerId {
			all = append(all, *order)
		}
	}
	return page(all, limit, offset), len(all), nil
}

func (f *fakeOrderStore) ListAll(_ context.Context, status *tables.OrderStatus, paymentStatus *tables.PaymentStatus, limit, offset int) ([]tables.Order, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var all []tables.Order
	for _, order := range f.orders {
		if status != nil && order.Status != *status {
			continue
		}
		if paymentStatus != nil && order.PaymentStatus != *paymentStatus {
			continue
		}
		all = append(all, *order)
	}
	return page(all, limit, offset), len(all), nil
}

func (f *fakeOrderStore) ListPaidWithoutReceipt(_ context.Context, customerId *uuid.UUID) ([]tables.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []tables.Order
	for _, order := range f.orders {
		if order.PaymentStatus != tables.PaymentStatusPaid {
			continue
		}
		if customerId != nil && order.CustomerId != *customerId {
			continue
		}
		if _, ok := f.receipts.byOrder[order.Id]; ok {
			continue
		}
		out = append(out, *order)
	}
	return out, nil
}

func (f *fakeOrderStore) Update(_ context.Context, order *tables.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.orders[order.Id]; !ok {
		return lib.ErrNotFound
	}
	order.UpdatedAt = time.Now()
	f.orders[order.Id] = order
	return nil
}

func (f *fakeOrderStore) TransitionPayment(_ context.Context, orderId uuid.UUID, from, to tables.PaymentStatus, mutate func(*tables.Order) error) (*tables.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	order, ok := f.orders[orderId]
	if !ok {
		return nil, lib.ErrNotFound
	}
	if order.PaymentStatus != from {
		return nil, lib.ErrInvalidState
	}
	if err := mutate(order); err != nil {
		return nil, err
	}
	order.PaymentStatus = to
	order.Payment.Status = to
	order.UpdatedAt = time.Now()
	return order, nil
}

func page(all []tables.Order, limit, offset int) []tables.Order {
	if offset >= len(all) {
		return nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end]
}

type fakeReceiptStore struct {
	mu       sync.Mutex
	byID     map[uuid.UUID]*tables.Receipt
	byOrder  map[uuid.UUID]*tables.Receipt
	byNumber map[string]*tables.Receipt
}

func newFakeReceiptStore() *fakeReceiptStore {
	return &fakeReceiptStore{
		byID:     make(map[uuid.UUID]*tables.Receipt),
		byOrder:  make(map[uuid.UUID]*tables.Receipt),
		byNumber: make(map[string]*tables.Receipt),
	}
}

func (f *fakeReceiptStore) InsertIgnoreDuplicate(_ context.Context, receipt *tables.Receipt) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byOrder[receipt.OrderId]; ok {
		return false, nil
	}
	if _, ok := f.byNumber[receipt.ReceiptNumber]; ok {
		return false, lib.ErrConflict
	}
	f.byID[receipt.Id] = receipt
	f.byOrder[receipt.OrderId] = receipt
	f.byNumber[receipt.ReceiptNumber] = receipt
	return true, nil
}

func (f *fakeReceiptStore) GetByID(_ context.Context, receiptId uuid.UUID) (*tables.Receipt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	receipt, ok := f.byID[receiptId]
	if !ok {
		return nil, lib.ErrNotFound
	}
	return receipt, nil
}

func (f *fakeReceiptStore) GetByOrderID(_ context.Context, orderId uuid.UUID) (*tables.Receipt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	receipt, ok := f.byOrder[orderId]
	if !ok {
		return nil, lib.ErrNotFound
	}
	return receipt, nil
}

func (f *fakeReceiptStore) GetByOrderNumber(_ context.Context, orderNumber string) (*tables.Receipt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, receipt := range f.byID {
		if receipt.OrderNumber == orderNumber {
			return receipt, nil
		}
	}
	return nil, lib.ErrNotFound
}

func (f *fakeReceiptStore) ListByCustomer(_ context.Context, customerId uuid.UUID, limit, offset int) ([]tables.Receipt, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var all []tables.Receipt
	for _, receipt := range f.byID {
		if receipt.CustomerId == customerId {
			all = append(all, *receipt)
		}
	}
	if offset >= len(all) {
		return nil, len(all), nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], len(all), nil
}

func (f *fakeReceiptStore) CountForDay(_ context.Context, day time.Time) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, receipt := range f.byID {
		y1, m1, d1 := receipt.CreatedAt.Date()
		y2, m2, d2 := day.Date()
		if y1 == y2 && m1 == m2 && d1 == d2 {
			count++
		}
	}
	return count, nil
}

func (f *fakeReceiptStore) SetPDFLocation(_ context.Context, receiptId uuid.UUID, pdfPath, pdfUrl string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	receipt, ok := f.byID[receiptId]
	if !ok {
		return lib.ErrNotFound
	}
	receipt.PdfPath = pdfPath
	receipt.PdfUrl = pdfUrl
	return nil
}

func (f *fakeReceiptStore) RecordDownload(_ context.Context, receiptId uuid.UUID) (*tables.Receipt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	receipt, ok := f.byID[receiptId]
	if !ok {
		return nil, lib.ErrNotFound
	}
	receipt.DownloadCount++
	receipt.Status = tables.ReceiptStatusDownloaded
	return receipt, nil
}

func (f *fakeReceiptStore) Delete(_ context.Context, receiptId uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	receipt, ok := f.byID[receiptId]
	if !ok {
		return lib.ErrNotFound
	}
	delete(f.byID, receiptId)
	delete(f.byOrder, receipt.OrderId)
	delete(f.byNumber, receipt.ReceiptNumber)
	return nil
}

type fakeProductStore struct {
	mu       sync.Mutex
	products map[uuid.UUID]tables.Product
	reserved map[uuid.UUID]int
}

func newFakeProductStore(products ...tables.Product) *fakeProductStore {
	byID := make(map[uuid.UUID]tables.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return &fakeProductStore{
		products: byID,
		reserved: make(map[uuid.UUID]int),
	}
}

func (f *fakeProductStore) GetByIDs(_ context.Context, ids []uuid.UUID) ([]tables.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []tables.Product
	for _, id := range ids {
		if p, ok := f.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProductStore) ListActive(_ context.Context) ([]tables.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []tables.Product
	for _, p := range f.products {
		if p.IsActive {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProductStore) Reserve(_ context.Context, productId uuid.UUID, qty int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reserved[productId] += qty
	return nil
}

func (f *fakeProductStore) Release(_ context.Context, productId uuid.UUID, qty int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reserved[productId] -= qty
	if f.reserved[productId] < 0 {
		f.reserved[productId] = 0
	}
	return nil
}

// --- Supporting fakes ---

type fakeMailer struct {
	mu    sync.Mutex
	sent  []string // order numbers
	calls chan struct{}
}

func newFakeMailer() *fakeMailer {
	return &fakeMailer{calls: make(chan struct{}, 16)}
}

func (f *fakeMailer) SendPaymentConfirmation(order *tables.Order, _ string) error {
	f.mu.Lock()
	f.sent = append(f.sent, order.OrderNumber)
	f.mu.Unlock()
	f.calls <- struct{}{}
	return nil
}

func (f *fakeMailer) waitForSend(timeout time.Duration) bool {
	select {
	case <-f.calls:
		return true
	case <-time.After(timeout):
		return false
	}
}

type fakeCache struct {
	mu    sync.Mutex
	items map[string]string
}

func newFakeCache() *fakeCache {
	return &fakeCache{items: make(map[string]string)}
}

func (f *fakeCache) Get(key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.items[key], nil
}

func (f *fakeCache) Set(key string, value any, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items[key] = value.(string)
	return nil
}

func (f *fakeCache) Delete(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.items, key)
	return nil
}

func (f *fakeCache) DeleteByPrefix(prefix string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for key := range f.items {
		if strings.HasPrefix(key, prefix) {
			delete(f.items, key)
		}
	}
	return nil
}

type fakeFileStore struct {
	mu      sync.Mutex
	files   map[string][]byte
	saveErr error
}

func newFakeFileStore() *fakeFileStore {
	return &fakeFileStore{files: make(map[string][]byte)}
}

func (f *fakeFileStore) Save(filename string, data []byte) (string, string, error) {
	if f.saveErr != nil {
		return "", "", f.saveErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	path := "/receipts/" + filename
	f.files[path] = data
	return path, "/receipts/files/" + filename, nil
}

func (f *fakeFileStore) Open(path string) (io.ReadCloser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.files[path]
	if !ok {
		return nil, errors.New("file not found")
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (f *fakeFileStore) Remove(path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.files, path)
	return nil
}

// --- Test wiring ---

type testEnv struct {
	orders   *fakeOrderStore
	receipts *fakeReceiptStore
	products *fakeProductStore
	mailer   *fakeMailer
	cache    *fakeCache
	files    *fakeFileStore

	orderService   *OrderService
	receiptService *ReceiptService
	productService *ProductService
}

func newTestEnv() *testEnv {
	logger := gecho.NewDefaultLogger()
	cfg := &structs.Config{
		Server: &structs.ServerConfig{
			AppName:      "FruitPanda",
			ServerURL:    "http://localhost:8082",
			FrontendURL:  "http://localhost:3000",
			SupportEmail: "support@fruitpanda.com.bd",
			SupportPhone: "+880 1700-000000",
		},
		Cache: &structs.CacheConfig{DefaultTTL: time.Minute},
	}

	receipts := newFakeReceiptStore()
	orders := newFakeOrderStore(receipts)
	products := newFakeProductStore()
	mailer := newFakeMailer()
	cache := newFakeCache()
	files := newFakeFileStore()

	productService := NewProductService(logger, cfg, products, cache)
	receiptService := NewReceiptService(logger, cfg, receipts, orders, files, cache)
	orderService := NewOrderService(logger, cfg, orders, productService, receiptService, mailer)

	return &testEnv{
		orders:         orders,
		receipts:       receipts,
		products:       products,
		mailer:         mailer,
		cache:          cache,
		files:          files,
		orderService:   orderService,
		receiptService: receiptService,
		productService: productService,
	}
}

func customerClaims() *structs.AuthClaims {
	return &structs.AuthClaims{
		Sub:   uuid.New(),
		Email: "rahim@example.com",
		Role:  "customer",
	}
}

func adminClaims() *structs.AuthClaims {
	return &structs.AuthClaims{
		Sub:   uuid.New(),
		Email: "admin@fruitpanda.com.bd",
		Role:  "admin",
	}
}

func orderRequest(price, subtotal string) *structs.OrderRequest {
	return &structs.OrderRequest{
		Items: []structs.OrderItemRequest{
			{
				Name:     "Rajshahi Mango",
				NameBn:   "রাজশাহীর আম",
				Quantity: 1,
				Price:    decimal.RequireFromString(price),
				Weight:   "1kg",
				Subtotal: decimal.RequireFromString(subtotal),
			},
		},
		ShippingAddress: tables.ShippingAddress{
			FullName: "Rahim Uddin",
			Phone:    "01700000000",
			Address:  "House 12, Road 5",
			City:     "Dhaka",
			Area:     "Dhanmondi",
		},
		PaymentMethod: tables.PaymentMethodBkash,
	}
}

func placedOrder(env *testEnv, claims *structs.AuthClaims, subtotal string) *tables.Order {
	order, err := env.orderService.CreateOrder(context.Background(), claims, orderRequest(subtotal, subtotal))
	if err != nil {
		panic(err)
	}
	return order
}

func paidOrder(env *testEnv, claims *structs.AuthClaims, admin *structs.AuthClaims, subtotal string) *tables.Order {
	order := placedOrder(env, claims, subtotal)
	confirmed, _, err := env.orderService.ConfirmPayment(context.Background(), admin, order.Id, &structs.ConfirmPaymentRequest{})
	if err != nil {
		panic(err)
	}
	return confirmed
}

package services

import (
	"github.com/MonkyMars/gecho"

	"github.com/muhammadMilon/FruitPanda-sub001/database"
	"github.com/muhammadMilon/FruitPanda-sub001/repository"
	"github.com/muhammadMilon/FruitPanda-sub001/storage"
	"github.com/muhammadMilon/FruitPanda-sub001/structs"
)

// Interface conformance of the production repositories.
var (
	_ OrderStore   = (*repository.OrderRepository)(nil)
	_ ReceiptStore = (*repository.ReceiptRepository)(nil)
	_ ProductStore = (*repository.ProductRepository)(nil)
	_ Mailer       = (*EmailService)(nil)
	_ Cache        = (*CacheService)(nil)
)

type ServiceManager struct {
	EmailService   *EmailService
	CacheService   *CacheService
	HealthService  *HealthService
	ProductService *ProductService
	OrderService   *OrderService
	ReceiptService *ReceiptService
}

func NewServiceManager(logger *gecho.Logger, cfg *structs.Config, db *database.DB, store storage.FileStore) *ServiceManager {
	orderRepo := repository.NewOrderRepository(db)
	receiptRepo := repository.NewReceiptRepository(db)
	productRepo := repository.NewProductRepository(db)

	cacheService := NewCacheService(logger, cfg)
	emailService := NewEmailService(logger, cfg)
	healthService := NewHealthService(logger, db, cacheService)
	productService := NewProductService(logger, cfg, productRepo, cacheService)
	receiptService := NewReceiptService(logger, cfg, receiptRepo, orderRepo, store, cacheService)
	orderService := NewOrderService(logger, cfg, orderRepo, productService, receiptService, emailService)

	return &ServiceManager{
		EmailService:   emailService,
		CacheService:   cacheService,
		HealthService:  healthService,
		ProductService: productService,
		OrderService:   orderService,
		ReceiptService: receiptService,
	}
}

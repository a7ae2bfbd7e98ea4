package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"

	"github.com/muhammadMilon/FruitPanda-sub001/structs"
	"github.com/muhammadMilon/FruitPanda-sub001/structs/tables"
)

const productListCacheKey = "products:active"

// ProductService serves the fruit catalog and tracks inventory reservations.
type ProductService struct {
	logger   *gecho.Logger
	cfg      *structs.Config
	products ProductStore
	cache    Cache
}

func NewProductService(logger *gecho.Logger, cfg *structs.Config, products ProductStore, cache Cache) *ProductService {
	return &ProductService{
		logger:   logger,
		cfg:      cfg,
		products: products,
		cache:    cache,
	}
}

// GetProductsByIds fetches catalog rows and rejects inactive products.
func (ps *ProductService) GetProductsByIds(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]tables.Product, error) {
	products, err := ps.products.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	productMap := make(map[uuid.UUID]tables.Product, len(products))
	for _, product := range products {
		if !product.IsActive {
			return nil, fmt.Errorf("product %s is no longer available", product.Name)
		}
		productMap[product.ID] = product
	}
	return productMap, nil
}

// ListActive returns the storefront catalog, cached for the configured TTL.
func (ps *ProductService) ListActive(ctx context.Context) ([]tables.Product, error) {
	if cached, err := ps.cache.Get(productListCacheKey); err == nil && cached != "" {
		var products []tables.Product
		if err := json.Unmarshal([]byte(cached), &products); err == nil {
			return products, nil
		}
		// Corrupt cache entry; fall through to the database.
		if err := ps.cache.Delete(productListCacheKey); err != nil {
			ps.logger.Warn("Failed to drop corrupt product cache", gecho.Field("error", err))
		}
	}

	products, err := ps.products.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	if encoded, err := json.Marshal(products); err == nil {
		if err := ps.cache.Set(productListCacheKey, string(encoded), ps.cfg.Cache.DefaultTTL); err != nil {
			ps.logger.Warn("Failed to cache product list", gecho.Field("error", err))
		}
	}

	return products, nil
}

// ReserveItems holds inventory for catalog-linked order items. Reservation is
// best effort: a failed hold is logged, never blocks the order.
func (ps *ProductService) ReserveItems(ctx context.Context, items []tables.OrderItem) {
	for _, item := range items {
		if item.ProductInfo.ProductId == nil {
			continue
		}
		if err := ps.products.Reserve(ctx, *item.ProductInfo.ProductId, item.Quantity); err != nil {
			ps.logger.Warn("Failed to reserve inventory",
				gecho.Field("product_id", item.ProductInfo.ProductId),
				gecho.Field("quantity", item.Quantity),
				gecho.Field("error", err))
		}
	}
}

// ReleaseItems returns previously reserved inventory after a cancellation or
// payment rejection.
func (ps *ProductService) ReleaseItems(ctx context.Context, items []tables.OrderItem) {
	for _, item := range items {
		if item.ProductInfo.ProductId == nil {
			continue
		}
		if err := ps.products.Release(ctx, *item.ProductInfo.ProductId, item.Quantity); err != nil {
			ps.logger.Warn("Failed to release inventory",
				gecho.Field("product_id", item.ProductInfo.ProductId),
				gecho.Field("quantity", item.Quantity),
				gecho.Field("error", err))
		}
	}
}

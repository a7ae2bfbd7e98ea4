package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/muhammadMilon/FruitPanda-sub001/database"
	"github.com/muhammadMilon/FruitPanda-sub001/lib"
	"github.com/muhammadMilon/FruitPanda-sub001/structs/tables"
)

// ProductRepository persists catalog products in Postgres via bun.
type ProductRepository struct {
	db *database.DB
}

func NewProductRepository(db *database.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]tables.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var products []tables.Product
	err := database.WithRetry(ctx, func() error {
		return r.db.NewSelect().Model(&products).Where("p.id IN (?)", bun.In(ids)).Scan(ctx)
	})
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	return products, nil
}

func (r *ProductRepository) ListActive(ctx context.Context) ([]tables.Product, error) {
	var products []tables.Product
	err := database.WithRetry(ctx, func() error {
		return r.db.NewSelect().Model(&products).Where("p.is_active").Order("name ASC").Scan(ctx)
	})
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	return products, nil
}

// Reserve holds qty units against pending orders.
func (r *ProductRepository) Reserve(ctx context.Context, productId uuid.UUID, qty int) error {
	_, err := r.db.NewUpdate().
		Model((*tables.Product)(nil)).
		Set("reserved = reserved + ?", qty).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", productId).
		Exec(ctx)
	return lib.MapPgError(err)
}

// Release returns previously reserved units, flooring at zero.
func (r *ProductRepository) Release(ctx context.Context, productId uuid.UUID, qty int) error {
	_, err := r.db.NewUpdate().
		Model((*tables.Product)(nil)).
		Set("reserved = GREATEST(reserved - ?, 0)", qty).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", productId).
		Exec(ctx)
	return lib.MapPgError(err)
}

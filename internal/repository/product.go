package repository

import (
	"context"
	"time"

	"github.com/playea/beach-api/internal/model"
	ctxutil "github.com/playea/beach-api/pkg/context"
	"github.com/playea/beach-api/pkg/logger"
	"gorm.io/gorm"
)

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// ListAll returns every product that is not soft-deleted, with categories.
func (r *ProductRepository) ListAll(ctx context.Context) ([]model.Product, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "ListAll")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	start := time.Now()
	var products []model.Product
	err := r.db.WithContext(ctx).
		Preload("Categories").
		Order("id").
		Find(&products).Error
	duration := time.Since(start)

	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to load products").
			Duration(duration).
			Err(err).
			Log()
		return nil, err
	}

	logger.DebugWithContext(ctx, "Products loaded").
		Int("count", len(products)).
		Duration(duration).
		Log()

	return products, nil
}

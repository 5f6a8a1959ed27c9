package repository

import (
	"context"
	"time"

	"github.com/playea/beach-api/internal/model"
	ctxutil "github.com/playea/beach-api/pkg/context"
	"github.com/playea/beach-api/pkg/logger"
	"github.com/playea/beach-api/pkg/query"
	"gorm.io/gorm"
)

type BeachRepository struct {
	db *gorm.DB
}

func NewBeachRepository(db *gorm.DB) *BeachRepository {
	return &BeachRepository{db: db}
}

// Count returns how many beaches match preds.
func (r *BeachRepository) Count(ctx context.Context, preds []query.Predicate) (int64, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "Count")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	start := time.Now()
	var total int64
	err := r.db.WithContext(ctx).
		Model(&model.Beach{}).
		Scopes(query.Scope(preds)).
		Count(&total).Error
	duration := time.Since(start)

	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to count beaches").
			Int("predicates", len(preds)).
			Duration(duration).
			Err(err).
			Log()
		return 0, err
	}

	logger.DebugWithContext(ctx, "Beaches counted").
		Int("predicates", len(preds)).
		Int64("total", total).
		Duration(duration).
		Log()

	return total, nil
}

// Find returns one page of beaches matching preds in the given order.
func (r *BeachRepository) Find(ctx context.Context, preds []query.Predicate, order string, page query.PageRequest) ([]model.Beach, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "Find")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	start := time.Now()
	beaches := make([]model.Beach, 0, page.Limit)
	err := r.db.WithContext(ctx).
		Scopes(query.Scope(preds), query.Page(page)).
		Order(order).
		Find(&beaches).Error
	duration := time.Since(start)

	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to fetch beaches").
			Int("page", page.Page).
			Int("limit", page.Limit).
			Duration(duration).
			Err(err).
			Log()
		return nil, err
	}

	logger.DebugWithContext(ctx, "Beaches retrieved").
		Int("page", page.Page).
		Int("limit", page.Limit).
		Int("returned_count", len(beaches)).
		Duration(duration).
		Log()

	return beaches, nil
}

func (r *BeachRepository) GetByID(ctx context.Context, id uint) (*model.Beach, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "GetByID")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	start := time.Now()
	var beach model.Beach
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&beach).Error
	if err != nil {
		logger.DebugWithContext(ctx, "Beach lookup by ID failed").
			Uint("beach_id", id).
			Duration(time.Since(start)).
			Err(err).
			Log()
		return nil, err
	}

	return &beach, nil
}

func (r *BeachRepository) GetBySlug(ctx context.Context, slug string) (*model.Beach, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "GetBySlug")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	start := time.Now()
	var beach model.Beach
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&beach).Error
	if err != nil {
		logger.DebugWithContext(ctx, "Beach lookup by slug failed").
			String("slug", slug).
			Duration(time.Since(start)).
			Err(err).
			Log()
		return nil, err
	}

	return &beach, nil
}

// Exists reports whether a beach with id is present.
func (r *BeachRepository) Exists(ctx context.Context, id uint) (bool, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "Exists")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	var count int64
	err := r.db.WithContext(ctx).Model(&model.Beach{}).Where("id = ?", id).Limit(1).Count(&count).Error
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to check beach existence").
			Uint("beach_id", id).
			Err(err).
			Log()
		return false, err
	}
	return count > 0, nil
}

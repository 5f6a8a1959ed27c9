package repository

import (
	"context"
	"time"

	"github.com/playea/beach-api/internal/model"
	ctxutil "github.com/playea/beach-api/pkg/context"
	"github.com/playea/beach-api/pkg/logger"
	"github.com/playea/beach-api/pkg/query"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FavouriteRepository struct {
	db *gorm.DB
}

func NewFavouriteRepository(db *gorm.DB) *FavouriteRepository {
	return &FavouriteRepository{db: db}
}

// Create inserts the (user, beach) pair. A second insert of the same pair
// fails with gorm.ErrDuplicatedKey.
func (r *FavouriteRepository) Create(ctx context.Context, fav *model.Favourite) error {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "Create")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	start := time.Now()
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(fav).Error
	duration := time.Since(start)

	if err != nil {
		logger.WarnWithContext(ctx, "Failed to add favourite").
			Uint("beach_id", fav.BeachID).
			Duration(duration).
			Err(err).
			Log()
		return err
	}

	logger.InfoWithContext(ctx, "Favourite added").
		Uint("beach_id", fav.BeachID).
		Duration(duration).
		Log()

	return nil
}

func (r *FavouriteRepository) Delete(ctx context.Context, userID, beachID uint) error {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "Delete")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	start := time.Now()
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND beach_id = ?", userID, beachID).
		Delete(&model.Favourite{})
	duration := time.Since(start)

	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to remove favourite").
			Uint("beach_id", beachID).
			Duration(duration).
			Err(result.Error).
			Log()
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	logger.InfoWithContext(ctx, "Favourite removed").
		Uint("beach_id", beachID).
		Duration(duration).
		Log()

	return nil
}

func (r *FavouriteRepository) ofUser(ctx context.Context, userID uint, preds []query.Predicate) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&model.Favourite{}).
		Joins("JOIN beaches ON beaches.id = favourites.beach_id").
		Where("favourites.user_id = ?", userID).
		Scopes(query.Scope(preds))
}

func (r *FavouriteRepository) CountByUser(ctx context.Context, userID uint, preds []query.Predicate) (int64, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "CountByUser")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	var total int64
	if err := r.ofUser(ctx, userID, preds).Count(&total).Error; err != nil {
		logger.ErrorWithContext(ctx, "Failed to count favourites").
			Err(err).
			Log()
		return 0, err
	}
	return total, nil
}

// ListByUser returns a page of the user's favourites with their beaches,
// most recently added first.
func (r *FavouriteRepository) ListByUser(ctx context.Context, userID uint, preds []query.Predicate, page query.PageRequest) ([]model.Favourite, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "ListByUser")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	start := time.Now()
	favs := make([]model.Favourite, 0, page.Limit)
	err := r.ofUser(ctx, userID, preds).
		Preload("Beach").
		Order("favourites.created_at DESC, favourites.id DESC").
		Scopes(query.Page(page)).
		Find(&favs).Error
	duration := time.Since(start)

	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to list favourites").
			Duration(duration).
			Err(err).
			Log()
		return nil, err
	}

	logger.DebugWithContext(ctx, "Favourites retrieved").
		Int("returned_count", len(favs)).
		Duration(duration).
		Log()

	return favs, nil
}

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

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) Create(ctx context.Context, review *model.Review) error {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "Create")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	start := time.Now()
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(review).Error
	duration := time.Since(start)

	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to create review").
			Uint("beach_id", review.BeachID).
			Duration(duration).
			Err(err).
			Log()
		return err
	}

	logger.InfoWithContext(ctx, "Review created").
		Uint("review_id", review.ID).
		Uint("beach_id", review.BeachID).
		Int("rating", review.Rating).
		Duration(duration).
		Log()

	return nil
}

func (r *ReviewRepository) GetByID(ctx context.Context, id uint) (*model.Review, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "GetByID")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	var review model.Review
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&review).Error; err != nil {
		logger.DebugWithContext(ctx, "Review lookup failed").
			Uint("review_id", id).
			Err(err).
			Log()
		return nil, err
	}
	return &review, nil
}

// Update rewrites rating and comment of review id.
func (r *ReviewRepository) Update(ctx context.Context, id uint, rating int, comment string) error {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "Update")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	start := time.Now()
	result := r.db.WithContext(ctx).Model(&model.Review{}).Where("id = ?", id).Updates(map[string]interface{}{
		"rating":  rating,
		"comment": comment,
	})
	duration := time.Since(start)

	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to update review").
			Uint("review_id", id).
			Duration(duration).
			Err(result.Error).
			Log()
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	logger.InfoWithContext(ctx, "Review updated").
		Uint("review_id", id).
		Duration(duration).
		Log()

	return nil
}

func (r *ReviewRepository) Delete(ctx context.Context, id uint) error {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "Delete")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	start := time.Now()
	result := r.db.WithContext(ctx).Delete(&model.Review{}, id)
	duration := time.Since(start)

	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to delete review").
			Uint("review_id", id).
			Duration(duration).
			Err(result.Error).
			Log()
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	logger.InfoWithContext(ctx, "Review deleted").
		Uint("review_id", id).
		Duration(duration).
		Log()

	return nil
}

func (r *ReviewRepository) byBeach(ctx context.Context, beachID uint, preds []query.Predicate) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&model.Review{}).
		Where("reviews.beach_id = ?", beachID).
		Scopes(query.Scope(preds))
}

func (r *ReviewRepository) CountByBeach(ctx context.Context, beachID uint, preds []query.Predicate) (int64, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "CountByBeach")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	var total int64
	if err := r.byBeach(ctx, beachID, preds).Count(&total).Error; err != nil {
		logger.ErrorWithContext(ctx, "Failed to count reviews").
			Uint("beach_id", beachID).
			Err(err).
			Log()
		return 0, err
	}
	return total, nil
}

// ListByBeach returns a page of a beach's reviews, newest first, with the
// author's name.
func (r *ReviewRepository) ListByBeach(ctx context.Context, beachID uint, preds []query.Predicate, page query.PageRequest) ([]model.ReviewWithAuthor, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "ListByBeach")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	start := time.Now()
	rows := make([]model.ReviewWithAuthor, 0, page.Limit)
	err := r.byBeach(ctx, beachID, preds).
		Select("reviews.id, reviews.user_id, reviews.beach_id, reviews.rating, reviews.comment, " +
			"reviews.created_at, reviews.updated_at, users.name AS author_name, users.avatar_url").
		Joins("LEFT JOIN users ON users.id = reviews.user_id").
		Order("reviews.created_at DESC, reviews.id DESC").
		Scopes(query.Page(page)).
		Find(&rows).Error
	duration := time.Since(start)

	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to list reviews").
			Uint("beach_id", beachID).
			Duration(duration).
			Err(err).
			Log()
		return nil, err
	}

	logger.DebugWithContext(ctx, "Reviews retrieved").
		Uint("beach_id", beachID).
		Int("returned_count", len(rows)).
		Duration(duration).
		Log()

	return rows, nil
}

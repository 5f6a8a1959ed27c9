package repository

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/playea/beach-api/internal/model"
	ctxutil "github.com/playea/beach-api/pkg/context"
	"github.com/playea/beach-api/pkg/logger"
	"github.com/playea/beach-api/pkg/query"
	"gorm.io/gorm"
)

// RankingRepository reads the beaches_grades view with hand-built SQL.
type RankingRepository struct {
	db *gorm.DB
}

func NewRankingRepository(db *gorm.DB) *RankingRepository {
	return &RankingRepository{db: db}
}

var rankingColumns = []string{
	"beach_id", "slug", "name", "island", "municipality", "cover_url", "grade", "reviews_count",
}

// rankedBeaches selects only beaches that have at least one review.
func rankedBeaches(columns ...string) sq.SelectBuilder {
	return query.Builder.
		Select(columns...).
		From("beaches_grades").
		Where(sq.NotEq{"grade": nil})
}

// CountSQL builds the count statement of the ranking.
func CountSQL(preds []query.Predicate) (string, []interface{}, error) {
	return query.WhereAll(rankedBeaches("COUNT(*)"), preds).ToSql()
}

// ListSQL builds the page statement of the ranking: grade first, then number
// of reviews, then id so equal rows keep a stable order across pages.
func ListSQL(preds []query.Predicate, page query.PageRequest) (string, []interface{}, error) {
	return query.WhereAll(rankedBeaches(rankingColumns...), preds).
		OrderBy("grade DESC", "reviews_count DESC", "beach_id ASC").
		Limit(uint64(page.Limit)).
		Offset(uint64(page.Offset())).
		ToSql()
}

func (r *RankingRepository) Count(ctx context.Context, preds []query.Predicate) (int64, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "Count")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	sql, args, err := CountSQL(preds)
	if err != nil {
		return 0, err
	}

	var total int64
	if err := r.db.WithContext(ctx).Raw(sql, args...).Scan(&total).Error; err != nil {
		logger.ErrorWithContext(ctx, "Failed to count ranking").
			String("sql", sql).
			Err(err).
			Log()
		return 0, err
	}
	return total, nil
}

func (r *RankingRepository) List(ctx context.Context, preds []query.Predicate, page query.PageRequest) ([]model.BeachGrade, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "List")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	sql, args, err := ListSQL(preds, page)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	rows := make([]model.BeachGrade, 0, page.Limit)
	err = r.db.WithContext(ctx).Raw(sql, args...).Scan(&rows).Error
	duration := time.Since(start)

	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to fetch ranking").
			String("sql", sql).
			Duration(duration).
			Err(err).
			Log()
		return nil, err
	}

	logger.DebugWithContext(ctx, "Ranking retrieved").
		Int("returned_count", len(rows)).
		Duration(duration).
		Log()

	return rows, nil
}

package repository

import (
	"context"
	"time"

	"github.com/playea/beach-api/internal/model"
	ctxutil "github.com/playea/beach-api/pkg/context"
	"github.com/playea/beach-api/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Create(ctx context.Context, session *model.Session) error {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "Create")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	start := time.Now()
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(session).Error
	duration := time.Since(start)

	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to record session").
			Uint("user_id", session.UserID).
			Duration(duration).
			Err(err).
			Log()
		return err
	}

	logger.DebugWithContext(ctx, "Session recorded").
		Uint("user_id", session.UserID).
		String("provider", session.Provider).
		Duration(duration).
		Log()

	return nil
}

// PurgeOlderThan deletes sessions recorded before cutoff.
func (r *SessionRepository) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "PurgeOlderThan")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	result := r.db.WithContext(ctx).Where("login_at < ?", cutoff).Delete(&model.Session{})
	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to purge sessions").
			Err(result.Error).
			Log()
		return 0, result.Error
	}

	logger.InfoWithContext(ctx, "Old sessions purged").
		Int64("deleted_count", result.RowsAffected).
		Log()

	return result.RowsAffected, nil
}

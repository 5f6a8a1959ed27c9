package repository

import (
	"context"
	"time"

	"github.com/playea/beach-api/internal/model"
	ctxutil "github.com/playea/beach-api/pkg/context"
	"github.com/playea/beach-api/pkg/logger"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(ctx context.Context, id uint) (*model.User, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "GetByID")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	return r.first(ctx, "id = ?", id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "GetByEmail")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	return r.first(ctx, "LOWER(email) = LOWER(?)", email)
}

func (r *UserRepository) GetByGoogleID(ctx context.Context, googleID string) (*model.User, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "GetByGoogleID")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	return r.first(ctx, "google_id = ?", googleID)
}

func (r *UserRepository) first(ctx context.Context, cond string, arg interface{}) (*model.User, error) {
	start := time.Now()
	var user model.User
	err := r.db.WithContext(ctx).Where(cond, arg).First(&user).Error
	duration := time.Since(start)

	if err != nil {
		logger.DebugWithContext(ctx, "User lookup failed").
			Duration(duration).
			Err(err).
			Log()
		return nil, err
	}

	logger.DebugWithContext(ctx, "User retrieved").
		Uint("user_id", user.ID).
		Duration(duration).
		Log()

	return &user, nil
}

// ExistsByField reports whether another user (not excludeID) already uses
// value for column. column is always a constant from the caller.
func (r *UserRepository) ExistsByField(ctx context.Context, column, value string, excludeID uint) (bool, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "ExistsByField")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	var count int64
	q := r.db.WithContext(ctx).Model(&model.User{}).Where("LOWER("+column+") = LOWER(?)", value)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		logger.ErrorWithContext(ctx, "Failed to check user uniqueness").
			String("column", column).
			Err(err).
			Log()
		return false, err
	}
	return count > 0, nil
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "Create")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	start := time.Now()
	err := r.db.WithContext(ctx).Create(user).Error
	duration := time.Since(start)

	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to create user").
			String("username", user.Username).
			Duration(duration).
			Err(err).
			Log()
		return err
	}

	logger.InfoWithContext(ctx, "User created").
		Uint("user_id", user.ID).
		String("username", user.Username).
		Duration(duration).
		Log()

	return nil
}

// UpdateProfile applies a whitelisted column map to user id.
func (r *UserRepository) UpdateProfile(ctx context.Context, id uint, updates map[string]interface{}) error {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "UpdateProfile")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	return r.updates(ctx, id, updates, "Profile updated")
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id uint, hashedPassword string) error {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "UpdatePassword")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	return r.updates(ctx, id, map[string]interface{}{"password_hash": hashedPassword}, "Password updated")
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, id uint) error {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "UpdateLastLogin")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	return r.updates(ctx, id, map[string]interface{}{"last_login": time.Now().UTC()}, "Last login updated")
}

// UpdateRefreshToken stores the hash of the current refresh token; an empty
// hash revokes it.
func (r *UserRepository) UpdateRefreshToken(ctx context.Context, id uint, refreshTokenHash string, expiresAt *time.Time) error {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "UpdateRefreshToken")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	var hash interface{}
	if refreshTokenHash != "" {
		hash = refreshTokenHash
	}
	return r.updates(ctx, id, map[string]interface{}{
		"refresh_token_hash":       hash,
		"refresh_token_expires_at": expiresAt,
	}, "Refresh token updated")
}

func (r *UserRepository) UpdateTokenVersion(ctx context.Context, id uint, newVersion int) error {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "UpdateTokenVersion")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	return r.updates(ctx, id, map[string]interface{}{"token_version": newVersion}, "Token version updated")
}

func (r *UserRepository) updates(ctx context.Context, id uint, values map[string]interface{}, done string) error {
	start := time.Now()
	result := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Updates(values)
	duration := time.Since(start)

	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to update user").
			Uint("user_id", id).
			Duration(duration).
			Err(result.Error).
			Log()
		return result.Error
	}

	if result.RowsAffected == 0 {
		logger.WarnWithContext(ctx, "No user found to update").
			Uint("user_id", id).
			Log()
		return gorm.ErrRecordNotFound
	}

	logger.DebugWithContext(ctx, done).
		Uint("user_id", id).
		Duration(duration).
		Log()

	return nil
}

// CleanupExpiredRefreshTokens clears refresh tokens past their expiry.
func (r *UserRepository) CleanupExpiredRefreshTokens(ctx context.Context) (int64, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "CleanupExpiredRefreshTokens")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	start := time.Now()
	result := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("refresh_token_expires_at IS NOT NULL AND refresh_token_expires_at < ?", time.Now().UTC()).
		Updates(map[string]interface{}{
			"refresh_token_hash":       nil,
			"refresh_token_expires_at": nil,
		})
	duration := time.Since(start)

	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to cleanup expired refresh tokens").
			Duration(duration).
			Err(result.Error).
			Log()
		return 0, result.Error
	}

	logger.InfoWithContext(ctx, "Expired refresh tokens cleaned up").
		Int64("cleaned_count", result.RowsAffected).
		Duration(duration).
		Log()

	return result.RowsAffected, nil
}

// Delete soft-deletes the user and removes what belongs to them.
func (r *UserRepository) Delete(ctx context.Context, id uint) error {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "Delete")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	start := time.Now()
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&model.Favourite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&model.Session{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&model.User{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	duration := time.Since(start)

	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to delete user").
			Uint("user_id", id).
			Duration(duration).
			Err(err).
			Log()
		return err
	}

	logger.InfoWithContext(ctx, "User deleted").
		Uint("user_id", id).
		Duration(duration).
		Log()

	return nil
}

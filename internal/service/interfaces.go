package service

import (
	"context"
	"time"

	"github.com/playea/beach-api/internal/model"
	"github.com/playea/beach-api/pkg/query"
)

// The stores below are implemented by internal/repository. Services only
// see these so they can be tested against in-memory fakes.

type BeachStore interface {
	Count(ctx context.Context, preds []query.Predicate) (int64, error)
	Find(ctx context.Context, preds []query.Predicate, order string, page query.PageRequest) ([]model.Beach, error)
	GetByID(ctx context.Context, id uint) (*model.Beach, error)
	GetBySlug(ctx context.Context, slug string) (*model.Beach, error)
	Exists(ctx context.Context, id uint) (bool, error)
}

type ReviewStore interface {
	Create(ctx context.Context, review *model.Review) error
	GetByID(ctx context.Context, id uint) (*model.Review, error)
	Update(ctx context.Context, id uint, rating int, comment string) error
	Delete(ctx context.Context, id uint) error
	CountByBeach(ctx context.Context, beachID uint, preds []query.Predicate) (int64, error)
	ListByBeach(ctx context.Context, beachID uint, preds []query.Predicate, page query.PageRequest) ([]model.ReviewWithAuthor, error)
}

type FavouriteStore interface {
	Create(ctx context.Context, fav *model.Favourite) error
	Delete(ctx context.Context, userID, beachID uint) error
	CountByUser(ctx context.Context, userID uint, preds []query.Predicate) (int64, error)
	ListByUser(ctx context.Context, userID uint, preds []query.Predicate, page query.PageRequest) ([]model.Favourite, error)
}

type RankingStore interface {
	Count(ctx context.Context, preds []query.Predicate) (int64, error)
	List(ctx context.Context, preds []query.Predicate, page query.PageRequest) ([]model.BeachGrade, error)
}

type UserStore interface {
	GetByID(ctx context.Context, id uint) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByGoogleID(ctx context.Context, googleID string) (*model.User, error)
	ExistsByField(ctx context.Context, column, value string, excludeID uint) (bool, error)
	Create(ctx context.Context, user *model.User) error
	UpdateProfile(ctx context.Context, id uint, updates map[string]interface{}) error
	UpdatePassword(ctx context.Context, id uint, hashedPassword string) error
	UpdateLastLogin(ctx context.Context, id uint) error
	UpdateRefreshToken(ctx context.Context, id uint, refreshTokenHash string, expiresAt *time.Time) error
	UpdateTokenVersion(ctx context.Context, id uint, newVersion int) error
	CleanupExpiredRefreshTokens(ctx context.Context) (int64, error)
	Delete(ctx context.Context, id uint) error
}

type SessionStore interface {
	Create(ctx context.Context, session *model.Session) error
	PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type ProductStore interface {
	ListAll(ctx context.Context) ([]model.Product, error)
}

// JSONCache is the subset of pkg/redis the services use. A disabled cache
// reports IsEnabled false and is never called otherwise.
type JSONCache interface {
	IsEnabled() bool
	GetJSON(ctx context.Context, key string, dest interface{}) (bool, error)
	SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

type WelcomeMailer interface {
	SendWelcome(ctx context.Context, to, name, username string) error
}

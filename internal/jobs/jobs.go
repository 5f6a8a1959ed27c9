package jobs

import (
	"context"
	"time"

	"github.com/playea/beach-api/config"
	"github.com/playea/beach-api/pkg/logger"
)

const (
	ProductCacheJob   = "product-cache-refresh"
	TokenCleanupJob   = "refresh-token-cleanup"
	SessionCleanupJob = "session-purge"
)

type ProductCacheRefresher interface {
	RefreshCache(ctx context.Context) error
}

type RefreshTokenCleaner interface {
	CleanupExpiredRefreshTokens(ctx context.Context) (int64, error)
}

type SessionPurger interface {
	PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// RefreshProducts rewrites the products cache entry.
func RefreshProducts(products ProductCacheRefresher) Func {
	return products.RefreshCache
}

// CleanupRefreshTokens clears refresh tokens past their expiry.
func CleanupRefreshTokens(users RefreshTokenCleaner) Func {
	return func(ctx context.Context) error {
		n, err := users.CleanupExpiredRefreshTokens(ctx)
		if err != nil {
			return err
		}
		logger.InfoWithContext(ctx, "Expired refresh tokens cleared").
			Int64("count", n).
			Log()
		return nil
	}
}

// PurgeSessions deletes login sessions older than retention.
func PurgeSessions(sessions SessionPurger, retention time.Duration, now func() time.Time) Func {
	return func(ctx context.Context) error {
		cutoff := now().Add(-retention).UTC()
		n, err := sessions.PurgeOlderThan(ctx, cutoff)
		if err != nil {
			return err
		}
		logger.InfoWithContext(ctx, "Old sessions purged").
			Int64("count", n).
			String("cutoff", cutoff.Format(time.RFC3339)).
			Log()
		return nil
	}
}

// Register wires every housekeeping job into s.
func Register(s *Scheduler, cfg *config.Config, products ProductCacheRefresher, users RefreshTokenCleaner, sessions SessionPurger) error {
	if err := s.Add(ProductCacheJob, cfg.ProductCache.Schedule, RefreshProducts(products)); err != nil {
		return err
	}
	if err := s.Add(TokenCleanupJob, cfg.Jobs.CleanupSchedule, CleanupRefreshTokens(users)); err != nil {
		return err
	}
	return s.Add(SessionCleanupJob, cfg.Jobs.CleanupSchedule, PurgeSessions(sessions, cfg.Jobs.SessionRetention, time.Now))
}

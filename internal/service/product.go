package service

import (
	"context"
	"time"

	apperrors "github.com/playea/beach-api/internal/errors"
	"github.com/playea/beach-api/internal/model"
	ctxutil "github.com/playea/beach-api/pkg/context"
	"github.com/playea/beach-api/pkg/logger"
)

// ProductService serves the product catalogue from a single cache key that
// is rewritten wholesale with a flat TTL.
type ProductService struct {
	repo  ProductStore
	cache JSONCache
	key   string
	ttl   time.Duration
}

func NewProductService(repo ProductStore, cache JSONCache, key string, ttl time.Duration) *ProductService {
	return &ProductService{repo: repo, cache: cache, key: key, ttl: ttl}
}

func (s *ProductService) cacheEnabled() bool {
	return s.cache != nil && s.cache.IsEnabled()
}

// List returns every product, from the cache when possible.
func (s *ProductService) List(ctx context.Context) ([]model.Product, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "List")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	if s.cacheEnabled() {
		var cached []model.Product
		found, err := s.cache.GetJSON(ctx, s.key, &cached)
		if err != nil {
			logger.WarnWithContext(ctx, "Product cache read failed, falling back to database").
				String("key", s.key).
				Err(err).
				Log()
		} else if found && len(cached) > 0 {
			logger.DebugWithContext(ctx, "Product cache hit").
				Int("count", len(cached)).
				Log()
			return cached, nil
		}
	}

	products, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	s.store(ctx, products)
	return products, nil
}

// RefreshCache reloads the catalogue into the cache. An empty catalogue
// leaves the cache untouched.
func (s *ProductService) RefreshCache(ctx context.Context) error {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "RefreshCache")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	if !s.cacheEnabled() {
		logger.DebugWithContext(ctx, "Cache disabled, skipping product refresh").Log()
		return nil
	}

	products, err := s.load(ctx)
	if err != nil {
		return err
	}
	s.store(ctx, products)

	logger.InfoWithContext(ctx, "Products cached").
		String("key", s.key).
		Int("count", len(products)).
		Any("ttl", s.ttl).
		Log()
	return nil
}

func (s *ProductService) load(ctx context.Context) ([]model.Product, error) {
	products, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	if len(products) == 0 {
		logger.WarnWithContext(ctx, "No products found in database").Log()
		return nil, apperrors.ErrNoProducts
	}
	return products, nil
}

func (s *ProductService) store(ctx context.Context, products []model.Product) {
	if !s.cacheEnabled() {
		return
	}
	if err := s.cache.SetJSON(ctx, s.key, products, s.ttl); err != nil {
		logger.WarnWithContext(ctx, "Failed to write product cache").
			String("key", s.key).
			Err(err).
			Log()
	}
}

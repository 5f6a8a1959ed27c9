package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	apperrors "github.com/playea/beach-api/internal/errors"
	"github.com/playea/beach-api/internal/model"
	pkgredis "github.com/playea/beach-api/pkg/redis"
	goredis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const productKey = "products_cache"

func newTestCache(t *testing.T) (*pkgredis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return pkgredis.NewFromClient(rdb), mr
}

func sampleProducts() []model.Product {
	return []model.Product{
		{ID: 1, Name: "Sunscreen", RetailPrice: decimal.RequireFromString("12.50"), TaxPercentage: decimal.NewFromInt(7)},
		{ID: 2, Name: "Towel", RetailPrice: decimal.RequireFromString("20.00"), TaxPercentage: decimal.NewFromInt(7)},
	}
}

func TestProductListCacheAside(t *testing.T) {
	cache, mr := newTestCache(t)
	repo := &fakeProducts{products: sampleProducts()}
	svc := NewProductService(repo, cache, productKey, time.Hour)
	ctx := context.Background()

	first, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, first, 2)
	assert.Equal(t, 1, repo.calls)
	assert.True(t, mr.Exists(productKey))
	assert.Equal(t, time.Hour, mr.TTL(productKey))

	second, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.calls)
	require.Len(t, second, 2)
	assert.Equal(t, "Sunscreen", second[0].Name)
	assert.True(t, second[0].RetailPrice.Equal(decimal.RequireFromString("12.5")))
}

func TestProductListEmpty(t *testing.T) {
	cache, mr := newTestCache(t)
	svc := NewProductService(&fakeProducts{}, cache, productKey, time.Hour)

	_, err := svc.List(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrNoProducts)
	assert.False(t, mr.Exists(productKey))
}

func TestProductListWithoutCache(t *testing.T) {
	repo := &fakeProducts{products: sampleProducts()}
	var disabled *pkgredis.Client
	svc := NewProductService(repo, disabled, productKey, time.Hour)

	for i := 0; i < 2; i++ {
		products, err := svc.List(context.Background())
		require.NoError(t, err)
		assert.Len(t, products, 2)
	}
	assert.Equal(t, 2, repo.calls)
	assert.NoError(t, svc.RefreshCache(context.Background()))
}

func TestProductRefreshCache(t *testing.T) {
	cache, mr := newTestCache(t)
	repo := &fakeProducts{products: sampleProducts()[:1]}
	svc := NewProductService(repo, cache, productKey, 30*time.Minute)

	require.NoError(t, svc.RefreshCache(context.Background()))
	assert.Equal(t, 30*time.Minute, mr.TTL(productKey))

	repo.products = sampleProducts()
	require.NoError(t, svc.RefreshCache(context.Background()))

	products, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, products, 2)
}

func TestProductListDatabaseError(t *testing.T) {
	cache, _ := newTestCache(t)
	svc := NewProductService(&fakeProducts{err: errDB}, cache, productKey, time.Hour)

	_, err := svc.List(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrInternal)
}

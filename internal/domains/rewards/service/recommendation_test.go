package service

import (
	"context"
	"sort"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-backend/internal/domains/rewards/model"
)

func TestGenerateRecommendations_EmptyHistory(t *testing.T) {
	f := newStoreFake()
	svc := newTestService(f)
	cid := f.addCustomer("alice")
	f.addProduct("Widget", 100, "Tools")

	recs, err := svc.GenerateRecommendations(context.Background(), cid)
	require.NoError(t, err)

	assert.NotNil(t, recs)
	assert.Empty(t, recs)
}

func TestGenerateRecommendations_OnePerPurchasedCategory(t *testing.T) {
	f := newStoreFake()
	svc := newTestService(f)
	cid := f.addCustomer("alice")

	books := addProducts(f, "Books", 3)
	toys := addProducts(f, "Toys", 2)
	f.addProduct("Drill", 300, "Tools") // never purchased from

	buyAll(t, svc, cid, books[:2])
	buyAll(t, svc, cid, toys[:1])

	recs, err := svc.GenerateRecommendations(context.Background(), cid)
	require.NoError(t, err)
	require.Len(t, recs, 2)

	byCategory := make(map[string]model.Recommendation)
	for _, r := range recs {
		byCategory[r.Category] = r
	}

	book, ok := byCategory["Books"]
	require.True(t, ok)
	assert.Equal(t, 2, book.CategoryPurchaseCount)
	assert.Equal(t, cid, book.CustomerID)
	assert.NotEqual(t, books[0], book.ProductID)
	assert.NotEqual(t, books[1], book.ProductID)

	toy, ok := byCategory["Toys"]
	require.True(t, ok)
	assert.Equal(t, 1, toy.CategoryPurchaseCount)

	_, ok = byCategory["Tools"]
	assert.False(t, ok, "no recommendation for a category never bought from")
}

func TestGenerateRecommendations_Deterministic(t *testing.T) {
	f := newStoreFake()
	svc := newTestService(f)
	cid := f.addCustomer("alice")

	books := addProducts(f, "Books", 4)
	buyAll(t, svc, cid, books[:1])

	// The unpurchased Books product with the smallest id wins
	remaining := append([]uuid.UUID(nil), books[1:]...)
	sort.Slice(remaining, func(i, j int) bool {
		return remaining[i].String() < remaining[j].String()
	})

	recs, err := svc.GenerateRecommendations(context.Background(), cid)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, remaining[0], recs[0].ProductID)
}

func TestGenerateRecommendations_CarriesCurrentDiscount(t *testing.T) {
	f := newStoreFake()
	svc := newTestService(f)
	cid := f.addCustomer("alice")
	books := addProducts(f, "Books", 6)

	buyAll(t, svc, cid, books[:5]) // unlocks 15% on Books

	recs, err := svc.GenerateRecommendations(context.Background(), cid)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	require.NotNil(t, recs[0].DiscountPercentage)
	assert.True(t, recs[0].DiscountPercentage.Equal(decimal.NewFromInt(15)))
	assert.Equal(t, 5, recs[0].CategoryPurchaseCount)
}

func TestGenerateRecommendations_CachedUntilNextPurchase(t *testing.T) {
	f := newStoreFake()
	cache := newCacheFake()
	svc := NewRewardsService(f, f, f, cache)
	cid := f.addCustomer("alice")
	books := addProducts(f, "Books", 3)

	buyAll(t, svc, cid, books[:1])

	first, err := svc.GenerateRecommendations(context.Background(), cid)
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, 0, cache.hits)
	assert.Equal(t, 1, cache.sets)

	second, err := svc.GenerateRecommendations(context.Background(), cid)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.hits, "second call served from cache")
	assert.Equal(t, first, second)

	// A purchase invalidates the entry and changes the candidate set
	buyAll(t, svc, cid, []uuid.UUID{first[0].ProductID})

	third, err := svc.GenerateRecommendations(context.Background(), cid)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.hits, "recompute after invalidation")
	require.Len(t, third, 1)
	assert.NotEqual(t, first[0].ProductID, third[0].ProductID)
}

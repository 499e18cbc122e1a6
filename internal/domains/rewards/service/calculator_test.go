package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-backend/internal/domains/rewards/model"
)

func TestComputeRewards_BelowFirstThreshold(t *testing.T) {
	tc := NewTierCalculator()

	grants := tc.ComputeRewards([]model.CategoryCount{
		{Category: "Books", Count: 4},
	}, 4)

	assert.Empty(t, grants)
}

func TestComputeRewards_SingleCategoryTopTier(t *testing.T) {
	tc := NewTierCalculator()

	// 7 purchases in one category: only the 15% tier unlocks
	grants := tc.ComputeRewards([]model.CategoryCount{
		{Category: "Books", Count: 7},
	}, 7)

	require.Len(t, grants, 1)
	assert.Equal(t, "Books", grants[0].Category)
	assert.True(t, grants[0].Percentage.Equal(decimal.NewFromInt(15)))
	assert.Equal(t, 0, grants[0].Rank)
}

func TestComputeRewards_SecondCategoryBelowFloorLeavesGap(t *testing.T) {
	tc := NewTierCalculator()

	// 12 total unlocks the 10% tier, but the rank-1 category has only
	// 4 purchases: no grant for it, and the tier is not shifted.
	grants := tc.ComputeRewards([]model.CategoryCount{
		{Category: "Books", Count: 8},
		{Category: "Toys", Count: 4},
	}, 12)

	require.Len(t, grants, 1)
	assert.Equal(t, "Books", grants[0].Category)
	assert.True(t, grants[0].Percentage.Equal(decimal.NewFromInt(15)))
}

func TestComputeRewards_AllThreeTiers(t *testing.T) {
	tc := NewTierCalculator()

	grants := tc.ComputeRewards([]model.CategoryCount{
		{Category: "Toys", Count: 6},
		{Category: "Books", Count: 9},
		{Category: "Games", Count: 5},
	}, 20)

	require.Len(t, grants, 3)

	assert.Equal(t, "Books", grants[0].Category)
	assert.True(t, grants[0].Percentage.Equal(decimal.NewFromInt(15)))

	assert.Equal(t, "Toys", grants[1].Category)
	assert.True(t, grants[1].Percentage.Equal(decimal.NewFromInt(10)))

	assert.Equal(t, "Games", grants[2].Category)
	assert.True(t, grants[2].Percentage.Equal(decimal.NewFromInt(5)))
}

func TestComputeRewards_TieBreaksOnCategoryName(t *testing.T) {
	tc := NewTierCalculator()

	counts := []model.CategoryCount{
		{Category: "Zebra", Count: 5},
		{Category: "Apple", Count: 5},
	}

	grants := tc.ComputeRewards(counts, 10)

	require.Len(t, grants, 2)
	assert.Equal(t, "Apple", grants[0].Category)
	assert.Equal(t, "Zebra", grants[1].Category)

	// Same result regardless of input order
	reversed := []model.CategoryCount{counts[1], counts[0]}
	again := tc.ComputeRewards(reversed, 10)
	assert.Equal(t, grants, again)
}

func TestComputeRewards_FewerCategoriesThanTiers(t *testing.T) {
	tc := NewTierCalculator()

	// 25 total purchases but only two categories: rank 2 has nothing
	// to land on.
	grants := tc.ComputeRewards([]model.CategoryCount{
		{Category: "Books", Count: 15},
		{Category: "Toys", Count: 10},
	}, 25)

	require.Len(t, grants, 2)
	assert.Equal(t, 0, grants[0].Rank)
	assert.Equal(t, 1, grants[1].Rank)
}

func TestComputeRewards_NoPurchases(t *testing.T) {
	tc := NewTierCalculator()

	grants := tc.ComputeRewards(nil, 0)

	assert.Empty(t, grants)
}

func TestComputeRewards_Idempotent(t *testing.T) {
	tc := NewTierCalculator()

	counts := []model.CategoryCount{
		{Category: "Books", Count: 11},
		{Category: "Toys", Count: 6},
		{Category: "Games", Count: 5},
	}

	first := tc.ComputeRewards(counts, 22)
	second := tc.ComputeRewards(counts, 22)

	assert.Equal(t, first, second)
}

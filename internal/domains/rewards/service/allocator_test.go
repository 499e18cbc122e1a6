package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-backend/internal/domains/rewards/model"
)

func TestAllocateManualTier_UnknownCustomer(t *testing.T) {
	f := newStoreFake()
	svc := newTestService(f)

	_, err := svc.AllocateManualTier(context.Background(), uuid.New(), "Books")

	assert.ErrorIs(t, err, model.ErrCustomerNotFound)
}

func TestAllocateManualTier_IneligibleBelowThreshold(t *testing.T) {
	f := newStoreFake()
	svc := newTestService(f)
	cid := f.addCustomer("alice")
	buyAll(t, svc, cid, addProducts(f, "Books", 3))

	result, err := svc.AllocateManualTier(context.Background(), cid, "Gardening")
	require.NoError(t, err)

	assert.Equal(t, model.AllocationIneligible, result.Outcome)
	assert.Equal(t, 3, result.TotalPurchases)
	assert.Nil(t, result.Percentage)
}

func TestAllocateManualTier_GrantsTopTier(t *testing.T) {
	f := newStoreFake()
	svc := newTestService(f)
	cid := f.addCustomer("alice")

	// Spread purchases so the recompute grants nothing: five
	// categories with one purchase each.
	for i := 0; i < 5; i++ {
		pid := f.addProduct(fmt.Sprintf("item %d", i), 100, fmt.Sprintf("Category %d", i))
		buyAll(t, svc, cid, []uuid.UUID{pid})
	}

	result, err := svc.AllocateManualTier(context.Background(), cid, "Gardening")
	require.NoError(t, err)

	assert.Equal(t, model.AllocationGranted, result.Outcome)
	require.NotNil(t, result.Percentage)
	assert.True(t, result.Percentage.Equal(decimal.NewFromInt(15)))
	assert.Equal(t,
		fmt.Sprintf("Added 15%% discount on Gardening products for alice (CID: %s).", cid),
		result.Message)

	d, err := f.FindForCustomerCategory(context.Background(), cid, "Gardening")
	require.NoError(t, err)
	assert.Equal(t, model.DiscountTypeRewards, d.Type)
}

func TestAllocateManualTier_AlreadyExists(t *testing.T) {
	f := newStoreFake()
	svc := newTestService(f)
	cid := f.addCustomer("alice")
	buyAll(t, svc, cid, addProducts(f, "Books", 5)) // auto-grants 15% on Books

	result, err := svc.AllocateManualTier(context.Background(), cid, "Books")
	require.NoError(t, err)

	assert.Equal(t, model.AllocationAlreadyExists, result.Outcome)
}

func TestAllocateManualTier_SkipsPercentagesUsedElsewhere(t *testing.T) {
	f := newStoreFake()
	svc := newTestService(f)
	cid := f.addCustomer("alice")
	buyAll(t, svc, cid, addProducts(f, "Books", 6)) // 15% lives on Books

	// 15% is taken by Books and only 6 purchases exist, below the 10%
	// tier's threshold of 10.
	result, err := svc.AllocateManualTier(context.Background(), cid, "Gardening")
	require.NoError(t, err)
	assert.Equal(t, model.AllocationIneligible, result.Outcome)

	// Four more purchases clear the threshold; the next free tier is 10%
	buyAll(t, svc, cid, addProducts(f, "Toys", 4))

	result, err = svc.AllocateManualTier(context.Background(), cid, "Gardening")
	require.NoError(t, err)
	require.Equal(t, model.AllocationGranted, result.Outcome)
	assert.True(t, result.Percentage.Equal(decimal.NewFromInt(10)))
}

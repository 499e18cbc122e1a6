package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"storefront-backend/internal/domains/rewards/model"
	"storefront-backend/internal/domains/rewards/repository"
	"storefront-backend/pkg/cache"
	"storefront-backend/pkg/logger"
)

// rewardsService implements ServiceInterface
type rewardsService struct {
	ledger     repository.LedgerRepository
	discounts  repository.DiscountRepository
	catalog    repository.CatalogReader
	calculator *TierCalculator
	cache      cache.Cache

	// One mutex per customer. Recomputes for the same customer are
	// serialized so a purchase cannot interleave with a replace in
	// progress; different customers proceed in parallel.
	customerLocks sync.Map
}

func NewRewardsService(
	ledger repository.LedgerRepository,
	discounts repository.DiscountRepository,
	catalog repository.CatalogReader,
	cache cache.Cache,
) ServiceInterface {
	return &rewardsService{
		ledger:     ledger,
		discounts:  discounts,
		catalog:    catalog,
		calculator: NewTierCalculator(),
		cache:      cache,
	}
}

func (s *rewardsService) lockCustomer(customerID uuid.UUID) *sync.Mutex {
	v, _ := s.customerLocks.LoadOrStore(customerID, &sync.Mutex{})
	return v.(*sync.Mutex)
}

// -------------------------------------------------------------------
// PURCHASE RECORDING
// -------------------------------------------------------------------

// RecordPurchase runs the full purchase flow:
// 1. Resolve customer and product (NotFound before any write).
// 2. Snapshot whether a discount matching (customer, category) exists
//    right now; that decides the ledger row's DiscountApplied flag.
// 3. Append the ledger row. Duplicate pair -> silent no-op, and the
//    recompute is skipped since the ledger did not change.
// 4. Recompute reward tiers from the updated ledger.
func (s *rewardsService) RecordPurchase(ctx context.Context, customerID, productID uuid.UUID) error {
	customer, err := s.catalog.GetCustomer(ctx, customerID)
	if err != nil {
		return err
	}

	product, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		return err
	}

	mu := s.lockCustomer(customerID)
	mu.Lock()
	defer mu.Unlock()

	discountApplied := false
	_, err = s.discounts.FindForCustomerCategory(ctx, customerID, product.Category)
	switch {
	case err == nil:
		discountApplied = true
	case errors.Is(err, model.ErrDiscountNotFound):
		// No discount at purchase time; flag stays false
	default:
		return fmt.Errorf("lookup discount at purchase time: %w", err)
	}

	inserted, err := s.ledger.InsertPurchase(ctx, &model.Purchase{
		CustomerID:      customerID,
		ProductID:       productID,
		DiscountApplied: discountApplied,
	})
	if err != nil {
		return err
	}

	if !inserted {
		logger.Info("duplicate purchase ignored", map[string]interface{}{
			"customer_id": customerID,
			"product_id":  productID,
		})
		return nil
	}

	s.invalidateRecommendations(ctx, customerID)

	if err := s.recomputeLocked(ctx, customerID); err != nil {
		return err
	}

	logger.Info("purchase recorded", map[string]interface{}{
		"customer_id":      customerID,
		"customer_name":    customer.Name,
		"product_id":       productID,
		"category":         product.Category,
		"discount_applied": discountApplied,
	})

	return nil
}

// -------------------------------------------------------------------
// TIER RECOMPUTE
// -------------------------------------------------------------------

// RecomputeRewardTiers rebuilds the customer's Rewards rows from
// scratch. The grant set depends only on current ledger contents, so
// calling it any number of times yields the same discounts.
func (s *rewardsService) RecomputeRewardTiers(ctx context.Context, customerID uuid.UUID) error {
	if _, err := s.catalog.GetCustomer(ctx, customerID); err != nil {
		return err
	}

	mu := s.lockCustomer(customerID)
	mu.Lock()
	defer mu.Unlock()

	return s.recomputeLocked(ctx, customerID)
}

// recomputeLocked does the actual recompute. Caller must hold the
// customer's mutex.
func (s *rewardsService) recomputeLocked(ctx context.Context, customerID uuid.UUID) error {
	counts, err := s.ledger.CategoryCounts(ctx, customerID)
	if err != nil {
		return err
	}

	total, err := s.ledger.TotalPurchases(ctx, customerID)
	if err != nil {
		return err
	}

	grants := s.calculator.ComputeRewards(counts, total)

	if err := s.discounts.ReplaceRewards(ctx, customerID, grants); err != nil {
		return err
	}

	logger.Info("reward tiers recomputed", map[string]interface{}{
		"customer_id":     customerID,
		"total_purchases": total,
		"grants":          len(grants),
	})

	return nil
}

// -------------------------------------------------------------------
// EFFECTIVE PRICE
// -------------------------------------------------------------------

// EffectivePrice computes the price this customer pays for this product
// today. Pure read; no writes, no snapshotting.
func (s *rewardsService) EffectivePrice(ctx context.Context, customerID, productID uuid.UUID) (*model.EffectivePriceResponse, error) {
	if _, err := s.catalog.GetCustomer(ctx, customerID); err != nil {
		return nil, err
	}

	product, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	resp := &model.EffectivePriceResponse{
		ProductID:      product.ID,
		ListPrice:      product.Price,
		EffectivePrice: product.Price,
	}

	discount, err := s.discounts.FindForCustomerCategory(ctx, customerID, product.Category)
	switch {
	case err == nil:
		pct := discount.Percentage
		resp.DiscountPercentage = &pct
		resp.EffectivePrice = discount.EffectivePrice(product.Price)
	case errors.Is(err, model.ErrDiscountNotFound):
		// List price stands
	default:
		return nil, fmt.Errorf("lookup discount for pricing: %w", err)
	}

	return resp, nil
}

// ListStorefront returns the shop view for a customer
func (s *rewardsService) ListStorefront(ctx context.Context, customerID uuid.UUID) ([]model.StorefrontItem, error) {
	if _, err := s.catalog.GetCustomer(ctx, customerID); err != nil {
		return nil, err
	}

	return s.catalog.ListUnpurchased(ctx, customerID)
}

// -------------------------------------------------------------------
// PROMOTIONAL DISCOUNT ADMINISTRATION
// -------------------------------------------------------------------

// CreatePromotional stores an admin-defined promotional discount.
// The engine never touches these rows afterwards.
func (s *rewardsService) CreatePromotional(ctx context.Context, percentage decimal.Decimal, label string) (*model.Discount, error) {
	discount := &model.Discount{
		Percentage: percentage,
		Type:       model.DiscountTypePromotional,
		PromoLabel: &label,
	}

	if err := s.discounts.CreatePromotional(ctx, discount); err != nil {
		return nil, err
	}

	return discount, nil
}

func (s *rewardsService) ListDiscounts(ctx context.Context) ([]model.DiscountRow, error) {
	return s.discounts.List(ctx)
}

func (s *rewardsService) DeleteDiscount(ctx context.Context, id uuid.UUID) error {
	return s.discounts.Delete(ctx, id)
}

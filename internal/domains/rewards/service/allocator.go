package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"storefront-backend/internal/domains/rewards/model"
	"storefront-backend/pkg/logger"
)

// AllocateManualTier lets an admin force-assign the next unused tier to
// an explicit category - not necessarily one the customer has purchased
// from. The tier table is walked in its fixed order (not by category
// rank): the first percentage that is not already granted on another
// category and whose total-purchase threshold is met wins.
//
// Unlike the automatic recompute this path does not reset anything, and
// the two are not coordinated: a manually granted row survives only
// until the next recompute, which rebuilds purely from purchase ranking
// and may discard it if the target category is not among the top-ranked
// ones. That mirrors how the store has always behaved; callers should
// treat manual grants as provisional.
func (s *rewardsService) AllocateManualTier(ctx context.Context, customerID uuid.UUID, category string) (*model.AllocationResult, error) {
	customer, err := s.catalog.GetCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	mu := s.lockCustomer(customerID)
	mu.Lock()
	defer mu.Unlock()

	// Percentages already granted on other categories are off limits
	existing, err := s.discounts.ListRewardsForCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	used := make(map[string]bool)
	for _, d := range existing {
		if d.Category != nil && *d.Category != category {
			used[d.Percentage.String()] = true
		}
	}

	total, err := s.ledger.TotalPurchases(ctx, customerID)
	if err != nil {
		return nil, err
	}

	// Walk the tier table in fixed order for the first free, unlocked
	// percentage
	var candidate *model.Tier
	for i := range model.TierTable {
		tier := model.TierTable[i]
		if used[tier.Percentage.String()] {
			continue
		}
		if total < tier.MinTotal {
			continue
		}
		candidate = &tier
		break
	}

	if candidate == nil {
		return &model.AllocationResult{
			Outcome:        model.AllocationIneligible,
			TotalPurchases: total,
			Message: fmt.Sprintf(
				"No eligible discount tier available for %s (CID: %s). Total purchases: %d.",
				customer.Name, customerID, total,
			),
		}, nil
	}

	// Duplicate check for the target category itself
	_, err = s.discounts.FindForCustomerCategory(ctx, customerID, category)
	switch {
	case err == nil:
		return &model.AllocationResult{
			Outcome:        model.AllocationAlreadyExists,
			TotalPurchases: total,
			Message: fmt.Sprintf(
				"Discount already exists for %s for %s (CID: %s).",
				category, customer.Name, customerID,
			),
		}, nil
	case errors.Is(err, model.ErrDiscountNotFound):
		// Free to grant
	default:
		return nil, fmt.Errorf("check existing discount: %w", err)
	}

	discount := &model.Discount{
		Percentage: candidate.Percentage,
		Type:       model.DiscountTypeRewards,
		CustomerID: &customerID,
		Category:   &category,
	}
	if err := s.discounts.InsertRewards(ctx, discount); err != nil {
		return nil, err
	}

	logger.Info("manual tier allocated", map[string]interface{}{
		"customer_id": customerID,
		"category":    category,
		"percentage":  candidate.Percentage.String(),
	})

	pct := candidate.Percentage
	return &model.AllocationResult{
		Outcome:        model.AllocationGranted,
		Percentage:     &pct,
		TotalPurchases: total,
		Message: fmt.Sprintf(
			"Added %s%% discount on %s products for %s (CID: %s).",
			candidate.Percentage.String(), category, customer.Name, customerID,
		),
	}, nil
}

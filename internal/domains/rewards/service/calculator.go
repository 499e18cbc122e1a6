package service

import (
	"sort"

	"storefront-backend/internal/domains/rewards/model"
)

// TierCalculator turns a customer's purchase history into the set of
// reward grants they are entitled to. It is a pure function of its
// inputs: no storage access, no clock, no randomness. The service pairs
// it with DiscountRepository.ReplaceRewards to make recompute
// idempotent and order-independent.
type TierCalculator struct{}

func NewTierCalculator() *TierCalculator {
	return &TierCalculator{}
}

// rankCategories orders categories by purchase count descending.
// Ties break on category name ascending, so ranking does not depend on
// incidental row order.
func (tc *TierCalculator) rankCategories(counts []model.CategoryCount) []model.CategoryCount {
	ranked := make([]model.CategoryCount, len(counts))
	copy(ranked, counts)

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Category < ranked[j].Category
	})

	return ranked
}

// ComputeRewards builds the grant set for a customer with the given
// per-category purchase counts and overall total.
//
// Tier rank i goes to the category ranked i by purchase count, provided
// the tier's total-purchase threshold is met and that category itself
// has at least model.MinCategoryPurchases purchases. A rank whose
// category misses the floor (or does not exist) is a gap; the tier is
// never shifted to the next category down.
func (tc *TierCalculator) ComputeRewards(counts []model.CategoryCount, totalPurchases int) []model.Grant {
	ranked := tc.rankCategories(counts)

	var grants []model.Grant
	for rank, tier := range model.TierTable {
		// Thresholds are evaluated independently per tier
		if totalPurchases < tier.MinTotal {
			continue
		}
		if rank >= len(ranked) {
			continue
		}
		if ranked[rank].Count < model.MinCategoryPurchases {
			continue
		}

		grants = append(grants, model.Grant{
			Category:   ranked[rank].Category,
			Percentage: tier.Percentage,
			Rank:       rank,
		})
	}

	return grants
}

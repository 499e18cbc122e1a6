package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"storefront-backend/internal/domains/rewards/model"
	"storefront-backend/pkg/logger"
)

const recommendationCacheTTL = 5 * time.Minute

func recommendationCacheKey(customerID uuid.UUID) string {
	return fmt.Sprintf("rewards:recommendations:%s", customerID)
}

// GenerateRecommendations derives not-yet-purchased products from the
// categories the customer already buys from, one product per category.
//
// The candidate query orders by product id ascending and the first
// product seen per category is kept, so the result is deterministic.
// Results are cached per customer; RecordPurchase invalidates the entry
// since a purchase changes both the candidate set and the counts.
func (s *rewardsService) GenerateRecommendations(ctx context.Context, customerID uuid.UUID) ([]model.Recommendation, error) {
	if _, err := s.catalog.GetCustomer(ctx, customerID); err != nil {
		return nil, err
	}

	if s.cache != nil {
		var cached []model.Recommendation
		found, err := s.cache.Get(ctx, recommendationCacheKey(customerID), &cached)
		if err != nil {
			// Cache trouble is not worth failing the request
			logger.Warn("recommendation cache read failed", map[string]interface{}{
				"customer_id": customerID,
				"error":       err.Error(),
			})
		} else if found {
			return cached, nil
		}
	}

	counts, err := s.ledger.CategoryCounts(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if len(counts) == 0 {
		// No purchase history, nothing to recommend
		return []model.Recommendation{}, nil
	}

	countByCategory := make(map[string]int, len(counts))
	for _, c := range counts {
		countByCategory[c.Category] = c.Count
	}

	candidates, err := s.catalog.ListRecommendationCandidates(ctx, customerID)
	if err != nil {
		return nil, err
	}

	// First product per category wins; rows are ordered by product id
	seen := make(map[string]bool)
	recommendations := make([]model.Recommendation, 0, len(countByCategory))
	for _, row := range candidates {
		if seen[row.Category] {
			continue
		}
		seen[row.Category] = true

		recommendations = append(recommendations, model.Recommendation{
			ProductID:             row.ProductID,
			Name:                  row.Name,
			Price:                 row.Price,
			Category:              row.Category,
			DiscountPercentage:    row.DiscountPercentage,
			CategoryPurchaseCount: countByCategory[row.Category],
			CustomerID:            customerID,
		})
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, recommendationCacheKey(customerID), recommendations, recommendationCacheTTL); err != nil {
			logger.Warn("recommendation cache write failed", map[string]interface{}{
				"customer_id": customerID,
				"error":       err.Error(),
			})
		}
	}

	return recommendations, nil
}

// invalidateRecommendations drops the cached entry after a purchase
func (s *rewardsService) invalidateRecommendations(ctx context.Context, customerID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, recommendationCacheKey(customerID)); err != nil {
		logger.Warn("recommendation cache invalidation failed", map[string]interface{}{
			"customer_id": customerID,
			"error":       err.Error(),
		})
	}
}

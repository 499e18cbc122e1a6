package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"storefront-backend/internal/domains/rewards/model"
)

// ServiceInterface is the rewards engine as consumed by the HTTP layer
type ServiceInterface interface {
	// RecordPurchase appends a ledger entry for (customer, product),
	// snapshotting whether a matching discount existed at purchase
	// time, then recomputes the customer's reward tiers. Idempotent:
	// recording the same pair twice is a no-op.
	RecordPurchase(ctx context.Context, customerID, productID uuid.UUID) error

	// EffectivePrice is a pure read: the product's price after the
	// customer's current matching discount, or the list price.
	EffectivePrice(ctx context.Context, customerID, productID uuid.UUID) (*model.EffectivePriceResponse, error)

	// RecomputeRewardTiers rebuilds the customer's Rewards discounts
	// from the ledger. Pure function of ledger state; safe to call
	// repeatedly.
	RecomputeRewardTiers(ctx context.Context, customerID uuid.UUID) error

	// AllocateManualTier assigns the next unused tier to an explicit
	// category. Outcomes (granted / already exists / ineligible) are
	// returned as data, not errors.
	AllocateManualTier(ctx context.Context, customerID uuid.UUID, category string) (*model.AllocationResult, error)

	// GenerateRecommendations derives one not-yet-purchased product per
	// category the customer already buys from.
	GenerateRecommendations(ctx context.Context, customerID uuid.UUID) ([]model.Recommendation, error)

	// ListStorefront returns the customer's shop view: unpurchased
	// products with effective prices.
	ListStorefront(ctx context.Context, customerID uuid.UUID) ([]model.StorefrontItem, error)

	// Promotional discount administration
	CreatePromotional(ctx context.Context, percentage decimal.Decimal, label string) (*model.Discount, error)
	ListDiscounts(ctx context.Context) ([]model.DiscountRow, error)
	DeleteDiscount(ctx context.Context, id uuid.UUID) error
}

package repository

import (
	"context"

	"github.com/google/uuid"

	"storefront-backend/internal/domains/rewards/model"
)

// LedgerRepository is the append-only purchase ledger
type LedgerRepository interface {
	// InsertPurchase appends a ledger entry. Returns false without
	// error when the (customer, product) pair already exists - the
	// idempotent no-op for double submission.
	InsertPurchase(ctx context.Context, purchase *model.Purchase) (bool, error)

	// CategoryCounts groups the customer's purchases by product
	// category. No ordering guarantee; ranking is the calculator's job.
	CategoryCounts(ctx context.Context, customerID uuid.UUID) ([]model.CategoryCount, error)

	// TotalPurchases counts the customer's ledger rows across all categories
	TotalPurchases(ctx context.Context, customerID uuid.UUID) (int, error)
}

// DiscountRepository is the discount store
type DiscountRepository interface {
	// FindForCustomerCategory returns the discount (any type) scoped to
	// this customer and category, or model.ErrDiscountNotFound.
	FindForCustomerCategory(ctx context.Context, customerID uuid.UUID, category string) (*model.Discount, error)

	// ListRewardsForCustomer returns the customer's Rewards rows,
	// percentage descending.
	ListRewardsForCustomer(ctx context.Context, customerID uuid.UUID) ([]model.Discount, error)

	// ReplaceRewards deletes all Rewards rows for the customer and
	// inserts one row per grant, in a single transaction.
	ReplaceRewards(ctx context.Context, customerID uuid.UUID, grants []model.Grant) error

	// InsertRewards inserts a single Rewards row (manual allocation path)
	InsertRewards(ctx context.Context, discount *model.Discount) error

	// CreatePromotional inserts an admin-defined promotional discount
	CreatePromotional(ctx context.Context, discount *model.Discount) error

	// List returns all discounts joined with the owning customer's name
	List(ctx context.Context) ([]model.DiscountRow, error)

	// Delete removes a discount by id; model.ErrDiscountNotFound when absent
	Delete(ctx context.Context, id uuid.UUID) error
}

// CatalogReader gives the engine its read-only view over products and
// customers. The engine consumes catalog data but never mutates it.
type CatalogReader interface {
	GetProduct(ctx context.Context, id uuid.UUID) (*model.ProductRef, error)
	GetCustomer(ctx context.Context, id uuid.UUID) (*model.CustomerRef, error)

	// ListUnpurchased returns products the customer has not bought,
	// each joined with any discount matching (customer, category).
	// Ordered by product id ascending.
	ListUnpurchased(ctx context.Context, customerID uuid.UUID) ([]model.StorefrontItem, error)

	// ListRecommendationCandidates returns unpurchased products in
	// categories the customer has bought from, joined with any matching
	// discount, ordered by product id ascending.
	ListRecommendationCandidates(ctx context.Context, customerID uuid.UUID) ([]model.RecommendationRow, error)
}

package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DiscountType is the closed set of discount kinds. Keeping it a
// declared type (instead of free strings) means the engine's filter on
// Rewards rows cannot be broken by a typo in a handler or migration.
type DiscountType string

const (
	// DiscountTypeRewards rows are fully owned by the tier engine:
	// created and deleted only by recompute or the manual allocator,
	// never edited in place.
	DiscountTypeRewards DiscountType = "Rewards"

	// DiscountTypePromotional rows are owned by admin CRUD and never
	// touched by the engine. PromoLabel carries the admin-chosen name.
	DiscountTypePromotional DiscountType = "Promotional"
)

// Valid reports whether t is one of the declared types
func (t DiscountType) Valid() bool {
	return t == DiscountTypeRewards || t == DiscountTypePromotional
}

// Discount represents one active discount grant.
//
// Invariant: a Rewards discount always has non-nil CustomerID and
// Category, and at most one Rewards row exists per (customer, category)
// pair. Promotional discounts have nil CustomerID (global) and nil
// Category (category-agnostic).
type Discount struct {
	ID         uuid.UUID       `json:"id" db:"id"`
	Percentage decimal.Decimal `json:"percentage" db:"percentage"`
	Type       DiscountType    `json:"type" db:"type"`
	PromoLabel *string         `json:"promo_label,omitempty" db:"promo_label"`
	CustomerID *uuid.UUID      `json:"customer_id,omitempty" db:"customer_id"`
	Category   *string         `json:"category,omitempty" db:"category"`
	CreatedAt  time.Time       `json:"created_at" db:"created_at"`
}

// EffectivePrice applies the discount to a list price:
// price * (1 - percentage/100).
func (d *Discount) EffectivePrice(price decimal.Decimal) decimal.Decimal {
	factor := decimal.NewFromInt(1).Sub(d.Percentage.Div(decimal.NewFromInt(100)))
	return price.Mul(factor)
}

// ApplyPercentage is EffectivePrice for callers that only have the
// percentage (e.g. rows scanned with a nullable discount join).
func ApplyPercentage(price decimal.Decimal, percentage decimal.Decimal) decimal.Decimal {
	factor := decimal.NewFromInt(1).Sub(percentage.Div(decimal.NewFromInt(100)))
	return price.Mul(factor)
}

// DiscountRow is a discount joined with the owning customer's name,
// used by the admin listing.
type DiscountRow struct {
	Discount
	CustomerName *string `json:"customer_name,omitempty" db:"customer_name"`
}

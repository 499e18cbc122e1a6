package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Purchase is one ledger entry: customer bought product. The ledger is
// append-only and unique per (customer, product) pair; a customer buys
// a given product at most once.
type Purchase struct {
	CustomerID uuid.UUID `json:"customer_id" db:"customer_id"`
	ProductID  uuid.UUID `json:"product_id" db:"product_id"`

	// DiscountApplied is a snapshot taken at the moment of purchase:
	// true iff a discount matching (customer, product category) existed
	// then. Later grants do not retroactively flip it.
	DiscountApplied bool      `json:"discount_applied" db:"discount_applied"`
	PurchasedAt     time.Time `json:"purchased_at" db:"purchased_at"`
}

// CategoryCount is the per-category purchase volume for one customer
type CategoryCount struct {
	Category string `json:"category" db:"category"`
	Count    int    `json:"count" db:"count"`
}

// ProductRef is the slice of a product the engine needs for pricing
// and category matching.
type ProductRef struct {
	ID       uuid.UUID       `json:"id" db:"id"`
	Name     string          `json:"name" db:"name"`
	Price    decimal.Decimal `json:"price" db:"price"`
	Category string          `json:"category" db:"category"`
}

// CustomerRef is the slice of a customer the engine needs
type CustomerRef struct {
	ID   uuid.UUID `json:"id" db:"id"`
	Name string    `json:"name" db:"name"`
}

// StorefrontItem is a not-yet-purchased product annotated with the
// customer's current discount, as shown on the shop page.
type StorefrontItem struct {
	ProductID          uuid.UUID        `json:"product_id" db:"product_id"`
	Name               string           `json:"name" db:"name"`
	Price              decimal.Decimal  `json:"price" db:"price"`
	Category           string           `json:"category" db:"category"`
	DiscountPercentage *decimal.Decimal `json:"discount_percentage,omitempty" db:"discount_percentage"`
	EffectivePrice     decimal.Decimal  `json:"effective_price"`
}

// RecommendationRow is one candidate row from the recommendation query:
// an unpurchased product in a category the customer buys from, joined
// with any matching discount. Rows arrive ordered by product id
// ascending so the per-category dedup is deterministic.
type RecommendationRow struct {
	ProductID          uuid.UUID        `db:"product_id"`
	Name               string           `db:"name"`
	Price              decimal.Decimal  `db:"price"`
	Category           string           `db:"category"`
	DiscountPercentage *decimal.Decimal `db:"discount_percentage"`
}

// Recommendation is one surviving recommendation record
type Recommendation struct {
	ProductID             uuid.UUID        `json:"product_id"`
	Name                  string           `json:"name"`
	Price                 decimal.Decimal  `json:"price"`
	Category              string           `json:"category"`
	DiscountPercentage    *decimal.Decimal `json:"discount_percentage,omitempty"`
	CategoryPurchaseCount int              `json:"category_purchase_count"`
	CustomerID            uuid.UUID        `json:"customer_id"`
}

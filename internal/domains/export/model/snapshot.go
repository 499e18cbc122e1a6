package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Snapshot is the full datastore state gathered for a flat-file export
type Snapshot struct {
	Products  []ProductLine
	Customers []string
	Vendors   []string
	Purchases []PurchaseLine
	Supplies  []SupplyLine
	Discounts []DiscountLine
	Users     []UserLine
}

type ProductLine struct {
	Price    decimal.Decimal
	Name     string
	Category string
}

type PurchaseLine struct {
	CustomerID      uuid.UUID
	ProductID       uuid.UUID
	DiscountApplied bool
}

type SupplyLine struct {
	VendorID  uuid.UUID
	ProductID uuid.UUID
}

// DiscountLine carries only customer-scoped discounts; promotional
// rows have no customer or category and are skipped by the export.
type DiscountLine struct {
	Percentage decimal.Decimal
	Type       string
	CustomerID uuid.UUID
	Category   string
}

type UserLine struct {
	Username     string
	PasswordHash string
	Role         string
	CustomerName string // empty when the account has no customer link
}

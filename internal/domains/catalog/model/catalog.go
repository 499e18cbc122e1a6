package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a sellable item. Category drives the rewards engine, so
// it is required and case-sensitive.
type Product struct {
	ID        uuid.UUID       `json:"id" db:"id"`
	Name      string          `json:"name" db:"name"`
	Price     decimal.Decimal `json:"price" db:"price"`
	Category  string          `json:"category" db:"category"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
}

// Vendor supplies products through the supplies link table
type Vendor struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Supply links a vendor to a product it supplies
type Supply struct {
	VendorID  uuid.UUID `json:"vendor_id" db:"vendor_id"`
	ProductID uuid.UUID `json:"product_id" db:"product_id"`
}

// VendorPerformance aggregates sales attributed to a vendor through
// its supplied products. TopProductName is "None" when the vendor has
// sold nothing.
type VendorPerformance struct {
	VendorID         uuid.UUID       `json:"vendor_id" db:"vendor_id"`
	VendorName       string          `json:"vendor_name" db:"vendor_name"`
	ProductsSupplied int             `json:"products_supplied" db:"products_supplied"`
	UnitsSold        int             `json:"units_sold" db:"units_sold"`
	Revenue          decimal.Decimal `json:"revenue" db:"revenue"`
	TopProductName   string          `json:"top_product_name" db:"top_product_name"`
	TopProductUnits  int             `json:"top_product_units" db:"top_product_units"`
}

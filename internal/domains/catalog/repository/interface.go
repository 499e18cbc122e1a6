package repository

import (
	"context"

	"github.com/google/uuid"

	"storefront-backend/internal/domains/catalog/model"
)

// ProductRepository persists products
type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	List(ctx context.Context, category, search string) ([]model.Product, error)
	Update(ctx context.Context, product *model.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// VendorRepository persists vendors and their supply links
type VendorRepository interface {
	Create(ctx context.Context, vendor *model.Vendor) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Vendor, error)
	List(ctx context.Context, search string) ([]model.Vendor, error)
	Delete(ctx context.Context, id uuid.UUID) error

	LinkSupply(ctx context.Context, vendorID, productID uuid.UUID) error
	UnlinkSupply(ctx context.Context, vendorID, productID uuid.UUID) error
	ListSuppliedProducts(ctx context.Context, vendorID uuid.UUID) ([]model.Product, error)
	PerformanceReport(ctx context.Context, vendorID uuid.UUID) (*model.VendorPerformance, error)
}

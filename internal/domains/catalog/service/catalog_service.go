package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"storefront-backend/internal/domains/catalog/model"
	"storefront-backend/internal/domains/catalog/repository"
)

// ServiceInterface manages products, vendors and supply links
type ServiceInterface interface {
	CreateProduct(ctx context.Context, req *model.CreateProductRequest) (*model.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*model.Product, error)
	ListProducts(ctx context.Context, category, search string) ([]model.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, req *model.UpdateProductRequest) (*model.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error

	CreateVendor(ctx context.Context, req *model.CreateVendorRequest) (*model.Vendor, error)
	GetVendor(ctx context.Context, id uuid.UUID) (*model.Vendor, error)
	ListVendors(ctx context.Context, search string) ([]model.Vendor, error)
	DeleteVendor(ctx context.Context, id uuid.UUID) error

	LinkSupply(ctx context.Context, vendorID, productID uuid.UUID) error
	UnlinkSupply(ctx context.Context, vendorID, productID uuid.UUID) error
	ListSuppliedProducts(ctx context.Context, vendorID uuid.UUID) ([]model.Product, error)
	VendorPerformance(ctx context.Context, vendorID uuid.UUID) (*model.VendorPerformance, error)
}

type catalogService struct {
	products repository.ProductRepository
	vendors  repository.VendorRepository
}

func NewCatalogService(products repository.ProductRepository, vendors repository.VendorRepository) ServiceInterface {
	return &catalogService{
		products: products,
		vendors:  vendors,
	}
}

func (s *catalogService) CreateProduct(ctx context.Context, req *model.CreateProductRequest) (*model.Product, error) {
	product := &model.Product{
		ID:        uuid.New(),
		Name:      req.Name,
		Price:     req.Price,
		Category:  req.Category,
		CreatedAt: time.Now(),
	}

	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

func (s *catalogService) GetProduct(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	return s.products.GetByID(ctx, id)
}

func (s *catalogService) ListProducts(ctx context.Context, category, search string) ([]model.Product, error) {
	return s.products.List(ctx, category, search)
}

// UpdateProduct applies only the fields present in the request.
// Changing a category does not rewrite past reward grants; a recompute
// picks the new category up.
func (s *catalogService) UpdateProduct(ctx context.Context, id uuid.UUID, req *model.UpdateProductRequest) (*model.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Category != nil {
		product.Category = *req.Category
	}

	if err := s.products.Update(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

func (s *catalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return s.products.Delete(ctx, id)
}

func (s *catalogService) CreateVendor(ctx context.Context, req *model.CreateVendorRequest) (*model.Vendor, error) {
	vendor := &model.Vendor{
		ID:        uuid.New(),
		Name:      req.Name,
		CreatedAt: time.Now(),
	}

	if err := s.vendors.Create(ctx, vendor); err != nil {
		return nil, err
	}

	return vendor, nil
}

func (s *catalogService) GetVendor(ctx context.Context, id uuid.UUID) (*model.Vendor, error) {
	return s.vendors.GetByID(ctx, id)
}

func (s *catalogService) ListVendors(ctx context.Context, search string) ([]model.Vendor, error) {
	return s.vendors.List(ctx, search)
}

func (s *catalogService) DeleteVendor(ctx context.Context, id uuid.UUID) error {
	return s.vendors.Delete(ctx, id)
}

// LinkSupply verifies both ends exist so a bad id surfaces as a 404
// rather than a foreign key violation.
func (s *catalogService) LinkSupply(ctx context.Context, vendorID, productID uuid.UUID) error {
	if _, err := s.vendors.GetByID(ctx, vendorID); err != nil {
		return err
	}
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		return err
	}

	return s.vendors.LinkSupply(ctx, vendorID, productID)
}

func (s *catalogService) UnlinkSupply(ctx context.Context, vendorID, productID uuid.UUID) error {
	return s.vendors.UnlinkSupply(ctx, vendorID, productID)
}

func (s *catalogService) ListSuppliedProducts(ctx context.Context, vendorID uuid.UUID) ([]model.Product, error) {
	if _, err := s.vendors.GetByID(ctx, vendorID); err != nil {
		return nil, err
	}

	return s.vendors.ListSuppliedProducts(ctx, vendorID)
}

func (s *catalogService) VendorPerformance(ctx context.Context, vendorID uuid.UUID) (*model.VendorPerformance, error) {
	return s.vendors.PerformanceReport(ctx, vendorID)
}

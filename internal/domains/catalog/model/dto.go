package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/shopspring/decimal"
)

type CreateProductRequest struct {
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Category string          `json:"category"`
}

func (r CreateProductRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.Length(1, 255),
		),
		validation.Field(&r.Price,
			validation.Required.Error("price is required"),
			validation.Min(decimal.Zero).Error("price must be >= 0"),
		),
		validation.Field(&r.Category,
			validation.Required.Error("category is required"),
			validation.Length(1, 255),
		),
	)
}

// UpdateProductRequest uses pointers so absent fields are left alone
type UpdateProductRequest struct {
	Name     *string          `json:"name,omitempty"`
	Price    *decimal.Decimal `json:"price,omitempty"`
	Category *string          `json:"category,omitempty"`
}

func (r UpdateProductRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.NilOrNotEmpty, validation.Length(1, 255)),
		validation.Field(&r.Category, validation.NilOrNotEmpty, validation.Length(1, 255)),
	)
}

type CreateVendorRequest struct {
	Name string `json:"name"`
}

func (r CreateVendorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.Length(1, 255),
		),
	)
}

type LinkSupplyRequest struct {
	VendorID  string `json:"vendor_id"`
	ProductID string `json:"product_id"`
}

func (r LinkSupplyRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.VendorID, validation.Required, is.UUID),
		validation.Field(&r.ProductID, validation.Required, is.UUID),
	)
}

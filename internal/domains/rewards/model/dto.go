package model

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RecordPurchaseRequest - shop "buy" action. CustomerID comes from the
// JWT, never from the body.
type RecordPurchaseRequest struct {
	ProductID string `json:"product_id"`
}

func (r RecordPurchaseRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ProductID,
			validation.Required.Error("product_id is required"),
			is.UUID,
		),
	)
}

// ManualAllocationRequest - admin grant of the next unused tier to an
// explicit category.
type ManualAllocationRequest struct {
	CustomerID string `json:"customer_id"`
	Category   string `json:"category"`
}

func (r ManualAllocationRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.CustomerID,
			validation.Required.Error("customer_id is required"),
			is.UUID,
		),
		validation.Field(&r.Category,
			validation.Required.Error("category is required"),
			validation.Length(1, 255),
		),
	)
}

// CreatePromotionalRequest - admin-defined promotional discount,
// global (no customer) and category-agnostic.
type CreatePromotionalRequest struct {
	Percentage decimal.Decimal `json:"percentage"`
	Label      string          `json:"label"`
}

func (r CreatePromotionalRequest) Validate() error {
	return validation.ValidateStruct(&r,
		// Required is skipped on purpose: decimal zero is the type's
		// empty value and 0% is a legal percentage
		validation.Field(&r.Percentage,
			validation.By(validatePercentageRange),
		),
		validation.Field(&r.Label,
			validation.Required.Error("label is required"),
			validation.Length(1, 100),
		),
	)
}

// validatePercentageRange checks a decimal percentage is within 0-100.
// ozzo's Min/Max threshold rules only handle numeric primitives, so
// decimal fields need a By rule.
func validatePercentageRange(value interface{}) error {
	pct, ok := value.(decimal.Decimal)
	if !ok {
		return errors.New("must be a decimal percentage")
	}
	if pct.IsNegative() || pct.GreaterThan(decimal.NewFromInt(100)) {
		return errors.New("must be between 0 and 100")
	}
	return nil
}

// AllocationOutcome classifies the result of a manual tier allocation.
// These are expected business states, not failures, so they travel as
// data rather than errors.
type AllocationOutcome string

const (
	AllocationGranted       AllocationOutcome = "granted"
	AllocationAlreadyExists AllocationOutcome = "already_exists"
	AllocationIneligible    AllocationOutcome = "ineligible"
)

// AllocationResult is the structured outcome of AllocateManualTier
type AllocationResult struct {
	Outcome        AllocationOutcome `json:"outcome"`
	Percentage     *decimal.Decimal  `json:"percentage,omitempty"`
	TotalPurchases int               `json:"total_purchases"`
	Message        string            `json:"message"`
}

// EffectivePriceResponse - pure read of one product's price for the
// calling customer.
type EffectivePriceResponse struct {
	ProductID          uuid.UUID        `json:"product_id"`
	ListPrice          decimal.Decimal  `json:"list_price"`
	DiscountPercentage *decimal.Decimal `json:"discount_percentage,omitempty"`
	EffectivePrice     decimal.Decimal  `json:"effective_price"`
}

package model

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Customer owns a purchase ledger and the reward tiers derived from it
type Customer struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// PurchaseHistoryItem is one ledger entry joined with its product and,
// where one still exists, the customer's current discount on that
// category. DiscountApplied is the snapshot taken at purchase time;
// PaidPrice reflects it only when a matching discount currently exists.
type PurchaseHistoryItem struct {
	ProductID          uuid.UUID        `json:"product_id" db:"product_id"`
	ProductName        string           `json:"product_name" db:"product_name"`
	Category           string           `json:"category" db:"category"`
	ListPrice          decimal.Decimal  `json:"list_price" db:"list_price"`
	DiscountApplied    bool             `json:"discount_applied" db:"discount_applied"`
	DiscountPercentage *decimal.Decimal `json:"discount_percentage,omitempty" db:"discount_percentage"`
	PaidPrice          decimal.Decimal  `json:"paid_price" db:"paid_price"`
	PurchasedAt        time.Time        `json:"purchased_at" db:"purchased_at"`
}

var ErrCustomerNotFound = errors.New("customer not found")

type ErrorCode string

const (
	ErrCodeCustomerNotFound ErrorCode = "CUSTOMER_NOT_FOUND" // 404
	ErrCodeValidationError  ErrorCode = "VAL_INVALID_INPUT"  // 400
)

type CreateCustomerRequest struct {
	Name string `json:"name"`
}

func (r CreateCustomerRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.Length(1, 255),
		),
	)
}

type UpdateCustomerRequest struct {
	Name string `json:"name"`
}

func (r UpdateCustomerRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.Length(1, 255),
		),
	)
}

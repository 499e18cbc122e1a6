package model

import "errors"

var (
	ErrCustomerNotFound = errors.New("customer not found")
	ErrProductNotFound  = errors.New("product not found")
	ErrDiscountNotFound = errors.New("discount not found")
	ErrInvalidDiscount  = errors.New("invalid discount")
)

type ErrorCode string

const (
	ErrCodeCustomerNotFound ErrorCode = "REWARDS_CUSTOMER_NOT_FOUND" // 404
	ErrCodeProductNotFound  ErrorCode = "REWARDS_PRODUCT_NOT_FOUND"  // 404
	ErrCodeDiscountNotFound ErrorCode = "REWARDS_DISCOUNT_NOT_FOUND" // 404
	ErrCodeValidationFailed ErrorCode = "VAL_INVALID_INPUT"          // 400
	ErrCodeInternalError    ErrorCode = "SYS_INTERNAL_ERROR"         // 500
)

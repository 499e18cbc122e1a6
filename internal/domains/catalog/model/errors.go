package model

import "errors"

var (
	ErrProductNotFound = errors.New("product not found")
	ErrVendorNotFound  = errors.New("vendor not found")
	ErrSupplyNotFound  = errors.New("supply link not found")
	ErrSupplyExists    = errors.New("supply link already exists")
)

type ErrorCode string

const (
	ErrCodeProductNotFound ErrorCode = "CATALOG_PRODUCT_NOT_FOUND" // 404
	ErrCodeVendorNotFound  ErrorCode = "CATALOG_VENDOR_NOT_FOUND"  // 404
	ErrCodeSupplyNotFound  ErrorCode = "CATALOG_SUPPLY_NOT_FOUND"  // 404
	ErrCodeSupplyExists    ErrorCode = "CATALOG_SUPPLY_EXISTS"     // 409
	ErrCodeValidationError ErrorCode = "VAL_INVALID_INPUT"         // 400
)

package model

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// Roles. Customers shop; admins run the back office.
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// User is a login account. Customer accounts are linked to a customer
// record so the rewards engine can attribute purchases.
type User struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	Username     string     `json:"username" db:"username"`
	PasswordHash string     `json:"-" db:"password_hash"`
	Role         string     `json:"role" db:"role"`
	CustomerID   *uuid.UUID `json:"customer_id,omitempty" db:"customer_id"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
}

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type ErrorCode string

const (
	ErrCodeUserNotFound       ErrorCode = "USER_NOT_FOUND"       // 404
	ErrCodeUsernameTaken      ErrorCode = "USER_USERNAME_TAKEN"  // 409
	ErrCodeInvalidCredentials ErrorCode = "AUTH_INVALID_CREDS"   // 401
	ErrCodeValidationError    ErrorCode = "VAL_INVALID_INPUT"    // 400
)

// RegisterRequest carries an optional display Name used to match or
// create the linked customer record; it defaults to the username.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username,
			validation.Required.Error("username is required"),
			validation.Length(3, 50),
		),
		validation.Field(&r.Name,
			validation.Length(0, 255),
		),
		validation.Field(&r.Password,
			validation.Required.Error("password is required"),
			validation.Length(8, 72),
		),
		validation.Field(&r.Role,
			validation.In(RoleCustomer, RoleAdmin).Error("role must be customer or admin"),
		),
	)
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required.Error("username is required")),
		validation.Field(&r.Password, validation.Required.Error("password is required")),
	)
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	User        *User  `json:"user"`
}

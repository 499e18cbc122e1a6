package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	customersvc "storefront-backend/internal/domains/customer/service"
	"storefront-backend/internal/domains/user/model"
	"storefront-backend/internal/domains/user/repository"
	"storefront-backend/pkg/jwt"
)

// ServiceInterface handles registration and login
type ServiceInterface interface {
	Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error)
	Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*model.User, error)
}

type userService struct {
	users      repository.UserRepository
	customers  customersvc.ServiceInterface
	jwtManager *jwt.Manager
}

func NewUserService(users repository.UserRepository, customers customersvc.ServiceInterface, jwtManager *jwt.Manager) ServiceInterface {
	return &userService{
		users:      users,
		customers:  customers,
		jwtManager: jwtManager,
	}
}

// Register creates a login account. Customer accounts get linked to
// the customer record matching the username, creating one when none
// exists, so purchases land on the right ledger.
func (s *userService) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	role := req.Role
	if role == "" {
		role = model.RoleCustomer
	}

	// bcrypt cost 12, same tradeoff as everywhere else in this codebase
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		ID:           uuid.New(),
		Username:     req.Username,
		PasswordHash: string(passwordHash),
		Role:         role,
		CreatedAt:    time.Now(),
	}

	if role == model.RoleCustomer {
		// Link by the display name when given, so an account can attach
		// to an existing customer record under a different name
		name := req.Name
		if name == "" {
			name = req.Username
		}
		customer, err := s.customers.FindOrCreateByName(ctx, name)
		if err != nil {
			return nil, err
		}
		user.CustomerID = &customer.ID
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *userService) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	user, err := s.users.GetByUsername(ctx, req.Username)
	if err != nil {
		// Same answer for unknown username and wrong password
		return nil, model.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, model.ErrInvalidCredentials
	}

	customerID := ""
	if user.CustomerID != nil {
		customerID = user.CustomerID.String()
	}

	token, err := s.jwtManager.GenerateAccessToken(user.ID.String(), user.Username, user.Role, customerID)
	if err != nil {
		return nil, err
	}

	return &model.LoginResponse{
		AccessToken: token,
		User:        user,
	}, nil
}

func (s *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	return s.users.GetByID(ctx, userID)
}

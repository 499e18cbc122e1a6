package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"storefront-backend/internal/domains/customer/model"
	"storefront-backend/internal/domains/customer/repository"
)

// ServiceInterface manages customer records and their purchase history
type ServiceInterface interface {
	CreateCustomer(ctx context.Context, name string) (*model.Customer, error)
	FindOrCreateByName(ctx context.Context, name string) (*model.Customer, error)
	GetCustomer(ctx context.Context, id uuid.UUID) (*model.Customer, error)
	ListCustomers(ctx context.Context, search string) ([]model.Customer, error)
	UpdateCustomer(ctx context.Context, id uuid.UUID, name string) (*model.Customer, error)
	DeleteCustomer(ctx context.Context, id uuid.UUID) error
	PurchaseHistory(ctx context.Context, customerID uuid.UUID) ([]model.PurchaseHistoryItem, error)
}

type customerService struct {
	customers repository.CustomerRepository
}

func NewCustomerService(customers repository.CustomerRepository) ServiceInterface {
	return &customerService{customers: customers}
}

func (s *customerService) CreateCustomer(ctx context.Context, name string) (*model.Customer, error) {
	customer := &model.Customer{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: time.Now(),
	}

	if err := s.customers.Create(ctx, customer); err != nil {
		return nil, err
	}

	return customer, nil
}

// FindOrCreateByName links a registering user account to an existing
// customer record, creating one when none matches.
func (s *customerService) FindOrCreateByName(ctx context.Context, name string) (*model.Customer, error) {
	customer, err := s.customers.GetByName(ctx, name)
	if err == nil {
		return customer, nil
	}
	if !errors.Is(err, model.ErrCustomerNotFound) {
		return nil, err
	}

	return s.CreateCustomer(ctx, name)
}

func (s *customerService) GetCustomer(ctx context.Context, id uuid.UUID) (*model.Customer, error) {
	return s.customers.GetByID(ctx, id)
}

func (s *customerService) ListCustomers(ctx context.Context, search string) ([]model.Customer, error) {
	return s.customers.List(ctx, search)
}

func (s *customerService) UpdateCustomer(ctx context.Context, id uuid.UUID, name string) (*model.Customer, error) {
	customer, err := s.customers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	customer.Name = name
	if err := s.customers.Update(ctx, customer); err != nil {
		return nil, err
	}

	return customer, nil
}

func (s *customerService) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	return s.customers.Delete(ctx, id)
}

func (s *customerService) PurchaseHistory(ctx context.Context, customerID uuid.UUID) ([]model.PurchaseHistoryItem, error) {
	if _, err := s.customers.GetByID(ctx, customerID); err != nil {
		return nil, err
	}

	return s.customers.PurchaseHistory(ctx, customerID)
}

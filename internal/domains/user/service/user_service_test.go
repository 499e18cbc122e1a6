package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	customermodel "storefront-backend/internal/domains/customer/model"
	"storefront-backend/internal/domains/user/model"
	"storefront-backend/pkg/jwt"
)

type userRepoFake struct {
	byUsername map[string]*model.User
}

func newUserRepoFake() *userRepoFake {
	return &userRepoFake{byUsername: make(map[string]*model.User)}
}

func (f *userRepoFake) Create(_ context.Context, u *model.User) error {
	if _, exists := f.byUsername[u.Username]; exists {
		return model.ErrUsernameTaken
	}
	stored := *u
	f.byUsername[u.Username] = &stored
	return nil
}

func (f *userRepoFake) GetByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	for _, u := range f.byUsername {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, model.ErrUserNotFound
}

func (f *userRepoFake) GetByUsername(_ context.Context, username string) (*model.User, error) {
	u, ok := f.byUsername[username]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return u, nil
}

// customerServiceFake implements only the pieces Register needs
type customerServiceFake struct {
	byName map[string]*customermodel.Customer
}

func newCustomerServiceFake() *customerServiceFake {
	return &customerServiceFake{byName: make(map[string]*customermodel.Customer)}
}

func (f *customerServiceFake) FindOrCreateByName(_ context.Context, name string) (*customermodel.Customer, error) {
	if c, ok := f.byName[name]; ok {
		return c, nil
	}
	c := &customermodel.Customer{ID: uuid.New(), Name: name}
	f.byName[name] = c
	return c, nil
}

func (f *customerServiceFake) CreateCustomer(ctx context.Context, name string) (*customermodel.Customer, error) {
	return f.FindOrCreateByName(ctx, name)
}

func (f *customerServiceFake) GetCustomer(context.Context, uuid.UUID) (*customermodel.Customer, error) {
	return nil, customermodel.ErrCustomerNotFound
}

func (f *customerServiceFake) ListCustomers(context.Context, string) ([]customermodel.Customer, error) {
	return nil, nil
}

func (f *customerServiceFake) UpdateCustomer(context.Context, uuid.UUID, string) (*customermodel.Customer, error) {
	return nil, customermodel.ErrCustomerNotFound
}

func (f *customerServiceFake) DeleteCustomer(context.Context, uuid.UUID) error {
	return customermodel.ErrCustomerNotFound
}

func (f *customerServiceFake) PurchaseHistory(context.Context, uuid.UUID) ([]customermodel.PurchaseHistoryItem, error) {
	return nil, nil
}

func newTestUserService() (ServiceInterface, *userRepoFake, *customerServiceFake) {
	users := newUserRepoFake()
	customers := newCustomerServiceFake()
	return NewUserService(users, customers, jwt.NewManager("test-secret", 60)), users, customers
}

func TestRegister_CustomerAccountLinksCustomerRecord(t *testing.T) {
	svc, _, customers := newTestUserService()

	user, err := svc.Register(context.Background(), &model.RegisterRequest{
		Username: "alice",
		Password: "password123",
	})
	require.NoError(t, err)

	assert.Equal(t, model.RoleCustomer, user.Role, "role defaults to customer")
	require.NotNil(t, user.CustomerID)
	assert.Equal(t, customers.byName["alice"].ID, *user.CustomerID)
	assert.NotEqual(t, "password123", user.PasswordHash)
}

func TestRegister_DisplayNameLinksExistingCustomer(t *testing.T) {
	svc, _, customers := newTestUserService()

	// Customer record created earlier by an admin, under a name that
	// differs from the eventual username
	existing, err := customers.FindOrCreateByName(context.Background(), "Alice Smith")
	require.NoError(t, err)

	user, err := svc.Register(context.Background(), &model.RegisterRequest{
		Username: "asmith",
		Password: "password123",
		Name:     "Alice Smith",
	})
	require.NoError(t, err)

	require.NotNil(t, user.CustomerID)
	assert.Equal(t, existing.ID, *user.CustomerID)
	assert.NotContains(t, customers.byName, "asmith", "no duplicate record under the username")
}

func TestRegister_AdminAccountHasNoCustomerLink(t *testing.T) {
	svc, _, customers := newTestUserService()

	user, err := svc.Register(context.Background(), &model.RegisterRequest{
		Username: "root",
		Password: "password123",
		Role:     model.RoleAdmin,
	})
	require.NoError(t, err)

	assert.Nil(t, user.CustomerID)
	assert.Empty(t, customers.byName)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	svc, _, _ := newTestUserService()

	_, err := svc.Register(context.Background(), &model.RegisterRequest{Username: "alice", Password: "password123"})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), &model.RegisterRequest{Username: "alice", Password: "password456"})
	assert.ErrorIs(t, err, model.ErrUsernameTaken)
}

func TestLogin_RoundTrip(t *testing.T) {
	svc, _, _ := newTestUserService()

	registered, err := svc.Register(context.Background(), &model.RegisterRequest{
		Username: "alice",
		Password: "password123",
	})
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), &model.LoginRequest{
		Username: "alice",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, registered.ID, resp.User.ID)

	// The token carries the customer link for the shop endpoints
	claims, err := jwt.NewManager("test-secret", 60).VerifyToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, registered.CustomerID.String(), claims.CustomerID)
	assert.Equal(t, model.RoleCustomer, claims.Role)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _, _ := newTestUserService()

	_, err := svc.Register(context.Background(), &model.RegisterRequest{Username: "alice", Password: "password123"})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), &model.LoginRequest{Username: "alice", Password: "wrong"})
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), &model.LoginRequest{Username: "nobody", Password: "password123"})
	assert.ErrorIs(t, err, model.ErrInvalidCredentials,
		"unknown username and wrong password are indistinguishable")
}

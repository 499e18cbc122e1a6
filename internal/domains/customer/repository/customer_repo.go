package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"storefront-backend/internal/domains/customer/model"
)

var (
	decimalOne     = decimal.NewFromInt(1)
	decimalHundred = decimal.NewFromInt(100)
)

// CustomerRepository persists customers and reads their ledger history
type CustomerRepository interface {
	Create(ctx context.Context, customer *model.Customer) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Customer, error)
	GetByName(ctx context.Context, name string) (*model.Customer, error)
	List(ctx context.Context, search string) ([]model.Customer, error)
	Update(ctx context.Context, customer *model.Customer) error
	Delete(ctx context.Context, id uuid.UUID) error
	PurchaseHistory(ctx context.Context, customerID uuid.UUID) ([]model.PurchaseHistoryItem, error)
}

// PostgresCustomerRepository implements CustomerRepository with PostgreSQL
type PostgresCustomerRepository struct {
	db *pgxpool.Pool
}

func NewPostgresCustomerRepository(db *pgxpool.Pool) CustomerRepository {
	return &PostgresCustomerRepository{db: db}
}

func (r *PostgresCustomerRepository) Create(ctx context.Context, customer *model.Customer) error {
	query := `
		INSERT INTO customers (id, name, created_at)
		VALUES ($1, $2, $3)
	`

	_, err := r.db.Exec(ctx, query, customer.ID, customer.Name, customer.CreatedAt)
	if err != nil {
		return fmt.Errorf("create customer: %w", err)
	}

	return nil
}

func (r *PostgresCustomerRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Customer, error) {
	query := `
		SELECT id, name, created_at
		FROM customers
		WHERE id = $1
	`

	var c model.Customer
	err := r.db.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrCustomerNotFound
		}
		return nil, fmt.Errorf("get customer by id: %w", err)
	}

	return &c, nil
}

// GetByName resolves the customer a user account is linked to at
// registration. Names are unique.
func (r *PostgresCustomerRepository) GetByName(ctx context.Context, name string) (*model.Customer, error) {
	query := `
		SELECT id, name, created_at
		FROM customers
		WHERE name = $1
	`

	var c model.Customer
	err := r.db.QueryRow(ctx, query, name).Scan(&c.ID, &c.Name, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrCustomerNotFound
		}
		return nil, fmt.Errorf("get customer by name: %w", err)
	}

	return &c, nil
}

func (r *PostgresCustomerRepository) List(ctx context.Context, search string) ([]model.Customer, error) {
	query := `
		SELECT id, name, created_at
		FROM customers
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')
		ORDER BY id ASC
	`

	rows, err := r.db.Query(ctx, query, search)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	var customers []model.Customer
	for rows.Next() {
		var c model.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		customers = append(customers, c)
	}

	return customers, rows.Err()
}

func (r *PostgresCustomerRepository) Update(ctx context.Context, customer *model.Customer) error {
	result, err := r.db.Exec(ctx, `UPDATE customers SET name = $2 WHERE id = $1`, customer.ID, customer.Name)
	if err != nil {
		return fmt.Errorf("update customer: %w", err)
	}
	if result.RowsAffected() == 0 {
		return model.ErrCustomerNotFound
	}

	return nil
}

func (r *PostgresCustomerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	if result.RowsAffected() == 0 {
		return model.ErrCustomerNotFound
	}

	return nil
}

// PurchaseHistory joins the ledger with products and the customer's
// current discount on each product's category. The paid price is
// discounted only when the entry was bought with a discount AND a
// matching discount still exists; otherwise the list price stands.
func (r *PostgresCustomerRepository) PurchaseHistory(ctx context.Context, customerID uuid.UUID) ([]model.PurchaseHistoryItem, error) {
	query := `
		SELECT p.id,
		       p.name,
		       p.category,
		       p.price,
		       b.discount_applied,
		       d.percentage,
		       b.purchased_at
		FROM purchases b
		JOIN products p ON p.id = b.product_id
		LEFT JOIN discounts d ON d.customer_id = b.customer_id AND d.category = p.category
		WHERE b.customer_id = $1
		ORDER BY b.purchased_at ASC, p.id ASC
	`

	rows, err := r.db.Query(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("purchase history: %w", err)
	}
	defer rows.Close()

	var history []model.PurchaseHistoryItem
	for rows.Next() {
		var item model.PurchaseHistoryItem
		err := rows.Scan(
			&item.ProductID,
			&item.ProductName,
			&item.Category,
			&item.ListPrice,
			&item.DiscountApplied,
			&item.DiscountPercentage,
			&item.PurchasedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan purchase history: %w", err)
		}

		item.PaidPrice = item.ListPrice
		if item.DiscountApplied && item.DiscountPercentage != nil {
			factor := decimalOne.Sub(item.DiscountPercentage.Div(decimalHundred))
			item.PaidPrice = item.ListPrice.Mul(factor)
		}

		history = append(history, item)
	}

	return history, rows.Err()
}

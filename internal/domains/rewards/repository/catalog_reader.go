package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"storefront-backend/internal/domains/rewards/model"
)

// PostgresCatalogReader implements CatalogReader with PostgreSQL.
// The engine shares the catalog tables with the catalog domain but
// only ever reads them.
type PostgresCatalogReader struct {
	db *pgxpool.Pool
}

func NewPostgresCatalogReader(db *pgxpool.Pool) CatalogReader {
	return &PostgresCatalogReader{db: db}
}

func (r *PostgresCatalogReader) GetProduct(ctx context.Context, id uuid.UUID) (*model.ProductRef, error) {
	query := `SELECT id, name, price, category FROM products WHERE id = $1`

	var p model.ProductRef
	err := r.db.QueryRow(ctx, query, id).Scan(&p.ID, &p.Name, &p.Price, &p.Category)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrProductNotFound
		}
		return nil, fmt.Errorf("get product: %w", err)
	}

	return &p, nil
}

func (r *PostgresCatalogReader) GetCustomer(ctx context.Context, id uuid.UUID) (*model.CustomerRef, error) {
	query := `SELECT id, name FROM customers WHERE id = $1`

	var c model.CustomerRef
	err := r.db.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrCustomerNotFound
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}

	return &c, nil
}

// ListUnpurchased is the storefront listing: products the customer has
// not bought yet, with any discount matching (customer, category).
func (r *PostgresCatalogReader) ListUnpurchased(ctx context.Context, customerID uuid.UUID) ([]model.StorefrontItem, error) {
	query := `
		SELECT p.id, p.name, p.price, p.category, d.percentage
		FROM products p
		LEFT JOIN discounts d ON p.category = d.category AND d.customer_id = $1
		WHERE p.id NOT IN (SELECT product_id FROM purchases WHERE customer_id = $1)
		ORDER BY p.id ASC
	`

	rows, err := r.db.Query(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("list unpurchased products: %w", err)
	}
	defer rows.Close()

	var items []model.StorefrontItem
	for rows.Next() {
		var item model.StorefrontItem
		var percentage *decimal.Decimal
		err := rows.Scan(&item.ProductID, &item.Name, &item.Price, &item.Category, &percentage)
		if err != nil {
			return nil, fmt.Errorf("scan storefront item: %w", err)
		}

		item.DiscountPercentage = percentage
		if percentage != nil {
			item.EffectivePrice = model.ApplyPercentage(item.Price, *percentage)
		} else {
			item.EffectivePrice = item.Price
		}

		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list unpurchased rows: %w", err)
	}

	return items, nil
}

// ListRecommendationCandidates returns the raw candidate rows for the
// recommendation generator. Ordered by product id ascending so the
// first-seen-per-category dedup is stable across runs.
func (r *PostgresCatalogReader) ListRecommendationCandidates(ctx context.Context, customerID uuid.UUID) ([]model.RecommendationRow, error) {
	query := `
		SELECT p.id, p.name, p.price, p.category, d.percentage
		FROM products p
		LEFT JOIN discounts d ON p.category = d.category AND d.customer_id = $1
		WHERE p.category IN (
			SELECT DISTINCT pr.category
			FROM purchases b
			INNER JOIN products pr ON b.product_id = pr.id
			WHERE b.customer_id = $1
		)
		AND p.id NOT IN (SELECT product_id FROM purchases WHERE customer_id = $1)
		ORDER BY p.id ASC
	`

	rows, err := r.db.Query(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("list recommendation candidates: %w", err)
	}
	defer rows.Close()

	var candidates []model.RecommendationRow
	for rows.Next() {
		var row model.RecommendationRow
		err := rows.Scan(&row.ProductID, &row.Name, &row.Price, &row.Category, &row.DiscountPercentage)
		if err != nil {
			return nil, fmt.Errorf("scan recommendation candidate: %w", err)
		}
		candidates = append(candidates, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("recommendation candidates rows: %w", err)
	}

	return candidates, nil
}

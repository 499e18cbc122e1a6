package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"storefront-backend/internal/domains/rewards/model"
)

// PostgresLedgerRepository implements LedgerRepository with PostgreSQL
type PostgresLedgerRepository struct {
	db *pgxpool.Pool
}

func NewPostgresLedgerRepository(db *pgxpool.Pool) LedgerRepository {
	return &PostgresLedgerRepository{db: db}
}

// InsertPurchase appends a ledger row. ON CONFLICT DO NOTHING makes the
// duplicate case a silent no-op; the caller learns whether a row was
// actually written from the bool.
func (r *PostgresLedgerRepository) InsertPurchase(ctx context.Context, purchase *model.Purchase) (bool, error) {
	query := `
		INSERT INTO purchases (customer_id, product_id, discount_applied, purchased_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (customer_id, product_id) DO NOTHING
	`

	result, err := r.db.Exec(ctx, query,
		purchase.CustomerID,
		purchase.ProductID,
		purchase.DiscountApplied,
	)
	if err != nil {
		return false, fmt.Errorf("insert purchase: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

// CategoryCounts groups the customer's ledger by product category
func (r *PostgresLedgerRepository) CategoryCounts(ctx context.Context, customerID uuid.UUID) ([]model.CategoryCount, error) {
	query := `
		SELECT p.category, COUNT(b.product_id) AS purchase_count
		FROM purchases b
		INNER JOIN products p ON b.product_id = p.id
		WHERE b.customer_id = $1
		GROUP BY p.category
	`

	rows, err := r.db.Query(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("category counts: %w", err)
	}
	defer rows.Close()

	var counts []model.CategoryCount
	for rows.Next() {
		var c model.CategoryCount
		if err := rows.Scan(&c.Category, &c.Count); err != nil {
			return nil, fmt.Errorf("scan category count: %w", err)
		}
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("category counts rows: %w", err)
	}

	return counts, nil
}

// TotalPurchases counts all ledger rows for the customer
func (r *PostgresLedgerRepository) TotalPurchases(ctx context.Context, customerID uuid.UUID) (int, error) {
	query := `SELECT COUNT(*) FROM purchases WHERE customer_id = $1`

	var total int
	if err := r.db.QueryRow(ctx, query, customerID).Scan(&total); err != nil {
		return 0, fmt.Errorf("total purchases: %w", err)
	}

	return total, nil
}

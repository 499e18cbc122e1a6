package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"storefront-backend/internal/domains/rewards/model"
	"storefront-backend/pkg/database"
)

// PostgresDiscountRepository implements DiscountRepository with PostgreSQL
type PostgresDiscountRepository struct {
	db *pgxpool.Pool
}

func NewPostgresDiscountRepository(db *pgxpool.Pool) DiscountRepository {
	return &PostgresDiscountRepository{db: db}
}

// FindForCustomerCategory looks up the discount scoped to this customer
// and category, any type.
func (r *PostgresDiscountRepository) FindForCustomerCategory(ctx context.Context, customerID uuid.UUID, category string) (*model.Discount, error) {
	query := `
		SELECT id, percentage, type, promo_label, customer_id, category, created_at
		FROM discounts
		WHERE customer_id = $1 AND category = $2
	`

	var d model.Discount
	err := r.db.QueryRow(ctx, query, customerID, category).Scan(
		&d.ID,
		&d.Percentage,
		&d.Type,
		&d.PromoLabel,
		&d.CustomerID,
		&d.Category,
		&d.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrDiscountNotFound
		}
		return nil, fmt.Errorf("find discount for customer category: %w", err)
	}

	return &d, nil
}

// ListRewardsForCustomer returns the customer's Rewards rows, highest
// percentage first.
func (r *PostgresDiscountRepository) ListRewardsForCustomer(ctx context.Context, customerID uuid.UUID) ([]model.Discount, error) {
	query := `
		SELECT id, percentage, type, promo_label, customer_id, category, created_at
		FROM discounts
		WHERE customer_id = $1 AND type = $2
		ORDER BY percentage DESC
	`

	rows, err := r.db.Query(ctx, query, customerID, model.DiscountTypeRewards)
	if err != nil {
		return nil, fmt.Errorf("list rewards for customer: %w", err)
	}
	defer rows.Close()

	var discounts []model.Discount
	for rows.Next() {
		var d model.Discount
		err := rows.Scan(
			&d.ID,
			&d.Percentage,
			&d.Type,
			&d.PromoLabel,
			&d.CustomerID,
			&d.Category,
			&d.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan rewards discount: %w", err)
		}
		discounts = append(discounts, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list rewards rows: %w", err)
	}

	return discounts, nil
}

// ReplaceRewards wipes the customer's Rewards rows and writes one row
// per grant. Delete and inserts run in one transaction so no partial
// reward state is ever visible; rerunning with the same grants is
// idempotent.
func (r *PostgresDiscountRepository) ReplaceRewards(ctx context.Context, customerID uuid.UUID, grants []model.Grant) error {
	return database.WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx,
			`DELETE FROM discounts WHERE customer_id = $1 AND type = $2`,
			customerID, model.DiscountTypeRewards,
		)
		if err != nil {
			return fmt.Errorf("delete rewards discounts: %w", err)
		}

		for _, grant := range grants {
			_, err := tx.Exec(ctx,
				`INSERT INTO discounts (id, percentage, type, customer_id, category, created_at)
				 VALUES ($1, $2, $3, $4, $5, NOW())`,
				uuid.New(), grant.Percentage, model.DiscountTypeRewards, customerID, grant.Category,
			)
			if err != nil {
				return fmt.Errorf("insert rewards discount: %w", err)
			}
		}

		return nil
	})
}

// InsertRewards writes a single Rewards row for the manual allocation
// path. Unlike ReplaceRewards it leaves every other row alone.
func (r *PostgresDiscountRepository) InsertRewards(ctx context.Context, discount *model.Discount) error {
	if discount.CustomerID == nil || discount.Category == nil {
		return model.ErrInvalidDiscount
	}

	if discount.ID == uuid.Nil {
		discount.ID = uuid.New()
	}

	query := `
		INSERT INTO discounts (id, percentage, type, customer_id, category, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING created_at
	`

	err := r.db.QueryRow(ctx, query,
		discount.ID,
		discount.Percentage,
		model.DiscountTypeRewards,
		discount.CustomerID,
		discount.Category,
	).Scan(&discount.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert rewards discount: %w", err)
	}

	discount.Type = model.DiscountTypeRewards
	return nil
}

// CreatePromotional writes an admin-defined promotional discount
func (r *PostgresDiscountRepository) CreatePromotional(ctx context.Context, discount *model.Discount) error {
	if discount.ID == uuid.Nil {
		discount.ID = uuid.New()
	}

	query := `
		INSERT INTO discounts (id, percentage, type, promo_label, customer_id, category, created_at)
		VALUES ($1, $2, $3, $4, NULL, NULL, NOW())
		RETURNING created_at
	`

	err := r.db.QueryRow(ctx, query,
		discount.ID,
		discount.Percentage,
		model.DiscountTypePromotional,
		discount.PromoLabel,
	).Scan(&discount.CreatedAt)
	if err != nil {
		return fmt.Errorf("create promotional discount: %w", err)
	}

	discount.Type = model.DiscountTypePromotional
	return nil
}

// List returns every discount joined with the owning customer's name
func (r *PostgresDiscountRepository) List(ctx context.Context) ([]model.DiscountRow, error) {
	query := `
		SELECT d.id, d.percentage, d.type, d.promo_label, d.customer_id, d.category, d.created_at,
		       c.name AS customer_name
		FROM discounts d
		LEFT JOIN customers c ON d.customer_id = c.id
		ORDER BY d.created_at DESC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list discounts: %w", err)
	}
	defer rows.Close()

	var items []model.DiscountRow
	for rows.Next() {
		var item model.DiscountRow
		err := rows.Scan(
			&item.ID,
			&item.Percentage,
			&item.Type,
			&item.PromoLabel,
			&item.CustomerID,
			&item.Category,
			&item.CreatedAt,
			&item.CustomerName,
		)
		if err != nil {
			return nil, fmt.Errorf("scan discount row: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list discounts rows: %w", err)
	}

	return items, nil
}

// Delete removes a discount by id
func (r *PostgresDiscountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM discounts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete discount: %w", err)
	}

	if result.RowsAffected() == 0 {
		return model.ErrDiscountNotFound
	}

	return nil
}

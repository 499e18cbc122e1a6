package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"storefront-backend/internal/domains/catalog/model"
)

// PostgresVendorRepository implements VendorRepository with PostgreSQL
type PostgresVendorRepository struct {
	db *pgxpool.Pool
}

func NewPostgresVendorRepository(db *pgxpool.Pool) VendorRepository {
	return &PostgresVendorRepository{db: db}
}

func (r *PostgresVendorRepository) Create(ctx context.Context, vendor *model.Vendor) error {
	query := `
		INSERT INTO vendors (id, name, created_at)
		VALUES ($1, $2, $3)
	`

	_, err := r.db.Exec(ctx, query, vendor.ID, vendor.Name, vendor.CreatedAt)
	if err != nil {
		return fmt.Errorf("create vendor: %w", err)
	}

	return nil
}

func (r *PostgresVendorRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Vendor, error) {
	query := `
		SELECT id, name, created_at
		FROM vendors
		WHERE id = $1
	`

	var v model.Vendor
	err := r.db.QueryRow(ctx, query, id).Scan(&v.ID, &v.Name, &v.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrVendorNotFound
		}
		return nil, fmt.Errorf("get vendor by id: %w", err)
	}

	return &v, nil
}

func (r *PostgresVendorRepository) List(ctx context.Context, search string) ([]model.Vendor, error) {
	query := `
		SELECT id, name, created_at
		FROM vendors
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')
		ORDER BY id ASC
	`

	rows, err := r.db.Query(ctx, query, search)
	if err != nil {
		return nil, fmt.Errorf("list vendors: %w", err)
	}
	defer rows.Close()

	var vendors []model.Vendor
	for rows.Next() {
		var v model.Vendor
		if err := rows.Scan(&v.ID, &v.Name, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan vendor: %w", err)
		}
		vendors = append(vendors, v)
	}

	return vendors, rows.Err()
}

func (r *PostgresVendorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM vendors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete vendor: %w", err)
	}
	if result.RowsAffected() == 0 {
		return model.ErrVendorNotFound
	}

	return nil
}

func (r *PostgresVendorRepository) LinkSupply(ctx context.Context, vendorID, productID uuid.UUID) error {
	query := `
		INSERT INTO supplies (vendor_id, product_id)
		VALUES ($1, $2)
	`

	_, err := r.db.Exec(ctx, query, vendorID, productID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return model.ErrSupplyExists
		}
		return fmt.Errorf("link supply: %w", err)
	}

	return nil
}

func (r *PostgresVendorRepository) UnlinkSupply(ctx context.Context, vendorID, productID uuid.UUID) error {
	query := `
		DELETE FROM supplies
		WHERE vendor_id = $1 AND product_id = $2
	`

	result, err := r.db.Exec(ctx, query, vendorID, productID)
	if err != nil {
		return fmt.Errorf("unlink supply: %w", err)
	}
	if result.RowsAffected() == 0 {
		return model.ErrSupplyNotFound
	}

	return nil
}

func (r *PostgresVendorRepository) ListSuppliedProducts(ctx context.Context, vendorID uuid.UUID) ([]model.Product, error) {
	query := `
		SELECT p.id, p.name, p.price, p.category, p.created_at
		FROM products p
		JOIN supplies s ON s.product_id = p.id
		WHERE s.vendor_id = $1
		ORDER BY p.id ASC
	`

	rows, err := r.db.Query(ctx, query, vendorID)
	if err != nil {
		return nil, fmt.Errorf("list supplied products: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		var p model.Product
		err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Category, &p.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan supplied product: %w", err)
		}
		products = append(products, p)
	}

	return products, rows.Err()
}

// PerformanceReport attributes each sold unit and its list-price
// revenue to the vendor through its supplied products.
func (r *PostgresVendorRepository) PerformanceReport(ctx context.Context, vendorID uuid.UUID) (*model.VendorPerformance, error) {
	query := `
		SELECT v.id,
		       v.name,
		       COUNT(DISTINCT s.product_id) AS products_supplied,
		       COUNT(b.product_id) AS units_sold,
		       COALESCE(SUM(p.price) FILTER (WHERE b.product_id IS NOT NULL), 0) AS revenue
		FROM vendors v
		LEFT JOIN supplies s ON s.vendor_id = v.id
		LEFT JOIN products p ON p.id = s.product_id
		LEFT JOIN purchases b ON b.product_id = s.product_id
		WHERE v.id = $1
		GROUP BY v.id, v.name
	`

	var vp model.VendorPerformance
	err := r.db.QueryRow(ctx, query, vendorID).Scan(
		&vp.VendorID,
		&vp.VendorName,
		&vp.ProductsSupplied,
		&vp.UnitsSold,
		&vp.Revenue,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrVendorNotFound
		}
		return nil, fmt.Errorf("vendor performance report: %w", err)
	}

	topQuery := `
		SELECT p.name, COUNT(b.product_id) AS units
		FROM supplies s
		JOIN products p ON p.id = s.product_id
		LEFT JOIN purchases b ON b.product_id = s.product_id
		WHERE s.vendor_id = $1
		GROUP BY p.id, p.name
		ORDER BY units DESC, p.id ASC
		LIMIT 1
	`

	vp.TopProductName = "None"
	err = r.db.QueryRow(ctx, topQuery, vendorID).Scan(&vp.TopProductName, &vp.TopProductUnits)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("vendor top product: %w", err)
	}
	if vp.TopProductUnits == 0 {
		vp.TopProductName = "None"
	}

	return &vp, nil
}

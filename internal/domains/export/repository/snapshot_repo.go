package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"storefront-backend/internal/domains/export/model"
)

// SnapshotRepository reads the full datastore state for export
type SnapshotRepository interface {
	ReadSnapshot(ctx context.Context) (*model.Snapshot, error)
}

// PostgresSnapshotRepository implements SnapshotRepository with PostgreSQL
type PostgresSnapshotRepository struct {
	db *pgxpool.Pool
}

func NewPostgresSnapshotRepository(db *pgxpool.Pool) SnapshotRepository {
	return &PostgresSnapshotRepository{db: db}
}

// ReadSnapshot gathers every section in a stable order so two exports
// of the same state produce identical files.
func (r *PostgresSnapshotRepository) ReadSnapshot(ctx context.Context) (*model.Snapshot, error) {
	snap := &model.Snapshot{}

	rows, err := r.db.Query(ctx, `SELECT price, name, category FROM products ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("snapshot products: %w", err)
	}
	for rows.Next() {
		var p model.ProductLine
		if err := rows.Scan(&p.Price, &p.Name, &p.Category); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan product line: %w", err)
		}
		snap.Products = append(snap.Products, p)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = r.db.Query(ctx, `SELECT name FROM customers ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("snapshot customers: %w", err)
	}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan customer line: %w", err)
		}
		snap.Customers = append(snap.Customers, name)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = r.db.Query(ctx, `SELECT name FROM vendors ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("snapshot vendors: %w", err)
	}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan vendor line: %w", err)
		}
		snap.Vendors = append(snap.Vendors, name)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = r.db.Query(ctx, `SELECT customer_id, product_id, discount_applied FROM purchases ORDER BY customer_id ASC, product_id ASC`)
	if err != nil {
		return nil, fmt.Errorf("snapshot purchases: %w", err)
	}
	for rows.Next() {
		var b model.PurchaseLine
		if err := rows.Scan(&b.CustomerID, &b.ProductID, &b.DiscountApplied); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan purchase line: %w", err)
		}
		snap.Purchases = append(snap.Purchases, b)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = r.db.Query(ctx, `SELECT vendor_id, product_id FROM supplies ORDER BY vendor_id ASC, product_id ASC`)
	if err != nil {
		return nil, fmt.Errorf("snapshot supplies: %w", err)
	}
	for rows.Next() {
		var s model.SupplyLine
		if err := rows.Scan(&s.VendorID, &s.ProductID); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan supply line: %w", err)
		}
		snap.Supplies = append(snap.Supplies, s)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Promotional rows have no customer or category and are not part of
	// the exported file.
	rows, err = r.db.Query(ctx, `
		SELECT percentage, type, customer_id, category
		FROM discounts
		WHERE customer_id IS NOT NULL AND category IS NOT NULL
		ORDER BY created_at ASC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("snapshot discounts: %w", err)
	}
	for rows.Next() {
		var d model.DiscountLine
		if err := rows.Scan(&d.Percentage, &d.Type, &d.CustomerID, &d.Category); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan discount line: %w", err)
		}
		snap.Discounts = append(snap.Discounts, d)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = r.db.Query(ctx, `
		SELECT u.username, u.password_hash, u.role, COALESCE(c.name, '')
		FROM users u
		LEFT JOIN customers c ON c.id = u.customer_id
		ORDER BY u.created_at ASC, u.id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("snapshot users: %w", err)
	}
	for rows.Next() {
		var u model.UserLine
		if err := rows.Scan(&u.Username, &u.PasswordHash, &u.Role, &u.CustomerName); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan user line: %w", err)
		}
		snap.Users = append(snap.Users, u)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return snap, nil
}

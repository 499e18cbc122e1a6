package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"storefront-backend/internal/domains/export/model"
	"storefront-backend/internal/domains/export/repository"
)

// ServiceInterface writes a flat-text snapshot of the datastore
type ServiceInterface interface {
	Export(ctx context.Context) (string, error)
}

type exportService struct {
	snapshots repository.SnapshotRepository
	path      string
}

func NewExportService(snapshots repository.SnapshotRepository, path string) ServiceInterface {
	return &exportService{
		snapshots: snapshots,
		path:      path,
	}
}

// Export reads the full state and writes it to the configured path,
// returning the path written. The write goes through a temp file and
// rename so a concurrent reader never sees a half-written file.
func (s *exportService) Export(ctx context.Context) (string, error) {
	snap, err := s.snapshots.ReadSnapshot(ctx)
	if err != nil {
		return "", err
	}

	content := FormatSnapshot(snap)

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".export-*")
	if err != nil {
		return "", fmt.Errorf("create temp export file: %w", err)
	}
	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("write export: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("close export: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("rename export: %w", err)
	}

	return s.path, nil
}

// FormatSnapshot renders the section format: a header comment, then
// one block per table with comma-separated lines.
func FormatSnapshot(snap *model.Snapshot) string {
	var b strings.Builder

	b.WriteString("# Sample data for e-commerce database\n")

	b.WriteString("\nPRODUCTS\n")
	for _, p := range snap.Products {
		fmt.Fprintf(&b, "%s,%s,%s\n", p.Price.String(), p.Name, p.Category)
	}

	b.WriteString("\nCUSTOMERS\n")
	for _, name := range snap.Customers {
		b.WriteString(name + "\n")
	}

	b.WriteString("\nVENDORS\n")
	for _, name := range snap.Vendors {
		b.WriteString(name + "\n")
	}

	b.WriteString("\nBUYS\n")
	for _, p := range snap.Purchases {
		fmt.Fprintf(&b, "%s,%s,%d\n", p.CustomerID, p.ProductID, boolToInt(p.DiscountApplied))
	}

	b.WriteString("\nSUPPLIES\n")
	for _, s := range snap.Supplies {
		fmt.Fprintf(&b, "%s,%s\n", s.VendorID, s.ProductID)
	}

	b.WriteString("\nDISCOUNTS\n")
	for _, d := range snap.Discounts {
		fmt.Fprintf(&b, "%s,%s,%s,%s\n", d.Percentage.String(), d.Type, d.CustomerID, d.Category)
	}

	b.WriteString("\nUSERS\n")
	for _, u := range snap.Users {
		customer := u.CustomerName
		if customer == "" {
			customer = "NULL"
		}
		fmt.Fprintf(&b, "%s,%s,%s,%s\n", u.Username, u.PasswordHash, u.Role, customer)
	}

	return b.String()
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

package service

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"storefront-backend/internal/domains/rewards/model"
)

// storeFake backs all three repository interfaces with maps so service
// flows can run end to end without PostgreSQL.
type storeFake struct {
	products  map[uuid.UUID]model.ProductRef
	customers map[uuid.UUID]model.CustomerRef
	purchases map[[2]uuid.UUID]*model.Purchase
	discounts []*model.Discount

	// returned once by ReplaceRewards, then cleared
	replaceErr error
}

func newStoreFake() *storeFake {
	return &storeFake{
		products:  make(map[uuid.UUID]model.ProductRef),
		customers: make(map[uuid.UUID]model.CustomerRef),
		purchases: make(map[[2]uuid.UUID]*model.Purchase),
	}
}

func (f *storeFake) addCustomer(name string) uuid.UUID {
	id := uuid.New()
	f.customers[id] = model.CustomerRef{ID: id, Name: name}
	return id
}

func (f *storeFake) addProduct(name string, price int64, category string) uuid.UUID {
	id := uuid.New()
	f.products[id] = model.ProductRef{
		ID:       id,
		Name:     name,
		Price:    decimal.NewFromInt(price),
		Category: category,
	}
	return id
}

// LedgerRepository

func (f *storeFake) InsertPurchase(_ context.Context, p *model.Purchase) (bool, error) {
	key := [2]uuid.UUID{p.CustomerID, p.ProductID}
	if _, exists := f.purchases[key]; exists {
		return false, nil
	}
	stored := *p
	stored.PurchasedAt = time.Now()
	f.purchases[key] = &stored
	return true, nil
}

func (f *storeFake) CategoryCounts(_ context.Context, customerID uuid.UUID) ([]model.CategoryCount, error) {
	byCategory := make(map[string]int)
	for key, p := range f.purchases {
		if p.CustomerID != customerID {
			continue
		}
		byCategory[f.products[key[1]].Category]++
	}

	var counts []model.CategoryCount
	for category, count := range byCategory {
		counts = append(counts, model.CategoryCount{Category: category, Count: count})
	}
	return counts, nil
}

func (f *storeFake) TotalPurchases(_ context.Context, customerID uuid.UUID) (int, error) {
	total := 0
	for _, p := range f.purchases {
		if p.CustomerID == customerID {
			total++
		}
	}
	return total, nil
}

// DiscountRepository

func (f *storeFake) FindForCustomerCategory(_ context.Context, customerID uuid.UUID, category string) (*model.Discount, error) {
	for _, d := range f.discounts {
		if d.CustomerID != nil && *d.CustomerID == customerID && d.Category != nil && *d.Category == category {
			return d, nil
		}
	}
	return nil, model.ErrDiscountNotFound
}

func (f *storeFake) ListRewardsForCustomer(_ context.Context, customerID uuid.UUID) ([]model.Discount, error) {
	var out []model.Discount
	for _, d := range f.discounts {
		if d.Type == model.DiscountTypeRewards && d.CustomerID != nil && *d.CustomerID == customerID {
			out = append(out, *d)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Percentage.GreaterThan(out[j].Percentage)
	})
	return out, nil
}

func (f *storeFake) ReplaceRewards(_ context.Context, customerID uuid.UUID, grants []model.Grant) error {
	if f.replaceErr != nil {
		err := f.replaceErr
		f.replaceErr = nil
		return err
	}

	kept := f.discounts[:0]
	for _, d := range f.discounts {
		if d.Type == model.DiscountTypeRewards && d.CustomerID != nil && *d.CustomerID == customerID {
			continue
		}
		kept = append(kept, d)
	}
	f.discounts = kept

	for _, g := range grants {
		category := g.Category
		cid := customerID
		f.discounts = append(f.discounts, &model.Discount{
			ID:         uuid.New(),
			Percentage: g.Percentage,
			Type:       model.DiscountTypeRewards,
			CustomerID: &cid,
			Category:   &category,
			CreatedAt:  time.Now(),
		})
	}
	return nil
}

func (f *storeFake) InsertRewards(_ context.Context, discount *model.Discount) error {
	stored := *discount
	stored.ID = uuid.New()
	stored.CreatedAt = time.Now()
	f.discounts = append(f.discounts, &stored)
	return nil
}

func (f *storeFake) CreatePromotional(_ context.Context, discount *model.Discount) error {
	stored := *discount
	stored.ID = uuid.New()
	stored.CreatedAt = time.Now()
	f.discounts = append(f.discounts, &stored)
	discount.ID = stored.ID
	return nil
}

func (f *storeFake) List(_ context.Context) ([]model.DiscountRow, error) {
	var rows []model.DiscountRow
	for _, d := range f.discounts {
		row := model.DiscountRow{Discount: *d}
		if d.CustomerID != nil {
			if c, ok := f.customers[*d.CustomerID]; ok {
				name := c.Name
				row.CustomerName = &name
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (f *storeFake) Delete(_ context.Context, id uuid.UUID) error {
	for i, d := range f.discounts {
		if d.ID == id {
			f.discounts = append(f.discounts[:i], f.discounts[i+1:]...)
			return nil
		}
	}
	return model.ErrDiscountNotFound
}

// CatalogReader

func (f *storeFake) GetProduct(_ context.Context, id uuid.UUID) (*model.ProductRef, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, model.ErrProductNotFound
	}
	return &p, nil
}

func (f *storeFake) GetCustomer(_ context.Context, id uuid.UUID) (*model.CustomerRef, error) {
	c, ok := f.customers[id]
	if !ok {
		return nil, model.ErrCustomerNotFound
	}
	return &c, nil
}

func (f *storeFake) ListUnpurchased(ctx context.Context, customerID uuid.UUID) ([]model.StorefrontItem, error) {
	var items []model.StorefrontItem
	for _, p := range f.sortedProducts() {
		if _, bought := f.purchases[[2]uuid.UUID{customerID, p.ID}]; bought {
			continue
		}

		item := model.StorefrontItem{
			ProductID:      p.ID,
			Name:           p.Name,
			Price:          p.Price,
			Category:       p.Category,
			EffectivePrice: p.Price,
		}
		if d, err := f.FindForCustomerCategory(ctx, customerID, p.Category); err == nil {
			pct := d.Percentage
			item.DiscountPercentage = &pct
			item.EffectivePrice = d.EffectivePrice(p.Price)
		}
		items = append(items, item)
	}
	return items, nil
}

func (f *storeFake) ListRecommendationCandidates(ctx context.Context, customerID uuid.UUID) ([]model.RecommendationRow, error) {
	purchasedCategories := make(map[string]bool)
	for key, p := range f.purchases {
		if p.CustomerID == customerID {
			purchasedCategories[f.products[key[1]].Category] = true
		}
	}

	var rows []model.RecommendationRow
	for _, p := range f.sortedProducts() {
		if !purchasedCategories[p.Category] {
			continue
		}
		if _, bought := f.purchases[[2]uuid.UUID{customerID, p.ID}]; bought {
			continue
		}

		row := model.RecommendationRow{
			ProductID: p.ID,
			Name:      p.Name,
			Price:     p.Price,
			Category:  p.Category,
		}
		if d, err := f.FindForCustomerCategory(ctx, customerID, p.Category); err == nil {
			pct := d.Percentage
			row.DiscountPercentage = &pct
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// sortedProducts gives the stable product-id ordering the SQL queries
// guarantee.
func (f *storeFake) sortedProducts() []model.ProductRef {
	products := make([]model.ProductRef, 0, len(f.products))
	for _, p := range f.products {
		products = append(products, p)
	}
	sort.Slice(products, func(i, j int) bool {
		return products[i].ID.String() < products[j].ID.String()
	})
	return products
}

// cacheFake is an in-memory cache.Cache with hit counters
type cacheFake struct {
	entries map[string][]byte
	gets    int
	hits    int
	sets    int
	deletes int
}

func newCacheFake() *cacheFake {
	return &cacheFake{entries: make(map[string][]byte)}
}

func (c *cacheFake) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	c.gets++
	raw, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	c.hits++
	return true, json.Unmarshal(raw, dest)
}

func (c *cacheFake) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	c.sets++
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[key] = raw
	return nil
}

func (c *cacheFake) Delete(_ context.Context, keys ...string) error {
	c.deletes++
	for _, key := range keys {
		delete(c.entries, key)
	}
	return nil
}

func (c *cacheFake) Ping(context.Context) error { return nil }

package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-backend/internal/domains/rewards/model"
)

// serviceStub implements service.ServiceInterface with canned results
type serviceStub struct {
	recordErr     error
	recorded      [][2]uuid.UUID
	priceResp     *model.EffectivePriceResponse
	priceErr      error
	allocResult   *model.AllocationResult
	recs          []model.Recommendation
	items         []model.StorefrontItem
	recomputeErr  error
	recomputedFor []uuid.UUID
	promo         *model.Discount
	promoPct      decimal.Decimal
	promoLabel    string
}

func (s *serviceStub) RecordPurchase(_ context.Context, customerID, productID uuid.UUID) error {
	if s.recordErr != nil {
		return s.recordErr
	}
	s.recorded = append(s.recorded, [2]uuid.UUID{customerID, productID})
	return nil
}

func (s *serviceStub) EffectivePrice(context.Context, uuid.UUID, uuid.UUID) (*model.EffectivePriceResponse, error) {
	return s.priceResp, s.priceErr
}

func (s *serviceStub) RecomputeRewardTiers(_ context.Context, customerID uuid.UUID) error {
	if s.recomputeErr != nil {
		return s.recomputeErr
	}
	s.recomputedFor = append(s.recomputedFor, customerID)
	return nil
}

func (s *serviceStub) AllocateManualTier(context.Context, uuid.UUID, string) (*model.AllocationResult, error) {
	return s.allocResult, nil
}

func (s *serviceStub) GenerateRecommendations(context.Context, uuid.UUID) ([]model.Recommendation, error) {
	return s.recs, nil
}

func (s *serviceStub) ListStorefront(context.Context, uuid.UUID) ([]model.StorefrontItem, error) {
	return s.items, nil
}

func (s *serviceStub) CreatePromotional(_ context.Context, pct decimal.Decimal, label string) (*model.Discount, error) {
	s.promoPct = pct
	s.promoLabel = label
	return s.promo, nil
}

func (s *serviceStub) ListDiscounts(context.Context) ([]model.DiscountRow, error) {
	return nil, nil
}

func (s *serviceStub) DeleteDiscount(context.Context, uuid.UUID) error {
	return nil
}

func shopRouter(stub *serviceStub, customerID *uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewStorefrontHandler(stub)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		if customerID != nil {
			c.Set("customerID", *customerID)
		}
	})
	router.GET("/shop/products", h.ListProducts)
	router.GET("/shop/products/:id/price", h.EffectivePrice)
	router.POST("/shop/purchases", h.RecordPurchase)
	return router
}

func TestRecordPurchase_OK(t *testing.T) {
	stub := &serviceStub{}
	cid := uuid.New()
	pid := uuid.New()
	router := shopRouter(stub, &cid)

	body, _ := json.Marshal(model.RecordPurchaseRequest{ProductID: pid.String()})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/shop/purchases", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, stub.recorded, 1)
	assert.Equal(t, cid, stub.recorded[0][0])
	assert.Equal(t, pid, stub.recorded[0][1])
}

func TestRecordPurchase_NoCustomerLink(t *testing.T) {
	stub := &serviceStub{}
	router := shopRouter(stub, nil)

	body, _ := json.Marshal(model.RecordPurchaseRequest{ProductID: uuid.New().String()})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/shop/purchases", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, stub.recorded)
}

func TestRecordPurchase_InvalidBody(t *testing.T) {
	stub := &serviceStub{}
	cid := uuid.New()
	router := shopRouter(stub, &cid)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/shop/purchases", bytes.NewReader([]byte(`{"product_id":"not-a-uuid"}`)))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRecordPurchase_ProductNotFound(t *testing.T) {
	stub := &serviceStub{recordErr: model.ErrProductNotFound}
	cid := uuid.New()
	router := shopRouter(stub, &cid)

	body, _ := json.Marshal(model.RecordPurchaseRequest{ProductID: uuid.New().String()})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/shop/purchases", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), string(model.ErrCodeProductNotFound))
}

func TestEffectivePrice_OK(t *testing.T) {
	pid := uuid.New()
	pct := decimal.NewFromInt(15)
	stub := &serviceStub{
		priceResp: &model.EffectivePriceResponse{
			ProductID:          pid,
			ListPrice:          decimal.NewFromInt(100),
			DiscountPercentage: &pct,
			EffectivePrice:     decimal.NewFromInt(85),
		},
	}
	cid := uuid.New()
	router := shopRouter(stub, &cid)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/shop/products/"+pid.String()+"/price", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"effective_price":"85"`)
}

func TestEffectivePrice_BadProductID(t *testing.T) {
	stub := &serviceStub{}
	cid := uuid.New()
	router := shopRouter(stub, &cid)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/shop/products/abc/price", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListProducts_OK(t *testing.T) {
	stub := &serviceStub{
		items: []model.StorefrontItem{
			{ProductID: uuid.New(), Name: "Widget", Price: decimal.NewFromInt(10), Category: "Tools", EffectivePrice: decimal.NewFromInt(10)},
		},
	}
	cid := uuid.New()
	router := shopRouter(stub, &cid)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/shop/products", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Widget")
}

package handler

import (
	"bytes"
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

func adminRouter(stub *serviceStub) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewAdminHandler(stub)

	router := gin.New()
	router.POST("/admin/rewards/recompute/:customerID", h.RecomputeRewards)
	router.POST("/admin/rewards/manual-allocations", h.AllocateManualTier)
	router.GET("/admin/rewards/recommendations/:customerID", h.Recommendations)
	router.POST("/admin/discounts/promotional", h.CreatePromotional)
	return router
}

func TestCreatePromotional_OK(t *testing.T) {
	pct := decimal.NewFromInt(20)
	stub := &serviceStub{promo: &model.Discount{
		ID:         uuid.New(),
		Percentage: pct,
		Type:       model.DiscountTypePromotional,
	}}
	router := adminRouter(stub)

	body, _ := json.Marshal(model.CreatePromotionalRequest{
		Percentage: pct,
		Label:      "summer sale",
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/admin/discounts/promotional", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, stub.promoPct.Equal(pct))
	assert.Equal(t, "summer sale", stub.promoLabel)
}

func TestCreatePromotional_InvalidPercentage(t *testing.T) {
	stub := &serviceStub{}
	router := adminRouter(stub)

	body, _ := json.Marshal(model.CreatePromotionalRequest{
		Percentage: decimal.NewFromInt(150),
		Label:      "too good",
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/admin/discounts/promotional", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, stub.promoLabel, "service must not be called on validation failure")
}

func TestRecomputeRewards_OK(t *testing.T) {
	stub := &serviceStub{}
	router := adminRouter(stub)
	cid := uuid.New()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/admin/rewards/recompute/"+cid.String(), nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, stub.recomputedFor, 1)
	assert.Equal(t, cid, stub.recomputedFor[0])
}

func TestRecomputeRewards_UnknownCustomer(t *testing.T) {
	stub := &serviceStub{recomputeErr: model.ErrCustomerNotFound}
	router := adminRouter(stub)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/admin/rewards/recompute/"+uuid.New().String(), nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

// Every allocation outcome is a 200; the body distinguishes them
func TestAllocateManualTier_OutcomeAsData(t *testing.T) {
	pct := decimal.NewFromInt(15)
	cases := []struct {
		name   string
		result *model.AllocationResult
	}{
		{"granted", &model.AllocationResult{Outcome: model.AllocationGranted, Percentage: &pct, TotalPurchases: 6, Message: "Added 15% discount on Books products for alice (CID: x)."}},
		{"already exists", &model.AllocationResult{Outcome: model.AllocationAlreadyExists, TotalPurchases: 6}},
		{"ineligible", &model.AllocationResult{Outcome: model.AllocationIneligible, TotalPurchases: 2}},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			stub := &serviceStub{allocResult: tt.result}
			router := adminRouter(stub)

			body, _ := json.Marshal(model.ManualAllocationRequest{
				CustomerID: uuid.New().String(),
				Category:   "Books",
			})
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/admin/rewards/manual-allocations", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Contains(t, w.Body.String(), string(tt.result.Outcome))
		})
	}
}

func TestAllocateManualTier_MissingCategory(t *testing.T) {
	stub := &serviceStub{}
	router := adminRouter(stub)

	body, _ := json.Marshal(model.ManualAllocationRequest{CustomerID: uuid.New().String()})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/admin/rewards/manual-allocations", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRecommendations_OK(t *testing.T) {
	stub := &serviceStub{
		recs: []model.Recommendation{
			{ProductID: uuid.New(), Name: "Sequel", Category: "Books", Price: decimal.NewFromInt(12), CategoryPurchaseCount: 5},
		},
	}
	router := adminRouter(stub)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/rewards/recommendations/"+uuid.New().String(), nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Sequel")
}

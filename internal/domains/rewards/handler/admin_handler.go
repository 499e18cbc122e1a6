package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"storefront-backend/internal/domains/rewards/model"
	"storefront-backend/internal/domains/rewards/service"
	"storefront-backend/internal/shared/response"
)

// AdminHandler serves the back-office discount endpoints
type AdminHandler struct {
	service service.ServiceInterface
}

func NewAdminHandler(service service.ServiceInterface) *AdminHandler {
	return &AdminHandler{service: service}
}

// ListDiscounts returns every discount with the owning customer's name
// where one exists.
// GET /api/v1/admin/discounts
func (h *AdminHandler) ListDiscounts(c *gin.Context) {
	rows, err := h.service.ListDiscounts(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, rows)
}

// CreatePromotional registers a global promotional discount. It never
// affects per-customer pricing; it only exists in the discount list.
// POST /api/v1/admin/discounts/promotional
func (h *AdminHandler) CreatePromotional(c *gin.Context) {
	var req model.CreatePromotionalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, string(model.ErrCodeValidationFailed), "validation failed", err.Error())
		return
	}

	discount, err := h.service.CreatePromotional(c.Request.Context(), req.Percentage, req.Label)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, discount)
}

// DeleteDiscount removes a discount by id
// DELETE /api/v1/admin/discounts/:id
func (h *AdminHandler) DeleteDiscount(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid discount id")
		return
	}

	if err := h.service.DeleteDiscount(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"id": id})
}

// RecomputeRewards rebuilds one customer's reward tiers from the ledger
// POST /api/v1/admin/rewards/recompute/:customerID
func (h *AdminHandler) RecomputeRewards(c *gin.Context) {
	cid, err := uuid.Parse(c.Param("customerID"))
	if err != nil {
		response.BadRequest(c, "invalid customer id")
		return
	}

	if err := h.service.RecomputeRewardTiers(c.Request.Context(), cid); err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"customer_id": cid})
}

// AllocateManualTier grants the next unused tier to an explicit
// category. All three outcomes are 200 responses; the body says which
// one happened.
// POST /api/v1/admin/rewards/manual-allocations
func (h *AdminHandler) AllocateManualTier(c *gin.Context) {
	var req model.ManualAllocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, string(model.ErrCodeValidationFailed), "validation failed", err.Error())
		return
	}

	cid, err := uuid.Parse(req.CustomerID)
	if err != nil {
		response.BadRequest(c, "invalid customer id")
		return
	}

	result, err := h.service.AllocateManualTier(c.Request.Context(), cid, req.Category)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// Recommendations returns one unpurchased product per category the
// customer already buys from.
// GET /api/v1/admin/rewards/recommendations/:customerID
func (h *AdminHandler) Recommendations(c *gin.Context) {
	cid, err := uuid.Parse(c.Param("customerID"))
	if err != nil {
		response.BadRequest(c, "invalid customer id")
		return
	}

	recs, err := h.service.GenerateRecommendations(c.Request.Context(), cid)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, recs)
}

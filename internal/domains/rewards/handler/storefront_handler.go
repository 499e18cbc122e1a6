package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"storefront-backend/internal/domains/rewards/model"
	"storefront-backend/internal/domains/rewards/service"
	"storefront-backend/internal/shared/response"
)

// StorefrontHandler serves the customer-facing shop endpoints
type StorefrontHandler struct {
	service service.ServiceInterface
}

func NewStorefrontHandler(service service.ServiceInterface) *StorefrontHandler {
	return &StorefrontHandler{service: service}
}

// customerID resolves the calling customer from the auth context.
// Only accounts linked to a customer can shop.
func customerID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get("customerID")
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// ListProducts returns the shop view: products the customer has not
// bought yet, each with its effective price.
// GET /api/v1/shop/products
func (h *StorefrontHandler) ListProducts(c *gin.Context) {
	cid, ok := customerID(c)
	if !ok {
		response.Forbidden(c, "account is not linked to a customer")
		return
	}

	items, err := h.service.ListStorefront(c.Request.Context(), cid)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, items)
}

// RecordPurchase handles the "buy" action. A duplicate purchase is a
// no-op and still returns 200.
// POST /api/v1/shop/purchases
func (h *StorefrontHandler) RecordPurchase(c *gin.Context) {
	cid, ok := customerID(c)
	if !ok {
		response.Forbidden(c, "account is not linked to a customer")
		return
	}

	var req model.RecordPurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, string(model.ErrCodeValidationFailed), "validation failed", err.Error())
		return
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		response.BadRequest(c, "invalid product id")
		return
	}

	if err := h.service.RecordPurchase(c.Request.Context(), cid, productID); err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"customer_id": cid,
		"product_id":  productID,
	})
}

// EffectivePrice returns the price this customer pays for one product.
// GET /api/v1/shop/products/:id/price
func (h *StorefrontHandler) EffectivePrice(c *gin.Context) {
	cid, ok := customerID(c)
	if !ok {
		response.Forbidden(c, "account is not linked to a customer")
		return
	}

	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid product id")
		return
	}

	price, err := h.service.EffectivePrice(c.Request.Context(), cid, productID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, price)
}

// handleError maps domain errors to HTTP status codes
func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrCustomerNotFound):
		response.ErrorResponse(c, http.StatusNotFound, string(model.ErrCodeCustomerNotFound), "customer not found")
	case errors.Is(err, model.ErrProductNotFound):
		response.ErrorResponse(c, http.StatusNotFound, string(model.ErrCodeProductNotFound), "product not found")
	case errors.Is(err, model.ErrDiscountNotFound):
		response.ErrorResponse(c, http.StatusNotFound, string(model.ErrCodeDiscountNotFound), "discount not found")
	default:
		response.InternalServerError(c, "internal server error")
	}
}

package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"storefront-backend/internal/domains/customer/model"
	"storefront-backend/internal/domains/customer/service"
	"storefront-backend/internal/shared/response"
)

// CustomerHandler serves customer administration
type CustomerHandler struct {
	service service.ServiceInterface
}

func NewCustomerHandler(service service.ServiceInterface) *CustomerHandler {
	return &CustomerHandler{service: service}
}

// CreateCustomer handles POST /api/v1/admin/customers
func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
	var req model.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, string(model.ErrCodeValidationError), "validation failed", err.Error())
		return
	}

	customer, err := h.service.CreateCustomer(c.Request.Context(), req.Name)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, customer)
}

// GetCustomer handles GET /api/v1/admin/customers/:id
func (h *CustomerHandler) GetCustomer(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid customer id")
		return
	}

	customer, err := h.service.GetCustomer(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, customer)
}

// ListCustomers handles GET /api/v1/admin/customers?search=
func (h *CustomerHandler) ListCustomers(c *gin.Context) {
	customers, err := h.service.ListCustomers(c.Request.Context(), c.Query("search"))
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, customers)
}

// UpdateCustomer handles PUT /api/v1/admin/customers/:id
func (h *CustomerHandler) UpdateCustomer(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid customer id")
		return
	}

	var req model.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, string(model.ErrCodeValidationError), "validation failed", err.Error())
		return
	}

	customer, err := h.service.UpdateCustomer(c.Request.Context(), id, req.Name)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, customer)
}

// DeleteCustomer handles DELETE /api/v1/admin/customers/:id
func (h *CustomerHandler) DeleteCustomer(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid customer id")
		return
	}

	if err := h.service.DeleteCustomer(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"id": id})
}

// PurchaseHistory handles GET /api/v1/admin/customers/:id/purchases
func (h *CustomerHandler) PurchaseHistory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid customer id")
		return
	}

	history, err := h.service.PurchaseHistory(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, history)
}

func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrCustomerNotFound):
		response.ErrorResponse(c, http.StatusNotFound, string(model.ErrCodeCustomerNotFound), "customer not found")
	default:
		response.InternalServerError(c, "internal server error")
	}
}

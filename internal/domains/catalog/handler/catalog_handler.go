package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"storefront-backend/internal/domains/catalog/model"
	"storefront-backend/internal/domains/catalog/service"
	"storefront-backend/internal/shared/response"
)

// CatalogHandler serves product and vendor administration
type CatalogHandler struct {
	service service.ServiceInterface
}

func NewCatalogHandler(service service.ServiceInterface) *CatalogHandler {
	return &CatalogHandler{service: service}
}

// CreateProduct handles POST /api/v1/admin/products
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req model.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, string(model.ErrCodeValidationError), "validation failed", err.Error())
		return
	}

	product, err := h.service.CreateProduct(c.Request.Context(), &req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, product)
}

// GetProduct handles GET /api/v1/admin/products/:id
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid product id")
		return
	}

	product, err := h.service.GetProduct(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, product)
}

// ListProducts handles GET /api/v1/admin/products?category=&search=
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	products, err := h.service.ListProducts(c.Request.Context(), c.Query("category"), c.Query("search"))
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, products)
}

// UpdateProduct handles PUT /api/v1/admin/products/:id
func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid product id")
		return
	}

	var req model.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, string(model.ErrCodeValidationError), "validation failed", err.Error())
		return
	}

	product, err := h.service.UpdateProduct(c.Request.Context(), id, &req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, product)
}

// DeleteProduct handles DELETE /api/v1/admin/products/:id
func (h *CatalogHandler) DeleteProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid product id")
		return
	}

	if err := h.service.DeleteProduct(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"id": id})
}

// CreateVendor handles POST /api/v1/admin/vendors
func (h *CatalogHandler) CreateVendor(c *gin.Context) {
	var req model.CreateVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, string(model.ErrCodeValidationError), "validation failed", err.Error())
		return
	}

	vendor, err := h.service.CreateVendor(c.Request.Context(), &req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, vendor)
}

// ListVendors handles GET /api/v1/admin/vendors?search=
func (h *CatalogHandler) ListVendors(c *gin.Context) {
	vendors, err := h.service.ListVendors(c.Request.Context(), c.Query("search"))
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, vendors)
}

// DeleteVendor handles DELETE /api/v1/admin/vendors/:id
func (h *CatalogHandler) DeleteVendor(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid vendor id")
		return
	}

	if err := h.service.DeleteVendor(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"id": id})
}

// LinkSupply handles POST /api/v1/admin/supplies
func (h *CatalogHandler) LinkSupply(c *gin.Context) {
	var req model.LinkSupplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, string(model.ErrCodeValidationError), "validation failed", err.Error())
		return
	}

	vendorID, _ := uuid.Parse(req.VendorID)
	productID, _ := uuid.Parse(req.ProductID)

	if err := h.service.LinkSupply(c.Request.Context(), vendorID, productID); err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"vendor_id":  vendorID,
		"product_id": productID,
	})
}

// UnlinkSupply handles DELETE /api/v1/admin/vendors/:id/supplies/:productID
func (h *CatalogHandler) UnlinkSupply(c *gin.Context) {
	vendorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid vendor id")
		return
	}
	productID, err := uuid.Parse(c.Param("productID"))
	if err != nil {
		response.BadRequest(c, "invalid product id")
		return
	}

	if err := h.service.UnlinkSupply(c.Request.Context(), vendorID, productID); err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"vendor_id":  vendorID,
		"product_id": productID,
	})
}

// ListSuppliedProducts handles GET /api/v1/admin/vendors/:id/supplies
func (h *CatalogHandler) ListSuppliedProducts(c *gin.Context) {
	vendorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid vendor id")
		return
	}

	products, err := h.service.ListSuppliedProducts(c.Request.Context(), vendorID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, products)
}

// VendorPerformance handles GET /api/v1/admin/vendors/:id/performance
func (h *CatalogHandler) VendorPerformance(c *gin.Context) {
	vendorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid vendor id")
		return
	}

	report, err := h.service.VendorPerformance(c.Request.Context(), vendorID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, report)
}

func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrProductNotFound):
		response.ErrorResponse(c, http.StatusNotFound, string(model.ErrCodeProductNotFound), "product not found")
	case errors.Is(err, model.ErrVendorNotFound):
		response.ErrorResponse(c, http.StatusNotFound, string(model.ErrCodeVendorNotFound), "vendor not found")
	case errors.Is(err, model.ErrSupplyNotFound):
		response.ErrorResponse(c, http.StatusNotFound, string(model.ErrCodeSupplyNotFound), "supply link not found")
	case errors.Is(err, model.ErrSupplyExists):
		response.ErrorResponse(c, http.StatusConflict, string(model.ErrCodeSupplyExists), "supply link already exists")
	default:
		response.InternalServerError(c, "internal server error")
	}
}

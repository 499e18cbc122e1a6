package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-backend/internal/domains/export/service"
	"storefront-backend/internal/shared/response"
)

// ExportHandler triggers the flat-file snapshot
type ExportHandler struct {
	service service.ServiceInterface
}

func NewExportHandler(service service.ServiceInterface) *ExportHandler {
	return &ExportHandler{service: service}
}

// Export handles POST /api/v1/admin/export
func (h *ExportHandler) Export(c *gin.Context) {
	path, err := h.service.Export(c.Request.Context())
	if err != nil {
		response.InternalServerError(c, "export failed")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"path": path})
}

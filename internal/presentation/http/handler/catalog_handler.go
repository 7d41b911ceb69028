package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/sypoint-pos/internal/application/service"
	"github.com/sangkips/sypoint-pos/internal/presentation/http/dto/response"
)

// CatalogHandler serves product lookups by reference number
type CatalogHandler struct {
	catalogService *service.CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// Lookup resolves a scanned or typed reference to an active product
func (h *CatalogHandler) Lookup(c *gin.Context) {
	product, err := h.catalogService.FindByReference(c.Request.Context(), c.Param("reference"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product retrieved successfully", product)
}

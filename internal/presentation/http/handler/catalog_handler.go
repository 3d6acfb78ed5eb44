package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/marea-picante/pos-terminal/internal/application/service"
	"github.com/marea-picante/pos-terminal/internal/presentation/http/dto/response"
)

// CatalogHandler serves the cached catalog and its refresh operations.
type CatalogHandler struct {
	catalogService *service.CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// ListCategories returns the cached categories.
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.catalogService.Categories(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Categories retrieved", categories)
}

// ListTables returns the cached dining tables.
func (h *CatalogHandler) ListTables(c *gin.Context) {
	tables, err := h.catalogService.Tables(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Tables retrieved", tables)
}

// ListProducts returns cached products, optionally filtered by category.
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	var categoryID *uint
	if raw := c.Query("category_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			response.BadRequest(c, "Invalid category_id format")
			return
		}
		id := uint(parsed)
		categoryID = &id
	}

	products, err := h.catalogService.Products(c.Request.Context(), categoryID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Products retrieved", products)
}

// GetProduct returns one cached product.
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	product, err := h.catalogService.Product(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Product retrieved", product)
}

// Refresh re-pulls the catalog snapshot from the backend.
func (h *CatalogHandler) Refresh(c *gin.Context) {
	if err := h.catalogService.Refresh(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Catalog refreshed", nil)
}

// Clear drops the cached snapshot.
func (h *CatalogHandler) Clear(c *gin.Context) {
	if err := h.catalogService.Clear(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Catalog cleared", nil)
}

package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sokoni-backend/internal/models"
	"sokoni-backend/internal/services"
)

// CatalogHandlers serves the product, category and offer endpoints.
type CatalogHandlers struct {
	catalog *services.CatalogService
}

// NewCatalogHandlers creates catalog handlers
func NewCatalogHandlers(catalog *services.CatalogService) *CatalogHandlers {
	return &CatalogHandlers{catalog: catalog}
}

// CreateProduct handles POST /api/v1/products
func (h *CatalogHandlers) CreateProduct(c *gin.Context) {
	var req models.ProductCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	id, err := h.catalog.CreateProduct(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Product Created Successfully!",
		"data":    gin.H{"id": id},
	})
}

// GetProducts handles GET /api/v1/products
func (h *CatalogHandlers) GetProducts(c *gin.Context) {
	docs, err := h.catalog.ListProducts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    docs,
	})
}

// UpdateProduct handles PUT /api/v1/products
func (h *CatalogHandlers) UpdateProduct(c *gin.Context) {
	var req models.ProductUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	if err := h.catalog.UpdateProduct(c.Request.Context(), &req); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Product Updated Successfully!",
	})
}

// CreateCategory handles POST /api/v1/categories
func (h *CatalogHandlers) CreateCategory(c *gin.Context) {
	var req models.CategoryCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	id, err := h.catalog.CreateCategory(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Category Created Successfully!",
		"data":    gin.H{"id": id},
	})
}

// GetCategories handles GET /api/v1/categories
func (h *CatalogHandlers) GetCategories(c *gin.Context) {
	docs, err := h.catalog.ListCategories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    docs,
	})
}

// DeleteCategory handles DELETE /api/v1/categories/:id
func (h *CatalogHandlers) DeleteCategory(c *gin.Context) {
	if err := h.catalog.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Category Deleted Successfully!",
	})
}

// CreateOffer handles POST /api/v1/offers
func (h *CatalogHandlers) CreateOffer(c *gin.Context) {
	var req models.OfferCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	id, err := h.catalog.CreateOffer(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Offer Created Successfully!",
		"data":    gin.H{"id": id},
	})
}

// GetOffers handles GET /api/v1/offers
func (h *CatalogHandlers) GetOffers(c *gin.Context) {
	docs, err := h.catalog.ListOffers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    docs,
	})
}

// DeleteOffer handles DELETE /api/v1/offers/:id
func (h *CatalogHandlers) DeleteOffer(c *gin.Context) {
	if err := h.catalog.DeleteOffer(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Offer Deleted Successfully!",
	})
}

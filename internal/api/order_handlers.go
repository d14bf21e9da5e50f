package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"sokoni-backend/internal/models"
	"sokoni-backend/internal/services"
)

// OrderHandlers serves the order, cart and saved-list endpoints.
type OrderHandlers struct {
	orders *services.OrderService
}

// NewOrderHandlers creates order handlers
func NewOrderHandlers(orders *services.OrderService) *OrderHandlers {
	return &OrderHandlers{orders: orders}
}

// CreateOrder handles POST /api/v1/orders
func (h *OrderHandlers) CreateOrder(c *gin.Context) {
	var req models.OrderCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	id, err := h.orders.CreateOrder(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Order Created Successfully!",
		"data":    gin.H{"id": id},
	})
}

// GetOrders handles GET /api/v1/orders
func (h *OrderHandlers) GetOrders(c *gin.Context) {
	docs, err := h.orders.ListOrders(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    docs,
	})
}

// UpdateOrder handles PUT /api/v1/orders
func (h *OrderHandlers) UpdateOrder(c *gin.Context) {
	var req models.OrderUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	if payload, err := json.Marshal(req); err == nil {
		log.Printf("order update %s: %s", req.ID, payload)
	}

	if err := h.orders.UpdateOrder(c.Request.Context(), &req); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Order Updated Successfully!",
	})
}

// UpdateCart handles PUT /api/v1/cart
func (h *OrderHandlers) UpdateCart(c *gin.Context) {
	var req models.CartUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	if payload, err := json.Marshal(req); err == nil {
		log.Printf("cart update %s: %s", req.ID, payload)
	}

	if err := h.orders.UpdateCart(c.Request.Context(), &req); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Cart Updated Successfully!",
	})
}

// UpdateSaved handles PUT /api/v1/saved
func (h *OrderHandlers) UpdateSaved(c *gin.Context) {
	var req models.SavedUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	if payload, err := json.Marshal(req); err == nil {
		log.Printf("saved update %s: %s", req.ID, payload)
	}

	if err := h.orders.UpdateSaved(c.Request.Context(), &req); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Saved List Updated Successfully!",
	})
}

package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"sokoni-backend/internal/models"
	"sokoni-backend/internal/services"
)

// UserHandlers serves the protected account endpoints.
type UserHandlers struct {
	users *services.UserService
}

// NewUserHandlers creates user handlers
func NewUserHandlers(users *services.UserService) *UserHandlers {
	return &UserHandlers{users: users}
}

// GetUsers handles GET /api/v1/users
func (h *UserHandlers) GetUsers(c *gin.Context) {
	docs, err := h.users.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    docs,
	})
}

// UpdateUser handles PUT /api/v1/users
func (h *UserHandlers) UpdateUser(c *gin.Context) {
	var req models.UserUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	if payload, err := json.Marshal(req); err == nil {
		log.Printf("user update %s: %s", req.ID, payload)
	}

	if err := h.users.Update(c.Request.Context(), &req); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User Updated Successfully!",
	})
}

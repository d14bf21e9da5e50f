package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"sokoni-backend/internal/services"
	"sokoni-backend/internal/utils"
)

// respondError maps service errors onto the response envelope: validation
// failures are 400, credential failures 401, missing documents 404,
// uniqueness violations 409, everything else a generic 500.
func respondError(c *gin.Context, err error) {
	var validationErr *utils.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   validationErr.Message,
		})
		return
	}

	if services.IsCredentialError(err) {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	var notFoundErr *services.NotFoundError
	if errors.As(err, &notFoundErr) {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error":   notFoundErr.Message,
		})
		return
	}

	var duplicateErr *services.DuplicateError
	if errors.As(err, &duplicateErr) {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error":   duplicateErr.Message,
		})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"error":   "Internal server error",
	})
}

func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error":   message,
	})
}

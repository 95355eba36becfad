package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	customErrors "github.com/drivelane/carmarket/internal/domain/auth/errors"
)

// handleError is the single spot mapping service errors onto HTTP statuses.
// Internal errors never leak their message to the client.
func handleError(c *gin.Context, err error) {
	switch {
	case customErrors.IsInvalidArgument(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case customErrors.IsInvalidCredentials(err):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
	case customErrors.IsTokenExpired(err), customErrors.IsInvalidToken(err), customErrors.IsTokenRevoked(err):
		c.JSON(http.StatusForbidden, gin.H{"error": "invalid token"})
	case customErrors.IsForbidden(err):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case customErrors.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case customErrors.IsAlreadyExists(err):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

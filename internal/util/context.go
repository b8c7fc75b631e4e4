package util

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetClerkUserIDFromContext extracts the external auth-provider user ID from
// the Gin context. The value is an opaque string - handlers must translate
// it to an internal user ID before any ownership check or FK write.
func GetClerkUserIDFromContext(c *gin.Context) (string, bool) {
	clerkID, exists := c.Get("clerk_user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return "", false
	}
	clerkIDStr, ok := clerkID.(string)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "invalid user ID in context"})
		return "", false
	}
	return clerkIDStr, true
}

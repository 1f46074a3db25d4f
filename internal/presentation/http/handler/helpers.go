package handler

import (
	"github.com/gin-gonic/gin"
)

// GetUserID extracts the authenticated user's id from the Gin context
func GetUserID(c *gin.Context) (uint, bool) {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		return 0, false
	}
	userID, ok := userIDVal.(uint)
	if !ok {
		return 0, false
	}
	return userID, true
}

package middleware

import "github.com/gin-gonic/gin"

// userIDKey is the key used to store the authenticated staff ID in the request context.
const userIDKey = contextKey("userID")

// GetUserIDFromContext retrieves the authenticated staff ID from the Gin context.
// It returns the staff ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userIDVal, exists := c.Get(string(userIDKey))
	if !exists {
		// check in the request context as well
		if v := c.Request.Context().Value(userIDKey); v != nil {
			return v.(string), true
		}
		return "", false
	}

	userID, ok := userIDVal.(string)
	if !ok {
		return "", false
	}

	return userID, true
}

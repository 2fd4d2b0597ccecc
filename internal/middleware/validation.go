package middleware

import (
	"github.com/gin-gonic/gin"
)

// BindJSON binds and validates the request body into obj. On failure it
// writes the validation error response and returns false.
func BindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		HandleValidationError(c, err)
		return false
	}
	return true
}

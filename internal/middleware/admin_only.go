// admin_only.go
package middleware

import (
	"net/http"

	"fulfillment-service/internal/dto"
	"fulfillment-service/internal/service"

	"github.com/gin-gonic/gin"
)

func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		perms := c.GetStringSlice("userPermissions")
		if !service.IsAdmin(perms) {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.Fail("admin privileges required", nil))
			return
		}
		c.Next()
	}
}

package middleware

import (
	"net/http"

	"oneclip/clip-api/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewAdminMiddleware guards a route group behind admin membership in the
// roles document. Must run after the session middleware.
func NewAdminMiddleware(roles store.Roles) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.MustGet("requestID").(string)
		username := c.GetString("username")

		r, err := roles.Load()
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error":     "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to load roles", zap.Error(err), zap.String("requestID", requestID))
			return
		}

		if !r.IsAdmin(username) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":     "Admin required",
				"requestID": requestID,
			})
			return
		}

		c.Next()
	}
}

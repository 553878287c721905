package middleware

import (
	"net/http"

	"go-hrdocs/internal/rbac"
	"go-hrdocs/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// Authorize checks the capability table for the request's role. It runs
// after AuthMiddleware, which guarantees a validated role is present.
func Authorize(svc rbac.Service, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		if role == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Missing auth context", nil)
			c.Abort()
			return
		}

		if !svc.Allowed(role, resource, action) {
			response.Error(c, http.StatusForbidden, "FORBIDDEN",
				"You do not have permission to access this resource",
				resource+":"+action)
			c.Abort()
			return
		}
		c.Next()
	}
}

package audit

import (
	"go-hrdocs/internal/middleware"
	"go-hrdocs/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	entries := r.Group("/audit")
	entries.Use(middleware.AuthMiddleware())
	{
		entries.GET("", middleware.Authorize(rbacService, rbac.ResourceAudit, rbac.ActionRead), h.List)
	}
}

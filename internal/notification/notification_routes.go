package notification

import (
	"go-hrdocs/internal/middleware"
	"go-hrdocs/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	notifications := r.Group("/notifications")
	notifications.Use(middleware.AuthMiddleware())
	{
		notifications.GET("", middleware.Authorize(rbacService, rbac.ResourceNotification, rbac.ActionRead), h.List)
		notifications.PATCH("/:id/read", middleware.Authorize(rbacService, rbac.ResourceNotification, rbac.ActionUpdate), h.MarkRead)
		notifications.PATCH("/read-all", middleware.Authorize(rbacService, rbac.ResourceNotification, rbac.ActionUpdate), h.MarkAllRead)
	}
}

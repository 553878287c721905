package employee

import (
	"go-hrdocs/internal/middleware"
	"go-hrdocs/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	employees := r.Group("/employees")
	employees.Use(middleware.AuthMiddleware())
	{
		employees.GET("/me", h.Me)
		employees.GET("/options", middleware.Authorize(rbacService, rbac.ResourceEmployee, rbac.ActionReadAll), h.GetOptions)
		employees.POST("", middleware.Authorize(rbacService, rbac.ResourceEmployee, rbac.ActionCreate), h.Create)
		employees.GET("", middleware.Authorize(rbacService, rbac.ResourceEmployee, rbac.ActionReadAll), h.List)
		employees.GET("/:id", middleware.Authorize(rbacService, rbac.ResourceEmployee, rbac.ActionRead), h.GetByID)
		employees.PUT("/:id", middleware.Authorize(rbacService, rbac.ResourceEmployee, rbac.ActionUpdate), h.Update)
		employees.DELETE("/:id", middleware.Authorize(rbacService, rbac.ResourceEmployee, rbac.ActionDelete), h.Delete)
	}
}

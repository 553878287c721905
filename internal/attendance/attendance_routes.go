package attendance

import (
	"go-hrdocs/internal/middleware"
	"go-hrdocs/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	attendanceGroup := r.Group("/attendance")
	attendanceGroup.Use(middleware.AuthMiddleware())
	{
		attendanceGroup.POST("", middleware.Authorize(rbacService, rbac.ResourceAttendance, rbac.ActionCreate), h.Mark)
		attendanceGroup.POST("/mark-for", middleware.Authorize(rbacService, rbac.ResourceAttendance, rbac.ActionUpdate), h.MarkFor)
		attendanceGroup.GET("/history", middleware.Authorize(rbacService, rbac.ResourceAttendance, rbac.ActionRead), h.History)
		attendanceGroup.GET("/export", middleware.Authorize(rbacService, rbac.ResourceAttendance, rbac.ActionExport), h.ExportPayroll)
	}
}

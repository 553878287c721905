package profileupdate

import (
	"go-hrdocs/internal/middleware"
	"go-hrdocs/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	requests := r.Group("/profile-updates")
	requests.Use(middleware.AuthMiddleware())
	{
		requests.POST("", middleware.Authorize(rbacService, rbac.ResourceProfileRequest, rbac.ActionCreate), h.Submit)
		requests.GET("/mine", middleware.Authorize(rbacService, rbac.ResourceProfileRequest, rbac.ActionRead), h.GetMine)
		requests.GET("", middleware.Authorize(rbacService, rbac.ResourceProfileRequest, rbac.ActionReadAll), h.List)
		requests.PATCH("/:id/decision", middleware.Authorize(rbacService, rbac.ResourceProfileRequest, rbac.ActionReview), h.Adjudicate)
	}
}

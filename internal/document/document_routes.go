package document

import (
	"go-hrdocs/internal/middleware"
	"go-hrdocs/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	documents := r.Group("/documents")
	documents.Use(middleware.AuthMiddleware())
	{
		documents.POST("", middleware.Authorize(rbacService, rbac.ResourceDocument, rbac.ActionCreate), h.Upload)
		documents.GET("", middleware.Authorize(rbacService, rbac.ResourceDocument, rbac.ActionRead), h.ListMine)
		documents.GET("/all", middleware.Authorize(rbacService, rbac.ResourceDocument, rbac.ActionReadAll), h.ListAll)
		documents.GET("/:id/download", middleware.Authorize(rbacService, rbac.ResourceDocument, rbac.ActionRead), h.Download)
		documents.PATCH("/:id/review", middleware.Authorize(rbacService, rbac.ResourceDocument, rbac.ActionReview), h.Review)
		documents.PATCH("/:id/verify", middleware.Authorize(rbacService, rbac.ResourceDocument, rbac.ActionVerify), h.FinalReview)
		documents.GET("/overview/review", middleware.Authorize(rbacService, rbac.ResourceDocument, rbac.ActionReview), h.HROverview)
		documents.GET("/overview/verification", middleware.Authorize(rbacService, rbac.ResourceDocument, rbac.ActionVerify), h.FinalOverview)
	}
}

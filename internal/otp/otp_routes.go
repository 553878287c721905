package otp

import (
	"time"

	"go-hrdocs/internal/middleware"
	"go-hrdocs/internal/rbac"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	verifyLimiter := middleware.RateLimitByUser(rate.Every(2*time.Second), 5)

	otpGroup := r.Group("/otp")
	otpGroup.Use(middleware.AuthMiddleware())
	{
		otpGroup.POST("/issue", middleware.Authorize(rbacService, rbac.ResourceOTP, rbac.ActionIssue), h.Issue)
		otpGroup.POST("/verify", middleware.Authorize(rbacService, rbac.ResourceOTP, rbac.ActionVerify), verifyLimiter, h.Verify)
	}
}

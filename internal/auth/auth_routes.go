package auth

import (
	"time"

	"go-hrdocs/internal/middleware"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// Login and the password reset endpoints are rate limited by IP since
// they sit in front of authentication.
func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	loginLimiter := middleware.RateLimitByIP(rate.Every(time.Second), 5)
	resetLimiter := middleware.RateLimitByIP(rate.Every(10*time.Second), 3)

	authGroup := r.Group("/auth")
	{
		authGroup.POST("/login", loginLimiter, h.Login)
		authGroup.POST("/refresh", h.Refresh)
		authGroup.POST("/forgot-password", resetLimiter, h.ForgotPassword)
		authGroup.POST("/reset-password", resetLimiter, h.ResetPassword)
	}
}

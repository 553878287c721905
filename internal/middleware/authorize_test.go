package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go-hrdocs/internal/middleware"
	"go-hrdocs/internal/rbac"
	rbacMock "go-hrdocs/internal/rbac/mock"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func setupRouter(svc rbac.Service, role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/docs",
		func(c *gin.Context) {
			if role != "" {
				c.Set("role", role)
			}
		},
		middleware.Authorize(svc, rbac.ResourceDocument, rbac.ActionReadAll),
		func(c *gin.Context) { c.Status(http.StatusOK) },
	)
	return r
}

func TestAuthorize(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("allowed role passes through", func(t *testing.T) {
		mockService := rbacMock.NewMockService(ctrl)
		mockService.EXPECT().
			Allowed(rbac.RoleHR, rbac.ResourceDocument, rbac.ActionReadAll).
			Return(true)

		router := setupRouter(mockService, rbac.RoleHR)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/docs", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("denied role gets 403", func(t *testing.T) {
		mockService := rbacMock.NewMockService(ctrl)
		mockService.EXPECT().
			Allowed(rbac.RoleEmployee, rbac.ResourceDocument, rbac.ActionReadAll).
			Return(false)

		router := setupRouter(mockService, rbac.RoleEmployee)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/docs", nil))

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "FORBIDDEN")
	})

	t.Run("missing role gets 401 without consulting rbac", func(t *testing.T) {
		mockService := rbacMock.NewMockService(ctrl)

		router := setupRouter(mockService, "")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/docs", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

package otp

import (
	"net/http"

	"go-hrdocs/internal/audit"
	"go-hrdocs/internal/shared/apperror"
	"go-hrdocs/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func actorFromContext(c *gin.Context) audit.Actor {
	id, _ := uuid.Parse(c.GetString("employee_id"))
	return audit.Actor{
		ID:    id,
		Email: c.GetString("email"),
		Role:  c.GetString("role"),
		IP:    c.ClientIP(),
		Agent: c.Request.UserAgent(),
	}
}

// Issue sends a code to the employee named in the request body; only
// HR and above reach this handler.
func (h *Handler) Issue(c *gin.Context) {
	var req IssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	if err := h.service.Issue(c.Request.Context(), actorFromContext(c), req.Email); err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Verification code sent"}, nil)
}

// Verify checks the caller's own code; the employee id always comes
// from the token, never the body.
func (h *Handler) Verify(c *gin.Context) {
	var req VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	result, err := h.service.Verify(c.Request.Context(), c.GetString("employee_id"), req.Code)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, result, nil)
}

package attendance

import (
	"net/http"
	"strconv"

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

// Mark records the caller's own attendance.
func (h *Handler) Mark(c *gin.Context) {
	var req MarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	marked, err := h.service.Mark(c.Request.Context(), actorFromContext(c), c.GetString("employee_id"), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, marked, nil)
}

// MarkFor lets HR correct another employee's day.
func (h *Handler) MarkFor(c *gin.Context) {
	var req MarkForRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	marked, err := h.service.Mark(c.Request.Context(), actorFromContext(c), req.EmployeeID, req.MarkRequest)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, marked, nil)
}

func (h *Handler) History(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "31"))

	items, total, err := h.service.History(
		c.Request.Context(),
		c.GetString("employee_id"),
		c.GetString("role"),
		c.Query("employee_id"),
		c.Query("from"),
		c.Query("to"),
		page, pageSize,
	)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	meta := response.NewPaginationMeta(total, page, pageSize)
	response.Success(c, http.StatusOK, items, &meta)
}

func (h *Handler) ExportPayroll(c *gin.Context) {
	month := c.Query("month")
	body, filename, err := h.service.ExportPayroll(c.Request.Context(), month)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Attachment(c, "text/csv; charset=utf-8", filename, body)
}

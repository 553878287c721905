package document

import (
	"net/http"
	"strconv"

	"go-hrdocs/internal/audit"
	"go-hrdocs/internal/shared/apperror"
	"go-hrdocs/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const uploadGrantHeader = "X-Upload-Grant"

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

// Upload expects multipart form data with a "name" field and a "file"
// part, plus the upload grant header obtained from OTP verification.
func (h *Handler) Upload(c *gin.Context) {
	name := c.PostForm("name")
	if name == "" {
		writeServiceError(c, apperror.RequiredField("name"))
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		writeServiceError(c, apperror.RequiredField("file"))
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		writeServiceError(c, err)
		return
	}
	defer f.Close()

	created, err := h.service.Upload(c.Request.Context(), actorFromContext(c), UploadInput{
		Name:         name,
		OriginalName: fileHeader.Filename,
		MimeType:     fileHeader.Header.Get("Content-Type"),
		SizeBytes:    fileHeader.Size,
		Reader:       f,
		Grant:        c.GetHeader(uploadGrantHeader),
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, created, nil)
}

func (h *Handler) Review(c *gin.Context) {
	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	updated, err := h.service.Review(c.Request.Context(), actorFromContext(c), c.Param("id"), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, updated, nil)
}

func (h *Handler) FinalReview(c *gin.Context) {
	var req FinalReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	updated, err := h.service.FinalReview(c.Request.Context(), actorFromContext(c), c.Param("id"), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, updated, nil)
}

// ListMine returns the caller's documents; privileged roles may pass
// ?employee_id= to read someone else's.
func (h *Handler) ListMine(c *gin.Context) {
	items, err := h.service.ListByEmployee(
		c.Request.Context(),
		c.GetString("employee_id"),
		c.GetString("role"),
		c.Query("employee_id"),
	)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, items, nil)
}

func (h *Handler) ListAll(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	filter := Filter{
		EmployeeID: c.Query("employee_id"),
		Status:     Status(c.Query("status")),
	}

	items, total, err := h.service.ListAll(c.Request.Context(), filter, page, pageSize)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	meta := response.NewPaginationMeta(total, page, pageSize)
	response.Success(c, http.StatusOK, items, &meta)
}

func (h *Handler) Download(c *gin.Context) {
	meta, rc, err := h.service.Download(
		c.Request.Context(),
		c.GetString("employee_id"),
		c.GetString("role"),
		c.Param("id"),
	)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	defer rc.Close()

	c.Header("Content-Disposition", `attachment; filename="`+meta.OriginalName+`"`)
	c.DataFromReader(http.StatusOK, meta.SizeBytes, meta.MimeType, rc, nil)
}

func (h *Handler) HROverview(c *gin.Context) {
	summaries, err := h.service.HROverview(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, summaries, nil)
}

func (h *Handler) FinalOverview(c *gin.Context) {
	summaries, err := h.service.FinalOverview(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, summaries, nil)
}

package handler

import (
	"net/http"

	"dufaa.com/communitybackend/internal/dto"
	"dufaa.com/communitybackend/internal/middleware"
	"dufaa.com/communitybackend/internal/service"
	"dufaa.com/communitybackend/pkg/response"
	"github.com/gin-gonic/gin"
)

type SubmissionHandler struct {
	service service.SubmissionService
}

func NewSubmissionHandler(service service.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{service: service}
}

func (h *SubmissionHandler) Create(c *gin.Context) {
	var req dto.SubmissionRequest
	if !bindJSON(c, &req) {
		return
	}

	user := middleware.CurrentUser(c)
	submission, err := h.service.Create(c.Request.Context(), user.ID, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, submission)
}

func (h *SubmissionHandler) List(c *gin.Context) {
	var query dto.SubmissionListQuery
	if !bindQuery(c, &query) {
		return
	}

	submissions, total, err := h.service.List(c.Request.Context(), query)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.PagedResponse{
		Items: submissions,
		Total: total,
		Page:  query.Page,
		Limit: query.Normalized(),
	})
}

func (h *SubmissionHandler) ListOwn(c *gin.Context) {
	user := middleware.CurrentUser(c)
	submissions, err := h.service.ListOwn(c.Request.Context(), user.ID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": submissions})
}

func (h *SubmissionHandler) Update(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req dto.SubmissionRequest
	if !bindJSON(c, &req) {
		return
	}

	user := middleware.CurrentUser(c)
	submission, err := h.service.Update(c.Request.Context(), user.ID, id, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, submission)
}

func (h *SubmissionHandler) Delete(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	user := middleware.CurrentUser(c)
	if err := h.service.Delete(c.Request.Context(), user.ID, id); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "تم حذف المشاركة"})
}

// Export returns every submission as a JSON attachment for admins.
func (h *SubmissionHandler) Export(c *gin.Context) {
	submissions, err := h.service.Export(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=submissions.json")
	c.JSON(http.StatusOK, gin.H{"items": submissions})
}

package handler

import (
	"net/http"

	"dufaa.com/communitybackend/internal/dto"
	"dufaa.com/communitybackend/internal/middleware"
	"dufaa.com/communitybackend/internal/service"
	"dufaa.com/communitybackend/pkg/response"
	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	service service.ReportService
}

func NewReportHandler(service service.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

func (h *ReportHandler) Create(c *gin.Context) {
	var req dto.CreateReportRequest
	if !bindJSON(c, &req) {
		return
	}

	user := middleware.CurrentUser(c)
	report, err := h.service.Create(c.Request.Context(), user.ID, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, report)
}

func (h *ReportHandler) List(c *gin.Context) {
	var query dto.ReportListQuery
	if !bindQuery(c, &query) {
		return
	}

	reports, total, err := h.service.List(c.Request.Context(), query)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.PagedResponse{
		Items: reports,
		Total: total,
		Page:  query.Page,
		Limit: query.Normalized(),
	})
}

func (h *ReportHandler) Resolve(c *gin.Context) {
	reportID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req dto.ResolveReportRequest
	if !bindJSON(c, &req) {
		return
	}

	admin := middleware.CurrentUser(c)
	report, err := h.service.Resolve(c.Request.Context(), admin.ID, reportID, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

package handler

import (
	"net/http"
	"strconv"
	"time"

	"dufaa.com/communitybackend/internal/dto"
	"dufaa.com/communitybackend/internal/middleware"
	"dufaa.com/communitybackend/internal/service"
	"dufaa.com/communitybackend/pkg/apperror"
	"dufaa.com/communitybackend/pkg/response"
	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	admin         service.AdminService
	audit         service.AuditService
	announcements service.AnnouncementService
}

func NewAdminHandler(admin service.AdminService, audit service.AuditService, announcements service.AnnouncementService) *AdminHandler {
	return &AdminHandler{
		admin:         admin,
		audit:         audit,
		announcements: announcements,
	}
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	var query dto.PeopleQuery
	if !bindQuery(c, &query) {
		return
	}

	users, total, err := h.admin.ListUsers(c.Request.Context(), query)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.PagedResponse{
		Items: users,
		Total: total,
		Page:  query.Page,
		Limit: query.Normalized(),
	})
}

func (h *AdminHandler) SetAdmin(c *gin.Context) {
	userID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req dto.SetAdminRequest
	if !bindJSON(c, &req) {
		return
	}

	admin := middleware.CurrentUser(c)
	if err := h.admin.SetAdmin(c.Request.Context(), admin.ID, userID, req.IsAdmin); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "تم تحديث الصلاحيات"})
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	userID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	admin := middleware.CurrentUser(c)
	if err := h.admin.DeleteUser(c.Request.Context(), admin.ID, userID); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "تم حذف المستخدم"})
}

func (h *AdminHandler) CreateRestriction(c *gin.Context) {
	var req dto.CreateRestrictionRequest
	if !bindJSON(c, &req) {
		return
	}

	admin := middleware.CurrentUser(c)
	restriction, err := h.admin.Restrict(c.Request.Context(), admin.ID, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, restriction)
}

func (h *AdminHandler) ListRestrictions(c *gin.Context) {
	var page dto.PageQuery
	if !bindQuery(c, &page) {
		return
	}

	restrictions, total, err := h.admin.ListRestrictions(c.Request.Context(), page)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.PagedResponse{
		Items: dto.NewRestrictionViews(restrictions, time.Now()),
		Total: total,
		Page:  page.Page,
		Limit: page.Normalized(),
	})
}

// ListUserRestrictions returns one user's full grant history.
func (h *AdminHandler) ListUserRestrictions(c *gin.Context) {
	userID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	restrictions, err := h.admin.UserRestrictions(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": dto.NewRestrictionViews(restrictions, time.Now())})
}

func (h *AdminHandler) LiftRestriction(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.ResponseError(c, apperror.New(http.StatusBadRequest, "معرّف غير صالح", apperror.ErrInvalidInput))
		return
	}

	admin := middleware.CurrentUser(c)
	if err := h.admin.LiftRestriction(c.Request.Context(), admin.ID, uint(id)); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "تم رفع القيد"})
}

func (h *AdminHandler) ListAuditLog(c *gin.Context) {
	var page dto.PageQuery
	if !bindQuery(c, &page) {
		return
	}

	entries, total, err := h.audit.List(c.Request.Context(), page)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.PagedResponse{
		Items: entries,
		Total: total,
		Page:  page.Page,
		Limit: page.Normalized(),
	})
}

func (h *AdminHandler) ListActiveAnnouncements(c *gin.Context) {
	announcements, err := h.announcements.ListActive(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": announcements})
}

func (h *AdminHandler) ListAllAnnouncements(c *gin.Context) {
	var page dto.PageQuery
	if !bindQuery(c, &page) {
		return
	}

	announcements, total, err := h.announcements.ListAll(c.Request.Context(), page)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.PagedResponse{
		Items: announcements,
		Total: total,
		Page:  page.Page,
		Limit: page.Normalized(),
	})
}

func (h *AdminHandler) CreateAnnouncement(c *gin.Context) {
	var req dto.CreateAnnouncementRequest
	if !bindJSON(c, &req) {
		return
	}

	admin := middleware.CurrentUser(c)
	announcement, err := h.announcements.Create(c.Request.Context(), admin.ID, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, announcement)
}

func (h *AdminHandler) UpdateAnnouncement(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateAnnouncementRequest
	if !bindJSON(c, &req) {
		return
	}

	admin := middleware.CurrentUser(c)
	announcement, err := h.announcements.Update(c.Request.Context(), admin.ID, id, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, announcement)
}

func (h *AdminHandler) DeleteAnnouncement(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	admin := middleware.CurrentUser(c)
	if err := h.announcements.Delete(c.Request.Context(), admin.ID, id); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "تم حذف الإعلان"})
}

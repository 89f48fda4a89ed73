package handler

import (
	"net/http"

	"dufaa.com/communitybackend/internal/dto"
	"dufaa.com/communitybackend/internal/middleware"
	"dufaa.com/communitybackend/internal/service"
	"dufaa.com/communitybackend/pkg/response"
	"github.com/gin-gonic/gin"
)

type LearningHandler struct {
	service service.LearningService
}

func NewLearningHandler(service service.LearningService) *LearningHandler {
	return &LearningHandler{service: service}
}

func (h *LearningHandler) ListSubjects(c *gin.Context) {
	subjects, err := h.service.ListSubjects(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": subjects})
}

func (h *LearningHandler) CreateSubject(c *gin.Context) {
	var req dto.CreateSubjectRequest
	if !bindJSON(c, &req) {
		return
	}

	admin := middleware.CurrentUser(c)
	subject, err := h.service.CreateSubject(c.Request.Context(), admin.ID, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, subject)
}

func (h *LearningHandler) ListMaterials(c *gin.Context) {
	subjectID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	isAdmin := false
	if auth := middleware.GetAuthContext(c); auth != nil {
		isAdmin = auth.User.IsAdmin
	}

	materials, err := h.service.ListMaterials(c.Request.Context(), subjectID, isAdmin)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": materials})
}

func (h *LearningHandler) SubmitMaterial(c *gin.Context) {
	subjectID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req dto.CreateMaterialRequest
	if !bindJSON(c, &req) {
		return
	}

	user := middleware.CurrentUser(c)
	material, err := h.service.SubmitMaterial(c.Request.Context(), user.ID, subjectID, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, material)
}

func (h *LearningHandler) SetMaterialStatus(c *gin.Context) {
	materialID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateMaterialStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	admin := middleware.CurrentUser(c)
	material, err := h.service.SetMaterialStatus(c.Request.Context(), admin.ID, materialID, req.Status)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, material)
}

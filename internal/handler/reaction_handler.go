package handler

import (
	"net/http"

	"dufaa.com/communitybackend/internal/dto"
	"dufaa.com/communitybackend/internal/middleware"
	"dufaa.com/communitybackend/internal/service"
	"dufaa.com/communitybackend/pkg/response"
	"github.com/gin-gonic/gin"
)

type ReactionHandler struct {
	service service.ReactionService
}

func NewReactionHandler(service service.ReactionService) *ReactionHandler {
	return &ReactionHandler{service: service}
}

func (h *ReactionHandler) Set(c *gin.Context) {
	var req dto.SetReactionRequest
	if !bindJSON(c, &req) {
		return
	}

	user := middleware.CurrentUser(c)
	if err := h.service.Set(c.Request.Context(), user.ID, req); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "تم تسجيل التفاعل"})
}

func (h *ReactionHandler) Counts(c *gin.Context) {
	var query dto.ReactionCountsQuery
	if !bindQuery(c, &query) {
		return
	}

	subjectID, ok := parseUUID(c, query.SubjectID)
	if !ok {
		return
	}

	counts, err := h.service.Counts(c.Request.Context(), query.SubjectType, subjectID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"counts": counts})
}

func (h *ReactionHandler) Remove(c *gin.Context) {
	var req dto.RemoveReactionRequest
	if !bindJSON(c, &req) {
		return
	}

	user := middleware.CurrentUser(c)
	if err := h.service.Remove(c.Request.Context(), user.ID, req); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "تمت إزالة التفاعل"})
}

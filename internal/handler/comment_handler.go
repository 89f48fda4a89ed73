package handler

import (
	"net/http"

	"dufaa.com/communitybackend/internal/dto"
	"dufaa.com/communitybackend/internal/middleware"
	"dufaa.com/communitybackend/internal/service"
	"dufaa.com/communitybackend/pkg/response"
	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	service service.CommentService
}

func NewCommentHandler(service service.CommentService) *CommentHandler {
	return &CommentHandler{service: service}
}

func (h *CommentHandler) Create(c *gin.Context) {
	postID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req dto.CreateCommentRequest
	if !bindJSON(c, &req) {
		return
	}

	user := middleware.CurrentUser(c)
	comment, err := h.service.Create(c.Request.Context(), user.ID, postID, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, comment)
}

func (h *CommentHandler) ListByPost(c *gin.Context) {
	postID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var page dto.PageQuery
	if !bindQuery(c, &page) {
		return
	}

	comments, total, err := h.service.ListByPost(c.Request.Context(), postID, page)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.PagedResponse{
		Items: comments,
		Total: total,
		Page:  page.Page,
		Limit: page.Normalized(),
	})
}

func (h *CommentHandler) Update(c *gin.Context) {
	commentID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateCommentRequest
	if !bindJSON(c, &req) {
		return
	}

	user := middleware.CurrentUser(c)
	comment, err := h.service.Update(c.Request.Context(), user.ID, commentID, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, comment)
}

func (h *CommentHandler) Delete(c *gin.Context) {
	commentID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	user := middleware.CurrentUser(c)
	if err := h.service.Delete(c.Request.Context(), user.ID, commentID); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "تم حذف التعليق"})
}

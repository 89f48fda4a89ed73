package handler

import (
	"net/http"

	"dufaa.com/communitybackend/internal/dto"
	"dufaa.com/communitybackend/internal/middleware"
	"dufaa.com/communitybackend/internal/service"
	"dufaa.com/communitybackend/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PostHandler struct {
	posts service.PostService
	feed  service.FeedService
}

func NewPostHandler(posts service.PostService, feed service.FeedService) *PostHandler {
	return &PostHandler{posts: posts, feed: feed}
}

func (h *PostHandler) GetFeed(c *gin.Context) {
	var query dto.FeedQuery
	if !bindQuery(c, &query) {
		return
	}

	feed, err := h.feed.GetFeed(c.Request.Context(), query)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, feed)
}

func (h *PostHandler) Create(c *gin.Context) {
	var req dto.CreatePostRequest
	if !bindJSON(c, &req) {
		return
	}

	user := middleware.CurrentUser(c)
	post, err := h.posts.Create(c.Request.Context(), user.ID, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, post)
}

func (h *PostHandler) Get(c *gin.Context) {
	postID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var viewerID *uuid.UUID
	if user := middleware.CurrentUser(c); user != nil {
		viewerID = &user.ID
	}

	post, reactions, viewerReaction, err := h.posts.Get(c.Request.Context(), postID, viewerID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"post":            post,
		"reactions":       reactions,
		"viewer_reaction": viewerReaction,
	})
}

func (h *PostHandler) Delete(c *gin.Context) {
	postID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	user := middleware.CurrentUser(c)
	if err := h.posts.Delete(c.Request.Context(), user.ID, postID); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "تم حذف المنشور"})
}

package handler

import (
	"net/http"

	"dufaa.com/communitybackend/internal/service"
	"dufaa.com/communitybackend/pkg/response"
	"github.com/gin-gonic/gin"
)

type SearchHandler struct {
	service service.SearchService
}

func NewSearchHandler(service service.SearchService) *SearchHandler {
	return &SearchHandler{service: service}
}

func (h *SearchHandler) Search(c *gin.Context) {
	var query struct {
		Q     string `form:"q" binding:"required,min=1,max=200"`
		Scope string `form:"scope,default=posts" binding:"omitempty,oneof=posts people materials"`
		Limit int64  `form:"limit,default=20" binding:"omitempty,min=1,max=50"`
	}
	if !bindQuery(c, &query) {
		return
	}

	hits, err := h.service.Search(query.Scope, query.Q, query.Limit)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": hits})
}

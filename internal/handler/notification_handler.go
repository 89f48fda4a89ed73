package handler

import (
	"log"
	"net/http"

	"dufaa.com/communitybackend/internal/dto"
	"dufaa.com/communitybackend/internal/middleware"
	"dufaa.com/communitybackend/internal/service"
	"dufaa.com/communitybackend/pkg/apperror"
	"dufaa.com/communitybackend/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type NotificationHandler struct {
	service service.NotificationService
	rdb     *redis.Client
}

func NewNotificationHandler(service service.NotificationService, rdb *redis.Client) *NotificationHandler {
	return &NotificationHandler{service: service, rdb: rdb}
}

func (h *NotificationHandler) List(c *gin.Context) {
	var page dto.PageQuery
	if !bindQuery(c, &page) {
		return
	}

	user := middleware.CurrentUser(c)
	notifications, err := h.service.List(c.Request.Context(), user.ID, page)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": notifications})
}

func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	user := middleware.CurrentUser(c)
	count, err := h.service.UnreadCount(c.Request.Context(), user.ID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"unread": count})
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	user := middleware.CurrentUser(c)
	if err := h.service.MarkRead(c.Request.Context(), id, user.ID); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "تمت قراءة الإشعار"})
}

func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if err := h.service.MarkAllRead(c.Request.Context(), user.ID); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "تمت قراءة جميع الإشعارات"})
}

// Stream upgrades to a websocket and relays the user's redis
// notification channel until the client disconnects.
func (h *NotificationHandler) Stream(c *gin.Context) {
	if h.rdb == nil {
		response.ResponseError(c, apperror.New(http.StatusServiceUnavailable, "البث المباشر غير متاح حاليًا", apperror.ErrInternal))
		return
	}

	user := middleware.CurrentUser(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("websocket upgrade failed for %s: %v", user.ID, err)
		return
	}
	defer conn.Close()

	pubsub := h.rdb.Subscribe(c.Request.Context(), service.NotificationChannel(user.ID))
	defer pubsub.Close()

	// Drain client frames so pings and close messages are processed.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				pubsub.Close()
				return
			}
		}
	}()

	for msg := range pubsub.Channel() {
		if err := conn.WriteMessage(websocket.TextMessage, []byte(msg.Payload)); err != nil {
			return
		}
	}
}

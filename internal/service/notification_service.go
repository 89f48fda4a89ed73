package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"dufaa.com/communitybackend/internal/dto"
	"dufaa.com/communitybackend/internal/model"
	"dufaa.com/communitybackend/internal/repository"
	"dufaa.com/communitybackend/pkg/apperror"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// NotificationChannel is the redis pub/sub channel of one recipient.
func NotificationChannel(recipientID uuid.UUID) string {
	return fmt.Sprintf("user_notifications:%s", recipientID)
}

type NotificationService interface {
	// Push persists the rows and publishes each to the recipient's redis
	// channel for live delivery.
	Push(ctx context.Context, notifications []*model.Notification) error
	List(ctx context.Context, recipientID uuid.UUID, page dto.PageQuery) ([]*model.Notification, error)
	MarkRead(ctx context.Context, id, recipientID uuid.UUID) error
	MarkAllRead(ctx context.Context, recipientID uuid.UUID) error
	UnreadCount(ctx context.Context, recipientID uuid.UUID) (int64, error)
}

type notificationService struct {
	repo repository.NotificationRepository
	rdb  *redis.Client
}

func NewNotificationService(repo repository.NotificationRepository, rdb *redis.Client) NotificationService {
	return &notificationService{repo: repo, rdb: rdb}
}

func (s *notificationService) Push(ctx context.Context, notifications []*model.Notification) error {
	if err := s.repo.CreateBatch(ctx, notifications); err != nil {
		return err
	}

	if s.rdb == nil {
		return nil
	}

	for _, notification := range notifications {
		payload, err := json.Marshal(notification)
		if err != nil {
			continue
		}
		if err := s.rdb.Publish(ctx, NotificationChannel(notification.RecipientID), payload).Err(); err != nil {
			log.Printf("failed to publish notification %s: %v", notification.ID, err)
		}
	}

	return nil
}

func (s *notificationService) List(ctx context.Context, recipientID uuid.UUID, page dto.PageQuery) ([]*model.Notification, error) {
	return s.repo.ListByRecipient(ctx, recipientID, page.Offset(), page.Normalized())
}

func (s *notificationService) MarkRead(ctx context.Context, id, recipientID uuid.UUID) error {
	affected, err := s.repo.MarkRead(ctx, id, recipientID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperror.NotFound("الإشعار غير موجود")
	}
	return nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, recipientID uuid.UUID) error {
	return s.repo.MarkAllRead(ctx, recipientID)
}

func (s *notificationService) UnreadCount(ctx context.Context, recipientID uuid.UUID) (int64, error) {
	return s.repo.CountUnread(ctx, recipientID)
}

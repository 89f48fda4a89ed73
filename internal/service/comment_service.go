package service

import (
	"context"
	"errors"
	"log"

	"dufaa.com/communitybackend/internal/dto"
	"dufaa.com/communitybackend/internal/model"
	"dufaa.com/communitybackend/internal/repository"
	"dufaa.com/communitybackend/pkg/apperror"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"
)

type CommentService interface {
	Create(ctx context.Context, userID, postID uuid.UUID, input dto.CreateCommentRequest) (*model.Comment, error)
	ListByPost(ctx context.Context, postID uuid.UUID, page dto.PageQuery) ([]*model.Comment, int64, error)
	Update(ctx context.Context, userID, commentID uuid.UUID, input dto.UpdateCommentRequest) (*model.Comment, error)
	Delete(ctx context.Context, userID, commentID uuid.UUID) error
}

type commentService struct {
	comments      repository.CommentRepository
	posts         repository.PostRepository
	notifications NotificationService
	sanitizer     *bluemonday.Policy
}

func NewCommentService(
	comments repository.CommentRepository,
	posts repository.PostRepository,
	notifications NotificationService,
) CommentService {
	return &commentService{
		comments:      comments,
		posts:         posts,
		notifications: notifications,
		sanitizer:     bluemonday.StrictPolicy(),
	}
}

func (s *commentService) Create(ctx context.Context, userID, postID uuid.UUID, input dto.CreateCommentRequest) (*model.Comment, error) {
	if _, err := s.posts.FindCreatedAt(ctx, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("المنشور غير موجود")
		}
		return nil, err
	}

	var parent *model.Comment
	var parentID *uuid.UUID
	if input.ParentID != nil {
		id, err := uuid.Parse(*input.ParentID)
		if err != nil {
			return nil, apperror.New(400, "معرّف التعليق الأصلي غير صالح", apperror.ErrInvalidInput)
		}

		parent, err = s.comments.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperror.NotFound("التعليق الأصلي غير موجود")
			}
			return nil, err
		}
		if parent.PostID != postID {
			return nil, apperror.New(400, "التعليق الأصلي لا يتبع هذا المنشور", apperror.ErrInvalidInput)
		}
		parentID = &id
	}

	comment := &model.Comment{
		PostID:   postID,
		ParentID: parentID,
		UserID:   userID,
		Body:     s.sanitizer.Sanitize(input.Body),
	}

	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}

	// Fan-out runs after the comment committed and is best-effort: a
	// failure here is logged, never propagated to the commenter.
	s.fanOut(ctx, comment, parent)

	return s.comments.FindByID(ctx, comment.ID)
}

// fanOut computes the distinct recipient set and writes one notification
// per recipient. The map is built in a fixed order, post author first
// and parent-comment author second, so a user who is both gets exactly one
// notification and the reply type wins.
func (s *commentService) fanOut(ctx context.Context, comment *model.Comment, parent *model.Comment) {
	post, err := s.posts.FindByID(ctx, comment.PostID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("notification fan-out: failed to load post %s: %v", comment.PostID, err)
		}
		// Post deleted concurrently: abort silently.
		return
	}

	recipients := make(map[uuid.UUID]string, 2)
	order := make([]uuid.UUID, 0, 2)

	if post.UserID != comment.UserID {
		if _, seen := recipients[post.UserID]; !seen {
			order = append(order, post.UserID)
		}
		recipients[post.UserID] = model.NotificationNewComment
	}
	if parent != nil && parent.UserID != comment.UserID {
		if _, seen := recipients[parent.UserID]; !seen {
			order = append(order, parent.UserID)
		}
		recipients[parent.UserID] = model.NotificationCommentReply
	}

	if len(recipients) == 0 {
		return
	}

	commentID := comment.ID
	postID := comment.PostID
	notifications := make([]*model.Notification, 0, len(recipients))
	for _, recipientID := range order {
		notifications = append(notifications, &model.Notification{
			RecipientID: recipientID,
			ActorID:     comment.UserID,
			Type:        recipients[recipientID],
			PostID:      &postID,
			CommentID:   &commentID,
		})
	}

	if err := s.notifications.Push(ctx, notifications); err != nil {
		log.Printf("notification fan-out: failed to persist for comment %s: %v", comment.ID, err)
	}
}

func (s *commentService) ListByPost(ctx context.Context, postID uuid.UUID, page dto.PageQuery) ([]*model.Comment, int64, error) {
	return s.comments.ListByPost(ctx, postID, page.Offset(), page.Normalized())
}

func (s *commentService) Update(ctx context.Context, userID, commentID uuid.UUID, input dto.UpdateCommentRequest) (*model.Comment, error) {
	comment, err := s.comments.FindByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("التعليق غير موجود")
		}
		return nil, err
	}

	if comment.UserID != userID {
		return nil, apperror.Forbidden("لا يمكنك تعديل تعليق لا تملكه")
	}

	comment.Body = s.sanitizer.Sanitize(input.Body)
	if err := s.comments.Update(ctx, comment); err != nil {
		return nil, err
	}

	return comment, nil
}

func (s *commentService) Delete(ctx context.Context, userID, commentID uuid.UUID) error {
	comment, err := s.comments.FindByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("التعليق غير موجود")
		}
		return err
	}

	if comment.UserID != userID {
		return apperror.Forbidden("لا يمكنك حذف تعليق لا تملكه")
	}

	return s.comments.Delete(ctx, commentID)
}

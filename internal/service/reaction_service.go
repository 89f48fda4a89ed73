package service

import (
	"context"
	"errors"

	"dufaa.com/communitybackend/internal/dto"
	"dufaa.com/communitybackend/internal/model"
	"dufaa.com/communitybackend/internal/repository"
	"dufaa.com/communitybackend/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReactionService interface {
	// Set upserts the reaction: a repeated kind is a no-op, a different
	// kind replaces the stored one, never a second row.
	Set(ctx context.Context, userID uuid.UUID, input dto.SetReactionRequest) error
	Remove(ctx context.Context, userID uuid.UUID, input dto.RemoveReactionRequest) error
	Counts(ctx context.Context, subjectType string, subjectID uuid.UUID) (map[string]int64, error)
}

type reactionService struct {
	reactions repository.ReactionRepository
	posts     repository.PostRepository
	comments  repository.CommentRepository
}

func NewReactionService(
	reactions repository.ReactionRepository,
	posts repository.PostRepository,
	comments repository.CommentRepository,
) ReactionService {
	return &reactionService{
		reactions: reactions,
		posts:     posts,
		comments:  comments,
	}
}

func (s *reactionService) Set(ctx context.Context, userID uuid.UUID, input dto.SetReactionRequest) error {
	if !model.ValidReactionKind(input.Kind) {
		return apperror.New(400, "نوع التفاعل غير مسموح", apperror.ErrInvalidInput)
	}

	subjectID, err := uuid.Parse(input.SubjectID)
	if err != nil {
		return apperror.New(400, "معرّف العنصر غير صالح", apperror.ErrInvalidInput)
	}

	if err := s.subjectExists(ctx, input.SubjectType, subjectID); err != nil {
		return err
	}

	return s.reactions.Upsert(ctx, &model.Reaction{
		SubjectType: input.SubjectType,
		SubjectID:   subjectID,
		UserID:      userID,
		Kind:        input.Kind,
	})
}

func (s *reactionService) Remove(ctx context.Context, userID uuid.UUID, input dto.RemoveReactionRequest) error {
	subjectID, err := uuid.Parse(input.SubjectID)
	if err != nil {
		return apperror.New(400, "معرّف العنصر غير صالح", apperror.ErrInvalidInput)
	}
	return s.reactions.Remove(ctx, input.SubjectType, subjectID, userID)
}

func (s *reactionService) Counts(ctx context.Context, subjectType string, subjectID uuid.UUID) (map[string]int64, error) {
	return s.reactions.CountsBySubject(ctx, subjectType, subjectID)
}

func (s *reactionService) subjectExists(ctx context.Context, subjectType string, subjectID uuid.UUID) error {
	var err error
	switch subjectType {
	case model.SubjectPost:
		_, err = s.posts.FindCreatedAt(ctx, subjectID)
	case model.SubjectComment:
		_, err = s.comments.FindByID(ctx, subjectID)
	default:
		return apperror.New(400, "نوع العنصر غير مسموح", apperror.ErrInvalidInput)
	}

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("العنصر المطلوب غير موجود")
		}
		return err
	}
	return nil
}

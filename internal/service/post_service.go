package service

import (
	"context"
	"errors"
	"log"

	"dufaa.com/communitybackend/internal/dto"
	"dufaa.com/communitybackend/internal/model"
	"dufaa.com/communitybackend/internal/repository"
	"dufaa.com/communitybackend/pkg/apperror"
	"dufaa.com/communitybackend/pkg/storage"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"
)

type PostService interface {
	Create(ctx context.Context, userID uuid.UUID, input dto.CreatePostRequest) (*model.Post, error)
	// Get returns the post with its reaction counts and, when a viewer
	// is signed in, the viewer's own reaction.
	Get(ctx context.Context, id uuid.UUID, viewerID *uuid.UUID) (*model.Post, map[string]int64, *model.Reaction, error)
	// Delete requires ownership; only the author may remove a post.
	Delete(ctx context.Context, userID, postID uuid.UUID) error
}

type postService struct {
	posts     repository.PostRepository
	reactions repository.ReactionRepository
	search    SearchService
	media     storage.MediaStorage
	sanitizer *bluemonday.Policy
}

func NewPostService(
	posts repository.PostRepository,
	reactions repository.ReactionRepository,
	search SearchService,
	media storage.MediaStorage,
) PostService {
	return &postService{
		posts:     posts,
		reactions: reactions,
		search:    search,
		media:     media,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

func (s *postService) Create(ctx context.Context, userID uuid.UUID, input dto.CreatePostRequest) (*model.Post, error) {
	if len(input.Media) > model.MaxPostMedia {
		return nil, apperror.New(400, "عدد المرفقات يتجاوز الحد المسموح", apperror.ErrInvalidInput)
	}

	post := &model.Post{
		UserID: userID,
		Body:   s.sanitizer.Sanitize(input.Body),
	}
	for i, m := range input.Media {
		post.Media = append(post.Media, model.PostMedia{
			URL:      m.URL,
			Kind:     m.Kind,
			Position: i,
		})
	}

	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}

	created, err := s.posts.FindByID(ctx, post.ID)
	if err != nil {
		return nil, err
	}

	if s.search != nil {
		s.search.IndexPost(created)
	}

	return created, nil
}

func (s *postService) Get(ctx context.Context, id uuid.UUID, viewerID *uuid.UUID) (*model.Post, map[string]int64, *model.Reaction, error) {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, nil, nil, err
	}

	counts, err := s.reactions.CountsBySubject(ctx, model.SubjectPost, id)
	if err != nil {
		return nil, nil, nil, err
	}

	var viewerReaction *model.Reaction
	if viewerID != nil {
		reaction, err := s.reactions.FindByUser(ctx, model.SubjectPost, id, *viewerID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, nil, err
		}
		viewerReaction = reaction
	}

	return post, counts, viewerReaction, nil
}

func (s *postService) Delete(ctx context.Context, userID, postID uuid.UUID) error {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("المنشور غير موجود")
		}
		return err
	}

	if post.UserID != userID {
		return apperror.Forbidden("لا يمكنك حذف منشور لا تملكه")
	}

	if err := s.posts.Delete(ctx, postID); err != nil {
		return err
	}

	if s.search != nil {
		s.search.DeletePost(postID)
	}

	// Stored files go best-effort; an orphaned file is preferable to a
	// failed delete.
	if s.media != nil {
		for _, m := range post.Media {
			if err := s.media.Delete(ctx, m.URL); err != nil {
				log.Printf("failed to delete media %s for post %s: %v", m.URL, postID, err)
			}
		}
	}

	return nil
}

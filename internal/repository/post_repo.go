package repository

import (
	"context"
	"time"

	"dufaa.com/communitybackend/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReactionCount is one aggregated (post, kind) bucket of the feed query.
type ReactionCount struct {
	SubjectID uuid.UUID
	Kind      string
	Count     int64
}

type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Post, error)
	// FindCreatedAt resolves a feed cursor to its creation timestamp.
	FindCreatedAt(ctx context.Context, id uuid.UUID) (time.Time, error)
	// ListBefore returns up to limit posts strictly earlier than before
	// (all posts when before is nil), newest first, authors preloaded.
	ListBefore(ctx context.Context, before *time.Time, limit int) ([]*model.Post, error)
	MediaByPostIDs(ctx context.Context, postIDs []uuid.UUID) ([]*model.PostMedia, error)
	ReactionCountsByPostIDs(ctx context.Context, postIDs []uuid.UUID) ([]ReactionCount, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	var post model.Post
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("User.Profile").
		Preload("Media", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("id = ?", id).
		First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) FindCreatedAt(ctx context.Context, id uuid.UUID) (time.Time, error) {
	var post model.Post
	if err := r.db.WithContext(ctx).
		Select("created_at").
		Where("id = ?", id).
		First(&post).Error; err != nil {
		return time.Time{}, err
	}
	return post.CreatedAt, nil
}

func (r *postRepository) ListBefore(ctx context.Context, before *time.Time, limit int) ([]*model.Post, error) {
	var posts []*model.Post

	query := r.db.WithContext(ctx).
		Preload("User").
		Preload("User.Profile")
	if before != nil {
		query = query.Where("created_at < ?", *before)
	}

	err := query.Order("created_at DESC").Limit(limit).Find(&posts).Error
	return posts, err
}

func (r *postRepository) MediaByPostIDs(ctx context.Context, postIDs []uuid.UUID) ([]*model.PostMedia, error) {
	if len(postIDs) == 0 {
		return nil, nil
	}

	var media []*model.PostMedia
	err := r.db.WithContext(ctx).
		Where("post_id IN ?", postIDs).
		Order("post_id, position ASC").
		Find(&media).Error
	return media, err
}

func (r *postRepository) ReactionCountsByPostIDs(ctx context.Context, postIDs []uuid.UUID) ([]ReactionCount, error) {
	if len(postIDs) == 0 {
		return nil, nil
	}

	var counts []ReactionCount
	err := r.db.WithContext(ctx).
		Model(&model.Reaction{}).
		Select("subject_id, kind, COUNT(*) as count").
		Where("subject_type = ? AND subject_id IN ?", model.SubjectPost, postIDs).
		Group("subject_id, kind").
		Scan(&counts).Error
	return counts, err
}

func (r *postRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.PostMedia{}, "post_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model.Reaction{}, "subject_type = ? AND subject_id = ?", model.SubjectPost, id).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Post{}, "id = ?", id).Error
	})
}

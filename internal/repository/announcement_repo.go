package repository

import (
	"context"

	"dufaa.com/communitybackend/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AnnouncementRepository interface {
	Create(ctx context.Context, announcement *model.Announcement) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Announcement, error)
	ListActive(ctx context.Context) ([]*model.Announcement, error)
	ListAll(ctx context.Context, offset, limit int) ([]*model.Announcement, int64, error)
	Update(ctx context.Context, announcement *model.Announcement) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type announcementRepository struct {
	db *gorm.DB
}

func NewAnnouncementRepository(db *gorm.DB) AnnouncementRepository {
	return &announcementRepository{db: db}
}

func (r *announcementRepository) Create(ctx context.Context, announcement *model.Announcement) error {
	return r.db.WithContext(ctx).Create(announcement).Error
}

func (r *announcementRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Announcement, error) {
	var announcement model.Announcement
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Where("id = ?", id).
		First(&announcement).Error; err != nil {
		return nil, err
	}
	return &announcement, nil
}

func (r *announcementRepository) ListActive(ctx context.Context) ([]*model.Announcement, error) {
	var announcements []*model.Announcement
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("active = true").
		Order("created_at DESC").
		Find(&announcements).Error
	return announcements, err
}

func (r *announcementRepository) ListAll(ctx context.Context, offset, limit int) ([]*model.Announcement, int64, error) {
	var announcements []*model.Announcement
	var total int64

	query := r.db.WithContext(ctx).Model(&model.Announcement{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Preload("Author").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&announcements).Error; err != nil {
		return nil, 0, err
	}

	return announcements, total, nil
}

func (r *announcementRepository) Update(ctx context.Context, announcement *model.Announcement) error {
	return r.db.WithContext(ctx).Save(announcement).Error
}

func (r *announcementRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Announcement{}, "id = ?", id).Error
}

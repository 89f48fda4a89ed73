package repository

import (
	"context"

	"dufaa.com/communitybackend/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SubmissionRepository interface {
	Create(ctx context.Context, submission *model.Submission) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Submission, error)
	List(ctx context.Context, semester string, offset, limit int) ([]*model.Submission, int64, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*model.Submission, error)
	ListAll(ctx context.Context) ([]*model.Submission, error)
	Update(ctx context.Context, submission *model.Submission) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type submissionRepository struct {
	db *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &submissionRepository{db: db}
}

func (r *submissionRepository) Create(ctx context.Context, submission *model.Submission) error {
	return r.db.WithContext(ctx).Create(submission).Error
}

func (r *submissionRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Submission, error) {
	var submission model.Submission
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("id = ?", id).
		First(&submission).Error; err != nil {
		return nil, err
	}
	return &submission, nil
}

func (r *submissionRepository) List(ctx context.Context, semester string, offset, limit int) ([]*model.Submission, int64, error) {
	var submissions []*model.Submission
	var total int64

	query := r.db.WithContext(ctx).Model(&model.Submission{})
	if semester != "" {
		query = query.Where("semester = ?", semester)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Preload("User").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&submissions).Error; err != nil {
		return nil, 0, err
	}

	return submissions, total, nil
}

func (r *submissionRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*model.Submission, error) {
	var submissions []*model.Submission
	err := r.db.WithContext(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&submissions).Error
	return submissions, err
}

func (r *submissionRepository) ListAll(ctx context.Context) ([]*model.Submission, error) {
	var submissions []*model.Submission
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Order("created_at DESC").
		Find(&submissions).Error
	return submissions, err
}

func (r *submissionRepository) Update(ctx context.Context, submission *model.Submission) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.SubmissionImage{}, "submission_id = ?", submission.ID).Error; err != nil {
			return err
		}
		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(submission).Error
	})
}

func (r *submissionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.SubmissionImage{}, "submission_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Submission{}, "id = ?", id).Error
	})
}

package repository

import (
	"context"

	"dufaa.com/communitybackend/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LearningRepository interface {
	CreateSubject(ctx context.Context, subject *model.Subject) error
	ListSubjects(ctx context.Context) ([]*model.Subject, error)
	FindSubject(ctx context.Context, id uuid.UUID) (*model.Subject, error)
	CreateMaterial(ctx context.Context, material *model.Material) error
	FindMaterial(ctx context.Context, id uuid.UUID) (*model.Material, error)
	// ListMaterials filters by status when status is non-empty; the public
	// listing passes "approved", admins pass "" for everything.
	ListMaterials(ctx context.Context, subjectID uuid.UUID, status string) ([]*model.Material, error)
	UpdateMaterialStatus(ctx context.Context, id uuid.UUID, status string) error
}

type learningRepository struct {
	db *gorm.DB
}

func NewLearningRepository(db *gorm.DB) LearningRepository {
	return &learningRepository{db: db}
}

func (r *learningRepository) CreateSubject(ctx context.Context, subject *model.Subject) error {
	return r.db.WithContext(ctx).Create(subject).Error
}

func (r *learningRepository) ListSubjects(ctx context.Context) ([]*model.Subject, error) {
	var subjects []*model.Subject
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&subjects).Error
	return subjects, err
}

func (r *learningRepository) FindSubject(ctx context.Context, id uuid.UUID) (*model.Subject, error) {
	var subject model.Subject
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&subject).Error; err != nil {
		return nil, err
	}
	return &subject, nil
}

func (r *learningRepository) CreateMaterial(ctx context.Context, material *model.Material) error {
	return r.db.WithContext(ctx).Create(material).Error
}

func (r *learningRepository) FindMaterial(ctx context.Context, id uuid.UUID) (*model.Material, error) {
	var material model.Material
	if err := r.db.WithContext(ctx).
		Preload("Uploader").
		Where("id = ?", id).
		First(&material).Error; err != nil {
		return nil, err
	}
	return &material, nil
}

func (r *learningRepository) ListMaterials(ctx context.Context, subjectID uuid.UUID, status string) ([]*model.Material, error) {
	var materials []*model.Material

	query := r.db.WithContext(ctx).
		Preload("Uploader").
		Where("subject_id = ?", subjectID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	err := query.Order("created_at DESC").Find(&materials).Error
	return materials, err
}

func (r *learningRepository) UpdateMaterialStatus(ctx context.Context, id uuid.UUID, status string) error {
	return r.db.WithContext(ctx).
		Model(&model.Material{}).
		Where("id = ?", id).
		Update("status", status).Error
}

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

type LearningService interface {
	CreateSubject(ctx context.Context, adminID uuid.UUID, input dto.CreateSubjectRequest) (*model.Subject, error)
	ListSubjects(ctx context.Context) ([]*model.Subject, error)
	// SubmitMaterial is open to any authenticated user; the material
	// starts pending and stays invisible until approved.
	SubmitMaterial(ctx context.Context, uploaderID, subjectID uuid.UUID, input dto.CreateMaterialRequest) (*model.Material, error)
	// ListMaterials shows approved materials only unless the caller is
	// an admin.
	ListMaterials(ctx context.Context, subjectID uuid.UUID, isAdmin bool) ([]*model.Material, error)
	SetMaterialStatus(ctx context.Context, adminID, materialID uuid.UUID, status string) (*model.Material, error)
}

type learningService struct {
	repo   repository.LearningRepository
	search SearchService
	audit  AuditRecorder
}

func NewLearningService(repo repository.LearningRepository, search SearchService, audit AuditRecorder) LearningService {
	return &learningService{repo: repo, search: search, audit: audit}
}

func (s *learningService) CreateSubject(ctx context.Context, adminID uuid.UUID, input dto.CreateSubjectRequest) (*model.Subject, error) {
	subject := &model.Subject{
		Name:        input.Name,
		Description: input.Description,
		CreatedByID: adminID,
	}

	if err := s.repo.CreateSubject(ctx, subject); err != nil {
		return nil, err
	}

	if s.audit != nil {
		s.audit.Record(ctx, adminID, "subject.create", "subject", subject.ID.String(), subject.Name)
	}

	return subject, nil
}

func (s *learningService) ListSubjects(ctx context.Context) ([]*model.Subject, error) {
	return s.repo.ListSubjects(ctx)
}

func (s *learningService) SubmitMaterial(ctx context.Context, uploaderID, subjectID uuid.UUID, input dto.CreateMaterialRequest) (*model.Material, error) {
	if _, err := s.repo.FindSubject(ctx, subjectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("المادة الدراسية غير موجودة")
		}
		return nil, err
	}

	material := &model.Material{
		SubjectID:  subjectID,
		UploaderID: uploaderID,
		Title:      input.Title,
		Type:       input.Type,
		URL:        input.URL,
		Status:     model.MaterialPending,
	}

	if err := s.repo.CreateMaterial(ctx, material); err != nil {
		return nil, err
	}

	return material, nil
}

func (s *learningService) ListMaterials(ctx context.Context, subjectID uuid.UUID, isAdmin bool) ([]*model.Material, error) {
	status := model.MaterialApproved
	if isAdmin {
		status = ""
	}
	return s.repo.ListMaterials(ctx, subjectID, status)
}

func (s *learningService) SetMaterialStatus(ctx context.Context, adminID, materialID uuid.UUID, status string) (*model.Material, error) {
	material, err := s.repo.FindMaterial(ctx, materialID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("الملف غير موجود")
		}
		return nil, err
	}

	if err := s.repo.UpdateMaterialStatus(ctx, materialID, status); err != nil {
		return nil, err
	}
	material.Status = status

	if s.audit != nil {
		s.audit.Record(ctx, adminID, "material."+status, "material", materialID.String(), material.Title)
	}

	if s.search != nil {
		if status == model.MaterialApproved {
			s.search.IndexMaterial(material)
		} else {
			s.search.DeleteMaterial(materialID)
		}
	}

	return material, nil
}

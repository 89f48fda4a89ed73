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

type SubmissionService interface {
	Create(ctx context.Context, userID uuid.UUID, input dto.SubmissionRequest) (*model.Submission, error)
	List(ctx context.Context, query dto.SubmissionListQuery) ([]*model.Submission, int64, error)
	ListOwn(ctx context.Context, userID uuid.UUID) ([]*model.Submission, error)
	// Update and Delete re-validate ownership against the session user.
	Update(ctx context.Context, userID, id uuid.UUID, input dto.SubmissionRequest) (*model.Submission, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	// Export returns every submission for the admin JSON export.
	Export(ctx context.Context) ([]*model.Submission, error)
}

type submissionService struct {
	repo repository.SubmissionRepository
}

func NewSubmissionService(repo repository.SubmissionRepository) SubmissionService {
	return &submissionService{repo: repo}
}

func (s *submissionService) Create(ctx context.Context, userID uuid.UUID, input dto.SubmissionRequest) (*model.Submission, error) {
	submission := &model.Submission{
		UserID:      userID,
		Semester:    input.Semester,
		Title:       input.Title,
		Description: input.Description,
	}
	for i, url := range input.ImageURLs {
		submission.Images = append(submission.Images, model.SubmissionImage{
			URL:      url,
			Position: i,
		})
	}

	if err := s.repo.Create(ctx, submission); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, submission.ID)
}

func (s *submissionService) List(ctx context.Context, query dto.SubmissionListQuery) ([]*model.Submission, int64, error) {
	return s.repo.List(ctx, query.Semester, query.Offset(), query.Normalized())
}

func (s *submissionService) ListOwn(ctx context.Context, userID uuid.UUID) ([]*model.Submission, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *submissionService) Update(ctx context.Context, userID, id uuid.UUID, input dto.SubmissionRequest) (*model.Submission, error) {
	submission, err := s.findOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	submission.Semester = input.Semester
	submission.Title = input.Title
	submission.Description = input.Description
	submission.Images = nil
	for i, url := range input.ImageURLs {
		submission.Images = append(submission.Images, model.SubmissionImage{
			SubmissionID: submission.ID,
			URL:          url,
			Position:     i,
		})
	}

	if err := s.repo.Update(ctx, submission); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

func (s *submissionService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := s.findOwned(ctx, userID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *submissionService) Export(ctx context.Context) ([]*model.Submission, error) {
	return s.repo.ListAll(ctx)
}

func (s *submissionService) findOwned(ctx context.Context, userID, id uuid.UUID) (*model.Submission, error) {
	submission, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("المشاركة غير موجودة")
		}
		return nil, err
	}

	if submission.UserID != userID {
		return nil, apperror.Forbidden("لا يمكنك تعديل مشاركة لا تملكها")
	}
	return submission, nil
}

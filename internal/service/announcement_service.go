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

type AnnouncementService interface {
	ListActive(ctx context.Context) ([]*model.Announcement, error)
	ListAll(ctx context.Context, page dto.PageQuery) ([]*model.Announcement, int64, error)
	Create(ctx context.Context, adminID uuid.UUID, input dto.CreateAnnouncementRequest) (*model.Announcement, error)
	Update(ctx context.Context, adminID, id uuid.UUID, input dto.UpdateAnnouncementRequest) (*model.Announcement, error)
	Delete(ctx context.Context, adminID, id uuid.UUID) error
}

type announcementService struct {
	repo  repository.AnnouncementRepository
	audit AuditRecorder
}

func NewAnnouncementService(repo repository.AnnouncementRepository, audit AuditRecorder) AnnouncementService {
	return &announcementService{repo: repo, audit: audit}
}

func (s *announcementService) ListActive(ctx context.Context) ([]*model.Announcement, error) {
	return s.repo.ListActive(ctx)
}

func (s *announcementService) ListAll(ctx context.Context, page dto.PageQuery) ([]*model.Announcement, int64, error) {
	return s.repo.ListAll(ctx, page.Offset(), page.Normalized())
}

func (s *announcementService) Create(ctx context.Context, adminID uuid.UUID, input dto.CreateAnnouncementRequest) (*model.Announcement, error) {
	announcement := &model.Announcement{
		AuthorID: adminID,
		Title:    input.Title,
		Body:     input.Body,
		Active:   true,
	}

	if err := s.repo.Create(ctx, announcement); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, adminID, "announcement.create", "announcement", announcement.ID.String(), announcement.Title)
	return announcement, nil
}

func (s *announcementService) Update(ctx context.Context, adminID, id uuid.UUID, input dto.UpdateAnnouncementRequest) (*model.Announcement, error) {
	announcement, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("الإعلان غير موجود")
		}
		return nil, err
	}

	if input.Title != nil {
		announcement.Title = *input.Title
	}
	if input.Body != nil {
		announcement.Body = *input.Body
	}
	if input.Active != nil {
		announcement.Active = *input.Active
	}

	if err := s.repo.Update(ctx, announcement); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, adminID, "announcement.update", "announcement", id.String(), announcement.Title)
	return announcement, nil
}

func (s *announcementService) Delete(ctx context.Context, adminID, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("الإعلان غير موجود")
		}
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.audit.Record(ctx, adminID, "announcement.delete", "announcement", id.String(), "")
	return nil
}

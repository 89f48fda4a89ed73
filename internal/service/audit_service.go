package service

import (
	"context"
	"log"

	"dufaa.com/communitybackend/internal/dto"
	"dufaa.com/communitybackend/internal/model"
	"dufaa.com/communitybackend/internal/repository"
	"github.com/google/uuid"
)

// AuditRecorder is the write side of the audit log. Recording is
/// best-effort: a failed audit write never fails the admin action itself.
type AuditRecorder interface {
	Record(ctx context.Context, actorID uuid.UUID, action, targetType, targetID, detail string)
}

type AuditService interface {
	AuditRecorder
	List(ctx context.Context, page dto.PageQuery) ([]*model.AuditLog, int64, error)
}

type auditService struct {
	repo repository.AuditRepository
}

func NewAuditService(repo repository.AuditRepository) AuditService {
	return &auditService{repo: repo}
}

func (s *auditService) Record(ctx context.Context, actorID uuid.UUID, action, targetType, targetID, detail string) {
	entry := &model.AuditLog{
		ActorID:    actorID,
		Action:     action,
		TargetType: targetType,
		TargetID:   targetID,
		Detail:     detail,
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		log.Printf("failed to write audit entry %s by %s: %v", action, actorID, err)
	}
}

func (s *auditService) List(ctx context.Context, page dto.PageQuery) ([]*model.AuditLog, int64, error) {
	return s.repo.List(ctx, page.Offset(), page.Normalized())
}

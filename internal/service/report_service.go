package service

import (
	"context"
	"errors"
	"net/http"

	"dufaa.com/communitybackend/internal/dto"
	"dufaa.com/communitybackend/internal/model"
	"dufaa.com/communitybackend/internal/repository"
	"dufaa.com/communitybackend/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReportService interface {
	Create(ctx context.Context, reporterID uuid.UUID, input dto.CreateReportRequest) (*model.Report, error)
	List(ctx context.Context, query dto.ReportListQuery) ([]*model.Report, int64, error)
	// Resolve moves the report to a terminal status. Reports already
	// resolved or dismissed stay that way; re-resolving is a conflict.
	Resolve(ctx context.Context, adminID, reportID uuid.UUID, input dto.ResolveReportRequest) (*model.Report, error)
}

type reportService struct {
	reports  repository.ReportRepository
	posts    repository.PostRepository
	comments repository.CommentRepository
	users    repository.UserRepository
	audit    AuditRecorder
}

func NewReportService(
	reports repository.ReportRepository,
	posts repository.PostRepository,
	comments repository.CommentRepository,
	users repository.UserRepository,
	audit AuditRecorder,
) ReportService {
	return &reportService{
		reports:  reports,
		posts:    posts,
		comments: comments,
		users:    users,
		audit:    audit,
	}
}

func (s *reportService) Create(ctx context.Context, reporterID uuid.UUID, input dto.CreateReportRequest) (*model.Report, error) {
	if !model.ValidReportReason(input.Reason) {
		return nil, apperror.New(http.StatusBadRequest, "سبب البلاغ غير مسموح", apperror.ErrInvalidInput)
	}

	targetID, err := uuid.Parse(input.TargetID)
	if err != nil {
		return nil, apperror.New(http.StatusBadRequest, "معرّف الهدف غير صالح", apperror.ErrInvalidInput)
	}

	if err := s.targetExists(ctx, input.TargetType, targetID); err != nil {
		return nil, err
	}

	report := &model.Report{
		ReporterID: reporterID,
		TargetType: input.TargetType,
		TargetID:   targetID,
		Reason:     input.Reason,
		Details:    input.Details,
		Status:     model.ReportPending,
	}

	if err := s.reports.Create(ctx, report); err != nil {
		return nil, err
	}

	return report, nil
}

func (s *reportService) List(ctx context.Context, query dto.ReportListQuery) ([]*model.Report, int64, error) {
	return s.reports.ListByStatus(ctx, query.Status, query.Offset(), query.Normalized())
}

func (s *reportService) Resolve(ctx context.Context, adminID, reportID uuid.UUID, input dto.ResolveReportRequest) (*model.Report, error) {
	affected, err := s.reports.Resolve(ctx, reportID, input.Status, input.ResolutionNote, input.ActionTaken, adminID)
	if err != nil {
		return nil, err
	}

	if affected == 0 {
		if _, err := s.reports.FindByID(ctx, reportID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperror.NotFound("البلاغ غير موجود")
			}
			return nil, err
		}
		// The row exists but was not pending: the transition is one-way.
		return nil, apperror.New(http.StatusConflict, "تمت معالجة هذا البلاغ مسبقًا", apperror.ErrConflict)
	}

	if s.audit != nil {
		s.audit.Record(ctx, adminID, "report."+input.Status, "report", reportID.String(), "")
	}

	return s.reports.FindByID(ctx, reportID)
}

func (s *reportService) targetExists(ctx context.Context, targetType string, targetID uuid.UUID) error {
	var err error
	switch targetType {
	case model.ReportTargetPost:
		_, err = s.posts.FindCreatedAt(ctx, targetID)
	case model.ReportTargetComment:
		_, err = s.comments.FindByID(ctx, targetID)
	case model.ReportTargetUser:
		_, err = s.users.FindByID(ctx, targetID)
	default:
		return apperror.New(http.StatusBadRequest, "نوع الهدف غير مسموح", apperror.ErrInvalidInput)
	}

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("العنصر المبلغ عنه غير موجود")
		}
		return err
	}
	return nil
}

package service

import (
	"context"
	"errors"
	"net/http"
	"time"

	"dufaa.com/communitybackend/internal/dto"
	"dufaa.com/communitybackend/internal/model"
	"dufaa.com/communitybackend/internal/repository"
	"dufaa.com/communitybackend/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AdminService covers user management and restrictions. Every mutation
// lands in the audit log.
type AdminService interface {
	ListUsers(ctx context.Context, query dto.PeopleQuery) ([]*model.User, int64, error)
	SetAdmin(ctx context.Context, adminID, userID uuid.UUID, isAdmin bool) error
	DeleteUser(ctx context.Context, adminID, userID uuid.UUID) error
	Restrict(ctx context.Context, adminID uuid.UUID, input dto.CreateRestrictionRequest) (*model.Restriction, error)
	ListRestrictions(ctx context.Context, page dto.PageQuery) ([]*model.Restriction, int64, error)
	// UserRestrictions returns the full grant history of one user,
	// lifted and expired entries included.
	UserRestrictions(ctx context.Context, userID uuid.UUID) ([]*model.Restriction, error)
	LiftRestriction(ctx context.Context, adminID uuid.UUID, restrictionID uint) error
}

type adminService struct {
	users        repository.UserRepository
	restrictions repository.RestrictionRepository
	search       SearchService
	audit        AuditRecorder
}

func NewAdminService(
	users repository.UserRepository,
	restrictions repository.RestrictionRepository,
	search SearchService,
	audit AuditRecorder,
) AdminService {
	return &adminService{
		users:        users,
		restrictions: restrictions,
		search:       search,
		audit:        audit,
	}
}

func (s *adminService) ListUsers(ctx context.Context, query dto.PeopleQuery) ([]*model.User, int64, error) {
	return s.users.List(ctx, query.Search, query.Offset(), query.Normalized())
}

func (s *adminService) SetAdmin(ctx context.Context, adminID, userID uuid.UUID, isAdmin bool) error {
	if adminID == userID && !isAdmin {
		return apperror.New(http.StatusBadRequest, "لا يمكنك إزالة صلاحياتك الإدارية بنفسك", apperror.ErrInvalidInput)
	}

	if _, err := s.users.FindByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("المستخدم غير موجود")
		}
		return err
	}

	if err := s.users.SetAdmin(ctx, userID, isAdmin); err != nil {
		return err
	}

	action := "user.grant_admin"
	if !isAdmin {
		action = "user.revoke_admin"
	}
	s.audit.Record(ctx, adminID, action, "user", userID.String(), "")
	return nil
}

func (s *adminService) DeleteUser(ctx context.Context, adminID, userID uuid.UUID) error {
	if adminID == userID {
		return apperror.New(http.StatusBadRequest, "لا يمكنك حذف حسابك من هنا", apperror.ErrInvalidInput)
	}

	if _, err := s.users.FindByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("المستخدم غير موجود")
		}
		return err
	}

	if err := s.users.Delete(ctx, userID); err != nil {
		return err
	}

	if s.search != nil {
		s.search.DeletePerson(userID)
	}

	s.audit.Record(ctx, adminID, "user.delete", "user", userID.String(), "")
	return nil
}

func (s *adminService) Restrict(ctx context.Context, adminID uuid.UUID, input dto.CreateRestrictionRequest) (*model.Restriction, error) {
	userID, err := uuid.Parse(input.UserID)
	if err != nil {
		return nil, apperror.New(http.StatusBadRequest, "معرّف المستخدم غير صالح", apperror.ErrInvalidInput)
	}

	if _, err := s.users.FindByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("المستخدم غير موجود")
		}
		return nil, err
	}

	var expiresAt *time.Time
	if input.ExpiresAt != nil && *input.ExpiresAt != "" {
		parsed, err := time.Parse(time.RFC3339, *input.ExpiresAt)
		if err != nil {
			return nil, apperror.New(http.StatusBadRequest, "صيغة تاريخ الانتهاء غير صالحة", apperror.ErrInvalidInput)
		}
		if !parsed.After(time.Now()) {
			return nil, apperror.New(http.StatusBadRequest, "تاريخ الانتهاء يجب أن يكون في المستقبل", apperror.ErrInvalidInput)
		}
		expiresAt = &parsed
	}

	restriction := &model.Restriction{
		UserID:      userID,
		Type:        input.Type,
		Reason:      input.Reason,
		ExpiresAt:   expiresAt,
		CreatedByID: adminID,
	}

	if err := s.restrictions.Create(ctx, restriction); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, adminID, "restriction."+input.Type, "user", userID.String(), input.Reason)
	return restriction, nil
}

func (s *adminService) ListRestrictions(ctx context.Context, page dto.PageQuery) ([]*model.Restriction, int64, error) {
	return s.restrictions.List(ctx, page.Offset(), page.Normalized())
}

func (s *adminService) UserRestrictions(ctx context.Context, userID uuid.UUID) ([]*model.Restriction, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("المستخدم غير موجود")
		}
		return nil, err
	}
	return s.restrictions.ListByUser(ctx, userID)
}

func (s *adminService) LiftRestriction(ctx context.Context, adminID uuid.UUID, restrictionID uint) error {
	if err := s.restrictions.Lift(ctx, restrictionID); err != nil {
		return err
	}
	s.audit.Record(ctx, adminID, "restriction.lift", "restriction", "", "")
	return nil
}

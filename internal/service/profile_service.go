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

type ProfileService interface {
	Get(ctx context.Context, userID uuid.UUID) (*model.User, error)
	// Update upserts the one-to-one profile row on first edit.
	Update(ctx context.Context, userID uuid.UUID, input dto.UpdateProfileRequest) (*model.User, error)
	ListPeople(ctx context.Context, query dto.PeopleQuery) ([]*model.User, int64, error)
}

type profileService struct {
	users  repository.UserRepository
	search SearchService
}

func NewProfileService(users repository.UserRepository, search SearchService) ProfileService {
	return &profileService{users: users, search: search}
}

func (s *profileService) Get(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("المستخدم غير موجود")
		}
		return nil, err
	}
	return user, nil
}

func (s *profileService) Update(ctx context.Context, userID uuid.UUID, input dto.UpdateProfileRequest) (*model.User, error) {
	profile := &model.Profile{
		UserID:    userID,
		Bio:       input.Bio,
		AvatarURL: input.AvatarURL,
		CoverURL:  input.CoverURL,
		Location:  input.Location,
		Website:   input.Website,
	}

	if err := s.users.UpsertProfile(ctx, profile); err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if s.search != nil {
		s.search.IndexPerson(user)
	}

	return user, nil
}

func (s *profileService) ListPeople(ctx context.Context, query dto.PeopleQuery) ([]*model.User, int64, error) {
	return s.users.List(ctx, query.Search, query.Offset(), query.Normalized())
}

package repository

import (
	"context"
	"time"

	"dufaa.com/communitybackend/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RestrictionState is the per-request snapshot read once before dispatch
// and reused by every guard in the authorization chain.
type RestrictionState struct {
	Banned bool
	Muted  bool
}

type RestrictionRepository interface {
	Create(ctx context.Context, restriction *model.Restriction) error
	// ActiveState evaluates the "active" predicate against wall-clock time
	// at read time: expiry is null OR expiry is in the future.
	ActiveState(ctx context.Context, userID uuid.UUID) (RestrictionState, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*model.Restriction, error)
	List(ctx context.Context, offset, limit int) ([]*model.Restriction, int64, error)
	Lift(ctx context.Context, id uint) error
}

type restrictionRepository struct {
	db *gorm.DB
}

func NewRestrictionRepository(db *gorm.DB) RestrictionRepository {
	return &restrictionRepository{db: db}
}

func (r *restrictionRepository) Create(ctx context.Context, restriction *model.Restriction) error {
	return r.db.WithContext(ctx).Create(restriction).Error
}

func (r *restrictionRepository) ActiveState(ctx context.Context, userID uuid.UUID) (RestrictionState, error) {
	var types []string
	err := r.db.WithContext(ctx).
		Model(&model.Restriction{}).
		Distinct("type").
		Where("user_id = ? AND (expires_at IS NULL OR expires_at > ?)", userID, time.Now()).
		Pluck("type", &types).Error
	if err != nil {
		return RestrictionState{}, err
	}

	var state RestrictionState
	for _, t := range types {
		switch t {
		case model.RestrictionBan:
			state.Banned = true
		case model.RestrictionMute:
			state.Muted = true
		}
	}
	return state, nil
}

func (r *restrictionRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*model.Restriction, error) {
	var restrictions []*model.Restriction
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&restrictions).Error
	return restrictions, err
}

func (r *restrictionRepository) List(ctx context.Context, offset, limit int) ([]*model.Restriction, int64, error) {
	var restrictions []*model.Restriction
	var total int64

	query := r.db.WithContext(ctx).Model(&model.Restriction{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&restrictions).Error; err != nil {
		return nil, 0, err
	}

	return restrictions, total, nil
}

// Lift expires the restriction now instead of deleting it, so the grant
// history stays visible to admins.
func (r *restrictionRepository) Lift(ctx context.Context, id uint) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&model.Restriction{}).
		Where("id = ?", id).
		Update("expires_at", now).Error
}

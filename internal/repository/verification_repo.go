package repository

import (
	"context"
	"time"

	"dufaa.com/communitybackend/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type VerificationRepository interface {
	// UpsertVerification replaces any pending signup for the same email.
	UpsertVerification(ctx context.Context, verification *model.EmailVerification) error
	FindVerification(ctx context.Context, email string) (*model.EmailVerification, error)
	DeleteVerification(ctx context.Context, email string) error
	CreateReset(ctx context.Context, reset *model.PasswordReset) error
	DeleteExpired(ctx context.Context) error
}

type verificationRepository struct {
	db *gorm.DB
}

func NewVerificationRepository(db *gorm.DB) VerificationRepository {
	return &verificationRepository{db: db}
}

func (r *verificationRepository) UpsertVerification(ctx context.Context, verification *model.EmailVerification) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "email"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"college_id", "display_name", "password_hash", "code", "expires_at",
			}),
		}).
		Create(verification).Error
}

func (r *verificationRepository) FindVerification(ctx context.Context, email string) (*model.EmailVerification, error) {
	var verification model.EmailVerification
	if err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&verification).Error; err != nil {
		return nil, err
	}
	return &verification, nil
}

func (r *verificationRepository) DeleteVerification(ctx context.Context, email string) error {
	return r.db.WithContext(ctx).
		Delete(&model.EmailVerification{}, "email = ?", email).Error
}

func (r *verificationRepository) CreateReset(ctx context.Context, reset *model.PasswordReset) error {
	if reset.Token == uuid.Nil {
		reset.Token = uuid.New()
	}
	return r.db.WithContext(ctx).Create(reset).Error
}

// DeleteExpired purges stale verification and reset rows; called by the
// background cleanup job.
func (r *verificationRepository) DeleteExpired(ctx context.Context) error {
	now := time.Now()
	if err := r.db.WithContext(ctx).
		Delete(&model.EmailVerification{}, "expires_at < ?", now).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Delete(&model.PasswordReset{}, "expires_at < ?", now).Error
}

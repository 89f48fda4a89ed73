package repository

import (
	"context"

	"dufaa.com/communitybackend/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByCollegeID(ctx context.Context, collegeID string) (*model.User, error)
	List(ctx context.Context, search string, offset, limit int) ([]*model.User, int64, error)
	SetAdmin(ctx context.Context, id uuid.UUID, isAdmin bool) error
	Delete(ctx context.Context, id uuid.UUID) error
	UpsertProfile(ctx context.Context, profile *model.Profile) error
	ResetPassword(ctx context.Context, token uuid.UUID, newHash string) (*model.User, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).
		Preload("Profile").
		Where("id = ?", id).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).
		Preload("Profile").
		Where("email = ?", email).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByCollegeID(ctx context.Context, collegeID string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).
		Where("college_id = ?", collegeID).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context, search string, offset, limit int) ([]*model.User, int64, error) {
	var users []*model.User
	var total int64

	query := r.db.WithContext(ctx).Model(&model.User{}).Preload("Profile")
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("display_name ILIKE ? OR email ILIKE ? OR college_id LIKE ?", pattern, pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

func (r *userRepository) SetAdmin(ctx context.Context, id uuid.UUID, isAdmin bool) error {
	return r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", id).
		Update("is_admin", isAdmin).Error
}

func (r *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.User{}, "id = ?", id).Error
}

func (r *userRepository) UpsertProfile(ctx context.Context, profile *model.Profile) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"bio", "avatar_url", "cover_url", "location", "website", "updated_at",
			}),
		}).
		Create(profile).Error
}

// ResetPassword consumes the reset token and updates the password hash in
// one transaction: both writes commit or neither does. A missing or
// expired token returns gorm.ErrRecordNotFound.
func (r *userRepository) ResetPassword(ctx context.Context, token uuid.UUID, newHash string) (*model.User, error) {
	var user model.User

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var reset model.PasswordReset
		if err := tx.Where("token = ? AND expires_at > NOW()", token).First(&reset).Error; err != nil {
			return err
		}

		if err := tx.Model(&model.User{}).
			Where("id = ?", reset.UserID).
			Update("password_hash", newHash).Error; err != nil {
			return err
		}

		if err := tx.Delete(&model.PasswordReset{}, "token = ?", token).Error; err != nil {
			return err
		}

		return tx.Where("id = ?", reset.UserID).First(&user).Error
	})
	if err != nil {
		return nil, err
	}

	return &user, nil
}

package repository

import (
	"context"

	"dufaa.com/communitybackend/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReactionRepository interface {
	// Upsert sets the reaction for (subject, user): a new pair inserts a
	// row, an existing pair overwrites its kind in place.
	Upsert(ctx context.Context, reaction *model.Reaction) error
	Remove(ctx context.Context, subjectType string, subjectID, userID uuid.UUID) error
	CountsBySubject(ctx context.Context, subjectType string, subjectID uuid.UUID) (map[string]int64, error)
	FindByUser(ctx context.Context, subjectType string, subjectID, userID uuid.UUID) (*model.Reaction, error)
}

type reactionRepository struct {
	db *gorm.DB
}

func NewReactionRepository(db *gorm.DB) ReactionRepository {
	return &reactionRepository{db: db}
}

func (r *reactionRepository) Upsert(ctx context.Context, reaction *model.Reaction) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "subject_type"},
				{Name: "subject_id"},
				{Name: "user_id"},
			},
			DoUpdates: clause.AssignmentColumns([]string{"kind", "updated_at"}),
		}).
		Create(reaction).Error
}

func (r *reactionRepository) Remove(ctx context.Context, subjectType string, subjectID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("subject_type = ? AND subject_id = ? AND user_id = ?", subjectType, subjectID, userID).
		Delete(&model.Reaction{}).Error
}

func (r *reactionRepository) CountsBySubject(ctx context.Context, subjectType string, subjectID uuid.UUID) (map[string]int64, error) {
	var rows []struct {
		Kind  string
		Count int64
	}

	err := r.db.WithContext(ctx).
		Model(&model.Reaction{}).
		Select("kind, COUNT(*) as count").
		Where("subject_type = ? AND subject_id = ?", subjectType, subjectID).
		Group("kind").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Kind] = row.Count
	}
	return counts, nil
}

func (r *reactionRepository) FindByUser(ctx context.Context, subjectType string, subjectID, userID uuid.UUID) (*model.Reaction, error) {
	var reaction model.Reaction
	if err := r.db.WithContext(ctx).
		Where("subject_type = ? AND subject_id = ? AND user_id = ?", subjectType, subjectID, userID).
		First(&reaction).Error; err != nil {
		return nil, err
	}
	return &reaction, nil
}

package repository

import (
	"context"
	"time"

	"dufaa.com/communitybackend/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReportRepository interface {
	Create(ctx context.Context, report *model.Report) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Report, error)
	ListByStatus(ctx context.Context, status string, offset, limit int) ([]*model.Report, int64, error)
	// Resolve transitions a pending report to a terminal status. The
	// returned row count is zero when the report was already terminal,
	// which the service layer reports as a conflict.
	Resolve(ctx context.Context, id uuid.UUID, status string, note, actionTaken *string, resolvedBy uuid.UUID) (int64, error)
}

type reportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Create(ctx context.Context, report *model.Report) error {
	return r.db.WithContext(ctx).Create(report).Error
}

func (r *reportRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Report, error) {
	var report model.Report
	if err := r.db.WithContext(ctx).
		Preload("Reporter").
		Where("id = ?", id).
		First(&report).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *reportRepository) ListByStatus(ctx context.Context, status string, offset, limit int) ([]*model.Report, int64, error) {
	var reports []*model.Report
	var total int64

	query := r.db.WithContext(ctx).Model(&model.Report{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Preload("Reporter").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&reports).Error; err != nil {
		return nil, 0, err
	}

	return reports, total, nil
}

func (r *reportRepository) Resolve(ctx context.Context, id uuid.UUID, status string, note, actionTaken *string, resolvedBy uuid.UUID) (int64, error) {
	now := time.Now()
	result := r.db.WithContext(ctx).
		Model(&model.Report{}).
		Where("id = ? AND status = ?", id, model.ReportPending).
		Updates(map[string]interface{}{
			"status":          status,
			"resolution_note": note,
			"action_taken":    actionTaken,
			"resolved_by_id":  resolvedBy,
			"resolved_at":     now,
		})
	return result.RowsAffected, result.Error
}

package repository

import (
	"context"
	"time"

	"eventteam/internal/http-api/models"

	"gorm.io/gorm"
)

// LogFilter narrows an audit listing. Nil bounds are open.
type LogFilter struct {
	ActionType models.ActionType
	TargetType models.TargetType
	Start      *time.Time
	End        *time.Time
}

// LogRepository is append-only apart from the force-replace purge.
type LogRepository interface {
	Create(ctx context.Context, log *models.Log) error
	List(ctx context.Context, filter LogFilter, page, perPage int) ([]models.Log, int64, error)
	DeleteByCreator(ctx context.Context, userID int64) (int64, error)
}

type logRepository struct {
	db *gorm.DB
}

func NewLogRepository(db *gorm.DB) LogRepository {
	return &logRepository{db: db}
}

func (r *logRepository) Create(ctx context.Context, log *models.Log) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *logRepository) List(ctx context.Context, filter LogFilter, page, perPage int) ([]models.Log, int64, error) {
	var logs []models.Log
	var total int64

	scope := func(db *gorm.DB) *gorm.DB {
		if filter.ActionType != "" {
			db = db.Where("action_type = ?", filter.ActionType)
		}
		if filter.TargetType != "" {
			db = db.Where("target_type = ?", filter.TargetType)
		}
		if filter.Start != nil {
			db = db.Where("created_at >= ?", *filter.Start)
		}
		if filter.End != nil {
			db = db.Where("created_at <= ?", *filter.End)
		}
		return db
	}

	if err := r.db.WithContext(ctx).Model(&models.Log{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Scopes(scope).
		Order("created_at DESC").
		Order("id DESC").
		Limit(perPage).
		Offset(offset(page, perPage)).
		Find(&logs).Error
	if err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}

func (r *logRepository) DeleteByCreator(ctx context.Context, userID int64) (int64, error) {
	result := r.db.WithContext(ctx).Where("created_by = ?", userID).Delete(&models.Log{})
	return result.RowsAffected, result.Error
}

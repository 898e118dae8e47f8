package repository

import (
	"context"
	"fmt"

	"eventteam/internal/http-api/models"

	"gorm.io/gorm"
)

// PointFilter narrows a paginated point listing. Zero values do not filter.
type PointFilter struct {
	MemberID  int64
	PointType models.PointType
}

type PointRepository interface {
	Create(ctx context.Context, point *models.Point) error
	Update(ctx context.Context, point *models.Point) error
	FindActiveByID(ctx context.Context, id int64) (*models.Point, error)
	FindActiveByIDs(ctx context.Context, ids []int64) ([]models.Point, error)
	ListActiveByMember(ctx context.Context, memberID int64) ([]models.Point, error)
	ListActiveByMembers(ctx context.Context, memberIDs []int64) ([]models.Point, error)
	List(ctx context.Context, filter PointFilter, page, perPage int) ([]models.Point, int64, error)
	DeactivateByMember(ctx context.Context, memberID int64) (int64, error)
	DeleteOwnedBy(ctx context.Context, userID int64, memberIDs []int64) (int64, error)
}

type pointRepository struct {
	db *gorm.DB
}

func NewPointRepository(db *gorm.DB) PointRepository {
	return &pointRepository{db: db}
}

func (r *pointRepository) Create(ctx context.Context, point *models.Point) error {
	return r.db.WithContext(ctx).Omit("Member").Create(point).Error
}

func (r *pointRepository) Update(ctx context.Context, point *models.Point) error {
	return r.db.WithContext(ctx).Omit("Member").Save(point).Error
}

// FindActiveByID loads the point together with its member.
func (r *pointRepository) FindActiveByID(ctx context.Context, id int64) (*models.Point, error) {
	var point models.Point
	err := r.db.WithContext(ctx).
		Preload("Member").
		Where("id = ? AND is_active = ?", id, true).
		First(&point).Error
	if err != nil {
		return nil, err
	}
	return &point, nil
}

func (r *pointRepository) FindActiveByIDs(ctx context.Context, ids []int64) ([]models.Point, error) {
	var points []models.Point
	if len(ids) == 0 {
		return points, nil
	}
	err := r.db.WithContext(ctx).
		Preload("Member").
		Where("id IN ? AND is_active = ?", ids, true).
		Order("id ASC").
		Find(&points).Error
	if err != nil {
		return nil, err
	}
	return points, nil
}

// ListActiveByMember returns the member's active points newest first.
func (r *pointRepository) ListActiveByMember(ctx context.Context, memberID int64) ([]models.Point, error) {
	var points []models.Point
	err := r.db.WithContext(ctx).
		Where("member_id = ? AND is_active = ?", memberID, true).
		Order("created_at DESC").
		Order("id DESC").
		Find(&points).Error
	if err != nil {
		return nil, fmt.Errorf("list member points: %w", err)
	}
	return points, nil
}

func (r *pointRepository) ListActiveByMembers(ctx context.Context, memberIDs []int64) ([]models.Point, error) {
	var points []models.Point
	if len(memberIDs) == 0 {
		return points, nil
	}
	err := r.db.WithContext(ctx).
		Where("member_id IN ? AND is_active = ?", memberIDs, true).
		Find(&points).Error
	if err != nil {
		return nil, fmt.Errorf("list points: %w", err)
	}
	return points, nil
}

// List returns one page of active points, newest first, and the total match count.
func (r *pointRepository) List(ctx context.Context, filter PointFilter, page, perPage int) ([]models.Point, int64, error) {
	var points []models.Point
	var total int64

	scope := func(db *gorm.DB) *gorm.DB {
		db = db.Where("is_active = ?", true)
		if filter.MemberID != 0 {
			db = db.Where("member_id = ?", filter.MemberID)
		}
		if filter.PointType != "" {
			db = db.Where("point_type = ?", filter.PointType)
		}
		return db
	}

	if err := r.db.WithContext(ctx).Model(&models.Point{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Scopes(scope).
		Preload("Member").
		Order("created_at DESC").
		Order("id DESC").
		Limit(perPage).
		Offset(offset(page, perPage)).
		Find(&points).Error
	if err != nil {
		return nil, 0, err
	}

	return points, total, nil
}

// DeactivateByMember soft-deletes every active point of the member.
func (r *pointRepository) DeactivateByMember(ctx context.Context, memberID int64) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Point{}).
		Where("member_id = ? AND is_active = ?", memberID, true).
		Update("is_active", false)
	return result.RowsAffected, result.Error
}

// DeleteOwnedBy hard-deletes points created by userID or attached to one of memberIDs.
func (r *pointRepository) DeleteOwnedBy(ctx context.Context, userID int64, memberIDs []int64) (int64, error) {
	query := r.db.WithContext(ctx).Where("created_by = ?", userID)
	if len(memberIDs) > 0 {
		query = r.db.WithContext(ctx).Where("created_by = ? OR member_id IN ?", userID, memberIDs)
	}
	result := query.Delete(&models.Point{})
	return result.RowsAffected, result.Error
}

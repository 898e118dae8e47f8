package repository

import (
	"context"
	"fmt"

	"eventteam/internal/http-api/models"

	"gorm.io/gorm"
)

type MemberRepository interface {
	Create(ctx context.Context, member *models.Member) error
	Update(ctx context.Context, member *models.Member) error
	FindActiveByID(ctx context.Context, id int64) (*models.Member, error)
	FindActiveByName(ctx context.Context, name string) (*models.Member, error)
	ListActive(ctx context.Context) ([]models.Member, error)
	IDsByCreator(ctx context.Context, userID int64) ([]int64, error)
	DeleteByCreator(ctx context.Context, userID int64) (int64, error)
}

type memberRepository struct {
	db *gorm.DB
}

func NewMemberRepository(db *gorm.DB) MemberRepository {
	return &memberRepository{db: db}
}

func (r *memberRepository) Create(ctx context.Context, member *models.Member) error {
	return r.db.WithContext(ctx).Create(member).Error
}

func (r *memberRepository) Update(ctx context.Context, member *models.Member) error {
	return r.db.WithContext(ctx).Save(member).Error
}

func (r *memberRepository) FindActiveByID(ctx context.Context, id int64) (*models.Member, error) {
	var member models.Member
	err := r.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", id, true).
		First(&member).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *memberRepository) FindActiveByName(ctx context.Context, name string) (*models.Member, error) {
	var member models.Member
	err := r.db.WithContext(ctx).
		Where("name = ? AND is_active = ?", name, true).
		First(&member).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *memberRepository) ListActive(ctx context.Context) ([]models.Member, error) {
	var members []models.Member
	if err := r.db.WithContext(ctx).Where("is_active = ?", true).Order("id ASC").Find(&members).Error; err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	return members, nil
}

// IDsByCreator includes inactive members.
func (r *memberRepository) IDsByCreator(ctx context.Context, userID int64) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).
		Model(&models.Member{}).
		Where("created_by = ?", userID).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// DeleteByCreator hard-deletes every member row created by userID.
func (r *memberRepository) DeleteByCreator(ctx context.Context, userID int64) (int64, error) {
	result := r.db.WithContext(ctx).Where("created_by = ?", userID).Delete(&models.Member{})
	return result.RowsAffected, result.Error
}

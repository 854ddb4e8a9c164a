package repository

import (
	"context"

	"github.com/giftgroup/backend/internal/entity"
	"github.com/giftgroup/backend/pkg/xcontext"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ExclusionRepository interface {
	Create(ctx context.Context, data *entity.Exclusion) error
	GetByID(ctx context.Context, id string) (*entity.Exclusion, error)
	GetByGroupID(ctx context.Context, groupID string) ([]entity.Exclusion, error)

	// Exists checks the pair in both orientations.
	Exists(ctx context.Context, groupID, memberA, memberB string) (bool, error)
	Delete(ctx context.Context, id string) error
}

type exclusionRepository struct{}

func NewExclusionRepository() ExclusionRepository {
	return &exclusionRepository{}
}

func (r *exclusionRepository) Create(ctx context.Context, data *entity.Exclusion) error {
	return xcontext.DB(ctx).Omit(clause.Associations).Create(data).Error
}

func (r *exclusionRepository) GetByID(ctx context.Context, id string) (*entity.Exclusion, error) {
	var result entity.Exclusion
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *exclusionRepository) GetByGroupID(ctx context.Context, groupID string) ([]entity.Exclusion, error) {
	var result []entity.Exclusion
	err := xcontext.DB(ctx).
		Where("group_id=?", groupID).
		Order("created_at").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *exclusionRepository) Exists(ctx context.Context, groupID, memberA, memberB string) (bool, error) {
	a, b := entity.OrderPair(memberA, memberB)

	var count int64
	err := xcontext.DB(ctx).
		Model(&entity.Exclusion{}).
		Where("group_id=? AND member_a_id=? AND member_b_id=?", groupID, a, b).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// Delete removes the row for good so the same pair can be added again.
func (r *exclusionRepository) Delete(ctx context.Context, id string) error {
	tx := xcontext.DB(ctx).Unscoped().Delete(&entity.Exclusion{}, "id=?", id)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

package repository

import (
	"context"

	"github.com/giftgroup/backend/internal/entity"
	"github.com/giftgroup/backend/pkg/xcontext"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const assignmentBatchSize = 500

type AssignmentRepository interface {
	// ReplaceAll deletes every assignment of the group then inserts data. It
	// must run inside the caller's transaction.
	ReplaceAll(ctx context.Context, groupID string, data []entity.Assignment) error
	DeleteAll(ctx context.Context, groupID string) error
	Get(ctx context.Context, groupID, giverID string) (*entity.Assignment, error)

	// GetActiveByGiver returns the assignments of giverID in groups whose
	// draw is active.
	GetActiveByGiver(ctx context.Context, giverID string) ([]entity.Assignment, error)
	Count(ctx context.Context, groupID string) (int64, error)
	Reveal(ctx context.Context, groupID, giverID string) error
}

type assignmentRepository struct{}

func NewAssignmentRepository() AssignmentRepository {
	return &assignmentRepository{}
}

func (r *assignmentRepository) ReplaceAll(ctx context.Context, groupID string, data []entity.Assignment) error {
	if err := r.DeleteAll(ctx, groupID); err != nil {
		return err
	}

	if len(data) == 0 {
		return nil
	}

	return xcontext.DB(ctx).
		Omit(clause.Associations).
		CreateInBatches(data, assignmentBatchSize).Error
}

func (r *assignmentRepository) DeleteAll(ctx context.Context, groupID string) error {
	return xcontext.DB(ctx).Delete(&entity.Assignment{}, "group_id=?", groupID).Error
}

func (r *assignmentRepository) Get(ctx context.Context, groupID, giverID string) (*entity.Assignment, error) {
	var result entity.Assignment
	err := xcontext.DB(ctx).
		Where("group_id=? AND giver_id=?", groupID, giverID).
		Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *assignmentRepository) GetActiveByGiver(ctx context.Context, giverID string) ([]entity.Assignment, error) {
	var result []entity.Assignment
	err := xcontext.DB(ctx).
		Select("draw_assignments.*").
		Joins("JOIN gift_groups ON gift_groups.id = draw_assignments.group_id").
		Where("draw_assignments.giver_id=?", giverID).
		Where("gift_groups.is_draw_active=? AND gift_groups.deleted_at IS NULL", true).
		Order("draw_assignments.group_id").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *assignmentRepository) Count(ctx context.Context, groupID string) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).
		Model(&entity.Assignment{}).
		Where("group_id=?", groupID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *assignmentRepository) Reveal(ctx context.Context, groupID, giverID string) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Assignment{}).
		Where("group_id=? AND giver_id=?", groupID, giverID).
		Update("revealed", true)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

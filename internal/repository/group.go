package repository

import (
	"context"
	"errors"

	"github.com/giftgroup/backend/internal/entity"
	"github.com/giftgroup/backend/pkg/xcontext"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrVersionConflict = errors.New("draw version changed concurrently")

type GroupRepository interface {
	Create(ctx context.Context, data *entity.Group) error
	AddMember(ctx context.Context, data *entity.GroupMembership) error
	GetByID(ctx context.Context, groupID string) (*entity.Group, error)
	GetMemberRole(ctx context.Context, groupID, userID string) (entity.GroupRole, error)
	GetMemberIDs(ctx context.Context, groupID string) ([]string, error)
	IsMember(ctx context.Context, groupID, userID string) (bool, error)
	IsDrawActive(ctx context.Context, groupID string) (bool, error)

	// UpdateDrawState sets the draw flag and bumps the draw version only if
	// the version is still expectedVersion, otherwise ErrVersionConflict.
	UpdateDrawState(ctx context.Context, groupID string, active bool, expectedVersion int64) error
}

type groupRepository struct{}

func NewGroupRepository() GroupRepository {
	return &groupRepository{}
}

func (r *groupRepository) Create(ctx context.Context, data *entity.Group) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *groupRepository) AddMember(ctx context.Context, data *entity.GroupMembership) error {
	return xcontext.DB(ctx).Omit(clause.Associations).Create(data).Error
}

func (r *groupRepository) GetByID(ctx context.Context, groupID string) (*entity.Group, error) {
	var result entity.Group
	if err := xcontext.DB(ctx).Take(&result, "id=?", groupID).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *groupRepository) GetMemberRole(ctx context.Context, groupID, userID string) (entity.GroupRole, error) {
	var result entity.GroupMembership
	err := xcontext.DB(ctx).
		Where("group_id=? AND user_id=?", groupID, userID).
		Take(&result).Error
	if err != nil {
		return "", err
	}

	return result.Role, nil
}

func (r *groupRepository) GetMemberIDs(ctx context.Context, groupID string) ([]string, error) {
	var result []string
	err := xcontext.DB(ctx).
		Model(&entity.GroupMembership{}).
		Where("group_id=?", groupID).
		Order("user_id").
		Pluck("user_id", &result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *groupRepository) IsMember(ctx context.Context, groupID, userID string) (bool, error) {
	var count int64
	err := xcontext.DB(ctx).
		Model(&entity.GroupMembership{}).
		Where("group_id=? AND user_id=?", groupID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *groupRepository) IsDrawActive(ctx context.Context, groupID string) (bool, error) {
	group, err := r.GetByID(ctx, groupID)
	if err != nil {
		return false, err
	}

	return group.IsDrawActive, nil
}

func (r *groupRepository) UpdateDrawState(
	ctx context.Context, groupID string, active bool, expectedVersion int64,
) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Group{}).
		Where("id=? AND draw_version=?", groupID, expectedVersion).
		Updates(map[string]any{
			"is_draw_active": active,
			"draw_version":   gorm.Expr("draw_version + 1"),
		})
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return ErrVersionConflict
	}

	return nil
}

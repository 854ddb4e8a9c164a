package domain

import (
	"context"
	"errors"

	"github.com/giftgroup/backend/internal/common"
	"github.com/giftgroup/backend/internal/entity"
	"github.com/giftgroup/backend/internal/model"
	"github.com/giftgroup/backend/internal/repository"
	"github.com/giftgroup/backend/pkg/errorx"
	"github.com/giftgroup/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type ExclusionDomain interface {
	AddExclusion(context.Context, *model.AddExclusionRequest) (*model.AddExclusionResponse, error)
	RemoveExclusion(context.Context, *model.RemoveExclusionRequest) (*model.RemoveExclusionResponse, error)
	GetExclusions(context.Context, *model.GetExclusionsRequest) (*model.GetExclusionsResponse, error)
}

type exclusionDomain struct {
	groupRepo         repository.GroupRepository
	exclusionRepo     repository.ExclusionRepository
	groupRoleVerifier *common.GroupRoleVerifier
}

func NewExclusionDomain(
	groupRepo repository.GroupRepository,
	exclusionRepo repository.ExclusionRepository,
) *exclusionDomain {
	return &exclusionDomain{
		groupRepo:         groupRepo,
		exclusionRepo:     exclusionRepo,
		groupRoleVerifier: common.NewGroupRoleVerifier(groupRepo),
	}
}

func (d *exclusionDomain) AddExclusion(
	ctx context.Context, req *model.AddExclusionRequest,
) (*model.AddExclusionResponse, error) {
	if req.GroupID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty group id")
	}

	if req.MemberAID == "" || req.MemberBID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty member id")
	}

	exclusion, err := entity.NewExclusion(req.GroupID, req.MemberAID, req.MemberBID, xcontext.RequestUserID(ctx))
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Cannot exclude a member from themselves")
	}

	if _, err := d.groupRepo.GetByID(ctx, req.GroupID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found group")
		}

		xcontext.Logger(ctx).Errorf("Cannot get group: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.groupRoleVerifier.Verify(ctx, req.GroupID, entity.GroupAdmin); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Only group admins can manage exclusions")
	}

	for _, memberID := range []string{exclusion.MemberAID, exclusion.MemberBID} {
		isMember, err := d.groupRepo.IsMember(ctx, req.GroupID, memberID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot check membership: %v", err)
			return nil, errorx.Unknown
		}

		if !isMember {
			return nil, errorx.New(errorx.BadRequest, "User %s is not a member of the group", memberID)
		}
	}

	exists, err := d.exclusionRepo.Exists(ctx, req.GroupID, exclusion.MemberAID, exclusion.MemberBID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot check exclusion: %v", err)
		return nil, errorx.Unknown
	}

	if exists {
		return nil, errorx.New(errorx.AlreadyExists, "These members are already excluded")
	}

	if err := d.exclusionRepo.Create(ctx, exclusion); err != nil {
		// A concurrent request may have inserted the same pair after the check.
		if exists, existsErr := d.exclusionRepo.Exists(
			ctx, req.GroupID, exclusion.MemberAID, exclusion.MemberBID,
		); existsErr == nil && exists {
			return nil, errorx.New(errorx.AlreadyExists, "These members are already excluded")
		}

		xcontext.Logger(ctx).Errorf("Cannot create exclusion: %v", err)
		return nil, errorx.Unknown
	}

	return &model.AddExclusionResponse{ID: exclusion.ID}, nil
}

func (d *exclusionDomain) RemoveExclusion(
	ctx context.Context, req *model.RemoveExclusionRequest,
) (*model.RemoveExclusionResponse, error) {
	exclusion, err := d.exclusionRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found exclusion")
		}

		xcontext.Logger(ctx).Errorf("Cannot get exclusion: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.groupRoleVerifier.Verify(ctx, exclusion.GroupID, entity.GroupAdmin); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Only group admins can manage exclusions")
	}

	if err := d.exclusionRepo.Delete(ctx, exclusion.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found exclusion")
		}

		xcontext.Logger(ctx).Errorf("Cannot delete exclusion: %v", err)
		return nil, errorx.Unknown
	}

	return &model.RemoveExclusionResponse{}, nil
}

func (d *exclusionDomain) GetExclusions(
	ctx context.Context, req *model.GetExclusionsRequest,
) (*model.GetExclusionsResponse, error) {
	if req.GroupID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty group id")
	}

	if _, err := d.groupRepo.GetByID(ctx, req.GroupID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found group")
		}

		xcontext.Logger(ctx).Errorf("Cannot get group: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.groupRoleVerifier.Verify(ctx, req.GroupID); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	exclusions, err := d.exclusionRepo.GetByGroupID(ctx, req.GroupID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get exclusions: %v", err)
		return nil, errorx.Unknown
	}

	result := []model.Exclusion{}
	for i := range exclusions {
		result = append(result, convertExclusion(&exclusions[i]))
	}

	return &model.GetExclusionsResponse{Exclusions: result}, nil
}

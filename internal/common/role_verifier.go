package common

import (
	"context"
	"errors"

	"github.com/giftgroup/backend/internal/entity"
	"github.com/giftgroup/backend/internal/repository"
	"github.com/giftgroup/backend/pkg/enum"
	"github.com/giftgroup/backend/pkg/xcontext"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

var (
	ErrNotMember       = errors.New("user is not a member of the group")
	ErrRoleNotAllowed  = errors.New("user role does not have permission")
	ErrUnauthenticated = errors.New("no user in request")
)

type GroupRoleVerifier struct {
	groupRepo repository.GroupRepository
}

func NewGroupRoleVerifier(groupRepo repository.GroupRepository) *GroupRoleVerifier {
	return &GroupRoleVerifier{groupRepo: groupRepo}
}

// Verify checks that the requesting user belongs to the group with one of
// requiredRoles. With no required roles any member passes.
func (verifier *GroupRoleVerifier) Verify(
	ctx context.Context,
	groupID string,
	requiredRoles ...entity.GroupRole,
) error {
	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return ErrUnauthenticated
	}

	role, err := verifier.groupRepo.GetMemberRole(ctx, groupID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotMember
		}

		return err
	}

	// A role this service does not know grants nothing.
	role, err = enum.ToEnum[entity.GroupRole](string(role))
	if err != nil {
		xcontext.Logger(ctx).Warnf("Unknown role of user %s in group %s: %v", userID, groupID, err)
		return ErrRoleNotAllowed
	}

	if len(requiredRoles) > 0 && !slices.Contains(requiredRoles, role) {
		return ErrRoleNotAllowed
	}

	return nil
}

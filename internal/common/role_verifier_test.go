package common_test

import (
	"testing"

	"github.com/giftgroup/backend/internal/common"
	"github.com/giftgroup/backend/internal/entity"
	"github.com/giftgroup/backend/internal/repository"
	"github.com/giftgroup/backend/pkg/testutil"
	"github.com/giftgroup/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func TestGroupRoleVerifier_Verify(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	require.NoError(t, xcontext.DB(ctx).Omit("Group").Create(&entity.GroupMembership{
		GroupID: testutil.Group3.ID,
		UserID:  testutil.User4,
		Role:    entity.GroupRole("owner"),
	}).Error)
	verifier := common.NewGroupRoleVerifier(repository.NewGroupRepository())

	tests := []struct {
		name    string
		userID  string
		groupID string
		roles   []entity.GroupRole
		wantErr error
	}{
		{
			name:    "admin",
			userID:  testutil.User1,
			groupID: testutil.Group1.ID,
			roles:   []entity.GroupRole{entity.GroupAdmin},
		},
		{
			name:    "member requires admin",
			userID:  testutil.User2,
			groupID: testutil.Group1.ID,
			roles:   []entity.GroupRole{entity.GroupAdmin},
			wantErr: common.ErrRoleNotAllowed,
		},
		{
			name:    "any member",
			userID:  testutil.User2,
			groupID: testutil.Group1.ID,
		},
		{
			name:    "not a member",
			userID:  testutil.Stranger,
			groupID: testutil.Group1.ID,
			wantErr: common.ErrNotMember,
		},
		{
			name:    "member of another group",
			userID:  testutil.User3,
			groupID: testutil.Group2.ID,
			wantErr: common.ErrNotMember,
		},
		{
			name:    "unknown role requires admin",
			userID:  testutil.User4,
			groupID: testutil.Group3.ID,
			roles:   []entity.GroupRole{entity.GroupAdmin},
			wantErr: common.ErrRoleNotAllowed,
		},
		{
			name:    "unknown role as any member",
			userID:  testutil.User4,
			groupID: testutil.Group3.ID,
			wantErr: common.ErrRoleNotAllowed,
		},
		{
			name:    "no user",
			groupID: testutil.Group1.ID,
			wantErr: common.ErrUnauthenticated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := verifier.Verify(testutil.WithUserID(ctx, tt.userID), tt.groupID, tt.roles...)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

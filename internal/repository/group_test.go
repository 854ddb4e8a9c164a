package repository_test

import (
	"testing"

	"github.com/giftgroup/backend/internal/entity"
	"github.com/giftgroup/backend/internal/repository"
	"github.com/giftgroup/backend/pkg/testutil"
	"github.com/giftgroup/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func Test_groupRepository_Members(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	repo := repository.NewGroupRepository()

	members, err := repo.GetMemberIDs(ctx, testutil.Group1.ID)
	require.NoError(t, err)
	require.Equal(t, []string{testutil.User1, testutil.User2, testutil.User3, testutil.User4}, members)

	role, err := repo.GetMemberRole(ctx, testutil.Group1.ID, testutil.User1)
	require.NoError(t, err)
	require.Equal(t, entity.GroupAdmin, role)

	_, err = repo.GetMemberRole(ctx, testutil.Group1.ID, testutil.Stranger)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	isMember, err := repo.IsMember(ctx, testutil.Group2.ID, testutil.User3)
	require.NoError(t, err)
	require.False(t, isMember)

	require.NoError(t, repo.AddMember(ctx, &entity.GroupMembership{
		GroupID: testutil.Group2.ID, UserID: testutil.User3, Role: entity.GroupMember,
	}))

	isMember, err = repo.IsMember(ctx, testutil.Group2.ID, testutil.User3)
	require.NoError(t, err)
	require.True(t, isMember)
}

func Test_groupRepository_UpdateDrawState(t *testing.T) {
	ctx := testutil.MockContext()
	repo := repository.NewGroupRepository()
	require.NoError(t, repo.Create(ctx, &entity.Group{Base: entity.Base{ID: "g"}, Name: "g"}))

	require.NoError(t, repo.UpdateDrawState(ctx, "g", true, 0))

	active, err := repo.IsDrawActive(ctx, "g")
	require.NoError(t, err)
	require.True(t, active)

	require.ErrorIs(t, repo.UpdateDrawState(ctx, "g", false, 0), repository.ErrVersionConflict)
	require.ErrorIs(t, repo.UpdateDrawState(ctx, "unknown", false, 0), repository.ErrVersionConflict)

	require.NoError(t, repo.UpdateDrawState(ctx, "g", false, 1))

	group, err := repo.GetByID(ctx, "g")
	require.NoError(t, err)
	require.False(t, group.IsDrawActive)
	require.Equal(t, int64(2), group.DrawVersion)
}

func Test_groupRepository_UpdateDrawState_Rollback(t *testing.T) {
	ctx := testutil.MockContext()
	repo := repository.NewGroupRepository()
	require.NoError(t, repo.Create(ctx, &entity.Group{Base: entity.Base{ID: "g"}, Name: "g"}))

	txCtx := xcontext.WithDBTransaction(ctx)
	require.NoError(t, repo.UpdateDrawState(txCtx, "g", true, 0))
	xcontext.WithRollbackDBTransaction(txCtx)

	group, err := repo.GetByID(ctx, "g")
	require.NoError(t, err)
	require.False(t, group.IsDrawActive)
	require.Equal(t, int64(0), group.DrawVersion)
}

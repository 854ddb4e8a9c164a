package repository_test

import (
	"testing"

	"github.com/giftgroup/backend/internal/entity"
	"github.com/giftgroup/backend/internal/repository"
	"github.com/giftgroup/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func Test_exclusionRepository(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	repo := repository.NewExclusionRepository()

	exclusion, err := entity.NewExclusion(testutil.Group1.ID, testutil.User3, testutil.User2, testutil.User1)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, exclusion))

	for _, pair := range [][2]string{{testutil.User2, testutil.User3}, {testutil.User3, testutil.User2}} {
		exists, err := repo.Exists(ctx, testutil.Group1.ID, pair[0], pair[1])
		require.NoError(t, err)
		require.True(t, exists)
	}

	exists, err := repo.Exists(ctx, testutil.Group2.ID, testutil.User2, testutil.User3)
	require.NoError(t, err)
	require.False(t, exists)

	// The reversed pair hits the unique index.
	duplicate, err := entity.NewExclusion(testutil.Group1.ID, testutil.User2, testutil.User3, testutil.User1)
	require.NoError(t, err)
	require.Error(t, repo.Create(ctx, duplicate))

	exclusions, err := repo.GetByGroupID(ctx, testutil.Group1.ID)
	require.NoError(t, err)
	require.Len(t, exclusions, 1)
	require.Equal(t, exclusion.ID, exclusions[0].ID)

	require.NoError(t, repo.Delete(ctx, exclusion.ID))
	require.ErrorIs(t, repo.Delete(ctx, exclusion.ID), gorm.ErrRecordNotFound)

	_, err = repo.GetByID(ctx, exclusion.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	require.NoError(t, repo.Create(ctx, duplicate))
}

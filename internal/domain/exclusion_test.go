package domain

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/giftgroup/backend/internal/entity"
	"github.com/giftgroup/backend/internal/model"
	"github.com/giftgroup/backend/internal/repository"
	"github.com/giftgroup/backend/pkg/errorx"
	"github.com/giftgroup/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func newExclusionDomain() *exclusionDomain {
	return NewExclusionDomain(repository.NewGroupRepository(), repository.NewExclusionRepository())
}

func Test_exclusionDomain_AddExclusion(t *testing.T) {
	tests := []struct {
		name    string
		userID  string
		req     *model.AddExclusionRequest
		wantA   string
		wantB   string
		wantErr error
	}{
		{
			name:   "happy case",
			userID: testutil.User1,
			req:    &model.AddExclusionRequest{GroupID: testutil.Group1.ID, MemberAID: testutil.User2, MemberBID: testutil.User3},
			wantA:  testutil.User2,
			wantB:  testutil.User3,
		},
		{
			name:   "members are stored ordered",
			userID: testutil.User1,
			req:    &model.AddExclusionRequest{GroupID: testutil.Group1.ID, MemberAID: testutil.User4, MemberBID: testutil.User1},
			wantA:  testutil.User1,
			wantB:  testutil.User4,
		},
		{
			name:    "empty group id",
			userID:  testutil.User1,
			req:     &model.AddExclusionRequest{MemberAID: testutil.User2, MemberBID: testutil.User3},
			wantErr: errorx.New(errorx.BadRequest, "Not allow empty group id"),
		},
		{
			name:    "empty member id",
			userID:  testutil.User1,
			req:     &model.AddExclusionRequest{GroupID: testutil.Group1.ID, MemberAID: testutil.User2},
			wantErr: errorx.New(errorx.BadRequest, "Not allow empty member id"),
		},
		{
			name:    "self exclusion",
			userID:  testutil.User1,
			req:     &model.AddExclusionRequest{GroupID: testutil.Group1.ID, MemberAID: testutil.User2, MemberBID: testutil.User2},
			wantErr: errorx.New(errorx.BadRequest, "Cannot exclude a member from themselves"),
		},
		{
			name:    "unknown group",
			userID:  testutil.User1,
			req:     &model.AddExclusionRequest{GroupID: "unknown", MemberAID: testutil.User2, MemberBID: testutil.User3},
			wantErr: errorx.New(errorx.NotFound, "Not found group"),
		},
		{
			name:    "member is not admin",
			userID:  testutil.User2,
			req:     &model.AddExclusionRequest{GroupID: testutil.Group1.ID, MemberAID: testutil.User2, MemberBID: testutil.User3},
			wantErr: errorx.New(errorx.PermissionDenied, "Only group admins can manage exclusions"),
		},
		{
			name:    "excluded user is not a member",
			userID:  testutil.User1,
			req:     &model.AddExclusionRequest{GroupID: testutil.Group2.ID, MemberAID: testutil.User2, MemberBID: testutil.User3},
			wantErr: errorx.New(errorx.BadRequest, "User %s is not a member of the group", testutil.User3),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testutil.MockContextWithUserID(tt.userID)
			testutil.CreateFixtureDb(ctx)
			d := newExclusionDomain()

			got, err := d.AddExclusion(ctx, tt.req)
			if tt.wantErr != nil {
				require.Equal(t, tt.wantErr, err)
				require.Nil(t, got)
				return
			}

			require.NoError(t, err)
			require.NotEmpty(t, got.ID)

			exclusion, err := repository.NewExclusionRepository().GetByID(ctx, got.ID)
			require.NoError(t, err)
			require.Equal(t, tt.req.GroupID, exclusion.GroupID)
			require.Equal(t, tt.wantA, exclusion.MemberAID)
			require.Equal(t, tt.wantB, exclusion.MemberBID)
			require.Equal(t, tt.userID, exclusion.CreatedBy)
		})
	}
}

func Test_exclusionDomain_AddExclusion_Symmetric(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1)
	testutil.CreateFixtureDb(ctx)
	d := newExclusionDomain()

	_, err := d.AddExclusion(ctx, &model.AddExclusionRequest{
		GroupID: testutil.Group1.ID, MemberAID: testutil.User2, MemberBID: testutil.User3,
	})
	require.NoError(t, err)

	for _, req := range []*model.AddExclusionRequest{
		{GroupID: testutil.Group1.ID, MemberAID: testutil.User2, MemberBID: testutil.User3},
		{GroupID: testutil.Group1.ID, MemberAID: testutil.User3, MemberBID: testutil.User2},
	} {
		_, err := d.AddExclusion(ctx, req)
		require.Equal(t, errorx.New(errorx.AlreadyExists, "These members are already excluded"), err)
	}

	// The same pair is independent in another group.
	_, err = d.AddExclusion(ctx, &model.AddExclusionRequest{
		GroupID: testutil.Group2.ID, MemberAID: testutil.User2, MemberBID: testutil.User1,
	})
	require.NoError(t, err)
}

// staleExclusionRepo answers the first Exists with false, as if another
// request inserted the pair right after the check.
type staleExclusionRepo struct {
	repository.ExclusionRepository

	mu        sync.Mutex
	stale     bool
	createErr error
}

func (r *staleExclusionRepo) Exists(ctx context.Context, groupID, memberA, memberB string) (bool, error) {
	r.mu.Lock()
	stale := r.stale
	r.stale = false
	r.mu.Unlock()

	if stale {
		return false, nil
	}

	return r.ExclusionRepository.Exists(ctx, groupID, memberA, memberB)
}

func (r *staleExclusionRepo) Create(ctx context.Context, data *entity.Exclusion) error {
	if r.createErr != nil {
		return r.createErr
	}

	return r.ExclusionRepository.Create(ctx, data)
}

func Test_exclusionDomain_AddExclusion_CreateFails(t *testing.T) {
	tests := []struct {
		name      string
		inserted  bool
		createErr error
		wantErr   error
	}{
		{
			name:     "pair inserted concurrently",
			inserted: true,
			wantErr:  errorx.New(errorx.AlreadyExists, "These members are already excluded"),
		},
		{
			name:      "database failure",
			createErr: errors.New("disk is full"),
			wantErr:   errorx.Unknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testutil.MockContextWithUserID(testutil.User1)
			testutil.CreateFixtureDb(ctx)
			if tt.inserted {
				addExclusion(t, ctx, testutil.Group1.ID, testutil.User3, testutil.User2)
			}

			repo := &staleExclusionRepo{
				ExclusionRepository: repository.NewExclusionRepository(),
				stale:               true,
				createErr:           tt.createErr,
			}
			d := NewExclusionDomain(repository.NewGroupRepository(), repo)

			_, err := d.AddExclusion(ctx, &model.AddExclusionRequest{
				GroupID: testutil.Group1.ID, MemberAID: testutil.User2, MemberBID: testutil.User3,
			})
			require.Equal(t, tt.wantErr, err)

			rows, err := repository.NewExclusionRepository().GetByGroupID(ctx, testutil.Group1.ID)
			require.NoError(t, err)
			if tt.inserted {
				require.Len(t, rows, 1)
			} else {
				require.Empty(t, rows)
			}
		})
	}
}

func Test_exclusionDomain_RemoveExclusion(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1)
	testutil.CreateFixtureDb(ctx)
	d := newExclusionDomain()

	req := &model.AddExclusionRequest{GroupID: testutil.Group1.ID, MemberAID: testutil.User3, MemberBID: testutil.User4}
	added, err := d.AddExclusion(ctx, req)
	require.NoError(t, err)

	_, err = d.RemoveExclusion(testutil.WithUserID(ctx, testutil.User3), &model.RemoveExclusionRequest{ID: added.ID})
	require.Equal(t, errorx.New(errorx.PermissionDenied, "Only group admins can manage exclusions"), err)

	_, err = d.RemoveExclusion(ctx, &model.RemoveExclusionRequest{ID: added.ID})
	require.NoError(t, err)

	_, err = d.RemoveExclusion(ctx, &model.RemoveExclusionRequest{ID: added.ID})
	require.Equal(t, errorx.New(errorx.NotFound, "Not found exclusion"), err)

	// A removed pair can be excluded again.
	_, err = d.AddExclusion(ctx, req)
	require.NoError(t, err)
}

func Test_exclusionDomain_GetExclusions(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1)
	testutil.CreateFixtureDb(ctx)
	d := newExclusionDomain()

	got, err := d.GetExclusions(ctx, &model.GetExclusionsRequest{GroupID: testutil.Group1.ID})
	require.NoError(t, err)
	require.Empty(t, got.Exclusions)

	_, err = d.AddExclusion(ctx, &model.AddExclusionRequest{
		GroupID: testutil.Group1.ID, MemberAID: testutil.User3, MemberBID: testutil.User2,
	})
	require.NoError(t, err)

	got, err = d.GetExclusions(testutil.WithUserID(ctx, testutil.User4), &model.GetExclusionsRequest{GroupID: testutil.Group1.ID})
	require.NoError(t, err)
	require.Len(t, got.Exclusions, 1)
	require.Equal(t, testutil.User2, got.Exclusions[0].MemberAID)
	require.Equal(t, testutil.User3, got.Exclusions[0].MemberBID)
	require.Equal(t, testutil.User1, got.Exclusions[0].CreatedBy)

	_, err = d.GetExclusions(testutil.WithUserID(ctx, testutil.Stranger), &model.GetExclusionsRequest{GroupID: testutil.Group1.ID})
	require.Equal(t, errorx.New(errorx.PermissionDenied, "Permission denied"), err)

	_, err = d.GetExclusions(ctx, &model.GetExclusionsRequest{GroupID: "unknown"})
	require.Equal(t, errorx.New(errorx.NotFound, "Not found group"), err)
}

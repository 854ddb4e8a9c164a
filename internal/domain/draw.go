package domain

import (
	"context"
	"errors"
	"time"

	"github.com/giftgroup/backend/internal/client"
	"github.com/giftgroup/backend/internal/common"
	"github.com/giftgroup/backend/internal/domain/drawsolver"
	"github.com/giftgroup/backend/internal/entity"
	"github.com/giftgroup/backend/internal/model"
	"github.com/giftgroup/backend/internal/repository"
	"github.com/giftgroup/backend/pkg/errorx"
	"github.com/giftgroup/backend/pkg/grouplock"
	"github.com/giftgroup/backend/pkg/xcontext"
	"gorm.io/gorm"
)

// A version conflict is retried this many times before the caller sees it.
const drawConflictRetries = 1

type DrawDomain interface {
	PerformDraw(context.Context, *model.PerformDrawRequest) (*model.PerformDrawResponse, error)
	EndDraw(context.Context, *model.EndDrawRequest) (*model.EndDrawResponse, error)
	GetMyAssignment(context.Context, *model.GetMyAssignmentRequest) (*model.GetMyAssignmentResponse, error)
	GetMyAssignments(context.Context, *model.GetMyAssignmentsRequest) (*model.GetMyAssignmentsResponse, error)
	GetDrawStatus(context.Context, *model.GetDrawStatusRequest) (*model.GetDrawStatusResponse, error)
	RevealAssignment(context.Context, *model.RevealAssignmentRequest) (*model.RevealAssignmentResponse, error)
}

type drawDomain struct {
	groupRepo         repository.GroupRepository
	exclusionRepo     repository.ExclusionRepository
	assignmentRepo    repository.AssignmentRepository
	groupRoleVerifier *common.GroupRoleVerifier
	solver            *drawsolver.Solver
	locker            grouplock.Locker
	notifier          client.DrawNotifier
}

func NewDrawDomain(
	groupRepo repository.GroupRepository,
	exclusionRepo repository.ExclusionRepository,
	assignmentRepo repository.AssignmentRepository,
	solver *drawsolver.Solver,
	locker grouplock.Locker,
	notifier client.DrawNotifier,
) *drawDomain {
	return &drawDomain{
		groupRepo:         groupRepo,
		exclusionRepo:     exclusionRepo,
		assignmentRepo:    assignmentRepo,
		groupRoleVerifier: common.NewGroupRoleVerifier(groupRepo),
		solver:            solver,
		locker:            locker,
		notifier:          notifier,
	}
}

func (d *drawDomain) PerformDraw(
	ctx context.Context, req *model.PerformDrawRequest,
) (*model.PerformDrawResponse, error) {
	group, err := d.getGroup(ctx, req.GroupID)
	if err != nil {
		return nil, err
	}

	if err := d.groupRoleVerifier.Verify(ctx, group.ID, entity.GroupAdmin); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Only group admins can perform the draw")
	}

	var resp *model.PerformDrawResponse
	var memberIDs []string
	for attempt := 0; ; attempt++ {
		resp, memberIDs, err = d.draw(ctx, group.ID)
		if !errors.Is(err, repository.ErrVersionConflict) {
			break
		}

		if attempt >= drawConflictRetries {
			countDraw(common.DrawResultConflict)
			return nil, errorx.New(errorx.ConcurrencyConflict,
				"The group was changed by another draw, please try again")
		}

		xcontext.Logger(ctx).Warnf("Draw version of group %s changed, retrying", group.ID)
	}

	if err != nil {
		return nil, err
	}

	countDraw(common.DrawResultSuccess)

	if err := d.notifier.NotifyDrawPerformed(ctx, group.ID, memberIDs); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot notify draw of group %s: %v", group.ID, err)
	}

	return resp, nil
}

// draw runs one complete attempt. It returns repository.ErrVersionConflict
// untouched so the caller can retry, every other error is an errorx.Error.
func (d *drawDomain) draw(
	ctx context.Context, groupID string,
) (*model.PerformDrawResponse, []string, error) {
	group, err := d.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get group: %v", err)
		return nil, nil, errorx.Unknown
	}

	memberIDs, err := d.groupRepo.GetMemberIDs(ctx, groupID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get members: %v", err)
		return nil, nil, errorx.Unknown
	}

	if len(memberIDs) < 2 {
		countDraw(common.DrawResultNoSolution)
		return nil, nil, errorx.New(errorx.InsufficientMembers, "Invite more members before drawing")
	}

	exclusions, err := d.exclusionRepo.GetByGroupID(ctx, groupID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get exclusions: %v", err)
		return nil, nil, errorx.Unknown
	}

	pairs := make([]drawsolver.Pair, 0, len(exclusions))
	for _, e := range exclusions {
		pairs = append(pairs, drawsolver.NewPair(e.MemberAID, e.MemberBID))
	}

	mapping, err := d.solve(ctx, memberIDs, pairs)
	if err != nil {
		return nil, nil, err
	}

	unlock, err := d.locker.TryLock(ctx, common.DrawLockKey(groupID))
	if err != nil {
		if errors.Is(err, grouplock.ErrLocked) {
			countDraw(common.DrawResultConflict)
			return nil, nil, errorx.New(errorx.ConcurrencyConflict, "Another draw is in progress for this group")
		}

		xcontext.Logger(ctx).Errorf("Cannot lock group %s: %v", groupID, err)
		return nil, nil, errorx.Unknown
	}
	defer d.unlock(ctx, unlock)

	assignments := make([]entity.Assignment, 0, len(mapping))
	now := time.Now()
	for _, giver := range memberIDs {
		assignments = append(assignments, entity.Assignment{
			GroupID:    groupID,
			GiverID:    giver,
			ReceiverID: mapping[giver],
			Revealed:   false,
			CreatedAt:  now,
		})
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.groupRepo.UpdateDrawState(ctx, groupID, true, group.DrawVersion); err != nil {
		if errors.Is(err, repository.ErrVersionConflict) {
			return nil, nil, err
		}

		xcontext.Logger(ctx).Errorf("Cannot update draw state: %v", err)
		countDraw(common.DrawResultFailure)
		return nil, nil, errorx.Unknown
	}

	if err := d.assignmentRepo.ReplaceAll(ctx, groupID, assignments); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot replace assignments: %v", err)
		countDraw(common.DrawResultFailure)
		return nil, nil, errorx.Unknown
	}

	if _, err := xcontext.WithCommitDBTransaction(ctx); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot commit draw: %v", err)
		countDraw(common.DrawResultFailure)
		return nil, nil, errorx.Unknown
	}

	return &model.PerformDrawResponse{
		AssignmentCount: len(assignments),
		DrawVersion:     group.DrawVersion + 1,
	}, memberIDs, nil
}

func (d *drawDomain) solve(
	ctx context.Context, memberIDs []string, pairs []drawsolver.Pair,
) (map[string]string, error) {
	start := time.Now()
	result, err := d.solver.SolveDetailed(ctx, memberIDs, pairs)
	if err == nil {
		observeSolver(string(result.Phase), time.Since(start))
		return result.Assignment, nil
	}

	observeSolver("failed", time.Since(start))

	switch {
	case errors.Is(err, drawsolver.ErrInfeasible):
		xcontext.Logger(ctx).Infof("No assignment for %d members and %d exclusions: %v",
			len(memberIDs), len(pairs), err)
		countDraw(common.DrawResultNoSolution)
		return nil, errorx.New(errorx.NoValidAssignment,
			"No valid assignment exists, try removing some exclusions")

	case errors.Is(err, drawsolver.ErrTooFewMembers):
		countDraw(common.DrawResultNoSolution)
		return nil, errorx.New(errorx.InsufficientMembers, "Invite more members before drawing")

	default:
		xcontext.Logger(ctx).Errorf("Cannot solve draw: %v", err)
		countDraw(common.DrawResultFailure)
		return nil, errorx.Unknown
	}
}

func (d *drawDomain) EndDraw(
	ctx context.Context, req *model.EndDrawRequest,
) (*model.EndDrawResponse, error) {
	group, err := d.getGroup(ctx, req.GroupID)
	if err != nil {
		return nil, err
	}

	if err := d.groupRoleVerifier.Verify(ctx, group.ID, entity.GroupAdmin); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Only group admins can end the draw")
	}

	for attempt := 0; ; attempt++ {
		resp, err := d.end(ctx, group.ID)
		if !errors.Is(err, repository.ErrVersionConflict) {
			return resp, err
		}

		if attempt >= drawConflictRetries {
			return nil, errorx.New(errorx.ConcurrencyConflict,
				"The group was changed by another draw, please try again")
		}
	}
}

func (d *drawDomain) end(ctx context.Context, groupID string) (*model.EndDrawResponse, error) {
	group, err := d.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get group: %v", err)
		return nil, errorx.Unknown
	}

	unlock, err := d.locker.TryLock(ctx, common.DrawLockKey(groupID))
	if err != nil {
		if errors.Is(err, grouplock.ErrLocked) {
			return nil, errorx.New(errorx.ConcurrencyConflict, "Another draw is in progress for this group")
		}

		xcontext.Logger(ctx).Errorf("Cannot lock group %s: %v", groupID, err)
		return nil, errorx.Unknown
	}
	defer d.unlock(ctx, unlock)

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.assignmentRepo.DeleteAll(ctx, groupID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete assignments: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.groupRepo.UpdateDrawState(ctx, groupID, false, group.DrawVersion); err != nil {
		if errors.Is(err, repository.ErrVersionConflict) {
			return nil, err
		}

		xcontext.Logger(ctx).Errorf("Cannot update draw state: %v", err)
		return nil, errorx.Unknown
	}

	if _, err := xcontext.WithCommitDBTransaction(ctx); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot commit end of draw: %v", err)
		return nil, errorx.Unknown
	}

	return &model.EndDrawResponse{DrawVersion: group.DrawVersion + 1}, nil
}

func (d *drawDomain) GetMyAssignment(
	ctx context.Context, req *model.GetMyAssignmentRequest,
) (*model.GetMyAssignmentResponse, error) {
	group, err := d.getGroup(ctx, req.GroupID)
	if err != nil {
		return nil, err
	}

	if err := d.groupRoleVerifier.Verify(ctx, group.ID); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	if !group.IsDrawActive {
		return nil, errorx.New(errorx.NotFound, "No active draw")
	}

	assignment, err := d.assignmentRepo.Get(ctx, group.ID, xcontext.RequestUserID(ctx))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "No active draw")
		}

		xcontext.Logger(ctx).Errorf("Cannot get assignment: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetMyAssignmentResponse{Assignment: convertAssignment(assignment)}, nil
}

func (d *drawDomain) GetMyAssignments(
	ctx context.Context, req *model.GetMyAssignmentsRequest,
) (*model.GetMyAssignmentsResponse, error) {
	assignments, err := d.assignmentRepo.GetActiveByGiver(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get assignments: %v", err)
		return nil, errorx.Unknown
	}

	result := []model.Assignment{}
	for i := range assignments {
		result = append(result, convertAssignment(&assignments[i]))
	}

	return &model.GetMyAssignmentsResponse{Assignments: result}, nil
}

func (d *drawDomain) GetDrawStatus(
	ctx context.Context, req *model.GetDrawStatusRequest,
) (*model.GetDrawStatusResponse, error) {
	group, err := d.getGroup(ctx, req.GroupID)
	if err != nil {
		return nil, err
	}

	if err := d.groupRoleVerifier.Verify(ctx, group.ID); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	count := int64(0)
	if group.IsDrawActive {
		count, err = d.assignmentRepo.Count(ctx, group.ID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot count assignments: %v", err)
			return nil, errorx.Unknown
		}
	}

	return &model.GetDrawStatusResponse{
		IsDrawActive:    group.IsDrawActive,
		AssignmentCount: count,
		DrawVersion:     group.DrawVersion,
	}, nil
}

func (d *drawDomain) RevealAssignment(
	ctx context.Context, req *model.RevealAssignmentRequest,
) (*model.RevealAssignmentResponse, error) {
	resp, err := d.GetMyAssignment(ctx, &model.GetMyAssignmentRequest{GroupID: req.GroupID})
	if err != nil {
		return nil, err
	}

	if resp.Assignment.Revealed {
		return &model.RevealAssignmentResponse{}, nil
	}

	if err := d.assignmentRepo.Reveal(ctx, req.GroupID, xcontext.RequestUserID(ctx)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "No active draw")
		}

		xcontext.Logger(ctx).Errorf("Cannot reveal assignment: %v", err)
		return nil, errorx.Unknown
	}

	return &model.RevealAssignmentResponse{}, nil
}

func (d *drawDomain) getGroup(ctx context.Context, groupID string) (*entity.Group, error) {
	if groupID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty group id")
	}

	group, err := d.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found group")
		}

		xcontext.Logger(ctx).Errorf("Cannot get group: %v", err)
		return nil, errorx.Unknown
	}

	return group, nil
}

func (d *drawDomain) unlock(ctx context.Context, unlock grouplock.Unlock) {
	// The request context may already be canceled, the lock must still go.
	releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := unlock(releaseCtx); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot release draw lock: %v", err)
	}
}

func countDraw(result string) {
	common.PromCounters[common.DrawsPerformedTotal].WithLabelValues(result).Inc()
}

func observeSolver(phase string, d time.Duration) {
	common.PromHistograms[common.DrawSolverDurationSeconds].WithLabelValues(phase).Observe(d.Seconds())
}

// internal/application/usecase/membership_usecase_test.go
package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	memdom "tradespace/internal/domain/membership"
	tsdom "tradespace/internal/domain/tradespace"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

// fakeMembershipRepo replays the planner decisions against in-memory state,
// the same shape the store adapter applies per transaction.
type fakeMembershipRepo struct {
	tradespaces map[string]*tsdom.Tradespace
	members     map[string]bool // "{tid}/{uid}"
	links       map[string][]memdom.UserTradespaceLink
}

func newFakeMembershipRepo(tss ...*tsdom.Tradespace) *fakeMembershipRepo {
	r := &fakeMembershipRepo{
		tradespaces: map[string]*tsdom.Tradespace{},
		members:     map[string]bool{},
		links:       map[string][]memdom.UserTradespaceLink{},
	}
	for _, ts := range tss {
		r.tradespaces[ts.ID] = ts
	}
	return r
}

func (r *fakeMembershipRepo) Join(_ context.Context, tid, uid string, now time.Time) error {
	plan, err := memdom.PlanJoin(tid, uid, memdom.JoinState{
		MemberExists: r.members[tid+"/"+uid],
		Tradespace:   r.tradespaces[tid],
	}, now)
	if err != nil {
		return err
	}
	if plan == nil {
		return nil
	}
	r.members[tid+"/"+uid] = true
	r.links[uid] = append(r.links[uid], plan.Link)
	r.tradespaces[tid].MemberCount = plan.MemberCount
	return nil
}

func (r *fakeMembershipRepo) Leave(_ context.Context, tid, uid string) error {
	plan, err := memdom.PlanLeave(tid, uid, memdom.LeaveState{
		MemberExists: r.members[tid+"/"+uid],
		Tradespace:   r.tradespaces[tid],
	})
	if err != nil {
		return err
	}
	if plan == nil {
		return nil
	}
	delete(r.members, tid+"/"+uid)
	kept := r.links[uid][:0]
	for _, l := range r.links[uid] {
		if l.TradespaceID != tid {
			kept = append(kept, l)
		}
	}
	r.links[uid] = kept
	r.tradespaces[tid].MemberCount = plan.MemberCount
	return nil
}

func (r *fakeMembershipRepo) IsMember(_ context.Context, tid, uid string) (bool, error) {
	return r.members[tid+"/"+uid], nil
}

func (r *fakeMembershipRepo) ListLinksByUserID(_ context.Context, uid string) ([]memdom.UserTradespaceLink, error) {
	return r.links[uid], nil
}

var _ memdom.Repository = (*fakeMembershipRepo)(nil)

type recordingNotifier struct {
	changed []string
}

func (n *recordingNotifier) TradespacesChanged(userID string) {
	n.changed = append(n.changed, userID)
}

func TestMembershipJoinLeave(t *testing.T) {
	ctx := context.Background()
	repo := newFakeMembershipRepo(&tsdom.Tradespace{ID: "ts1", Name: "Woodworking", MemberCount: 2})
	notifier := &recordingNotifier{}
	uc := NewMembershipUsecase(repo, notifier)

	require.NoError(t, uc.Join(ctx, "ts1", "u1"))
	ok, err := uc.IsMember(ctx, "ts1", "u1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(3), repo.tradespaces["ts1"].MemberCount)

	// second join is a no-op: one membership, one increment
	require.NoError(t, uc.Join(ctx, "ts1", "u1"))
	assert.Equal(t, int64(3), repo.tradespaces["ts1"].MemberCount)
	assert.Len(t, repo.links["u1"], 1)

	require.NoError(t, uc.Leave(ctx, "ts1", "u1"))
	ok, err = uc.IsMember(ctx, "ts1", "u1")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, int64(2), repo.tradespaces["ts1"].MemberCount)
	assert.Equal(t, []string{"u1"}, notifier.changed)

	// leaving again is a no-op but still fires the advisory signal
	require.NoError(t, uc.Leave(ctx, "ts1", "u1"))
	assert.Equal(t, int64(2), repo.tradespaces["ts1"].MemberCount)
}

func TestMembershipJoinUnknownTradespace(t *testing.T) {
	uc := NewMembershipUsecase(newFakeMembershipRepo(), nil)
	err := uc.Join(context.Background(), "nope", "u1")
	assert.ErrorIs(t, err, tsdom.ErrNotFound)
}

func TestMembershipValidatesArguments(t *testing.T) {
	uc := NewMembershipUsecase(newFakeMembershipRepo(), nil)
	ctx := context.Background()

	assert.ErrorIs(t, uc.Join(ctx, "", "u1"), ErrMembershipInvalidArgument)
	assert.ErrorIs(t, uc.Leave(ctx, "ts1", "  "), ErrMembershipInvalidArgument)

	_, err := uc.IsMember(ctx, "", "")
	assert.ErrorIs(t, err, ErrMembershipInvalidArgument)
}

// Interleaved joins and leaves by different users keep the counter equal to
// the live membership set.
func TestMembershipCounterTracksSet(t *testing.T) {
	ctx := context.Background()
	repo := newFakeMembershipRepo(&tsdom.Tradespace{ID: "ts1", Name: "Woodworking"})
	uc := NewMembershipUsecaseWithClock(repo, nil, fixedClock{t: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)})

	users := []string{"u1", "u2", "u3", "u4"}
	for _, u := range users {
		require.NoError(t, uc.Join(ctx, "ts1", u))
	}
	require.NoError(t, uc.Leave(ctx, "ts1", "u2"))
	require.NoError(t, uc.Join(ctx, "ts1", "u2"))
	require.NoError(t, uc.Leave(ctx, "ts1", "u4"))

	live := 0
	for _, u := range users {
		ok, err := uc.IsMember(ctx, "ts1", u)
		require.NoError(t, err)
		if ok {
			live++
		}
	}
	assert.Equal(t, int64(live), repo.tradespaces["ts1"].MemberCount)
}

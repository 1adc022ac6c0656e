// internal/domain/membership/engine_test.go
package membership

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tsdom "tradespace/internal/domain/tradespace"
)

func TestPlanJoin(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	ts := &tsdom.Tradespace{ID: "ts1", Name: "Woodworking", MemberCount: 7}

	plan, err := PlanJoin("ts1", "u1", JoinState{Tradespace: ts}, now)
	require.NoError(t, err)
	require.NotNil(t, plan)

	assert.Equal(t, "ts1", plan.Member.TradespaceID)
	assert.Equal(t, "u1", plan.Member.UserID)
	assert.Equal(t, RoleMember, plan.Member.Role)
	assert.Equal(t, now, plan.Member.JoinedAt)

	assert.Equal(t, "u1", plan.Link.UserID)
	assert.Equal(t, "Woodworking", plan.Link.Name)

	// absolute value derived from the read, not a blind increment
	assert.Equal(t, int64(8), plan.MemberCount)
}

func TestPlanJoinIdempotent(t *testing.T) {
	ts := &tsdom.Tradespace{ID: "ts1", MemberCount: 7}

	plan, err := PlanJoin("ts1", "u1", JoinState{MemberExists: true, Tradespace: ts}, time.Now())
	require.NoError(t, err)
	assert.Nil(t, plan)
}

func TestPlanJoinMissingTradespace(t *testing.T) {
	_, err := PlanJoin("ts1", "u1", JoinState{}, time.Now())
	assert.ErrorIs(t, err, tsdom.ErrNotFound)
}

func TestPlanJoinInvalidInput(t *testing.T) {
	_, err := PlanJoin("", "u1", JoinState{}, time.Now())
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = PlanJoin("ts1", "  ", JoinState{}, time.Now())
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestPlanLeave(t *testing.T) {
	ts := &tsdom.Tradespace{ID: "ts1", MemberCount: 7}

	plan, err := PlanLeave("ts1", "u1", LeaveState{MemberExists: true, Tradespace: ts})
	require.NoError(t, err)
	require.NotNil(t, plan)
	assert.Equal(t, int64(6), plan.MemberCount)
}

func TestPlanLeaveIdempotent(t *testing.T) {
	ts := &tsdom.Tradespace{ID: "ts1", MemberCount: 7}

	plan, err := PlanLeave("ts1", "u1", LeaveState{MemberExists: false, Tradespace: ts})
	require.NoError(t, err)
	assert.Nil(t, plan)
}

func TestPlanLeaveClampsAtZero(t *testing.T) {
	ts := &tsdom.Tradespace{ID: "ts1", MemberCount: 0}

	plan, err := PlanLeave("ts1", "u1", LeaveState{MemberExists: true, Tradespace: ts})
	require.NoError(t, err)
	require.NotNil(t, plan)
	assert.Equal(t, int64(0), plan.MemberCount)
}

func TestPlanLeaveMissingTradespace(t *testing.T) {
	_, err := PlanLeave("ts1", "u1", LeaveState{MemberExists: true})
	assert.ErrorIs(t, err, tsdom.ErrNotFound)
}

// A join/leave round trip must restore the starting count regardless of how
// often the planner re-executes with a fresh read.
func TestJoinLeaveRoundTrip(t *testing.T) {
	ts := &tsdom.Tradespace{ID: "ts1", Name: "Woodworking", MemberCount: 3}

	join, err := PlanJoin("ts1", "u1", JoinState{Tradespace: ts}, time.Now())
	require.NoError(t, err)
	require.NotNil(t, join)

	after := &tsdom.Tradespace{ID: "ts1", Name: "Woodworking", MemberCount: join.MemberCount}
	leave, err := PlanLeave("ts1", "u1", LeaveState{MemberExists: true, Tradespace: after})
	require.NoError(t, err)
	require.NotNil(t, leave)
	assert.Equal(t, int64(3), leave.MemberCount)
}

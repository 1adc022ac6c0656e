// internal/domain/membership/engine.go
package membership

import (
	"strings"
	"time"

	tsdom "tradespace/internal/domain/tradespace"
)

// The join/leave planners are the bodies of the Firestore transactions in
// adapters/out/firestore. They are pure over their read-set (JoinState /
// LeaveState) so the store may re-execute them on optimistic-concurrency
// retry: no clock reads, no randomness, no I/O in here.

// JoinState is the transaction read-set for Join.
type JoinState struct {
	// MemberExists reports whether tradespaces/{ts}/members/{uid} exists.
	MemberExists bool
	// Tradespace is the tradespaces/{ts} doc, nil when missing.
	Tradespace *tsdom.Tradespace
}

// JoinPlan is the write-set for a Join that actually mutates state.
type JoinPlan struct {
	Member Membership
	Link   UserTradespaceLink

	// MemberCount is the absolute value to write, computed from the count
	// read in the same transaction (NOT a blind increment).
	MemberCount int64
}

// PlanJoin decides the Join writes.
//   - member already exists   -> (nil, nil): idempotent no-op
//   - tradespace missing      -> tradespace.ErrNotFound
//   - otherwise               -> create member + link, memberCount = read+1
func PlanJoin(tradespaceID, userID string, st JoinState, now time.Time) (*JoinPlan, error) {
	tid := strings.TrimSpace(tradespaceID)
	uid := strings.TrimSpace(userID)
	if tid == "" || uid == "" {
		return nil, ErrInvalid
	}

	if st.MemberExists {
		return nil, nil
	}
	if st.Tradespace == nil {
		return nil, tsdom.ErrNotFound
	}

	return &JoinPlan{
		Member: Membership{
			TradespaceID: tid,
			UserID:       uid,
			Role:         RoleMember,
			JoinedAt:     now,
		},
		Link: UserTradespaceLink{
			UserID:       uid,
			TradespaceID: tid,
			Role:         RoleMember,
			JoinedAt:     now,
			Name:         st.Tradespace.Name,
		},
		MemberCount: st.Tradespace.MemberCount + 1,
	}, nil
}

// LeaveState is the transaction read-set for Leave.
type LeaveState struct {
	MemberExists bool
	Tradespace   *tsdom.Tradespace
}

// LeavePlan is the write-set for a Leave that actually mutates state.
// The member doc and the user link are deleted; MemberCount is the absolute
// value to write.
type LeavePlan struct {
	MemberCount int64
}

// PlanLeave decides the Leave writes.
//   - member missing     -> (nil, nil): idempotent no-op
//   - tradespace missing -> tradespace.ErrNotFound
//   - otherwise          -> delete both docs, memberCount = max(0, read-1)
//
// The clamp keeps memberCount non-negative even under read staleness or
// prior data corruption.
func PlanLeave(tradespaceID, userID string, st LeaveState) (*LeavePlan, error) {
	tid := strings.TrimSpace(tradespaceID)
	uid := strings.TrimSpace(userID)
	if tid == "" || uid == "" {
		return nil, ErrInvalid
	}

	if !st.MemberExists {
		return nil, nil
	}
	if st.Tradespace == nil {
		return nil, tsdom.ErrNotFound
	}

	next := st.Tradespace.MemberCount - 1
	if next < 0 {
		next = 0
	}
	return &LeavePlan{MemberCount: next}, nil
}

// internal/adapters/out/firestore/membership_repository_fs.go
package firestore

import (
	"context"
	"errors"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	memdom "tradespace/internal/domain/membership"
	tsdom "tradespace/internal/domain/tradespace"
)

// MembershipRepositoryFS implements membership.Repository.
//
// Paths (persisted format, must stay stable):
// - member: tradespaces/{tradespaceId}/members/{userId}
// - link:   users/{userId}/tradespaces/{tradespaceId}
//
// Join/Leave each run as one RunTransaction so the member doc, the user link
// and tradespaces/{id}.memberCount move together. The transaction bodies only
// read, call the domain planner, and apply its write-set; Firestore may
// re-execute them on conflicting concurrent writes.
type MembershipRepositoryFS struct {
	Client *firestore.Client
}

func NewMembershipRepositoryFS(client *firestore.Client) *MembershipRepositoryFS {
	return &MembershipRepositoryFS{Client: client}
}

// Compile-time check
var _ memdom.Repository = (*MembershipRepositoryFS)(nil)

func (r *MembershipRepositoryFS) tradespaceRef(tradespaceID string) *firestore.DocumentRef {
	return r.Client.Collection("tradespaces").Doc(tradespaceID)
}

func (r *MembershipRepositoryFS) memberRef(tradespaceID, userID string) *firestore.DocumentRef {
	return r.tradespaceRef(tradespaceID).Collection("members").Doc(userID)
}

func (r *MembershipRepositoryFS) linkRef(userID, tradespaceID string) *firestore.DocumentRef {
	return r.Client.Collection("users").Doc(userID).Collection("tradespaces").Doc(tradespaceID)
}

// ========================
// Commands
// ========================

func (r *MembershipRepositoryFS) Join(ctx context.Context, tradespaceID, userID string, now time.Time) error {
	if r.Client == nil {
		return errors.New("firestore client is nil")
	}

	tid := strings.TrimSpace(tradespaceID)
	uid := strings.TrimSpace(userID)
	if tid == "" || uid == "" {
		return memdom.ErrInvalid
	}

	tsRef := r.tradespaceRef(tid)
	memberRef := r.memberRef(tid, uid)
	linkRef := r.linkRef(uid, tid)

	return r.Client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		st, err := readJoinLeaveState(tx, memberRef, tsRef)
		if err != nil {
			return err
		}

		plan, err := memdom.PlanJoin(tid, uid, memdom.JoinState(st), now)
		if err != nil {
			return err
		}
		if plan == nil {
			// already a member
			return nil
		}

		if err := tx.Set(memberRef, plan.Member); err != nil {
			return err
		}
		if err := tx.Set(linkRef, plan.Link); err != nil {
			return err
		}
		return tx.Update(tsRef, []firestore.Update{
			{Path: "memberCount", Value: plan.MemberCount},
		})
	})
}

func (r *MembershipRepositoryFS) Leave(ctx context.Context, tradespaceID, userID string) error {
	if r.Client == nil {
		return errors.New("firestore client is nil")
	}

	tid := strings.TrimSpace(tradespaceID)
	uid := strings.TrimSpace(userID)
	if tid == "" || uid == "" {
		return memdom.ErrInvalid
	}

	tsRef := r.tradespaceRef(tid)
	memberRef := r.memberRef(tid, uid)
	linkRef := r.linkRef(uid, tid)

	return r.Client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		st, err := readJoinLeaveState(tx, memberRef, tsRef)
		if err != nil {
			return err
		}

		plan, err := memdom.PlanLeave(tid, uid, memdom.LeaveState(st))
		if err != nil {
			return err
		}
		if plan == nil {
			// not a member
			return nil
		}

		if err := tx.Delete(memberRef); err != nil {
			return err
		}
		if err := tx.Delete(linkRef); err != nil {
			return err
		}
		return tx.Update(tsRef, []firestore.Update{
			{Path: "memberCount", Value: plan.MemberCount},
		})
	})
}

// joinLeaveState mirrors the shared read-set of PlanJoin/PlanLeave.
type joinLeaveState struct {
	MemberExists bool
	Tradespace   *tsdom.Tradespace
}

func readJoinLeaveState(tx *firestore.Transaction, memberRef, tsRef *firestore.DocumentRef) (joinLeaveState, error) {
	var st joinLeaveState

	memberSnap, err := tx.Get(memberRef)
	if err != nil {
		if status.Code(err) != codes.NotFound {
			return st, err
		}
	} else {
		st.MemberExists = memberSnap.Exists()
	}

	tsSnap, err := tx.Get(tsRef)
	if err != nil {
		if status.Code(err) != codes.NotFound {
			return st, err
		}
		return st, nil
	}
	if !tsSnap.Exists() {
		return st, nil
	}

	var ts tsdom.Tradespace
	if err := tsSnap.DataTo(&ts); err != nil {
		return st, err
	}
	ts.ID = tsSnap.Ref.ID
	st.Tradespace = &ts
	return st, nil
}

// ========================
// Queries
// ========================

func (r *MembershipRepositoryFS) IsMember(ctx context.Context, tradespaceID, userID string) (bool, error) {
	if r.Client == nil {
		return false, errors.New("firestore client is nil")
	}

	tid := strings.TrimSpace(tradespaceID)
	uid := strings.TrimSpace(userID)
	if tid == "" || uid == "" {
		return false, nil
	}

	_, err := r.memberRef(tid, uid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *MembershipRepositoryFS) ListLinksByUserID(ctx context.Context, userID string) ([]memdom.UserTradespaceLink, error) {
	if r.Client == nil {
		return nil, errors.New("firestore client is nil")
	}

	uid := strings.TrimSpace(userID)
	if uid == "" {
		return []memdom.UserTradespaceLink{}, nil
	}

	it := r.Client.Collection("users").Doc(uid).Collection("tradespaces").Documents(ctx)
	defer it.Stop()

	out := []memdom.UserTradespaceLink{}
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}

		var link memdom.UserTradespaceLink
		if err := doc.DataTo(&link); err != nil {
			return nil, err
		}
		link.UserID = uid
		link.TradespaceID = doc.Ref.ID
		out = append(out, link)
	}
	return out, nil
}

// internal/application/usecase/membership_usecase.go
package usecase

import (
	"context"
	"errors"
	"log"
	"strings"

	memdom "tradespace/internal/domain/membership"
)

var (
	ErrMembershipInvalidArgument = errors.New("membership_usecase: invalid argument")
)

// MembershipUsecase coordinates join/leave.
//
// The atomicity itself lives in the repository (one Firestore transaction per
// operation); this layer validates inputs before any transaction opens and
// fires the advisory change notification after a successful leave.
type MembershipUsecase struct {
	repo     memdom.Repository
	notifier memdom.ChangeNotifier
	clock    Clock
}

func NewMembershipUsecase(repo memdom.Repository, notifier memdom.ChangeNotifier) *MembershipUsecase {
	if notifier == nil {
		notifier = memdom.NopNotifier{}
	}
	return &MembershipUsecase{
		repo:     repo,
		notifier: notifier,
		clock:    systemClock{},
	}
}

// NewMembershipUsecaseWithClock is useful for tests.
func NewMembershipUsecaseWithClock(repo memdom.Repository, notifier memdom.ChangeNotifier, clock Clock) *MembershipUsecase {
	uc := NewMembershipUsecase(repo, notifier)
	if clock != nil {
		uc.clock = clock
	}
	return uc
}

// Join adds the user to the tradespace. Idempotent: joining twice yields one
// membership and one memberCount increment. Returns tradespace.ErrNotFound
// when the tradespace does not exist.
func (uc *MembershipUsecase) Join(ctx context.Context, tradespaceID, userID string) error {
	tid := strings.TrimSpace(tradespaceID)
	uid := strings.TrimSpace(userID)
	if tid == "" || uid == "" {
		return ErrMembershipInvalidArgument
	}

	return uc.repo.Join(ctx, tid, uid, uc.clock.Now())
}

// Leave removes the user from the tradespace. Idempotent: leaving as a
// non-member is a no-op. On success the change notifier fires so cached
// membership views can refresh; that signal is advisory only.
func (uc *MembershipUsecase) Leave(ctx context.Context, tradespaceID, userID string) error {
	tid := strings.TrimSpace(tradespaceID)
	uid := strings.TrimSpace(userID)
	if tid == "" || uid == "" {
		return ErrMembershipInvalidArgument
	}

	if err := uc.repo.Leave(ctx, tid, uid); err != nil {
		return err
	}

	uc.notifier.TradespacesChanged(uid)
	log.Printf("[membership_usecase] leave ok tradespaceId=%s userId=%s", tid, uid)
	return nil
}

// IsMember reports whether the membership record exists.
func (uc *MembershipUsecase) IsMember(ctx context.Context, tradespaceID, userID string) (bool, error) {
	tid := strings.TrimSpace(tradespaceID)
	uid := strings.TrimSpace(userID)
	if tid == "" || uid == "" {
		return false, ErrMembershipInvalidArgument
	}
	return uc.repo.IsMember(ctx, tid, uid)
}

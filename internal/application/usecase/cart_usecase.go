// internal/application/usecase/cart_usecase.go
package usecase

import (
	"context"
	"errors"
	"strings"

	cartdom "tradespace/internal/domain/cart"
)

var (
	ErrCartInvalidArgument = errors.New("cart_usecase: invalid argument")
)

// CartUsecase coordinates cart mutations.
//
// Validation runs before any transaction opens: transaction bodies may
// execute more than once under the store's optimistic retry, so they must
// not be the place that rejects bad input.
type CartUsecase struct {
	repo  cartdom.Repository
	clock Clock
}

func NewCartUsecase(repo cartdom.Repository) *CartUsecase {
	return &CartUsecase{repo: repo, clock: systemClock{}}
}

// NewCartUsecaseWithClock is useful for tests.
func NewCartUsecaseWithClock(repo cartdom.Repository, clock Clock) *CartUsecase {
	if clock == nil {
		clock = systemClock{}
	}
	return &CartUsecase{repo: repo, clock: clock}
}

// AddToCart upserts one unit of the listing into the user's cart.
// Repeated adds accumulate quantity on the single derived line.
func (uc *CartUsecase) AddToCart(ctx context.Context, userID, tradespaceID, listingID string, snap cartdom.Snapshot) (*cartdom.Item, error) {
	uid := strings.TrimSpace(userID)
	tid := strings.TrimSpace(tradespaceID)
	lid := strings.TrimSpace(listingID)
	if uid == "" || tid == "" || lid == "" {
		return nil, ErrCartInvalidArgument
	}
	if err := snap.Validate(); err != nil {
		return nil, ErrCartInvalidArgument
	}

	return uc.repo.Add(ctx, uid, tid, lid, snap, uc.clock.Now())
}

// UpdateQuantity sets quantity directly (absolute, not a delta).
// quantity <= 0 is treated as RemoveItem; the +/- buttons clamp to >= 1
// client-side, so this path only fires on an explicit zero.
func (uc *CartUsecase) UpdateQuantity(ctx context.Context, userID, itemID string, quantity int) error {
	uid := strings.TrimSpace(userID)
	iid := strings.TrimSpace(itemID)
	if uid == "" || iid == "" {
		return ErrCartInvalidArgument
	}

	if quantity <= 0 {
		return uc.repo.Delete(ctx, uid, iid)
	}
	return uc.repo.SetQuantity(ctx, uid, iid, quantity, uc.clock.Now())
}

// RemoveItem deletes the line unconditionally; no-op when absent.
func (uc *CartUsecase) RemoveItem(ctx context.Context, userID, itemID string) error {
	uid := strings.TrimSpace(userID)
	iid := strings.TrimSpace(itemID)
	if uid == "" || iid == "" {
		return ErrCartInvalidArgument
	}
	return uc.repo.Delete(ctx, uid, iid)
}

// List returns the user's current cart snapshot.
func (uc *CartUsecase) List(ctx context.Context, userID string) ([]cartdom.Item, error) {
	uid := strings.TrimSpace(userID)
	if uid == "" {
		return nil, ErrCartInvalidArgument
	}
	return uc.repo.ListByUserID(ctx, uid)
}

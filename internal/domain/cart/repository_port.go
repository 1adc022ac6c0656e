// internal/domain/cart/repository_port.go
package cart

import (
	"context"
	"time"
)

// Repository is the persistence port for cart lines.
//
// Storage (Firestore):
// - collection: users/{userId}/cartItems
// - docId: ItemID(tradespaceId, listingId)
//
// Add MUST run as one atomic transaction on the derived doc so a
// double-clicked add cannot create a duplicate line or lose an increment.
type Repository interface {
	// Add upserts one unit of the listing: existing line -> quantity+1,
	// absent -> create with quantity 1. Returns the resulting line.
	Add(ctx context.Context, userID, tradespaceID, listingID string, snap Snapshot, now time.Time) (*Item, error)

	// SetQuantity writes the quantity field directly (absolute, not delta).
	// Returns ErrNotFound when the line is missing.
	SetQuantity(ctx context.Context, userID, itemID string, quantity int, now time.Time) error

	// Delete removes the line unconditionally; no-op when absent.
	Delete(ctx context.Context, userID, itemID string) error

	// ListByUserID returns the user's current cart snapshot.
	ListByUserID(ctx context.Context, userID string) ([]Item, error)

	// WatchCount streams the live cart line count until ctx is done
	// (cart badge projection). The returned stop func releases the listener.
	WatchCount(ctx context.Context, userID string) (<-chan int, func(), error)
}

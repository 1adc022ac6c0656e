// internal/domain/listing/repository_port.go
package listing

import "context"

// FeedLimit caps the listing feed query.
const FeedLimit = 60

// Repository is the persistence port for listings.
//
// Storage (Firestore):
// - collection: tradespaces/{tradespaceId}/listings
// - docId: auto id
// - feed ordering: dateCreated desc
type Repository interface {
	// Create persists a new listing and returns the generated docId.
	Create(ctx context.Context, l *Listing) (string, error)

	// GetByID returns (nil, ErrNotFound) when the doc is missing.
	GetByID(ctx context.Context, tradespaceID, id string) (*Listing, error)

	// ListByTradespaceID returns the newest listings, up to limit
	// (FeedLimit when limit <= 0).
	ListByTradespaceID(ctx context.Context, tradespaceID string, limit int) ([]Listing, error)

	// Watch streams full feed snapshots on every change until ctx is done.
	Watch(ctx context.Context, tradespaceID string, limit int) (<-chan []Listing, func(), error)
}

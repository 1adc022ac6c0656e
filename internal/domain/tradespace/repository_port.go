// internal/domain/tradespace/repository_port.go
package tradespace

import "context"

// Repository is the persistence port for Tradespace.
//
// Storage (Firestore):
// - collection: tradespaces
// - docId: auto id
// - memberCount is never written through this port; only the membership
//   transaction may touch it.
type Repository interface {
	// GetByID returns (nil, ErrNotFound) when the doc is missing.
	GetByID(ctx context.Context, id string) (*Tradespace, error)

	// List returns all tradespaces (explore feed).
	List(ctx context.Context) ([]Tradespace, error)

	// ListByIDs returns the tradespaces that exist; missing ids are skipped.
	ListByIDs(ctx context.Context, ids []string) ([]Tradespace, error)

	// Create persists a new tradespace and returns the generated docId.
	Create(ctx context.Context, ts *Tradespace) (string, error)
}

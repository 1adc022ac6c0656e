// internal/domain/membership/repository_port.go
package membership

import (
	"context"
	"time"
)

// Repository is the persistence port for memberships.
//
// Storage (Firestore):
// - member doc: tradespaces/{tradespaceId}/members/{userId}
// - user link:  users/{userId}/tradespaces/{tradespaceId}
//
// Join and Leave MUST run as one atomic transaction each (member doc, user
// link and tradespaces/{id}.memberCount move together). Implementations
// delegate the decision to PlanJoin/PlanLeave so the body stays re-executable
// under the store's optimistic retry.
type Repository interface {
	// Join is idempotent: joining twice yields one membership and exactly
	// one memberCount increment. Returns tradespace.ErrNotFound when the
	// tradespace doc is missing.
	Join(ctx context.Context, tradespaceID, userID string, now time.Time) error

	// Leave is idempotent: leaving as a non-member is a no-op. Returns
	// tradespace.ErrNotFound when the tradespace doc is missing.
	Leave(ctx context.Context, tradespaceID, userID string) error

	// IsMember reports whether the member doc exists.
	IsMember(ctx context.Context, tradespaceID, userID string) (bool, error)

	// ListLinksByUserID returns the user-scoped links ("my tradespaces").
	ListLinksByUserID(ctx context.Context, userID string) ([]UserTradespaceLink, error)
}

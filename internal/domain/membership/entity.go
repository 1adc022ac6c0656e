// internal/domain/membership/entity.go
package membership

import (
	"errors"
	"time"
)

var (
	ErrInvalid = errors.New("membership: invalid")
)

// RoleMember is the only role assigned on self-service join.
const RoleMember = "member"

// Membership is the tradespace-scoped record.
//   - path: tradespaces/{tradespaceId}/members/{userId}
//   - existence of this doc is the authoritative "user is a member" signal
//   - keyed by the (tradespaceId, userId) pair, so create is idempotent
type Membership struct {
	TradespaceID string `json:"tradespaceId" firestore:"-"`
	UserID       string `json:"userId" firestore:"-"`

	Role     string    `json:"role" firestore:"role"`
	JoinedAt time.Time `json:"joinedAt" firestore:"joinedAt"`
}

// UserTradespaceLink is the user-scoped mirror of a Membership.
//   - path: users/{userId}/tradespaces/{tradespaceId}
//   - carries the tradespace display name so "my tradespaces" renders without
//     a cross-collection join
//
// Invariant: a Membership exists iff its link exists. Both are written and
// deleted inside the same transaction; no API may mutate one alone.
type UserTradespaceLink struct {
	UserID       string `json:"userId" firestore:"-"`
	TradespaceID string `json:"tradespaceId" firestore:"-"`

	Role     string    `json:"role" firestore:"role"`
	JoinedAt time.Time `json:"joinedAt" firestore:"joinedAt"`
	Name     string    `json:"name" firestore:"name"`
}

// internal/domain/tradespace/entity.go
package tradespace

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrNotFound = errors.New("tradespace: not found")
	ErrInvalid  = errors.New("tradespace: invalid")
)

// Tradespace represents "a topic community document".
//   - docId = Firestore auto id (collection: tradespaces)
//   - MemberCount is a cached aggregate over tradespaces/{id}/members and is
//     mutated only through the membership transaction (see domain/membership).
type Tradespace struct {
	// ID is the Firestore docId.
	ID string `json:"id" firestore:"-"`

	Name         string   `json:"name" firestore:"name"`
	Description  string   `json:"description" firestore:"description"`
	ThumbnailURL string   `json:"thumbnailUrl" firestore:"thumbnailUrl"`
	MemberCount  int64    `json:"memberCount" firestore:"memberCount"`
	Trending     bool     `json:"trending" firestore:"trending"`
	PostsPerDay  int      `json:"postsPerDay" firestore:"postsPerDay"`
	Tags         []string `json:"tags,omitempty" firestore:"tags,omitempty"`

	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
}

// New creates a tradespace document with zeroed aggregates.
func New(name, description, thumbnailURL string, now time.Time) (*Tradespace, error) {
	ts := &Tradespace{
		Name:         strings.TrimSpace(name),
		Description:  strings.TrimSpace(description),
		ThumbnailURL: strings.TrimSpace(thumbnailURL),
		MemberCount:  0,
		Trending:     false,
		PostsPerDay:  0,
		CreatedAt:    now,
	}
	if err := ts.Validate(); err != nil {
		return nil, err
	}
	return ts, nil
}

func (t *Tradespace) Validate() error {
	if t == nil {
		return ErrInvalid
	}
	if strings.TrimSpace(t.Name) == "" {
		return ErrInvalid
	}
	if t.MemberCount < 0 {
		return ErrInvalid
	}
	if t.CreatedAt.IsZero() {
		return ErrInvalid
	}
	return nil
}

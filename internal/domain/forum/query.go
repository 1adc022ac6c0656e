// internal/domain/forum/query.go
package forum

import "strings"

// Sort options for the forum feed.
type Sort string

const (
	SortRecent     Sort = "recent"
	SortPopular    Sort = "popular"
	SortTrending   Sort = "trending"
	SortUnanswered Sort = "unanswered"
)

// FeedLimit caps the forum feed query.
const FeedLimit = 50

// Query describes a forum feed read.
//   - Category is the caller-facing filter key (discussion/question/story
//     or "all"); CategoryValue maps it to the persisted value
//   - Sort defaults to recent
type Query struct {
	TradespaceID string
	Category     string
	Sort         Sort
	Limit        int
}

// Normalize fills defaults and validates the tradespace id.
func (q Query) Normalize() (Query, error) {
	q.TradespaceID = strings.TrimSpace(q.TradespaceID)
	if q.TradespaceID == "" {
		return Query{}, ErrInvalid
	}

	q.Category = strings.ToLower(strings.TrimSpace(q.Category))
	if q.Category == "" {
		q.Category = "all"
	}

	switch q.Sort {
	case SortRecent, SortPopular, SortTrending, SortUnanswered:
	default:
		q.Sort = SortRecent
	}

	if q.Limit <= 0 || q.Limit > FeedLimit {
		q.Limit = FeedLimit
	}
	return q, nil
}

// CategoryValue returns the persisted category for the filter key, or ""
// when no category filter applies.
func (q Query) CategoryValue() string {
	switch q.Category {
	case "discussion":
		return CategoryDiscussion
	case "question":
		return CategoryQuestion
	case "story":
		return CategoryStory
	default:
		return ""
	}
}

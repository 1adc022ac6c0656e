// internal/domain/forum/entity.go
package forum

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalid = errors.New("forum: invalid")
)

// Post categories as persisted.
const (
	CategoryDiscussion = "Discussion"
	CategoryQuestion   = "Question"
	CategoryStory      = "Story"
)

// Post represents "a forum post document".
//   - collection: forumPosts (top level, filtered by tradespaceId)
//   - replies/views/likes start at zero; mutated by peripheral paths only
type Post struct {
	// ID is the Firestore docId.
	ID string `json:"id" firestore:"-"`

	TradespaceID   string   `json:"tradespaceId" firestore:"tradespaceId"`
	Title          string   `json:"title" firestore:"title"`
	Content        string   `json:"content" firestore:"content"`
	Author         string   `json:"author" firestore:"author"`
	AuthorInitials string   `json:"authorInitials" firestore:"authorInitials"`
	Category       string   `json:"category" firestore:"category"`
	Tags           []string `json:"tags" firestore:"tags"`
	Replies        int      `json:"replies" firestore:"replies"`
	Views          int      `json:"views" firestore:"views"`
	Likes          int      `json:"likes" firestore:"likes"`
	Pinned         bool     `json:"isPinned,omitempty" firestore:"isPinned,omitempty"`

	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
}

// NewPost creates a post with zeroed counters.
func NewPost(tradespaceID, title, content, author, authorInitials, category string, tags []string, now time.Time) (*Post, error) {
	p := &Post{
		TradespaceID:   strings.TrimSpace(tradespaceID),
		Title:          strings.TrimSpace(title),
		Content:        strings.TrimSpace(content),
		Author:         strings.TrimSpace(author),
		AuthorInitials: strings.TrimSpace(authorInitials),
		Category:       strings.TrimSpace(category),
		Tags:           tags,
		Replies:        0,
		Views:          0,
		Likes:          0,
		CreatedAt:      now,
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Post) Validate() error {
	if p == nil {
		return ErrInvalid
	}
	if p.TradespaceID == "" || p.Title == "" || p.Content == "" {
		return ErrInvalid
	}
	switch p.Category {
	case CategoryDiscussion, CategoryQuestion, CategoryStory:
		return nil
	default:
		return ErrInvalid
	}
}

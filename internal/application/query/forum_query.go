// internal/application/query/forum_query.go
package query

import (
	"context"

	forumdom "tradespace/internal/domain/forum"
)

// ForumQueryService serves the forum feed of a tradespace.
type ForumQueryService struct {
	posts forumdom.Repository
}

func NewForumQueryService(posts forumdom.Repository) *ForumQueryService {
	return &ForumQueryService{posts: posts}
}

// Feed runs the filtered/sorted feed query.
func (s *ForumQueryService) Feed(ctx context.Context, q forumdom.Query) ([]forumdom.Post, error) {
	nq, err := q.Normalize()
	if err != nil {
		return nil, err
	}
	return s.posts.List(ctx, nq)
}

// WatchFeed streams full feed snapshots on every change.
func (s *ForumQueryService) WatchFeed(ctx context.Context, q forumdom.Query) (<-chan []forumdom.Post, func(), error) {
	nq, err := q.Normalize()
	if err != nil {
		return nil, nil, err
	}
	return s.posts.Watch(ctx, nq)
}

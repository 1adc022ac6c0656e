// internal/adapters/out/firestore/forum_repository_fs.go
package firestore

import (
	"context"
	"errors"
	"log"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	forumdom "tradespace/internal/domain/forum"
)

// ForumRepositoryFS implements forum.Repository.
// Uses the top-level "forumPosts" collection filtered by tradespaceId.
type ForumRepositoryFS struct {
	Client *firestore.Client
}

func NewForumRepositoryFS(client *firestore.Client) *ForumRepositoryFS {
	return &ForumRepositoryFS{Client: client}
}

// Compile-time check
var _ forumdom.Repository = (*ForumRepositoryFS)(nil)

func (r *ForumRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection("forumPosts")
}

// feedQuery maps the normalized domain query onto Firestore constraints.
// "unanswered" is replies == 0 plus recent ordering.
func (r *ForumRepositoryFS) feedQuery(q forumdom.Query) firestore.Query {
	fq := r.col().Query.Where("tradespaceId", "==", q.TradespaceID)

	if cv := q.CategoryValue(); cv != "" {
		fq = fq.Where("category", "==", cv)
	}

	switch q.Sort {
	case forumdom.SortPopular:
		fq = fq.OrderBy("likes", firestore.Desc)
	case forumdom.SortTrending:
		fq = fq.OrderBy("views", firestore.Desc)
	case forumdom.SortUnanswered:
		fq = fq.Where("replies", "==", 0).OrderBy("createdAt", firestore.Desc)
	default:
		fq = fq.OrderBy("createdAt", firestore.Desc)
	}

	return fq.Limit(q.Limit)
}

func (r *ForumRepositoryFS) Create(ctx context.Context, p *forumdom.Post) (string, error) {
	if r.Client == nil {
		return "", errors.New("firestore client is nil")
	}
	if p == nil {
		return "", forumdom.ErrInvalid
	}
	if err := p.Validate(); err != nil {
		return "", err
	}

	ref, _, err := r.col().Add(ctx, p)
	if err != nil {
		return "", err
	}
	return ref.ID, nil
}

func (r *ForumRepositoryFS) List(ctx context.Context, q forumdom.Query) ([]forumdom.Post, error) {
	if r.Client == nil {
		return nil, errors.New("firestore client is nil")
	}

	nq, err := q.Normalize()
	if err != nil {
		return nil, err
	}

	it := r.feedQuery(nq).Documents(ctx)
	defer it.Stop()

	out := []forumdom.Post{}
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}

		var p forumdom.Post
		if err := doc.DataTo(&p); err != nil {
			return nil, err
		}
		p.ID = doc.Ref.ID
		out = append(out, p)
	}
	return out, nil
}

func (r *ForumRepositoryFS) Watch(ctx context.Context, q forumdom.Query) (<-chan []forumdom.Post, func(), error) {
	if r.Client == nil {
		return nil, nil, errors.New("firestore client is nil")
	}

	nq, err := q.Normalize()
	if err != nil {
		return nil, nil, err
	}

	wctx, cancel := context.WithCancel(ctx)
	snaps := r.feedQuery(nq).Snapshots(wctx)
	ch := make(chan []forumdom.Post, 1)

	go func() {
		defer close(ch)
		defer snaps.Stop()
		for {
			qs, err := snaps.Next()
			if err != nil {
				if status.Code(err) != codes.Canceled {
					log.Printf("[forum_repo_fs] WARN: watch stopped tradespaceId=%s: %v", nq.TradespaceID, err)
				}
				return
			}

			docs, err := qs.Documents.GetAll()
			if err != nil {
				log.Printf("[forum_repo_fs] WARN: watch read failed tradespaceId=%s: %v", nq.TradespaceID, err)
				return
			}

			feed := make([]forumdom.Post, 0, len(docs))
			for _, doc := range docs {
				var p forumdom.Post
				if derr := doc.DataTo(&p); derr != nil {
					log.Printf("[forum_repo_fs] WARN: skip bad doc id=%s: %v", doc.Ref.ID, derr)
					continue
				}
				p.ID = doc.Ref.ID
				feed = append(feed, p)
			}

			select {
			case ch <- feed:
			case <-wctx.Done():
				return
			}
		}
	}()

	return ch, cancel, nil
}

// internal/adapters/out/firestore/listing_repository_fs.go
package firestore

import (
	"context"
	"errors"
	"log"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	listdom "tradespace/internal/domain/listing"
)

// ListingRepositoryFS implements listing.Repository.
// Uses the tradespaces/{tradespaceId}/listings subcollection; the feed is
// ordered dateCreated desc.
type ListingRepositoryFS struct {
	Client *firestore.Client
}

func NewListingRepositoryFS(client *firestore.Client) *ListingRepositoryFS {
	return &ListingRepositoryFS{Client: client}
}

// Compile-time check
var _ listdom.Repository = (*ListingRepositoryFS)(nil)

func (r *ListingRepositoryFS) col(tradespaceID string) *firestore.CollectionRef {
	return r.Client.Collection("tradespaces").Doc(tradespaceID).Collection("listings")
}

func (r *ListingRepositoryFS) feedQuery(tradespaceID string, limit int) firestore.Query {
	if limit <= 0 || limit > listdom.FeedLimit {
		limit = listdom.FeedLimit
	}
	return r.col(tradespaceID).OrderBy("dateCreated", firestore.Desc).Limit(limit)
}

func (r *ListingRepositoryFS) Create(ctx context.Context, l *listdom.Listing) (string, error) {
	if r.Client == nil {
		return "", errors.New("firestore client is nil")
	}
	if l == nil {
		return "", listdom.ErrInvalid
	}
	if err := l.Validate(); err != nil {
		return "", err
	}

	ref, _, err := r.col(l.TradespaceID).Add(ctx, l)
	if err != nil {
		return "", err
	}
	return ref.ID, nil
}

func (r *ListingRepositoryFS) GetByID(ctx context.Context, tradespaceID, id string) (*listdom.Listing, error) {
	if r.Client == nil {
		return nil, errors.New("firestore client is nil")
	}

	tid := strings.TrimSpace(tradespaceID)
	id = strings.TrimSpace(id)
	if tid == "" || id == "" {
		return nil, listdom.ErrNotFound
	}

	doc, err := r.col(tid).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, listdom.ErrNotFound
		}
		return nil, err
	}
	return docToListing(doc, tid)
}

func (r *ListingRepositoryFS) ListByTradespaceID(ctx context.Context, tradespaceID string, limit int) ([]listdom.Listing, error) {
	if r.Client == nil {
		return nil, errors.New("firestore client is nil")
	}

	tid := strings.TrimSpace(tradespaceID)
	if tid == "" {
		return []listdom.Listing{}, nil
	}

	it := r.feedQuery(tid, limit).Documents(ctx)
	defer it.Stop()

	out := []listdom.Listing{}
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}

		l, err := docToListing(doc, tid)
		if err != nil {
			return nil, err
		}
		out = append(out, *l)
	}
	return out, nil
}

func (r *ListingRepositoryFS) Watch(ctx context.Context, tradespaceID string, limit int) (<-chan []listdom.Listing, func(), error) {
	if r.Client == nil {
		return nil, nil, errors.New("firestore client is nil")
	}

	tid := strings.TrimSpace(tradespaceID)
	if tid == "" {
		return nil, nil, listdom.ErrInvalid
	}

	wctx, cancel := context.WithCancel(ctx)
	snaps := r.feedQuery(tid, limit).Snapshots(wctx)
	ch := make(chan []listdom.Listing, 1)

	go func() {
		defer close(ch)
		defer snaps.Stop()
		for {
			qs, err := snaps.Next()
			if err != nil {
				if status.Code(err) != codes.Canceled {
					log.Printf("[listing_repo_fs] WARN: watch stopped tradespaceId=%s: %v", tid, err)
				}
				return
			}

			docs, err := qs.Documents.GetAll()
			if err != nil {
				log.Printf("[listing_repo_fs] WARN: watch read failed tradespaceId=%s: %v", tid, err)
				return
			}

			feed := make([]listdom.Listing, 0, len(docs))
			for _, doc := range docs {
				l, derr := docToListing(doc, tid)
				if derr != nil {
					log.Printf("[listing_repo_fs] WARN: skip bad doc id=%s: %v", doc.Ref.ID, derr)
					continue
				}
				feed = append(feed, *l)
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

func docToListing(doc *firestore.DocumentSnapshot, tradespaceID string) (*listdom.Listing, error) {
	var l listdom.Listing
	if err := doc.DataTo(&l); err != nil {
		return nil, err
	}
	l.ID = doc.Ref.ID
	l.TradespaceID = tradespaceID
	return &l, nil
}

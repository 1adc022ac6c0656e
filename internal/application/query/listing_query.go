// internal/application/query/listing_query.go
package query

import (
	"context"
	"errors"
	"strings"

	listdom "tradespace/internal/domain/listing"
)

var (
	ErrListingQueryInvalidArgument = errors.New("listing_query: invalid argument")
)

// ListingQueryService serves the listing feed of a tradespace.
type ListingQueryService struct {
	listings listdom.Repository
}

func NewListingQueryService(listings listdom.Repository) *ListingQueryService {
	return &ListingQueryService{listings: listings}
}

// Feed returns the newest listings (dateCreated desc, feed limit).
func (s *ListingQueryService) Feed(ctx context.Context, tradespaceID string) ([]listdom.Listing, error) {
	tid := strings.TrimSpace(tradespaceID)
	if tid == "" {
		return nil, ErrListingQueryInvalidArgument
	}
	return s.listings.ListByTradespaceID(ctx, tid, listdom.FeedLimit)
}

// WatchFeed streams full feed snapshots on every change.
func (s *ListingQueryService) WatchFeed(ctx context.Context, tradespaceID string) (<-chan []listdom.Listing, func(), error) {
	tid := strings.TrimSpace(tradespaceID)
	if tid == "" {
		return nil, nil, ErrListingQueryInvalidArgument
	}
	return s.listings.Watch(ctx, tid, listdom.FeedLimit)
}

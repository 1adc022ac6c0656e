// internal/application/usecase/listing_usecase.go
package usecase

import (
	"context"
	"errors"
	"strings"

	listdom "tradespace/internal/domain/listing"
)

var (
	ErrListingInvalidArgument = errors.New("listing_usecase: invalid argument")
)

// CreateListingInput is the app-level input for listing creation.
// Image is optional; when present it is uploaded before the doc is written.
type CreateListingInput struct {
	TradespaceID string
	Title        string
	Description  string
	Price        float64
	Condition    string
	SellerID     string
	SellerName   string
	Image        *ImageUpload
}

// ListingUsecase coordinates listing creation.
type ListingUsecase struct {
	repo   listdom.Repository
	images ImageStore
	clock  Clock
}

func NewListingUsecase(repo listdom.Repository, images ImageStore) *ListingUsecase {
	return &ListingUsecase{repo: repo, images: images, clock: systemClock{}}
}

// NewListingUsecaseWithClock is useful for tests.
func NewListingUsecaseWithClock(repo listdom.Repository, images ImageStore, clock Clock) *ListingUsecase {
	uc := NewListingUsecase(repo, images)
	if clock != nil {
		uc.clock = clock
	}
	return uc
}

// Create uploads the optional image, then persists the listing.
// Title must be non-empty and price non-negative; checked here, before any
// storage write.
func (uc *ListingUsecase) Create(ctx context.Context, in CreateListingInput) (*listdom.Listing, error) {
	tid := strings.TrimSpace(in.TradespaceID)
	sid := strings.TrimSpace(in.SellerID)
	if tid == "" || sid == "" {
		return nil, ErrListingInvalidArgument
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, ErrListingInvalidArgument
	}
	if in.Price < 0 {
		return nil, ErrListingInvalidArgument
	}

	var imageURLs []string
	if in.Image != nil && len(in.Image.Data) > 0 {
		url, err := uc.images.UploadListingImage(ctx, tid, sid, in.Image.FileName, in.Image.Data, in.Image.ContentType)
		if err != nil {
			return nil, err
		}
		imageURLs = []string{url}
	}

	l, err := listdom.New(tid, in.Title, in.Description, in.Price, in.Condition, sid, in.SellerName, imageURLs, uc.clock.Now())
	if err != nil {
		return nil, err
	}

	id, err := uc.repo.Create(ctx, l)
	if err != nil {
		return nil, err
	}
	l.ID = id
	return l, nil
}

// internal/application/usecase/tradespace_usecase.go
package usecase

import (
	"context"
	"errors"
	"strings"

	tsdom "tradespace/internal/domain/tradespace"
)

var (
	ErrTradespaceInvalidArgument = errors.New("tradespace_usecase: invalid argument")
)

// ImageUpload is an in-memory upload payload received from the handler.
type ImageUpload struct {
	FileName    string
	ContentType string
	Data        []byte
}

// ImageStore is the outbound blob-store port (GCS adapter).
type ImageStore interface {
	// UploadTradespaceThumbnail stores the thumbnail and returns its public URL.
	UploadTradespaceThumbnail(ctx context.Context, fileName string, data []byte, contentType string) (string, error)

	// UploadListingImage stores a listing image under the tradespace/seller
	// prefix and returns its public URL.
	UploadListingImage(ctx context.Context, tradespaceID, sellerID, fileName string, data []byte, contentType string) (string, error)
}

// TradespaceUsecase coordinates community creation.
type TradespaceUsecase struct {
	repo   tsdom.Repository
	images ImageStore
	clock  Clock
}

func NewTradespaceUsecase(repo tsdom.Repository, images ImageStore) *TradespaceUsecase {
	return &TradespaceUsecase{repo: repo, images: images, clock: systemClock{}}
}

// NewTradespaceUsecaseWithClock is useful for tests.
func NewTradespaceUsecaseWithClock(repo tsdom.Repository, images ImageStore, clock Clock) *TradespaceUsecase {
	uc := NewTradespaceUsecase(repo, images)
	if clock != nil {
		uc.clock = clock
	}
	return uc
}

// Create uploads the thumbnail (required) and persists the tradespace doc
// with zeroed aggregates.
func (uc *TradespaceUsecase) Create(ctx context.Context, name, description string, thumb *ImageUpload) (*tsdom.Tradespace, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrTradespaceInvalidArgument
	}
	if thumb == nil || len(thumb.Data) == 0 {
		return nil, ErrTradespaceInvalidArgument
	}

	thumbnailURL, err := uc.images.UploadTradespaceThumbnail(ctx, thumb.FileName, thumb.Data, thumb.ContentType)
	if err != nil {
		return nil, err
	}

	ts, err := tsdom.New(name, description, thumbnailURL, uc.clock.Now())
	if err != nil {
		return nil, err
	}

	id, err := uc.repo.Create(ctx, ts)
	if err != nil {
		return nil, err
	}
	ts.ID = id
	return ts, nil
}

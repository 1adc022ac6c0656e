// internal/application/query/cart_query.go
package query

import (
	"context"
	"errors"
	"strings"

	cartdom "tradespace/internal/domain/cart"
)

var (
	ErrCartQueryInvalidArgument = errors.New("cart_query: invalid argument")
)

// CartView is the cart read-model: the current lines plus totals derived
// from them. Totals are always recomputed, never read from storage.
type CartView struct {
	Items  []cartdom.Item `json:"items"`
	Totals cartdom.Totals `json:"totals"`
	Count  int            `json:"count"`
}

// CartQueryService projects the cart collection into CartView.
type CartQueryService struct {
	carts cartdom.Repository
}

func NewCartQueryService(carts cartdom.Repository) *CartQueryService {
	return &CartQueryService{carts: carts}
}

// Get returns the cart view for the user (empty view when no lines).
func (s *CartQueryService) Get(ctx context.Context, userID string) (*CartView, error) {
	uid := strings.TrimSpace(userID)
	if uid == "" {
		return nil, ErrCartQueryInvalidArgument
	}

	items, err := s.carts.ListByUserID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []cartdom.Item{}
	}

	return &CartView{
		Items:  items,
		Totals: cartdom.ComputeTotals(items),
		Count:  len(items),
	}, nil
}

// WatchCount streams the live line count (badge projection).
func (s *CartQueryService) WatchCount(ctx context.Context, userID string) (<-chan int, func(), error) {
	uid := strings.TrimSpace(userID)
	if uid == "" {
		return nil, nil, ErrCartQueryInvalidArgument
	}
	return s.carts.WatchCount(ctx, uid)
}

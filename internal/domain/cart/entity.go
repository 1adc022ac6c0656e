// internal/domain/cart/entity.go
package cart

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidItem = errors.New("cart: invalid item")
	ErrNotFound    = errors.New("cart: item not found")
)

// Pricing constants for cart totals.
// Tax rate and flat shipping are fixed, not configurable.
const (
	TaxRate      = 0.08
	ShippingFlat = 9.99
)

// Item represents "one cart line document".
//   - path: users/{userId}/cartItems/{tradespaceId}_{listingId}
//   - the docId is derived from (tradespaceId, listingId), so at most one
//     line per listing can exist per user; repeated adds accumulate Quantity
//   - display fields are a point-in-time copy of the listing taken at
//     add-time; later price/seller changes do not reach the cart
type Item struct {
	// ID is the Firestore docId ("{tradespaceId}_{listingId}").
	ID string `json:"id" firestore:"-"`

	TradespaceID string  `json:"tradespaceId" firestore:"tradespaceId"`
	ListingID    string  `json:"listingId" firestore:"listingId"`
	Title        string  `json:"title" firestore:"title"`
	Price        float64 `json:"price" firestore:"price"`
	SellerID     string  `json:"sellerId" firestore:"sellerId"`
	SellerName   string  `json:"sellerName" firestore:"sellerName"`
	ImageURL     string  `json:"imageUrl" firestore:"imageUrl"`
	Condition    string  `json:"condition" firestore:"condition"`
	Quantity     int     `json:"quantity" firestore:"quantity"`

	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" firestore:"updatedAt"`
}

// Snapshot is the listing's display fields captured at add-time.
type Snapshot struct {
	Title      string  `json:"title"`
	Price      float64 `json:"price"`
	SellerID   string  `json:"sellerId"`
	SellerName string  `json:"sellerName"`
	ImageURL   string  `json:"imageUrl"`
	Condition  string  `json:"condition"`
}

func (s Snapshot) Validate() error {
	if strings.TrimSpace(s.Title) == "" {
		return ErrInvalidItem
	}
	if s.Price < 0 {
		return ErrInvalidItem
	}
	return nil
}

// ItemID derives the deterministic cart docId.
// The exact format is persisted and must stay stable.
func ItemID(tradespaceID, listingID string) string {
	return strings.TrimSpace(tradespaceID) + "_" + strings.TrimSpace(listingID)
}

// NewItem creates the first unit of a listing in the cart.
func NewItem(tradespaceID, listingID string, snap Snapshot, now time.Time) (*Item, error) {
	tid := strings.TrimSpace(tradespaceID)
	lid := strings.TrimSpace(listingID)
	if tid == "" || lid == "" {
		return nil, ErrInvalidItem
	}
	if err := snap.Validate(); err != nil {
		return nil, err
	}

	return &Item{
		ID:           ItemID(tid, lid),
		TradespaceID: tid,
		ListingID:    lid,
		Title:        strings.TrimSpace(snap.Title),
		Price:        snap.Price,
		SellerID:     strings.TrimSpace(snap.SellerID),
		SellerName:   strings.TrimSpace(snap.SellerName),
		ImageURL:     strings.TrimSpace(snap.ImageURL),
		Condition:    strings.TrimSpace(snap.Condition),
		Quantity:     1,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// AddOne adds one unit to an existing line ("add" means "add one unit",
// not "create a line").
func (it *Item) AddOne(now time.Time) error {
	if it == nil {
		return ErrInvalidItem
	}
	if it.Quantity < 1 {
		// tolerate a corrupted stored value the way the source did
		it.Quantity = 1
	}
	it.Quantity++
	it.UpdatedAt = now
	return nil
}

// Totals is the pure aggregation over a cart snapshot. It is recomputed on
// every change and never stored.
type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Shipping float64 `json:"shipping"`
	Total    float64 `json:"total"`
}

// ComputeTotals derives subtotal/tax/shipping/total from the current items.
// Empty cart ships free and totals zero.
func ComputeTotals(items []Item) Totals {
	var t Totals
	for _, it := range items {
		qty := it.Quantity
		if qty < 1 {
			qty = 1
		}
		t.Subtotal += it.Price * float64(qty)
	}
	t.Tax = t.Subtotal * TaxRate
	if len(items) > 0 {
		t.Shipping = ShippingFlat
	}
	t.Total = t.Subtotal + t.Tax + t.Shipping
	return t
}

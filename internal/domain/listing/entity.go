// internal/domain/listing/entity.go
package listing

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrNotFound = errors.New("listing: not found")
	ErrInvalid  = errors.New("listing: invalid")
)

// Listing represents "a product document" inside a tradespace.
//   - path: tradespaces/{tradespaceId}/listings/{listingId}
//   - read-mostly: the cart copies its display fields at add-time and the
//     core engines never write back here
type Listing struct {
	// ID is the Firestore docId.
	ID           string `json:"id" firestore:"-"`
	TradespaceID string `json:"tradespaceId" firestore:"-"`

	Title       string   `json:"title" firestore:"title"`
	Description string   `json:"description" firestore:"description"`
	Price       float64  `json:"price" firestore:"price"`
	Condition   string   `json:"condition" firestore:"condition"`
	SellerID    string   `json:"sellerId" firestore:"sellerId"`
	SellerName  string   `json:"sellerName" firestore:"sellerName"`
	ImageURLs   []string `json:"imageUrls" firestore:"imageUrls"`
	Offers      int      `json:"offers" firestore:"offers"`
	Tags        []string `json:"tags" firestore:"tags"`

	DateCreated time.Time `json:"dateCreated" firestore:"dateCreated"`
}

// New creates a listing with zeroed aggregates.
// sellerName falls back to "Unknown" when the identity provider has neither
// a display name nor an email for the seller.
func New(tradespaceID, title, description string, price float64, condition, sellerID, sellerName string, imageURLs []string, now time.Time) (*Listing, error) {
	l := &Listing{
		TradespaceID: strings.TrimSpace(tradespaceID),
		Title:        strings.TrimSpace(title),
		Description:  strings.TrimSpace(description),
		Price:        price,
		Condition:    strings.TrimSpace(condition),
		SellerID:     strings.TrimSpace(sellerID),
		SellerName:   strings.TrimSpace(sellerName),
		ImageURLs:    imageURLs,
		Offers:       0,
		Tags:         []string{},
		DateCreated:  now,
	}
	if l.ImageURLs == nil {
		l.ImageURLs = []string{}
	}
	if l.SellerName == "" {
		l.SellerName = "Unknown"
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *Listing) Validate() error {
	if l == nil {
		return ErrInvalid
	}
	if l.TradespaceID == "" || l.SellerID == "" {
		return ErrInvalid
	}
	if strings.TrimSpace(l.Title) == "" {
		return ErrInvalid
	}
	if l.Price < 0 {
		return ErrInvalid
	}
	return nil
}

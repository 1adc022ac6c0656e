// internal/domain/invoice/entity.go
package invoice

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalid = errors.New("invoice: invalid")
)

// DefaultBrandName is printed in the invoice header when no brand is set.
const DefaultBrandName = "TradeSpace"

// Line is one invoiced cart line.
type Line struct {
	Title      string  `json:"title"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unitPrice"`
	Condition  string  `json:"condition,omitempty"`
	SellerName string  `json:"sellerName,omitempty"`
}

// Invoice is the value object handed to the formatter. Totals are the
// caller's (already computed over the cart snapshot); the invoice carries
// them verbatim instead of recomputing.
type Invoice struct {
	Number     string    `json:"invoiceNumber"`
	BuyerName  string    `json:"buyerName"`
	BuyerEmail string    `json:"buyerEmail,omitempty"`
	BrandName  string    `json:"brandName"`
	Lines      []Line    `json:"items"`
	Subtotal   float64   `json:"subtotal"`
	Tax        float64   `json:"tax"`
	Shipping   float64   `json:"shipping"`
	Total      float64   `json:"total"`
	Date       time.Time `json:"date"`
}

func (i Invoice) Validate() error {
	if strings.TrimSpace(i.Number) == "" {
		return ErrInvalid
	}
	if strings.TrimSpace(i.BuyerName) == "" {
		return ErrInvalid
	}
	if len(i.Lines) == 0 {
		return ErrInvalid
	}
	for _, l := range i.Lines {
		if strings.TrimSpace(l.Title) == "" {
			return ErrInvalid
		}
		if l.Quantity < 1 {
			return ErrInvalid
		}
		if l.UnitPrice < 0 {
			return ErrInvalid
		}
	}
	if i.Subtotal < 0 || i.Tax < 0 || i.Shipping < 0 || i.Total < 0 {
		return ErrInvalid
	}
	if i.Date.IsZero() {
		return ErrInvalid
	}
	return nil
}

// internal/adapters/out/pdf/invoice_pdf_test.go
package pdf

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	invdom "tradespace/internal/domain/invoice"
)

func sampleInvoice(lines int) invdom.Invoice {
	ls := make([]invdom.Line, 0, lines)
	for i := 0; i < lines; i++ {
		ls = append(ls, invdom.Line{
			Title:      fmt.Sprintf("Item %d", i+1),
			Quantity:   1,
			UnitPrice:  10,
			Condition:  "Used",
			SellerName: "Ann",
		})
	}
	return invdom.Invoice{
		Number:    "TS-1700000000000",
		BuyerName: "Cary",
		BrandName: invdom.DefaultBrandName,
		Lines:     ls,
		Subtotal:  float64(lines) * 10,
		Tax:       float64(lines) * 0.8,
		Shipping:  9.99,
		Total:     float64(lines)*10.8 + 9.99,
		Date:      time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestBuildProducesPDF(t *testing.T) {
	f := NewInvoiceFormatterPDF()

	out, err := f.Build(sampleInvoice(3))
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestBuildRejectsInvalidInvoice(t *testing.T) {
	f := NewInvoiceFormatterPDF()

	inv := sampleInvoice(1)
	inv.BuyerName = ""
	_, err := f.Build(inv)
	assert.ErrorIs(t, err, invdom.ErrInvalid)
}

// Single-page mode: the formatter fails instead of paginating once the rows
// would collide with the totals block.
func TestBuildFailsWhenTooManyLines(t *testing.T) {
	f := NewInvoiceFormatterPDF()

	_, err := f.Build(sampleInvoice(5))
	require.NoError(t, err)

	_, err = f.Build(sampleInvoice(12))
	assert.ErrorIs(t, err, invdom.ErrTooLong)
}

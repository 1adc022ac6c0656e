// internal/adapters/out/pdf/invoice_pdf.go
package pdf

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	invdom "tradespace/internal/domain/invoice"
)

// InvoiceFormatterPDF renders invoices onto a single US-Letter page.
//
// Single-page mode is a contract, not a limitation to paper over: when the
// item rows would run into the totals block the formatter fails with
// invoice.ErrTooLong instead of paginating.
type InvoiceFormatterPDF struct{}

func NewInvoiceFormatterPDF() *InvoiceFormatterPDF {
	return &InvoiceFormatterPDF{}
}

// Compile-time check
var _ invdom.Formatter = (*InvoiceFormatterPDF)(nil)

const (
	pageW  = 612.0 // Letter, points
	pageH  = 792.0
	margin = 48.0

	rowH = 64.0
	// Space reserved below the rows for the totals block and footer.
	totalsReserve = 150.0
)

func money(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

// wrapText breaks on spaces at maxChars per line.
func wrapText(text string, maxChars int) []string {
	words := strings.Fields(text)
	lines := []string{}
	line := ""

	for _, w := range words {
		next := w
		if line != "" {
			next = line + " " + w
		}
		if len(next) > maxChars {
			if line != "" {
				lines = append(lines, line)
			}
			line = w
		} else {
			line = next
		}
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}

func (f *InvoiceFormatterPDF) Build(inv invdom.Invoice) ([]byte, error) {
	if err := inv.Validate(); err != nil {
		return nil, err
	}

	brand := strings.TrimSpace(inv.BrandName)
	if brand == "" {
		brand = invdom.DefaultBrandName
	}

	doc := gofpdf.New("P", "pt", "Letter", "")
	doc.SetAutoPageBreak(false, 0)
	doc.AddPage()

	contentW := pageW - margin*2
	y := margin

	text := func(x, yPos float64, size float64, style string, gray bool, s string) {
		doc.SetFont("Helvetica", style, size)
		if gray {
			doc.SetTextColor(89, 89, 97)
		} else {
			doc.SetTextColor(0, 0, 0)
		}
		doc.Text(x, yPos, s)
	}

	// ===== Header (brand + invoice meta)
	doc.SetFillColor(247, 247, 250)
	doc.SetDrawColor(230, 230, 235)
	doc.Rect(margin, y, contentW, 60, "FD")

	text(margin+14, y+26, 18, "B", false, brand)
	text(margin+14, y+46, 12, "", true, "Invoice")

	text(pageW-margin-220, y+24, 11, "B", false, "Invoice: "+inv.Number)
	text(pageW-margin-220, y+40, 10, "", true, "Date: "+inv.Date.Format("Jan 2, 2006 3:04 PM"))

	y += 76

	// ===== Buyer block
	doc.SetFillColor(255, 255, 255)
	doc.Rect(margin, y, contentW, 60, "D")
	text(margin+12, y+18, 11, "B", false, "Billed To")
	text(margin+12, y+36, 11, "", false, inv.BuyerName)
	if inv.BuyerEmail != "" {
		text(margin+12, y+52, 10, "", true, inv.BuyerEmail)
	}
	y += 80

	// ===== Items table
	text(margin, y+12, 13, "B", false, "Items")
	y += 26

	colTitle := margin + 12
	colQty := pageW - margin - 190
	colUnit := pageW - margin - 130
	colLine := pageW - margin - 60

	doc.SetFillColor(247, 247, 250)
	doc.Rect(margin, y, contentW, 22, "FD")
	text(colTitle, y+15, 10, "B", false, "Product")
	text(colQty, y+15, 10, "B", false, "Qty")
	text(colUnit, y+15, 10, "B", false, "Unit")
	text(colLine, y+15, 10, "B", false, "Line")
	y += 32

	doc.SetFillColor(255, 255, 255)
	doc.SetDrawColor(235, 235, 240)
	for _, l := range inv.Lines {
		// single-page mode: no room left for this row -> fail, don't paginate
		if y+rowH > pageH-(margin+totalsReserve) {
			return nil, invdom.ErrTooLong
		}

		doc.Rect(margin, y, contentW, rowH, "D")

		titleLines := wrapText(l.Title, 34)
		if len(titleLines) > 2 {
			titleLines = titleLines[:2]
		}
		text(colTitle, y+20, 10, "B", false, titleLines[0])
		if len(titleLines) > 1 {
			text(colTitle, y+34, 10, "B", false, titleLines[1])
		}

		meta := []string{}
		if strings.TrimSpace(l.Condition) != "" {
			meta = append(meta, l.Condition)
		}
		if strings.TrimSpace(l.SellerName) != "" {
			meta = append(meta, "Seller: "+l.SellerName)
		}
		if len(meta) > 0 {
			text(colTitle, y+50, 9, "", true, strings.Join(meta, "  ·  "))
		}

		text(colQty, y+36, 10, "", false, fmt.Sprintf("%d", l.Quantity))
		text(colUnit, y+36, 10, "", false, money(l.UnitPrice))
		text(colLine, y+36, 10, "", false, money(l.UnitPrice*float64(l.Quantity)))

		y += rowH
	}

	// ===== Totals block (right-aligned column)
	y += 20
	labelX := pageW - margin - 190
	valueX := pageW - margin - 60

	text(labelX, y, 10, "", true, "Subtotal")
	text(valueX, y, 10, "", false, money(inv.Subtotal))
	y += 16
	text(labelX, y, 10, "", true, "Tax (8%)")
	text(valueX, y, 10, "", false, money(inv.Tax))
	y += 16
	text(labelX, y, 10, "", true, "Shipping")
	text(valueX, y, 10, "", false, money(inv.Shipping))
	y += 20
	text(labelX, y, 12, "B", false, "Total")
	text(valueX, y, 12, "B", false, money(inv.Total))

	// ===== Footer
	text(margin, pageH-margin, 9, "", true, "Thank you for trading on "+brand+".")

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("invoice_pdf: render: %w", err)
	}
	return buf.Bytes(), nil
}

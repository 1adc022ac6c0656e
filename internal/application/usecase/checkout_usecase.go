// internal/application/usecase/checkout_usecase.go
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	cartdom "tradespace/internal/domain/cart"
	invdom "tradespace/internal/domain/invoice"
)

var (
	ErrCheckoutInvalidArgument = errors.New("checkout_usecase: invalid argument")
	ErrCheckoutEmptyCart       = errors.New("checkout_usecase: cart is empty")
)

// InvoiceMailer sends the generated invoice to the buyer. Best-effort:
// a mail failure never fails the checkout.
type InvoiceMailer interface {
	SendInvoice(ctx context.Context, toEmail, toName, invoiceNumber string, pdf []byte) error
}

// PartialClearError reports a checkout whose invoice was generated but whose
// cart-clearing deletions partially failed. Checkout is deliberately not
// atomic across items (each deletion is independent); retrying the whole
// operation would risk a duplicate invoice, so the caller gets the surviving
// item ids instead.
type PartialClearError struct {
	InvoiceNumber string
	FailedItemIDs []string
	Errs          []error
}

func (e *PartialClearError) Error() string {
	return fmt.Sprintf("checkout_usecase: invoice %s generated but %d cart item(s) not cleared", e.InvoiceNumber, len(e.FailedItemIDs))
}

// CheckoutInput is the buyer metadata captured from the identity provider.
type CheckoutInput struct {
	UserID     string
	BuyerName  string
	BuyerEmail string
}

// CheckoutResult carries the invoice and its rendered bytes.
type CheckoutResult struct {
	Invoice invdom.Invoice
	PDF     []byte
	Cleared int
}

// CheckoutUsecase orchestrates "snapshot cart -> invoice -> mail -> clear".
type CheckoutUsecase struct {
	carts     cartdom.Repository
	formatter invdom.Formatter
	mailer    InvoiceMailer // optional
	clock     Clock
}

func NewCheckoutUsecase(carts cartdom.Repository, formatter invdom.Formatter, mailer InvoiceMailer) *CheckoutUsecase {
	return &CheckoutUsecase{
		carts:     carts,
		formatter: formatter,
		mailer:    mailer,
		clock:     systemClock{},
	}
}

// NewCheckoutUsecaseWithClock is useful for tests.
func NewCheckoutUsecaseWithClock(carts cartdom.Repository, formatter invdom.Formatter, mailer InvoiceMailer, clock Clock) *CheckoutUsecase {
	uc := NewCheckoutUsecase(carts, formatter, mailer)
	if clock != nil {
		uc.clock = clock
	}
	return uc
}

// Checkout builds the invoice over the current cart snapshot, then clears the
// included items one by one. The clearing loop is NOT transactional: a crash
// mid-checkout can leave a partially cleared cart, and partial failures are
// surfaced via PartialClearError alongside the successful invoice.
func (uc *CheckoutUsecase) Checkout(ctx context.Context, in CheckoutInput) (*CheckoutResult, error) {
	uid := strings.TrimSpace(in.UserID)
	if uid == "" {
		return nil, ErrCheckoutInvalidArgument
	}

	buyerName := strings.TrimSpace(in.BuyerName)
	if buyerName == "" {
		buyerName = "TradeSpace User"
	}

	items, err := uc.carts.ListByUserID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrCheckoutEmptyCart
	}

	now := uc.clock.Now()
	totals := cartdom.ComputeTotals(items)

	lines := make([]invdom.Line, 0, len(items))
	for _, it := range items {
		lines = append(lines, invdom.Line{
			Title:      it.Title,
			Quantity:   it.Quantity,
			UnitPrice:  it.Price,
			Condition:  it.Condition,
			SellerName: it.SellerName,
		})
	}

	inv := invdom.Invoice{
		Number:     fmt.Sprintf("TS-%d", now.UnixMilli()),
		BuyerName:  buyerName,
		BuyerEmail: strings.TrimSpace(in.BuyerEmail),
		BrandName:  invdom.DefaultBrandName,
		Lines:      lines,
		Subtotal:   totals.Subtotal,
		Tax:        totals.Tax,
		Shipping:   totals.Shipping,
		Total:      totals.Total,
		Date:       now,
	}
	if err := inv.Validate(); err != nil {
		return nil, err
	}

	pdf, err := uc.formatter.Build(inv)
	if err != nil {
		// invoice failed -> cart untouched, safe to retry
		return nil, err
	}

	// Best-effort mail; never fails the checkout.
	if uc.mailer != nil && inv.BuyerEmail != "" {
		if merr := uc.mailer.SendInvoice(ctx, inv.BuyerEmail, inv.BuyerName, inv.Number, pdf); merr != nil {
			log.Printf("[checkout_usecase] WARN: invoice mail failed number=%s to=%s: %v", inv.Number, inv.BuyerEmail, merr)
		}
	}

	// Clear the included items (independent deletes, non-atomic).
	res := &CheckoutResult{Invoice: inv, PDF: pdf}
	var failed []string
	var errs []error
	for _, it := range items {
		if derr := uc.carts.Delete(ctx, uid, it.ID); derr != nil {
			failed = append(failed, it.ID)
			errs = append(errs, derr)
			continue
		}
		res.Cleared++
	}
	if len(failed) > 0 {
		log.Printf("[checkout_usecase] WARN: partial cart clear number=%s failed=%d/%d", inv.Number, len(failed), len(items))
		return res, &PartialClearError{InvoiceNumber: inv.Number, FailedItemIDs: failed, Errs: errs}
	}

	log.Printf("[checkout_usecase] checkout ok number=%s items=%d total=%.2f", inv.Number, len(items), inv.Total)
	return res, nil
}

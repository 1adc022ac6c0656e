// internal/application/usecase/checkout_usecase_test.go
package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartdom "tradespace/internal/domain/cart"
	invdom "tradespace/internal/domain/invoice"
)

type fakeFormatter struct {
	fail bool
	last *invdom.Invoice
}

func (f *fakeFormatter) Build(inv invdom.Invoice) ([]byte, error) {
	if f.fail {
		return nil, invdom.ErrTooLong
	}
	f.last = &inv
	return []byte("%PDF-fake"), nil
}

type fakeMailer struct {
	fail bool
	sent []string // invoice numbers
}

func (m *fakeMailer) SendInvoice(_ context.Context, _, _, invoiceNumber string, _ []byte) error {
	if m.fail {
		return assert.AnError
	}
	m.sent = append(m.sent, invoiceNumber)
	return nil
}

func seedCart(t *testing.T, repo *fakeCartRepo, uid string) {
	t.Helper()
	ctx := context.Background()
	uc := NewCartUsecase(repo)

	_, err := uc.AddToCart(ctx, uid, "ts1", "li1", cartdom.Snapshot{Title: "Lamp", Price: 12.50, SellerID: "s1", SellerName: "Ann"})
	require.NoError(t, err)
	_, err = uc.AddToCart(ctx, uid, "ts1", "li1", cartdom.Snapshot{Title: "Lamp", Price: 12.50, SellerID: "s1", SellerName: "Ann"})
	require.NoError(t, err)
	_, err = uc.AddToCart(ctx, uid, "ts2", "li9", cartdom.Snapshot{Title: "Chair", Price: 30, SellerID: "s2", SellerName: "Bo"})
	require.NoError(t, err)
}

func TestCheckout(t *testing.T) {
	ctx := context.Background()
	repo := newFakeCartRepo()
	seedCart(t, repo, "u1")

	formatter := &fakeFormatter{}
	mailer := &fakeMailer{}
	clock := fixedClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	uc := NewCheckoutUsecaseWithClock(repo, formatter, mailer, clock)

	res, err := uc.Checkout(ctx, CheckoutInput{UserID: "u1", BuyerName: "Cary", BuyerEmail: "cary@example.com"})
	require.NoError(t, err)

	// invoice number derives from the clock
	assert.Equal(t, "TS-1772366400000", res.Invoice.Number)
	assert.Equal(t, "Cary", res.Invoice.BuyerName)
	assert.Equal(t, invdom.DefaultBrandName, res.Invoice.BrandName)
	require.Len(t, res.Invoice.Lines, 2)

	// subtotal 2*12.50 + 30 = 55, tax 4.40, shipping 9.99
	assert.InDelta(t, 55.00, res.Invoice.Subtotal, 1e-9)
	assert.InDelta(t, 4.40, res.Invoice.Tax, 1e-9)
	assert.InDelta(t, 9.99, res.Invoice.Shipping, 1e-9)
	assert.InDelta(t, 69.39, res.Invoice.Total, 1e-9)

	assert.Equal(t, []byte("%PDF-fake"), res.PDF)
	assert.Equal(t, 2, res.Cleared)
	assert.Equal(t, []string{"TS-1772366400000"}, mailer.sent)

	items, err := repo.ListByUserID(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestCheckoutEmptyCart(t *testing.T) {
	uc := NewCheckoutUsecase(newFakeCartRepo(), &fakeFormatter{}, nil)
	_, err := uc.Checkout(context.Background(), CheckoutInput{UserID: "u1"})
	assert.ErrorIs(t, err, ErrCheckoutEmptyCart)
}

func TestCheckoutBuyerNameFallback(t *testing.T) {
	repo := newFakeCartRepo()
	seedCart(t, repo, "u1")
	formatter := &fakeFormatter{}
	uc := NewCheckoutUsecase(repo, formatter, nil)

	res, err := uc.Checkout(context.Background(), CheckoutInput{UserID: "u1"})
	require.NoError(t, err)
	assert.Equal(t, "TradeSpace User", res.Invoice.BuyerName)
}

func TestCheckoutFormatterFailureLeavesCartUntouched(t *testing.T) {
	ctx := context.Background()
	repo := newFakeCartRepo()
	seedCart(t, repo, "u1")
	uc := NewCheckoutUsecase(repo, &fakeFormatter{fail: true}, nil)

	_, err := uc.Checkout(ctx, CheckoutInput{UserID: "u1"})
	assert.ErrorIs(t, err, invdom.ErrTooLong)

	items, err := repo.ListByUserID(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestCheckoutMailFailureDoesNotFail(t *testing.T) {
	repo := newFakeCartRepo()
	seedCart(t, repo, "u1")
	uc := NewCheckoutUsecase(repo, &fakeFormatter{}, &fakeMailer{fail: true})

	res, err := uc.Checkout(context.Background(), CheckoutInput{UserID: "u1", BuyerEmail: "x@example.com"})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Cleared)
}

func TestCheckoutPartialClear(t *testing.T) {
	ctx := context.Background()
	repo := newFakeCartRepo()
	seedCart(t, repo, "u1")
	repo.failDelete["ts2_li9"] = true

	uc := NewCheckoutUsecase(repo, &fakeFormatter{}, nil)

	res, err := uc.Checkout(ctx, CheckoutInput{UserID: "u1"})
	require.Error(t, err)

	var partial *PartialClearError
	require.ErrorAs(t, err, &partial)
	assert.Equal(t, []string{"ts2_li9"}, partial.FailedItemIDs)
	assert.Equal(t, res.Invoice.Number, partial.InvoiceNumber)

	// the invoice is still usable and the other line was cleared
	require.NotNil(t, res)
	assert.NotEmpty(t, res.PDF)
	assert.Equal(t, 1, res.Cleared)

	items, err := repo.ListByUserID(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "ts2_li9", items[0].ID)
}

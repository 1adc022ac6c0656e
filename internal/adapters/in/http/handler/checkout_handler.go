// internal/adapters/in/http/handler/checkout_handler.go
package handler

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	usecase "tradespace/internal/application/usecase"
	invdom "tradespace/internal/domain/invoice"
)

// CheckoutHandler serves POST /checkout. The response body is the invoice
// PDF itself; invoice metadata travels in headers so the client can render
// the download without parsing the document.
type CheckoutHandler struct {
	checkoutUC *usecase.CheckoutUsecase
}

func NewCheckoutHandler(checkoutUC *usecase.CheckoutUsecase) http.Handler {
	return &CheckoutHandler{checkoutUC: checkoutUC}
}

func (h *CheckoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	u, ok := requireUser(w, r)
	if !ok {
		return
	}

	res, err := h.checkoutUC.Checkout(r.Context(), usecase.CheckoutInput{
		UserID:     u.UID,
		BuyerName:  u.DisplayName,
		BuyerEmail: u.Email,
	})

	var partial *usecase.PartialClearError
	if err != nil && !errors.As(err, &partial) {
		switch {
		case errors.Is(err, usecase.ErrCheckoutEmptyCart):
			badRequest(w, "cart is empty")
		case errors.Is(err, invdom.ErrTooLong):
			badRequest(w, "too many items for a single invoice")
		default:
			internalError(w, err)
		}
		return
	}

	// A partial clear still produced a valid invoice; the client gets the PDF
	// plus a header flagging the lines that survived.
	if partial != nil {
		log.Printf("[checkout_handler] partial clear uid=%s number=%s failed=%d", u.UID, partial.InvoiceNumber, len(partial.FailedItemIDs))
		w.Header().Set("X-Cart-Clear", "partial")
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="TradeSpace-Invoice-%s.pdf"`, res.Invoice.Number))
	w.Header().Set("X-Invoice-Number", res.Invoice.Number)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.PDF)
}

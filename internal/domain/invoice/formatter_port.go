// internal/domain/invoice/formatter_port.go
package invoice

import "errors"

// ErrTooLong is returned when the line items would overflow one page.
// The formatter does not paginate; callers must not assume arbitrary cart
// sizes succeed.
var ErrTooLong = errors.New("invoice: too long for one page")

// Formatter renders an invoice into a binary document (PDF).
// One-shot and pure: same invoice in, same bytes out, no stored state.
type Formatter interface {
	Build(inv Invoice) ([]byte, error)
}

// internal/domain/membership/notifier.go
package membership

// ChangeNotifier receives advisory "this user's tradespaces changed" signals
// after a successful Leave, so cached membership views can refresh.
//
// Advisory only: no delivery guarantee, fired after commit, never inside the
// transaction. Consumers must not rely on it for correctness.
type ChangeNotifier interface {
	TradespacesChanged(userID string)
}

// NopNotifier is used when nothing subscribes (non-interactive contexts).
type NopNotifier struct{}

func (NopNotifier) TradespacesChanged(string) {}

var _ ChangeNotifier = NopNotifier{}

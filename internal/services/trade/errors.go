package trade

// TradeError is a custom error type for trade-related errors
type TradeError string

// Error implements the error interface
func (e TradeError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrSelfTrade       TradeError = "cannot trade with yourself"
	ErrIndexOutOfRange TradeError = "card index out of range"
	ErrNotReceiver     TradeError = "only the offer's receiver may resolve it"
	ErrNotPending      TradeError = "trade offer already resolved"
	ErrInstanceGone    TradeError = "offered card is no longer in the sender's inventory"
	ErrNilConfig       TradeError = "config cannot be nil"
	ErrNilSessions     TradeError = "session cache cannot be nil"
	ErrNilInventory    TradeError = "inventory repository cannot be nil"
	ErrNilCatalog      TradeError = "catalog cannot be nil"
	ErrNilClock        TradeError = "clock cannot be nil"
	ErrNilLogger       TradeError = "logger cannot be nil"
	ErrNilMetrics      TradeError = "metrics cannot be nil"
)

package core

// OrderSide represents the direction of an order (buy or sell).
type OrderSide string

// Order side constants define the direction of a trade.
const (
	// SideBuy indicates an order to purchase an asset.
	SideBuy OrderSide = "buy"
	// SideSell indicates an order to sell an asset.
	SideSell OrderSide = "sell"
)

// OrderType represents how an order executes on an exchange.
// Values outside the known set pass through verbatim from the venue.
type OrderType string

// Order type constants for the common execution styles.
const (
	// TypeMarket executes immediately at the best available price.
	TypeMarket OrderType = "market"
	// TypeLimit executes at a specified price or better.
	TypeLimit OrderType = "limit"
)

// OrderStatus represents the unified state of an order. A status string that
// an adapter's lookup table does not recognize is carried through unchanged,
// so callers must treat unknown values as pass-through rather than invalid.
type OrderStatus string

// Unified order status constants.
const (
	// StatusOpen indicates the order is live on the book.
	StatusOpen OrderStatus = "open"
	// StatusClosed indicates the order has been completely filled.
	StatusClosed OrderStatus = "closed"
	// StatusCanceled indicates the order has been canceled.
	StatusCanceled OrderStatus = "canceled"
	// StatusExpired indicates the order has expired.
	StatusExpired OrderStatus = "expired"
	// StatusRejected indicates the order was rejected by the exchange.
	StatusRejected OrderStatus = "rejected"
)

// IsTerminal returns true if the order can no longer change state.
func (s OrderStatus) IsTerminal() bool {
	return s == StatusClosed || s == StatusCanceled || s == StatusRejected || s == StatusExpired
}

// TakerOrMaker identifies which side of the book a trade consumed.
type TakerOrMaker string

// Liquidity role constants.
const (
	// Taker removed liquidity from the book.
	Taker TakerOrMaker = "taker"
	// Maker provided liquidity to the book.
	Maker TakerOrMaker = "maker"
)

// TransactionType distinguishes deposits from withdrawals.
type TransactionType string

// Transaction type constants.
const (
	// TxDeposit is an inbound transfer onto the exchange.
	TxDeposit TransactionType = "deposit"
	// TxWithdrawal is an outbound transfer off the exchange.
	TxWithdrawal TransactionType = "withdrawal"
)

// TransactionStatus represents the unified state of a deposit or withdrawal.
type TransactionStatus string

// Unified transaction status constants.
const (
	// TxPending is an unconfirmed transaction.
	TxPending TransactionStatus = "pending"
	// TxOK is a finalized, credited transaction.
	TxOK TransactionStatus = "ok"
	// TxCanceled is a transaction canceled before settlement.
	TxCanceled TransactionStatus = "canceled"
	// TxFailed is a transaction rejected by the network or the venue.
	TxFailed TransactionStatus = "failed"
)

// Raw is an untyped exchange payload. Every unified record keeps the payload
// it was built from under Info so nothing the venue reported is lost.
type Raw = map[string]any

// Precision describes how many digits (or which tick increment) a market
// accepts per field. Values are decimal strings: under the decimal-places and
// significant-digits modes they hold integer counts, under tick-size mode the
// minimum increment itself.
type Precision struct {
	Amount string `json:"amount,omitempty"`
	Price  string `json:"price,omitempty"`
	Base   string `json:"base,omitempty"`
	Quote  string `json:"quote,omitempty"`
}

// MinMax bounds a value from both ends. Empty string means unbounded.
type MinMax struct {
	Min string `json:"min,omitempty"`
	Max string `json:"max,omitempty"`
}

// Limits groups the order-validation bounds a market enforces.
type Limits struct {
	Amount   MinMax `json:"amount"`
	Price    MinMax `json:"price"`
	Cost     MinMax `json:"cost"`
	Leverage MinMax `json:"leverage"`
}

// Market is the unified description of one tradeable instrument.
// ID is the exchange-native identifier and must round-trip through request
// dispatch; Symbol is derived from Base/Quote (plus Settle and expiry for
// derivatives) and is unique within one exchange.
type Market struct {
	ID       string     `json:"id"`
	Symbol   string     `json:"symbol"`
	Base     string     `json:"base"`
	Quote    string     `json:"quote"`
	Settle   string     `json:"settle,omitempty"`
	BaseID   string     `json:"baseId,omitempty"`
	QuoteID  string     `json:"quoteId,omitempty"`
	SettleID string     `json:"settleId,omitempty"`
	Type     MarketType `json:"type"`

	Spot   bool `json:"spot"`
	Margin bool `json:"margin"`
	Swap   bool `json:"swap"`
	Future bool `json:"future"`
	Option bool `json:"option"`

	Active   bool  `json:"active"`
	Contract bool  `json:"contract"`
	Linear   *bool `json:"linear,omitempty"`
	Inverse  *bool `json:"inverse,omitempty"`

	ContractSize string `json:"contractSize,omitempty"`
	Expiry       int64  `json:"expiry,omitempty"`
	Strike       string `json:"strike,omitempty"`
	OptionType   string `json:"optionType,omitempty"`

	TakerFee string `json:"taker,omitempty"`
	MakerFee string `json:"maker,omitempty"`

	Precision Precision `json:"precision"`
	Limits    Limits    `json:"limits"`
	Info      Raw       `json:"info,omitempty"`
}

// Network describes one deposit/withdrawal network of a currency.
type Network struct {
	ID       string `json:"id"`
	Network  string `json:"network"`
	Active   bool   `json:"active"`
	Deposit  bool   `json:"deposit"`
	Withdraw bool   `json:"withdraw"`
	Fee      string `json:"fee,omitempty"`
	Limits   Limits `json:"limits"`
	Info     Raw    `json:"info,omitempty"`
}

// Currency is the unified description of one asset. Code is the canonical
// uppercase ticker after alias substitution; ID is the exchange-native form.
// Fee and Limits aggregate the most permissive values across Networks.
type Currency struct {
	ID        string             `json:"id"`
	Code      string             `json:"code"`
	Name      string             `json:"name,omitempty"`
	Precision string             `json:"precision,omitempty"`
	Active    bool               `json:"active"`
	Deposit   bool               `json:"deposit"`
	Withdraw  bool               `json:"withdraw"`
	Fee       string             `json:"fee,omitempty"`
	Networks  map[string]Network `json:"networks,omitempty"`
	Limits    Limits             `json:"limits"`
	Info      Raw                `json:"info,omitempty"`
}

// Fee is a fee actually charged, in a specific currency.
type Fee struct {
	Currency string       `json:"currency,omitempty"`
	Cost     string       `json:"cost,omitempty"`
	Rate     string       `json:"rate,omitempty"`
	Type     TakerOrMaker `json:"type,omitempty"`
}

// Ticker is a 24-hour market statistics snapshot.
type Ticker struct {
	Symbol      string `json:"symbol"`
	Timestamp   int64  `json:"timestamp,omitempty"`
	Datetime    string `json:"datetime,omitempty"`
	High        string `json:"high,omitempty"`
	Low         string `json:"low,omitempty"`
	Bid         string `json:"bid,omitempty"`
	BidVolume   string `json:"bidVolume,omitempty"`
	Ask         string `json:"ask,omitempty"`
	AskVolume   string `json:"askVolume,omitempty"`
	Vwap        string `json:"vwap,omitempty"`
	Open        string `json:"open,omitempty"`
	Close       string `json:"close,omitempty"`
	Last        string `json:"last,omitempty"`
	Change      string `json:"change,omitempty"`
	Percentage  string `json:"percentage,omitempty"`
	Average     string `json:"average,omitempty"`
	BaseVolume  string `json:"baseVolume,omitempty"`
	QuoteVolume string `json:"quoteVolume,omitempty"`
	Info        Raw    `json:"info,omitempty"`
}

// BookLevel is one price level of an order book.
type BookLevel struct {
	Price  string `json:"price"`
	Amount string `json:"amount"`
}

// OrderBook is a depth snapshot: bids sorted descending, asks ascending.
type OrderBook struct {
	Symbol    string      `json:"symbol"`
	Timestamp int64       `json:"timestamp,omitempty"`
	Datetime  string      `json:"datetime,omitempty"`
	Nonce     int64       `json:"nonce,omitempty"`
	Bids      []BookLevel `json:"bids"`
	Asks      []BookLevel `json:"asks"`
}

// OHLCV is one candlestick: open time in milliseconds plus the four prices
// and base volume as decimal strings.
type OHLCV struct {
	Timestamp int64  `json:"timestamp"`
	Open      string `json:"open"`
	High      string `json:"high"`
	Low       string `json:"low"`
	Close     string `json:"close"`
	Volume    string `json:"volume"`
}

// Order is the unified view of an exchange order. Filled+Remaining equals
// Amount whenever both sides are known; Cost and Average are derived from
// fills when the venue does not report them directly.
type Order struct {
	ID                 string      `json:"id"`
	ClientOrderID      string      `json:"clientOrderId,omitempty"`
	Timestamp          int64       `json:"timestamp,omitempty"`
	Datetime           string      `json:"datetime,omitempty"`
	LastTradeTimestamp int64       `json:"lastTradeTimestamp,omitempty"`
	Symbol             string      `json:"symbol"`
	Type               OrderType   `json:"type,omitempty"`
	TimeInForce        string      `json:"timeInForce,omitempty"`
	PostOnly           bool        `json:"postOnly,omitempty"`
	Side               OrderSide   `json:"side,omitempty"`
	Price              string      `json:"price,omitempty"`
	TriggerPrice       string      `json:"triggerPrice,omitempty"`
	Amount             string      `json:"amount,omitempty"`
	Filled             string      `json:"filled,omitempty"`
	Remaining          string      `json:"remaining,omitempty"`
	Cost               string      `json:"cost,omitempty"`
	Average            string      `json:"average,omitempty"`
	Status             OrderStatus `json:"status,omitempty"`
	Fee                *Fee        `json:"fee,omitempty"`
	Trades             []Trade     `json:"trades,omitempty"`
	ReduceOnly         bool        `json:"reduceOnly,omitempty"`
	Info               Raw         `json:"info,omitempty"`
}

// Trade is one fill, public or private.
type Trade struct {
	ID           string       `json:"id"`
	Timestamp    int64        `json:"timestamp,omitempty"`
	Datetime     string       `json:"datetime,omitempty"`
	Symbol       string       `json:"symbol"`
	Order        string       `json:"order,omitempty"`
	Type         OrderType    `json:"type,omitempty"`
	Side         OrderSide    `json:"side,omitempty"`
	TakerOrMaker TakerOrMaker `json:"takerOrMaker,omitempty"`
	Price        string       `json:"price,omitempty"`
	Amount       string       `json:"amount,omitempty"`
	Cost         string       `json:"cost,omitempty"`
	Fee          *Fee         `json:"fee,omitempty"`
	Info         Raw          `json:"info,omitempty"`
}

// Transaction is a deposit or withdrawal. Amount is always non-negative;
// direction is carried by Type alone, never by sign.
type Transaction struct {
	ID          string            `json:"id"`
	TxID        string            `json:"txid,omitempty"`
	Timestamp   int64             `json:"timestamp,omitempty"`
	Datetime    string            `json:"datetime,omitempty"`
	Network     string            `json:"network,omitempty"`
	Address     string            `json:"address,omitempty"`
	AddressFrom string            `json:"addressFrom,omitempty"`
	AddressTo   string            `json:"addressTo,omitempty"`
	Tag         string            `json:"tag,omitempty"`
	TagFrom     string            `json:"tagFrom,omitempty"`
	TagTo       string            `json:"tagTo,omitempty"`
	Type        TransactionType   `json:"type,omitempty"`
	Amount      string            `json:"amount,omitempty"`
	Currency    string            `json:"currency,omitempty"`
	Status      TransactionStatus `json:"status,omitempty"`
	Updated     int64             `json:"updated,omitempty"`
	Fee         *Fee              `json:"fee,omitempty"`
	Info        Raw               `json:"info,omitempty"`
}

// Transfer moves funds between accounts of the same user (e.g. spot to
// margin) without leaving the venue.
type Transfer struct {
	ID          string `json:"id"`
	Timestamp   int64  `json:"timestamp,omitempty"`
	Datetime    string `json:"datetime,omitempty"`
	Currency    string `json:"currency,omitempty"`
	Amount      string `json:"amount,omitempty"`
	FromAccount string `json:"fromAccount,omitempty"`
	ToAccount   string `json:"toAccount,omitempty"`
	Status      string `json:"status,omitempty"`
	Info        Raw    `json:"info,omitempty"`
}

// Balance holds the three views of one currency's funds. The invariant
// total == free + used is enforced at construction: a missing member is
// computed from the other two rather than trusted independently.
type Balance struct {
	Free  string `json:"free,omitempty"`
	Used  string `json:"used,omitempty"`
	Total string `json:"total,omitempty"`
}

// Balances maps currency codes to per-currency balances, with the raw
// payload preserved under Info.
type Balances struct {
	Timestamp int64              `json:"timestamp,omitempty"`
	Datetime  string             `json:"datetime,omitempty"`
	Accounts  map[string]Balance `json:"accounts"`
	Info      Raw                `json:"info,omitempty"`
}

// DepositAddress is a funding address for one currency on one network.
type DepositAddress struct {
	Currency string `json:"currency"`
	Network  string `json:"network,omitempty"`
	Address  string `json:"address"`
	Tag      string `json:"tag,omitempty"`
	Info     Raw    `json:"info,omitempty"`
}

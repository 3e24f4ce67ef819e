package core

// MarketType represents the type of trading market on an exchange.
type MarketType string

// Market type constants define the available trading market categories.
const (
	// MarketTypeSpot indicates spot trading where assets are exchanged immediately.
	MarketTypeSpot MarketType = "spot"
	// MarketTypeMargin indicates spot trading on borrowed funds.
	MarketTypeMargin MarketType = "margin"
	// MarketTypeSwap indicates perpetual contracts with no expiry.
	MarketTypeSwap MarketType = "swap"
	// MarketTypeFuture indicates dated futures contracts.
	MarketTypeFuture MarketType = "future"
	// MarketTypeOption indicates options contracts.
	MarketTypeOption MarketType = "option"
)

// Valid reports whether t is one of the known market types.
func (t MarketType) Valid() bool {
	switch t {
	case MarketTypeSpot, MarketTypeMargin, MarketTypeSwap, MarketTypeFuture, MarketTypeOption:
		return true
	}
	return false
}

// Contract reports whether t is a derivative market type.
func (t MarketType) Contract() bool {
	return t == MarketTypeSwap || t == MarketTypeFuture || t == MarketTypeOption
}

// SubType distinguishes linear (stable-settled) from inverse (coin-settled)
// contract families. Empty means not applicable (spot/margin).
type SubType string

// Contract sub-type constants.
const (
	// SubTypeLinear settles in the quote currency.
	SubTypeLinear SubType = "linear"
	// SubTypeInverse settles in the base currency.
	SubTypeInverse SubType = "inverse"
)

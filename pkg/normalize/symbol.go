package normalize

import (
	"time"

	"github.com/Gsuz/ccxt/pkg/core"
)

// Symbol derives the unified symbol for a market. Spot and margin markets
// are "BASE/QUOTE"; contracts append the settle currency ("BASE/QUOTE:SETTLE"),
// dated futures an expiry suffix ("BASE/QUOTE:SETTLE-YYMMDD") and options the
// strike and call/put side ("BASE/QUOTE:SETTLE-YYMMDD-STRIKE-C").
func Symbol(base, quote, settle string, t core.MarketType, expiry int64, strike, optionType string) string {
	s := base + "/" + quote
	if !t.Contract() || settle == "" {
		return s
	}
	s += ":" + settle
	if expiry > 0 && (t == core.MarketTypeFuture || t == core.MarketTypeOption) {
		s += "-" + time.UnixMilli(expiry).UTC().Format("060102")
	}
	if t == core.MarketTypeOption && strike != "" {
		side := "C"
		if len(optionType) > 0 && (optionType[0] == 'p' || optionType[0] == 'P') {
			side = "P"
		}
		s += "-" + strike + "-" + side
	}
	return s
}

// MarketFlags fills the per-type boolean flags and the contract/linear/
// inverse markers of a market from its Type, Settle and Base. It leaves
// explicitly-set Linear/Inverse pointers alone.
func MarketFlags(m *core.Market) {
	m.Spot = m.Type == core.MarketTypeSpot || m.Type == core.MarketTypeMargin
	m.Margin = m.Type == core.MarketTypeMargin
	m.Swap = m.Type == core.MarketTypeSwap
	m.Future = m.Type == core.MarketTypeFuture
	m.Option = m.Type == core.MarketTypeOption
	m.Contract = m.Type.Contract()

	if m.Contract && m.Linear == nil && m.Inverse == nil && m.Settle != "" {
		linear := m.Settle != m.Base
		inverse := !linear
		m.Linear = &linear
		m.Inverse = &inverse
	}
}

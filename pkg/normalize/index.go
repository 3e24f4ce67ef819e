package normalize

import (
	"strings"

	"github.com/Gsuz/ccxt/pkg/core"
)

// Index is the read-only lookup over one exchange's loaded market and
// currency metadata. A Client builds a fresh Index on every market reload
// and swaps it in atomically, so an Index is never mutated after
// construction and is safe for concurrent readers.
type Index struct {
	bySymbol   map[string]*core.Market
	byID       map[string]*core.Market
	currencies map[string]*core.Currency
	// aliases substitutes exchange-specific quirky tickers (e.g. "XBT")
	// with canonical codes before any currency lookup.
	aliases map[string]string
}

// NewIndex builds an Index from loaded markets and currencies. The alias
// table maps exchange-native tickers to canonical uppercase codes and may be
// nil.
func NewIndex(markets []*core.Market, currencies []*core.Currency, aliases map[string]string) *Index {
	x := &Index{
		bySymbol:   make(map[string]*core.Market, len(markets)),
		byID:       make(map[string]*core.Market, len(markets)),
		currencies: make(map[string]*core.Currency, len(currencies)),
		aliases:    aliases,
	}
	for _, m := range markets {
		x.bySymbol[m.Symbol] = m
		x.byID[m.ID] = m
	}
	for _, c := range currencies {
		x.currencies[c.Code] = c
	}
	return x
}

// Markets returns the unified-symbol market table.
func (x *Index) Markets() map[string]*core.Market {
	return x.bySymbol
}

// Currencies returns the currency table keyed by canonical code.
func (x *Index) Currencies() map[string]*core.Currency {
	return x.currencies
}

// Market resolves a unified symbol strictly, failing with BadSymbol when the
// symbol is not in the loaded metadata. Outbound request dispatch uses this
// form: guessing a venue identifier for an unknown symbol would route the
// order to the wrong instrument.
func (x *Index) Market(exchange, symbol string) (*core.Market, error) {
	if m, ok := x.bySymbol[symbol]; ok {
		return m, nil
	}
	return nil, core.NewError(exchange, core.KindBadSymbol, 0, "unknown symbol "+symbol)
}

// Currency resolves a canonical code strictly.
func (x *Index) Currency(exchange, code string) (*core.Currency, error) {
	if c, ok := x.currencies[code]; ok {
		return c, nil
	}
	return nil, core.NewError(exchange, core.KindBadSymbol, 0, "unknown currency "+code)
}

// SafeMarket resolves an exchange-native market id on the inbound path,
// synthesizing a best-effort record when the id is unrecognized. delimiter,
// when non-empty, splits an unknown id into base and quote ("BTC-USDT" with
// delimiter "-"). One unlisted instrument in a batch response must not break
// the whole batch, so this never fails; the trade-off is that a genuinely
// corrupt id also comes back looking like a market.
func (x *Index) SafeMarket(id, delimiter string) *core.Market {
	if id == "" {
		return &core.Market{}
	}
	if m, ok := x.byID[id]; ok {
		return m
	}
	m := &core.Market{ID: id, Symbol: id}
	if delimiter != "" {
		if parts := strings.Split(id, delimiter); len(parts) == 2 && parts[0] != "" && parts[1] != "" {
			m.BaseID = parts[0]
			m.QuoteID = parts[1]
			m.Base = x.SafeCurrencyCode(parts[0])
			m.Quote = x.SafeCurrencyCode(parts[1])
			m.Symbol = m.Base + "/" + m.Quote
		}
	}
	return m
}

// SafeSymbol resolves a native market id to its unified symbol, falling back
// to the id itself when unrecognized.
func (x *Index) SafeSymbol(id, delimiter string) string {
	return x.SafeMarket(id, delimiter).Symbol
}

// SafeCurrencyCode canonicalizes an exchange-native currency id: alias
// substitution first, then uppercase. Unknown ids come back uppercased
// rather than failing.
func (x *Index) SafeCurrencyCode(id string) string {
	if id == "" {
		return ""
	}
	upper := strings.ToUpper(id)
	if canonical, ok := x.aliases[upper]; ok {
		return canonical
	}
	if c, ok := x.currencies[upper]; ok {
		return c.Code
	}
	return upper
}

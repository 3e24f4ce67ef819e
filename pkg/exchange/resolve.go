package exchange

import "github.com/Gsuz/ccxt/pkg/core"

// ResolveMarketType decides which endpoint family a unified call routes to.
// The per-call options win over the configured defaults; an absent sub-type
// on a contract call defaults to linear. Resolution is idempotent and never
// guesses: a type/sub-type combination the adapter has not declared in
// supported yields NotSupported instead of silently falling through to the
// wrong endpoint family.
func ResolveMarketType(exchange string, o *Options, cfg *core.Config, supported map[core.MarketType]bool) (core.MarketType, core.SubType, error) {
	t := o.Type
	if t == "" {
		t = cfg.DefaultType
	}
	if t == "" {
		t = core.MarketTypeSpot
	}
	if !t.Valid() {
		return "", "", core.NotSupported(exchange, "market type "+string(t))
	}
	if !supported[t] {
		return "", "", core.NotSupported(exchange, string(t)+" markets")
	}

	sub := o.SubType
	if sub == "" {
		sub = cfg.DefaultSubType
	}
	if !t.Contract() {
		// Sub-types only apply to contracts; an explicit one on a spot call
		// is a caller mistake, not something to route around.
		if o.SubType != "" {
			return "", "", core.NotSupported(exchange, string(o.SubType)+" "+string(t)+" markets")
		}
		return t, "", nil
	}
	if sub == "" {
		sub = core.SubTypeLinear
	}
	if sub != core.SubTypeLinear && sub != core.SubTypeInverse {
		return "", "", core.NotSupported(exchange, "contract sub-type "+string(sub))
	}
	return t, sub, nil
}

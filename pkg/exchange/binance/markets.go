package binance

import (
	"context"
	"net/http"
	"strings"

	"github.com/Gsuz/ccxt/pkg/core"
	"github.com/Gsuz/ccxt/pkg/normalize"
	"github.com/Gsuz/ccxt/pkg/precision"
	"github.com/Gsuz/ccxt/pkg/safe"
)

// FetchMarkets retrieves the spot instrument table from /api/v3/exchangeInfo.
// Binance declares precision as filter tick/step increments, so markets carry
// tick-size precision strings.
func (b *Binance) FetchMarkets(ctx context.Context) ([]*core.Market, error) {
	req := core.NewRequest(http.MethodGet, "/api/v3/exchangeInfo").SetCost(20)
	resp, err := b.client.Call(ctx, req)
	if err != nil {
		return nil, err
	}
	body, err := b.object(resp)
	if err != nil {
		return nil, err
	}

	symbols := safe.List(body, "symbols")
	markets := make([]*core.Market, 0, len(symbols))
	for _, entry := range symbols {
		raw, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		if m := b.parseMarket(raw); m != nil {
			markets = append(markets, m)
		}
	}
	return markets, nil
}

func (b *Binance) parseMarket(raw core.Raw) *core.Market {
	id := safe.String(raw, "symbol", "")
	baseID := safe.String(raw, "baseAsset", "")
	quoteID := safe.String(raw, "quoteAsset", "")
	if id == "" || baseID == "" || quoteID == "" {
		return nil
	}

	base := strings.ToUpper(baseID)
	quote := strings.ToUpper(quoteID)
	if canonical, ok := currencyAliases[base]; ok {
		base = canonical
	}
	if canonical, ok := currencyAliases[quote]; ok {
		quote = canonical
	}

	m := &core.Market{
		ID:      id,
		Base:    base,
		Quote:   quote,
		BaseID:  baseID,
		QuoteID: quoteID,
		Type:    core.MarketTypeSpot,
		Active:  safe.String(raw, "status", "") == "TRADING",
		Info:    raw,
	}
	m.Symbol = normalize.Symbol(base, quote, "", m.Type, 0, "", "")
	normalize.MarketFlags(m)
	m.Margin = safe.Bool(raw, "isMarginTradingAllowed", false)

	for _, f := range safe.List(raw, "filters") {
		filter, ok := f.(map[string]any)
		if !ok {
			continue
		}
		switch safe.String(filter, "filterType", "") {
		case "PRICE_FILTER":
			m.Precision.Price = safe.String(filter, "tickSize", "")
			m.Limits.Price.Min = safe.String(filter, "minPrice", "")
			m.Limits.Price.Max = safe.String(filter, "maxPrice", "")
		case "LOT_SIZE":
			m.Precision.Amount = safe.String(filter, "stepSize", "")
			m.Limits.Amount.Min = safe.String(filter, "minQty", "")
			m.Limits.Amount.Max = safe.String(filter, "maxQty", "")
		case "NOTIONAL", "MIN_NOTIONAL":
			m.Limits.Cost.Min = safe.String(filter, "minNotional", "")
		}
	}
	return m
}

// FetchCurrencies retrieves the asset and network table. The endpoint is
// signed even though it carries no account data.
func (b *Binance) FetchCurrencies(ctx context.Context) ([]*core.Currency, error) {
	req := core.NewRequest(http.MethodGet, "/sapi/v1/capital/config/getall").SetCost(10)
	if err := b.sign(req); err != nil {
		return nil, err
	}
	resp, err := b.client.Call(ctx, req)
	if err != nil {
		return nil, err
	}
	entries, err := b.array(resp)
	if err != nil {
		return nil, err
	}

	currencies := make([]*core.Currency, 0, len(entries))
	for _, entry := range entries {
		raw, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		currencies = append(currencies, b.parseCurrency(raw))
	}
	return currencies, nil
}

func (b *Binance) parseCurrency(raw core.Raw) *core.Currency {
	id := safe.String(raw, "coin", "")
	code := strings.ToUpper(id)
	if canonical, ok := currencyAliases[code]; ok {
		code = canonical
	}

	networks := make(map[string]core.Network)
	for _, n := range safe.List(raw, "networkList") {
		nraw, ok := n.(map[string]any)
		if !ok {
			continue
		}
		netID := safe.String(nraw, "network", "")
		network := core.Network{
			ID:       netID,
			Network:  netID,
			Deposit:  safe.Bool(nraw, "depositEnable", false),
			Withdraw: safe.Bool(nraw, "withdrawEnable", false),
			Fee:      safe.String(nraw, "withdrawFee", ""),
			Info:     nraw,
		}
		network.Active = network.Deposit || network.Withdraw
		network.Limits.Amount.Min = safe.String(nraw, "withdrawMin", "")
		network.Limits.Amount.Max = safe.String(nraw, "withdrawMax", "")
		networks[netID] = network
	}

	return normalize.Currency(core.Raw{
		"id":       id,
		"code":     code,
		"name":     safe.String(raw, "name", ""),
		"deposit":  safe.Bool(raw, "depositAllEnable", false),
		"withdraw": safe.Bool(raw, "withdrawAllEnable", false),
		"active":   safe.Bool(raw, "trading", false),
		"info":     raw,
	}, networks)
}

// priceToPrecision snaps a price onto the market's tick grid, rounding to
// the nearest tick.
func (b *Binance) priceToPrecision(m *core.Market, value string) string {
	if m.Precision.Price == "" {
		return value
	}
	out, err := precision.Convert(value, precision.Round, m.Precision.Price, precision.TickSize, precision.NoPadding)
	if err != nil {
		return value
	}
	return out
}

// amountToPrecision snaps an amount onto the lot-size grid, truncating so
// the order never exceeds the funds the caller sized it for.
func (b *Binance) amountToPrecision(m *core.Market, value string) string {
	if m.Precision.Amount == "" {
		return value
	}
	out, err := precision.Convert(value, precision.Truncate, m.Precision.Amount, precision.TickSize, precision.NoPadding)
	if err != nil {
		return value
	}
	return out
}

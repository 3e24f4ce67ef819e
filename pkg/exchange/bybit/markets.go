package bybit

import (
	"context"
	"net/http"
	"strings"

	"github.com/Gsuz/ccxt/pkg/core"
	"github.com/Gsuz/ccxt/pkg/normalize"
	"github.com/Gsuz/ccxt/pkg/precision"
	"github.com/Gsuz/ccxt/pkg/safe"
)

// FetchMarkets retrieves the instrument tables for every supported
// category. One unified list covers spot, linear and inverse so symbol
// lookups never depend on the session's default type.
func (b *Bybit) FetchMarkets(ctx context.Context) ([]*core.Market, error) {
	var markets []*core.Market
	for _, category := range marketCategories {
		req := core.NewRequest(http.MethodGet, "/v5/market/instruments-info").SetCost(1).
			SetQuery("category", category).
			SetQuery("limit", 1000)
		resp, err := b.client.Call(ctx, req)
		if err != nil {
			return nil, err
		}
		entries, err := b.rows(resp)
		if err != nil {
			return nil, err
		}
		for _, entry := range entries {
			raw, ok := entry.(map[string]any)
			if !ok {
				continue
			}
			if m := b.parseMarket(raw, category); m != nil {
				markets = append(markets, m)
			}
		}
	}
	return markets, nil
}

func (b *Bybit) parseMarket(raw core.Raw, category string) *core.Market {
	id := safe.String(raw, "symbol", "")
	baseID := safe.String(raw, "baseCoin", "")
	quoteID := safe.String(raw, "quoteCoin", "")
	if id == "" || baseID == "" || quoteID == "" {
		return nil
	}

	base := strings.ToUpper(baseID)
	quote := strings.ToUpper(quoteID)

	m := &core.Market{
		ID:      id,
		Base:    base,
		Quote:   quote,
		BaseID:  baseID,
		QuoteID: quoteID,
		Active:  safe.String(raw, "status", "") == "Trading",
		Info:    raw,
	}

	lot := safe.Map(raw, "lotSizeFilter")
	price := safe.Map(raw, "priceFilter")
	m.Precision.Price = safe.String(price, "tickSize", "")
	m.Limits.Price.Min = safe.String(price, "minPrice", "")
	m.Limits.Price.Max = safe.String(price, "maxPrice", "")

	switch category {
	case "spot":
		m.Type = core.MarketTypeSpot
		m.Precision.Amount = safe.String(lot, "basePrecision", "")
		m.Limits.Amount.Min = safe.String(lot, "minOrderQty", "")
		m.Limits.Amount.Max = safe.String(lot, "maxOrderQty", "")
		m.Limits.Cost.Min = safe.String(lot, "minOrderAmt", "")
		m.Symbol = normalize.Symbol(base, quote, "", m.Type, 0, "", "")
	default:
		settleID := safe.String(raw, "settleCoin", "")
		settle := strings.ToUpper(settleID)
		expiry := safe.Integer(raw, "deliveryTime", 0)
		contractType := safe.String(raw, "contractType", "")
		if expiry > 0 && strings.Contains(contractType, "Futures") {
			m.Type = core.MarketTypeFuture
			m.Expiry = expiry
		} else {
			m.Type = core.MarketTypeSwap
		}
		m.Settle = settle
		m.SettleID = settleID
		m.ContractSize = safe.String(lot, "qtyStep", "")
		m.Precision.Amount = safe.String(lot, "qtyStep", "")
		m.Limits.Amount.Min = safe.String(lot, "minOrderQty", "")
		m.Limits.Amount.Max = safe.String(lot, "maxOrderQty", "")
		m.Symbol = normalize.Symbol(base, quote, settle, m.Type, m.Expiry, "", "")
	}

	normalize.MarketFlags(m)
	if m.Type == core.MarketTypeSpot {
		m.Margin = safe.String(raw, "marginTrading", "none") != "none"
	}
	return m
}

// FetchCurrencies retrieves the coin and chain table. The endpoint is
// signed even though it carries no account data.
func (b *Bybit) FetchCurrencies(ctx context.Context) ([]*core.Currency, error) {
	req := core.NewRequest(http.MethodGet, "/v5/asset/coin/query-info").SetCost(1)
	if err := b.sign(req); err != nil {
		return nil, err
	}
	resp, err := b.client.Call(ctx, req)
	if err != nil {
		return nil, err
	}
	result, err := b.result(resp)
	if err != nil {
		return nil, err
	}

	entries := safe.List(result, "rows")
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

func (b *Bybit) parseCurrency(raw core.Raw) *core.Currency {
	id := safe.String(raw, "coin", "")
	code := strings.ToUpper(id)

	networks := make(map[string]core.Network)
	for _, n := range safe.List(raw, "chains") {
		nraw, ok := n.(map[string]any)
		if !ok {
			continue
		}
		chain := safe.String(nraw, "chain", "")
		network := core.Network{
			ID:       chain,
			Network:  chain,
			Deposit:  safe.String(nraw, "chainDeposit", "") == "1",
			Withdraw: safe.String(nraw, "chainWithdraw", "") == "1",
			Fee:      safe.String(nraw, "withdrawFee", ""),
			Info:     nraw,
		}
		network.Active = network.Deposit || network.Withdraw
		network.Limits.Amount.Min = safe.String(nraw, "withdrawMin", "")
		networks[chain] = network
	}

	return normalize.Currency(core.Raw{
		"id":   id,
		"code": code,
		"name": safe.String(raw, "name", ""),
		"info": raw,
	}, networks)
}

func (b *Bybit) priceToPrecision(m *core.Market, value string) string {
	if m.Precision.Price == "" {
		return value
	}
	out, err := precision.Convert(value, precision.Round, m.Precision.Price, precision.TickSize, precision.NoPadding)
	if err != nil {
		return value
	}
	return out
}

func (b *Bybit) amountToPrecision(m *core.Market, value string) string {
	if m.Precision.Amount == "" {
		return value
	}
	out, err := precision.Convert(value, precision.Truncate, m.Precision.Amount, precision.TickSize, precision.NoPadding)
	if err != nil {
		return value
	}
	return out
}

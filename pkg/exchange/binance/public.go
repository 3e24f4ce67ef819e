package binance

import (
	"context"
	"net/http"
	"strings"

	"github.com/Gsuz/ccxt/pkg/core"
	"github.com/Gsuz/ccxt/pkg/exchange"
	"github.com/Gsuz/ccxt/pkg/normalize"
	"github.com/Gsuz/ccxt/pkg/safe"
)

// Fetching every ticker in one call is charged a flat surcharge.
var tickerCost = exchange.CostRule{Base: 1, NoSymbol: 40}

// Depth weight grows with the requested page size.
var depthCost = exchange.CostRule{
	Base: 5,
	ByLimit: []exchange.CostTier{
		{UpTo: 100, Cost: 5},
		{UpTo: 500, Cost: 25},
		{UpTo: 1000, Cost: 50},
		{UpTo: 5000, Cost: 250},
	},
}

// FetchTicker retrieves the 24h statistics for one symbol.
func (b *Binance) FetchTicker(ctx context.Context, symbol string, opts ...exchange.Option) (*core.Ticker, error) {
	if _, err := b.LoadMarkets(ctx, false); err != nil {
		return nil, err
	}
	market, err := b.client.Market(symbol)
	if err != nil {
		return nil, err
	}

	req := core.NewRequest(http.MethodGet, "/api/v3/ticker/24hr").
		SetQuery("symbol", market.ID).
		SetCost(tickerCost.Compute(true, 0))
	req.SetQueryParams(exchange.Apply(opts...).Params)

	resp, err := b.client.Call(ctx, req)
	if err != nil {
		return nil, err
	}
	body, err := b.object(resp)
	if err != nil {
		return nil, err
	}
	return b.parseTicker(body, market), nil
}

// FetchTickers retrieves 24h statistics for several symbols, or for every
// market when symbols is empty — the venue charges the full-table weight
// for that form.
func (b *Binance) FetchTickers(ctx context.Context, symbols []string, opts ...exchange.Option) (map[string]*core.Ticker, error) {
	if _, err := b.LoadMarkets(ctx, false); err != nil {
		return nil, err
	}
	index, err := b.client.MarketIndex()
	if err != nil {
		return nil, err
	}

	req := core.NewRequest(http.MethodGet, "/api/v3/ticker/24hr").
		SetCost(tickerCost.Compute(len(symbols) > 0, 0))
	if len(symbols) > 0 {
		ids := `[`
		for i, s := range symbols {
			m, err := index.Market(b.Name(), s)
			if err != nil {
				return nil, err
			}
			if i > 0 {
				ids += `,`
			}
			ids += `"` + m.ID + `"`
		}
		ids += `]`
		req.SetQuery("symbols", ids)
	}

	resp, err := b.client.Call(ctx, req)
	if err != nil {
		return nil, err
	}
	entries, err := b.array(resp)
	if err != nil {
		return nil, err
	}

	tickers := make(map[string]*core.Ticker, len(entries))
	for _, entry := range entries {
		raw, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		market := index.SafeMarket(safe.String(raw, "symbol", ""), "")
		t := b.parseTicker(raw, market)
		tickers[t.Symbol] = t
	}
	return tickers, nil
}

func (b *Binance) parseTicker(raw core.Raw, market *core.Market) *core.Ticker {
	timestamp := safe.Integer(raw, "closeTime", 0)
	return normalize.Ticker(core.Raw{
		"symbol":      market.Symbol,
		"timestamp":   timestamp,
		"high":        safe.String(raw, "highPrice", ""),
		"low":         safe.String(raw, "lowPrice", ""),
		"bid":         safe.String(raw, "bidPrice", ""),
		"bidVolume":   safe.String(raw, "bidQty", ""),
		"ask":         safe.String(raw, "askPrice", ""),
		"askVolume":   safe.String(raw, "askQty", ""),
		"vwap":        safe.String(raw, "weightedAvgPrice", ""),
		"open":        safe.String(raw, "openPrice", ""),
		"last":        safe.String(raw, "lastPrice", ""),
		"change":      safe.String(raw, "priceChange", ""),
		"percentage":  safe.String(raw, "priceChangePercent", ""),
		"baseVolume":  safe.String(raw, "volume", ""),
		"quoteVolume": safe.String(raw, "quoteVolume", ""),
		"info":        raw,
	}, market)
}

// FetchOrderBook retrieves a depth snapshot. The rate-limit cost is tiered
// by the requested limit.
func (b *Binance) FetchOrderBook(ctx context.Context, symbol string, opts ...exchange.Option) (*core.OrderBook, error) {
	if _, err := b.LoadMarkets(ctx, false); err != nil {
		return nil, err
	}
	market, err := b.client.Market(symbol)
	if err != nil {
		return nil, err
	}
	o := exchange.Apply(opts...)

	req := core.NewRequest(http.MethodGet, "/api/v3/depth").
		SetQuery("symbol", market.ID).
		SetCost(depthCost.Compute(true, o.Limit))
	if o.Limit > 0 {
		req.SetQuery("limit", o.Limit)
	}
	req.SetQueryParams(o.Params)

	resp, err := b.client.Call(ctx, req)
	if err != nil {
		return nil, err
	}
	body, err := b.object(resp)
	if err != nil {
		return nil, err
	}

	return &core.OrderBook{
		Symbol: market.Symbol,
		Nonce:  safe.Integer(body, "lastUpdateId", 0),
		Bids:   normalize.BookSide(safe.List(body, "bids")),
		Asks:   normalize.BookSide(safe.List(body, "asks")),
	}, nil
}

// FetchTrades retrieves recent public trades for a symbol.
func (b *Binance) FetchTrades(ctx context.Context, symbol string, opts ...exchange.Option) ([]core.Trade, error) {
	if _, err := b.LoadMarkets(ctx, false); err != nil {
		return nil, err
	}
	market, err := b.client.Market(symbol)
	if err != nil {
		return nil, err
	}
	o := exchange.Apply(opts...)

	req := core.NewRequest(http.MethodGet, "/api/v3/trades").
		SetQuery("symbol", market.ID).
		SetCost(10)
	if o.Limit > 0 {
		req.SetQuery("limit", o.Limit)
	}
	req.SetQueryParams(o.Params)

	resp, err := b.client.Call(ctx, req)
	if err != nil {
		return nil, err
	}
	entries, err := b.array(resp)
	if err != nil {
		return nil, err
	}

	trades := make([]core.Trade, 0, len(entries))
	for _, entry := range entries {
		raw, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		trades = append(trades, *b.parseTrade(raw, market))
	}
	return trades, nil
}

// parseTrade handles both the public and the account trade shapes; they
// share field names where they overlap.
func (b *Binance) parseTrade(raw core.Raw, market *core.Market) *core.Trade {
	unified := core.Raw{
		"id":        safe.String2(raw, "id", "tradeId", ""),
		"order":     safe.String(raw, "orderId", ""),
		"timestamp": safe.Integer2(raw, "time", "transactTime", 0),
		"price":     safe.String(raw, "price", ""),
		"amount":    safe.String(raw, "qty", ""),
		"cost":      safe.String(raw, "quoteQty", ""),
		"info":      raw,
	}

	if _, isPrivate := raw["isBuyer"]; isPrivate {
		if safe.Bool(raw, "isBuyer", false) {
			unified["side"] = "buy"
		} else {
			unified["side"] = "sell"
		}
		if safe.Bool(raw, "isMaker", false) {
			unified["takerOrMaker"] = "maker"
		} else {
			unified["takerOrMaker"] = "taker"
		}
	} else if _, isPublic := raw["isBuyerMaker"]; isPublic {
		// The public feed reports the passive side; the aggressor is the
		// opposite.
		if safe.Bool(raw, "isBuyerMaker", false) {
			unified["side"] = "sell"
		} else {
			unified["side"] = "buy"
		}
	}

	if fee := safe.String(raw, "commission", ""); fee != "" {
		currency := ""
		if id := safe.String(raw, "commissionAsset", ""); id != "" {
			if x := b.client.Index(); x != nil {
				currency = x.SafeCurrencyCode(id)
			} else {
				currency = strings.ToUpper(id)
			}
		}
		unified["fee"] = map[string]any{"cost": fee, "currency": currency}
	}

	return normalize.Trade(unified, market)
}

// FetchOHLCV retrieves candlesticks for a symbol and timeframe.
func (b *Binance) FetchOHLCV(ctx context.Context, symbol, timeframe string, opts ...exchange.Option) ([]core.OHLCV, error) {
	if _, err := b.LoadMarkets(ctx, false); err != nil {
		return nil, err
	}
	market, err := b.client.Market(symbol)
	if err != nil {
		return nil, err
	}
	o := exchange.Apply(opts...)

	req := core.NewRequest(http.MethodGet, "/api/v3/klines").
		SetQuery("symbol", market.ID).
		SetQuery("interval", timeframe).
		SetCost(2)
	if o.Limit > 0 {
		req.SetQuery("limit", o.Limit)
	}
	if o.Since > 0 {
		req.SetQuery("startTime", o.Since)
	}
	if o.Until > 0 {
		req.SetQuery("endTime", o.Until)
	}
	req.SetQueryParams(o.Params)

	resp, err := b.client.Call(ctx, req)
	if err != nil {
		return nil, err
	}
	entries, err := b.array(resp)
	if err != nil {
		return nil, err
	}

	candles := make([]core.OHLCV, 0, len(entries))
	for _, entry := range entries {
		row, ok := entry.([]any)
		if !ok {
			continue
		}
		candles = append(candles, normalize.OHLCVRow(row))
	}
	return candles, nil
}

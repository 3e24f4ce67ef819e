package bybit

import (
	"context"
	"net/http"
	"strings"

	"github.com/Gsuz/ccxt/pkg/core"
	"github.com/Gsuz/ccxt/pkg/exchange"
	"github.com/Gsuz/ccxt/pkg/normalize"
	"github.com/Gsuz/ccxt/pkg/safe"
)

// timeframes maps unified timeframe names onto Bybit's kline intervals.
var timeframes = map[string]string{
	"1m":  "1",
	"3m":  "3",
	"5m":  "5",
	"15m": "15",
	"30m": "30",
	"1h":  "60",
	"2h":  "120",
	"4h":  "240",
	"6h":  "360",
	"12h": "720",
	"1d":  "D",
	"1w":  "W",
	"1M":  "M",
}

// FetchTicker retrieves the 24h statistics for one symbol.
func (b *Bybit) FetchTicker(ctx context.Context, symbol string, opts ...exchange.Option) (*core.Ticker, error) {
	if _, err := b.LoadMarkets(ctx, false); err != nil {
		return nil, err
	}
	market, err := b.client.Market(symbol)
	if err != nil {
		return nil, err
	}

	req := core.NewRequest(http.MethodGet, "/v5/market/tickers").SetCost(1).
		SetQuery("category", marketCategory(market)).
		SetQuery("symbol", market.ID)
	req.SetQueryParams(exchange.Apply(opts...).Params)

	resp, err := b.client.Call(ctx, req)
	if err != nil {
		return nil, err
	}
	entries, err := b.rows(resp)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, core.NewError(b.Name(), core.KindBadSymbol, 0, "no ticker for "+symbol)
	}
	raw, ok := entries[0].(map[string]any)
	if !ok {
		return nil, core.NewError(b.Name(), core.KindExchangeError, 0, "malformed ticker entry")
	}
	return b.parseTicker(raw, market), nil
}

// FetchTickers retrieves 24h statistics for several symbols, or for the
// whole resolved category when symbols is empty.
func (b *Bybit) FetchTickers(ctx context.Context, symbols []string, opts ...exchange.Option) (map[string]*core.Ticker, error) {
	if _, err := b.LoadMarkets(ctx, false); err != nil {
		return nil, err
	}
	index, err := b.client.MarketIndex()
	if err != nil {
		return nil, err
	}
	o := exchange.Apply(opts...)

	category, err := b.resolveCategory(o)
	if err != nil {
		return nil, err
	}
	wanted := make(map[string]bool, len(symbols))
	for _, s := range symbols {
		m, err := index.Market(b.Name(), s)
		if err != nil {
			return nil, err
		}
		// One category per call; the first symbol decides.
		category = marketCategory(m)
		wanted[m.Symbol] = true
	}

	req := core.NewRequest(http.MethodGet, "/v5/market/tickers").SetCost(1).
		SetQuery("category", category)
	req.SetQueryParams(o.Params)

	resp, err := b.client.Call(ctx, req)
	if err != nil {
		return nil, err
	}
	entries, err := b.rows(resp)
	if err != nil {
		return nil, err
	}

	tickers := make(map[string]*core.Ticker)
	for _, entry := range entries {
		raw, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		market := index.SafeMarket(safe.String(raw, "symbol", ""), "")
		t := b.parseTicker(raw, market)
		if len(wanted) > 0 && !wanted[t.Symbol] {
			continue
		}
		tickers[t.Symbol] = t
	}
	return tickers, nil
}

func (b *Bybit) parseTicker(raw core.Raw, market *core.Market) *core.Ticker {
	return normalize.Ticker(core.Raw{
		"symbol":      market.Symbol,
		"high":        safe.String(raw, "highPrice24h", ""),
		"low":         safe.String(raw, "lowPrice24h", ""),
		"bid":         safe.String(raw, "bid1Price", ""),
		"bidVolume":   safe.String(raw, "bid1Size", ""),
		"ask":         safe.String(raw, "ask1Price", ""),
		"askVolume":   safe.String(raw, "ask1Size", ""),
		"open":        safe.String(raw, "prevPrice24h", ""),
		"last":        safe.String(raw, "lastPrice", ""),
		"baseVolume":  safe.String(raw, "volume24h", ""),
		"quoteVolume": safe.String(raw, "turnover24h", ""),
		"info":        raw,
	}, market)
}

// FetchOrderBook retrieves a depth snapshot.
func (b *Bybit) FetchOrderBook(ctx context.Context, symbol string, opts ...exchange.Option) (*core.OrderBook, error) {
	if _, err := b.LoadMarkets(ctx, false); err != nil {
		return nil, err
	}
	market, err := b.client.Market(symbol)
	if err != nil {
		return nil, err
	}
	o := exchange.Apply(opts...)

	req := core.NewRequest(http.MethodGet, "/v5/market/orderbook").SetCost(1).
		SetQuery("category", marketCategory(market)).
		SetQuery("symbol", market.ID)
	if o.Limit > 0 {
		req.SetQuery("limit", o.Limit)
	}
	req.SetQueryParams(o.Params)

	resp, err := b.client.Call(ctx, req)
	if err != nil {
		return nil, err
	}
	result, err := b.result(resp)
	if err != nil {
		return nil, err
	}

	return &core.OrderBook{
		Symbol:    market.Symbol,
		Timestamp: safe.Integer(result, "ts", 0),
		Datetime:  normalize.ISO8601(safe.Integer(result, "ts", 0)),
		Nonce:     safe.Integer(result, "u", 0),
		Bids:      normalize.BookSide(safe.List(result, "b")),
		Asks:      normalize.BookSide(safe.List(result, "a")),
	}, nil
}

// FetchTrades retrieves recent public trades for a symbol.
func (b *Bybit) FetchTrades(ctx context.Context, symbol string, opts ...exchange.Option) ([]core.Trade, error) {
	if _, err := b.LoadMarkets(ctx, false); err != nil {
		return nil, err
	}
	market, err := b.client.Market(symbol)
	if err != nil {
		return nil, err
	}
	o := exchange.Apply(opts...)

	req := core.NewRequest(http.MethodGet, "/v5/market/recent-trade").SetCost(1).
		SetQuery("category", marketCategory(market)).
		SetQuery("symbol", market.ID)
	if o.Limit > 0 {
		req.SetQuery("limit", o.Limit)
	}
	req.SetQueryParams(o.Params)

	resp, err := b.client.Call(ctx, req)
	if err != nil {
		return nil, err
	}
	entries, err := b.rows(resp)
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

// parseTrade handles both the public feed and the account execution shapes.
func (b *Bybit) parseTrade(raw core.Raw, market *core.Market) *core.Trade {
	unified := core.Raw{
		"id":        safe.String2(raw, "execId", "id", ""),
		"order":     safe.String(raw, "orderId", ""),
		"timestamp": safe.Integer2(raw, "time", "execTime", 0),
		"side":      strings.ToLower(safe.String(raw, "side", "")),
		"price":     safe.String2(raw, "price", "execPrice", ""),
		"amount":    safe.String2(raw, "size", "execQty", ""),
		"info":      raw,
	}
	if maker, present := raw["isMaker"]; present {
		if flag, ok := maker.(bool); ok {
			if flag {
				unified["takerOrMaker"] = "maker"
			} else {
				unified["takerOrMaker"] = "taker"
			}
		}
	}
	if fee := safe.String(raw, "execFee", ""); fee != "" {
		currency := safe.String(raw, "feeCurrency", "")
		unified["fee"] = map[string]any{"cost": fee, "currency": currency}
	}
	return normalize.Trade(unified, market)
}

// FetchOHLCV retrieves candlesticks for a symbol and timeframe.
func (b *Bybit) FetchOHLCV(ctx context.Context, symbol, timeframe string, opts ...exchange.Option) ([]core.OHLCV, error) {
	if _, err := b.LoadMarkets(ctx, false); err != nil {
		return nil, err
	}
	market, err := b.client.Market(symbol)
	if err != nil {
		return nil, err
	}
	interval, ok := timeframes[timeframe]
	if !ok {
		return nil, core.NewError(b.Name(), core.KindNotSupported, 0, "unsupported timeframe "+timeframe)
	}
	o := exchange.Apply(opts...)

	req := core.NewRequest(http.MethodGet, "/v5/market/kline").SetCost(1).
		SetQuery("category", marketCategory(market)).
		SetQuery("symbol", market.ID).
		SetQuery("interval", interval)
	if o.Limit > 0 {
		req.SetQuery("limit", o.Limit)
	}
	if o.Since > 0 {
		req.SetQuery("start", o.Since)
	}
	if o.Until > 0 {
		req.SetQuery("end", o.Until)
	}
	req.SetQueryParams(o.Params)

	resp, err := b.client.Call(ctx, req)
	if err != nil {
		return nil, err
	}
	entries, err := b.rows(resp)
	if err != nil {
		return nil, err
	}

	// Rows arrive newest first; reverse into ascending time order.
	candles := make([]core.OHLCV, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		row, ok := entries[i].([]any)
		if !ok {
			continue
		}
		candles = append(candles, normalize.OHLCVRow(row))
	}
	return candles, nil
}

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

var openOrdersCost = exchange.CostRule{Base: 6, NoSymbol: 80}

// orderPath routes order-flow endpoints by market type: spot under /api/v3,
// margin under /sapi/v1/margin.
func orderPath(t core.MarketType, endpoint string) string {
	if t == core.MarketTypeMargin {
		return "/sapi/v1/margin/" + endpoint
	}
	return "/api/v3/" + endpoint
}

// FetchBalance retrieves the account balances for the resolved market type.
func (b *Binance) FetchBalance(ctx context.Context, opts ...exchange.Option) (*core.Balances, error) {
	o := exchange.Apply(opts...)
	t, err := b.resolveType(o)
	if err != nil {
		return nil, err
	}

	path, cost, listKey := "/api/v3/account", 20, "balances"
	if t == core.MarketTypeMargin {
		path, cost, listKey = "/sapi/v1/margin/account", 10, "userAssets"
	}

	req := core.NewRequest(http.MethodGet, path).SetCost(cost)
	req.SetQueryParams(o.Params)
	if err := b.sign(req); err != nil {
		return nil, err
	}
	resp, err := b.client.Call(ctx, req)
	if err != nil {
		return nil, err
	}
	body, err := b.object(resp)
	if err != nil {
		return nil, err
	}

	accounts := make(map[string]core.Raw)
	for _, entry := range safe.List(body, listKey) {
		raw, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		code := strings.ToUpper(safe.String(raw, "asset", ""))
		if canonical, ok := currencyAliases[code]; ok {
			code = canonical
		}
		accounts[code] = core.Raw{
			"free": safe.String(raw, "free", ""),
			"used": safe.String(raw, "locked", ""),
		}
	}
	return normalize.Balances(accounts, core.Raw{
		"timestamp": safe.Integer(body, "updateTime", 0),
		"info":      body,
	}), nil
}

// CreateOrder places an order. Amount and price are snapped to the market's
// lot and tick grids before signing; a post-only limit order becomes the
// venue's LIMIT_MAKER type, and a trigger price turns the order into its
// stop variant.
func (b *Binance) CreateOrder(ctx context.Context, order *exchange.OrderRequest, opts ...exchange.Option) (*core.Order, error) {
	if _, err := b.LoadMarkets(ctx, false); err != nil {
		return nil, err
	}
	market, err := b.client.Market(order.Symbol)
	if err != nil {
		return nil, err
	}
	o := exchange.Apply(opts...)
	t, err := b.resolveType(o)
	if err != nil {
		return nil, err
	}

	orderType := strings.ToUpper(string(order.Type))
	switch {
	case o.PostOnly:
		if order.Type != core.TypeLimit {
			return nil, core.NewError(b.Name(), core.KindInvalidOrder, 0, "postOnly requires a limit order")
		}
		orderType = "LIMIT_MAKER"
	case o.TriggerPrice != "":
		if order.Type == core.TypeLimit {
			orderType = "STOP_LOSS_LIMIT"
		} else {
			orderType = "STOP_LOSS"
		}
	}

	req := core.NewRequest(http.MethodPost, orderPath(t, "order")).SetCost(1).
		SetQuery("symbol", market.ID).
		SetQuery("side", strings.ToUpper(string(order.Side))).
		SetQuery("type", orderType).
		SetQuery("quantity", b.amountToPrecision(market, order.Amount))
	if order.Price != "" {
		req.SetQuery("price", b.priceToPrecision(market, order.Price))
	}
	if o.TriggerPrice != "" {
		req.SetQuery("stopPrice", b.priceToPrecision(market, o.TriggerPrice))
	}
	if orderType == "LIMIT" || orderType == "STOP_LOSS_LIMIT" {
		tif := o.TimeInForce
		if tif == "" {
			tif = "GTC"
		}
		req.SetQuery("timeInForce", tif)
	}
	if id := firstOf(order.ClientOrderID, o.ClientOrderID); id != "" {
		req.SetQuery("newClientOrderId", id)
	}
	req.SetQuery("newOrderRespType", "FULL")
	req.SetQueryParams(o.Params)

	if err := b.sign(req); err != nil {
		return nil, err
	}
	resp, err := b.client.Call(ctx, req)
	if err != nil {
		return nil, err
	}
	body, err := b.object(resp)
	if err != nil {
		return nil, err
	}
	return b.parseOrder(body, market), nil
}

// CancelOrder cancels one order by exchange id, or by client order id via
// WithClientOrderID when id is empty.
func (b *Binance) CancelOrder(ctx context.Context, id, symbol string, opts ...exchange.Option) (*core.Order, error) {
	if _, err := b.LoadMarkets(ctx, false); err != nil {
		return nil, err
	}
	market, err := b.client.Market(symbol)
	if err != nil {
		return nil, err
	}
	o := exchange.Apply(opts...)
	t, err := b.resolveType(o)
	if err != nil {
		return nil, err
	}

	req := core.NewRequest(http.MethodDelete, orderPath(t, "order")).SetCost(1).
		SetQuery("symbol", market.ID)
	if id != "" {
		req.SetQuery("orderId", id)
	} else if o.ClientOrderID != "" {
		req.SetQuery("origClientOrderId", o.ClientOrderID)
	} else {
		return nil, core.NewError(b.Name(), core.KindInvalidOrder, 0, "cancel requires an order id or client order id")
	}
	req.SetQueryParams(o.Params)

	if err := b.sign(req); err != nil {
		return nil, err
	}
	resp, err := b.client.Call(ctx, req)
	if err != nil {
		return nil, err
	}
	body, err := b.object(resp)
	if err != nil {
		return nil, err
	}
	return b.parseOrder(body, market), nil
}

// CancelAllOrders cancels every open order on one symbol.
func (b *Binance) CancelAllOrders(ctx context.Context, symbol string, opts ...exchange.Option) ([]core.Order, error) {
	if _, err := b.LoadMarkets(ctx, false); err != nil {
		return nil, err
	}
	market, err := b.client.Market(symbol)
	if err != nil {
		return nil, err
	}
	o := exchange.Apply(opts...)
	t, err := b.resolveType(o)
	if err != nil {
		return nil, err
	}

	req := core.NewRequest(http.MethodDelete, orderPath(t, "openOrders")).SetCost(1).
		SetQuery("symbol", market.ID)
	req.SetQueryParams(o.Params)

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
	return b.parseOrders(entries, market), nil
}

// FetchOrder retrieves one order by exchange id, or by client order id via
// WithClientOrderID when id is empty.
func (b *Binance) FetchOrder(ctx context.Context, id, symbol string, opts ...exchange.Option) (*core.Order, error) {
	if _, err := b.LoadMarkets(ctx, false); err != nil {
		return nil, err
	}
	market, err := b.client.Market(symbol)
	if err != nil {
		return nil, err
	}
	o := exchange.Apply(opts...)
	t, err := b.resolveType(o)
	if err != nil {
		return nil, err
	}

	req := core.NewRequest(http.MethodGet, orderPath(t, "order")).SetCost(4).
		SetQuery("symbol", market.ID)
	if id != "" {
		req.SetQuery("orderId", id)
	} else if o.ClientOrderID != "" {
		req.SetQuery("origClientOrderId", o.ClientOrderID)
	} else {
		return nil, core.NewError(b.Name(), core.KindInvalidOrder, 0, "fetch requires an order id or client order id")
	}
	req.SetQueryParams(o.Params)

	if err := b.sign(req); err != nil {
		return nil, err
	}
	resp, err := b.client.Call(ctx, req)
	if err != nil {
		return nil, err
	}
	body, err := b.object(resp)
	if err != nil {
		return nil, err
	}
	return b.parseOrder(body, market), nil
}

// FetchOrders retrieves the order history for one symbol, open and closed.
func (b *Binance) FetchOrders(ctx context.Context, symbol string, opts ...exchange.Option) ([]core.Order, error) {
	if _, err := b.LoadMarkets(ctx, false); err != nil {
		return nil, err
	}
	market, err := b.client.Market(symbol)
	if err != nil {
		return nil, err
	}
	o := exchange.Apply(opts...)
	t, err := b.resolveType(o)
	if err != nil {
		return nil, err
	}

	req := core.NewRequest(http.MethodGet, orderPath(t, "allOrders")).SetCost(20).
		SetQuery("symbol", market.ID)
	if o.Since > 0 {
		req.SetQuery("startTime", o.Since)
	}
	if o.Until > 0 {
		req.SetQuery("endTime", o.Until)
	}
	if o.Limit > 0 {
		req.SetQuery("limit", o.Limit)
	}
	req.SetQueryParams(o.Params)

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
	return b.parseOrders(entries, market), nil
}

// FetchOpenOrders retrieves the live orders. Omitting the symbol queries
// every market and is charged the venue's full-scan weight.
func (b *Binance) FetchOpenOrders(ctx context.Context, symbol string, opts ...exchange.Option) ([]core.Order, error) {
	if _, err := b.LoadMarkets(ctx, false); err != nil {
		return nil, err
	}
	o := exchange.Apply(opts...)
	t, err := b.resolveType(o)
	if err != nil {
		return nil, err
	}

	var market *core.Market
	req := core.NewRequest(http.MethodGet, orderPath(t, "openOrders")).
		SetCost(openOrdersCost.Compute(symbol != "", 0))
	if symbol != "" {
		market, err = b.client.Market(symbol)
		if err != nil {
			return nil, err
		}
		req.SetQuery("symbol", market.ID)
	}
	req.SetQueryParams(o.Params)

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
	return b.parseOrders(entries, market), nil
}

// FetchClosedOrders is emulated: Binance has no closed-only endpoint, so
// the order history is fetched and filtered down to terminal statuses.
func (b *Binance) FetchClosedOrders(ctx context.Context, symbol string, opts ...exchange.Option) ([]core.Order, error) {
	orders, err := b.FetchOrders(ctx, symbol, opts...)
	if err != nil {
		return nil, err
	}
	closed := orders[:0]
	for _, order := range orders {
		if order.Status.IsTerminal() {
			closed = append(closed, order)
		}
	}
	return closed, nil
}

// FetchMyTrades retrieves the account's trade fills for one symbol.
func (b *Binance) FetchMyTrades(ctx context.Context, symbol string, opts ...exchange.Option) ([]core.Trade, error) {
	if _, err := b.LoadMarkets(ctx, false); err != nil {
		return nil, err
	}
	market, err := b.client.Market(symbol)
	if err != nil {
		return nil, err
	}
	o := exchange.Apply(opts...)
	t, err := b.resolveType(o)
	if err != nil {
		return nil, err
	}

	req := core.NewRequest(http.MethodGet, orderPath(t, "myTrades")).SetCost(20).
		SetQuery("symbol", market.ID)
	if o.Since > 0 {
		req.SetQuery("startTime", o.Since)
	}
	if o.Limit > 0 {
		req.SetQuery("limit", o.Limit)
	}
	req.SetQueryParams(o.Params)

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

func (b *Binance) parseOrders(entries []any, market *core.Market) []core.Order {
	orders := make([]core.Order, 0, len(entries))
	for _, entry := range entries {
		raw, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		m := market
		if m == nil {
			m = b.safeMarket(safe.String(raw, "symbol", ""))
		}
		orders = append(orders, *b.parseOrder(raw, m))
	}
	return orders
}

func (b *Binance) parseOrder(raw core.Raw, market *core.Market) *core.Order {
	venueType := safe.String(raw, "type", "")
	unified := core.Raw{
		"id":                 safe.String(raw, "orderId", ""),
		"clientOrderId":      safe.String2(raw, "clientOrderId", "origClientOrderId", ""),
		"timestamp":          safe.Integer2(raw, "time", "transactTime", 0),
		"lastTradeTimestamp": safe.Integer(raw, "updateTime", 0),
		"status":             string(b.statuses.Parse(safe.String(raw, "status", ""))),
		"type":               venueType,
		"side":               safe.String(raw, "side", ""),
		"price":              safe.String(raw, "price", ""),
		"triggerPrice":       safe.String(raw, "stopPrice", ""),
		"amount":             safe.String(raw, "origQty", ""),
		"filled":             safe.String(raw, "executedQty", ""),
		"cost":               safe.String(raw, "cummulativeQuoteQty", ""),
		"timeInForce":        safe.String(raw, "timeInForce", ""),
		"postOnly":           venueType == "LIMIT_MAKER",
		"info":               raw,
	}
	switch venueType {
	case "LIMIT_MAKER", "STOP_LOSS_LIMIT", "TAKE_PROFIT_LIMIT":
		unified["type"] = "limit"
	case "STOP_LOSS", "TAKE_PROFIT":
		unified["type"] = "market"
	}

	order := normalize.Order(unified, market)
	for _, fill := range safe.List(raw, "fills") {
		fraw, ok := fill.(map[string]any)
		if !ok {
			continue
		}
		order.Trades = append(order.Trades, *b.parseTrade(fraw, market))
	}
	return order
}

// safeMarket resolves a venue symbol id without failing; unknown ids come
// back as a synthesized market so raw data is never dropped.
func (b *Binance) safeMarket(id string) *core.Market {
	if x := b.client.Index(); x != nil {
		return x.SafeMarket(id, "")
	}
	return &core.Market{ID: id, Symbol: id}
}

func firstOf(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

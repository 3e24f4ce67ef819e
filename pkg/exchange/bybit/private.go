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

// FetchBalance retrieves the unified account wallet balances.
func (b *Bybit) FetchBalance(ctx context.Context, opts ...exchange.Option) (*core.Balances, error) {
	o := exchange.Apply(opts...)
	if _, err := b.resolveCategory(o); err != nil {
		return nil, err
	}

	req := core.NewRequest(http.MethodGet, "/v5/account/wallet-balance").SetCost(1).
		SetQuery("accountType", "UNIFIED")
	req.SetQueryParams(o.Params)
	if err := b.sign(req); err != nil {
		return nil, err
	}
	resp, err := b.client.Call(ctx, req)
	if err != nil {
		return nil, err
	}
	entries, err := b.rows(resp)
	if err != nil {
		return nil, err
	}

	accounts := make(map[string]core.Raw)
	var info core.Raw
	for _, entry := range entries {
		wallet, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		info = wallet
		for _, c := range safe.List(wallet, "coin") {
			raw, ok := c.(map[string]any)
			if !ok {
				continue
			}
			code := strings.ToUpper(safe.String(raw, "coin", ""))
			accounts[code] = core.Raw{
				"total": safe.String(raw, "walletBalance", ""),
				"used":  safe.String(raw, "locked", ""),
			}
		}
	}
	return normalize.Balances(accounts, core.Raw{"info": info}), nil
}

// CreateOrder places an order. Amount and price are snapped to the
// market's lot and tick grids before signing; post-only maps onto the
// venue's PostOnly time in force.
func (b *Bybit) CreateOrder(ctx context.Context, order *exchange.OrderRequest, opts ...exchange.Option) (*core.Order, error) {
	if _, err := b.LoadMarkets(ctx, false); err != nil {
		return nil, err
	}
	market, err := b.client.Market(order.Symbol)
	if err != nil {
		return nil, err
	}
	o := exchange.Apply(opts...)

	body := core.Params{
		"category":  marketCategory(market),
		"symbol":    market.ID,
		"side":      titleSide(order.Side),
		"orderType": titleType(order.Type),
		"qty":       b.amountToPrecision(market, order.Amount),
	}
	if order.Price != "" {
		body["price"] = b.priceToPrecision(market, order.Price)
	}
	switch {
	case o.PostOnly:
		if order.Type != core.TypeLimit {
			return nil, core.NewError(b.Name(), core.KindInvalidOrder, 0, "postOnly requires a limit order")
		}
		body["timeInForce"] = "PostOnly"
	case o.TimeInForce != "":
		body["timeInForce"] = o.TimeInForce
	}
	if o.TriggerPrice != "" {
		body["triggerPrice"] = b.priceToPrecision(market, o.TriggerPrice)
	}
	if id := firstOf(order.ClientOrderID, o.ClientOrderID); id != "" {
		body["orderLinkId"] = id
	}
	for k, v := range o.Params {
		body[k] = v
	}

	req := core.NewRequest(http.MethodPost, "/v5/order/create").SetCost(1)
	req.Body = body
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

	// Creation acks carry ids only; echo the request into the unified
	// order so the caller sees what was placed.
	order2 := normalize.Order(core.Raw{
		"id":            safe.String(result, "orderId", ""),
		"clientOrderId": safe.String(result, "orderLinkId", ""),
		"type":          string(order.Type),
		"side":          string(order.Side),
		"price":         safe.String(body, "price", ""),
		"amount":        safe.String(body, "qty", ""),
		"status":        string(core.StatusOpen),
		"info":          result,
	}, market)
	return order2, nil
}

// CancelOrder cancels one order by exchange id, or by client order id via
// WithClientOrderID when id is empty.
func (b *Bybit) CancelOrder(ctx context.Context, id, symbol string, opts ...exchange.Option) (*core.Order, error) {
	if _, err := b.LoadMarkets(ctx, false); err != nil {
		return nil, err
	}
	market, err := b.client.Market(symbol)
	if err != nil {
		return nil, err
	}
	o := exchange.Apply(opts...)

	body := core.Params{
		"category": marketCategory(market),
		"symbol":   market.ID,
	}
	if id != "" {
		body["orderId"] = id
	} else if o.ClientOrderID != "" {
		body["orderLinkId"] = o.ClientOrderID
	} else {
		return nil, core.NewError(b.Name(), core.KindInvalidOrder, 0, "cancel requires an order id or client order id")
	}
	for k, v := range o.Params {
		body[k] = v
	}

	req := core.NewRequest(http.MethodPost, "/v5/order/cancel").SetCost(1)
	req.Body = body
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

	return normalize.Order(core.Raw{
		"id":            safe.String(result, "orderId", ""),
		"clientOrderId": safe.String(result, "orderLinkId", ""),
		"status":        string(core.StatusCanceled),
		"info":          result,
	}, market), nil
}

// CancelAllOrders cancels every open order on one symbol.
func (b *Bybit) CancelAllOrders(ctx context.Context, symbol string, opts ...exchange.Option) ([]core.Order, error) {
	if _, err := b.LoadMarkets(ctx, false); err != nil {
		return nil, err
	}
	market, err := b.client.Market(symbol)
	if err != nil {
		return nil, err
	}
	o := exchange.Apply(opts...)

	body := core.Params{
		"category": marketCategory(market),
		"symbol":   market.ID,
	}
	for k, v := range o.Params {
		body[k] = v
	}

	req := core.NewRequest(http.MethodPost, "/v5/order/cancel-all").SetCost(1)
	req.Body = body
	if err := b.sign(req); err != nil {
		return nil, err
	}
	resp, err := b.client.Call(ctx, req)
	if err != nil {
		return nil, err
	}
	entries, err := b.rows(resp)
	if err != nil {
		return nil, err
	}

	orders := make([]core.Order, 0, len(entries))
	for _, entry := range entries {
		raw, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		orders = append(orders, *normalize.Order(core.Raw{
			"id":            safe.String(raw, "orderId", ""),
			"clientOrderId": safe.String(raw, "orderLinkId", ""),
			"status":        string(core.StatusCanceled),
			"info":          raw,
		}, market))
	}
	return orders, nil
}

// FetchOrder retrieves one order by exchange id. Live orders come from the
// realtime book, finished ones from the history endpoint.
func (b *Bybit) FetchOrder(ctx context.Context, id, symbol string, opts ...exchange.Option) (*core.Order, error) {
	if _, err := b.LoadMarkets(ctx, false); err != nil {
		return nil, err
	}
	market, err := b.client.Market(symbol)
	if err != nil {
		return nil, err
	}
	o := exchange.Apply(opts...)

	for _, path := range []string{"/v5/order/realtime", "/v5/order/history"} {
		orders, err := b.queryOrders(ctx, path, market, id, o)
		if err != nil {
			return nil, err
		}
		if len(orders) > 0 {
			return &orders[0], nil
		}
	}
	return nil, core.NewError(b.Name(), core.KindOrderNotFound, 0, "order "+id+" not found")
}

// FetchOrders retrieves the order history for one symbol. Emulated in the
// sense that live orders come from a second endpoint and the two result
// sets are merged.
func (b *Bybit) FetchOrders(ctx context.Context, symbol string, opts ...exchange.Option) ([]core.Order, error) {
	open, err := b.FetchOpenOrders(ctx, symbol, opts...)
	if err != nil {
		return nil, err
	}
	closed, err := b.FetchClosedOrders(ctx, symbol, opts...)
	if err != nil {
		return nil, err
	}
	return append(open, closed...), nil
}

// FetchOpenOrders retrieves the live orders for one symbol.
func (b *Bybit) FetchOpenOrders(ctx context.Context, symbol string, opts ...exchange.Option) ([]core.Order, error) {
	if _, err := b.LoadMarkets(ctx, false); err != nil {
		return nil, err
	}
	market, err := b.client.Market(symbol)
	if err != nil {
		return nil, err
	}
	return b.queryOrders(ctx, "/v5/order/realtime", market, "", exchange.Apply(opts...))
}

// FetchClosedOrders retrieves finished orders for one symbol.
func (b *Bybit) FetchClosedOrders(ctx context.Context, symbol string, opts ...exchange.Option) ([]core.Order, error) {
	if _, err := b.LoadMarkets(ctx, false); err != nil {
		return nil, err
	}
	market, err := b.client.Market(symbol)
	if err != nil {
		return nil, err
	}
	return b.queryOrders(ctx, "/v5/order/history", market, "", exchange.Apply(opts...))
}

func (b *Bybit) queryOrders(ctx context.Context, path string, market *core.Market, id string, o *exchange.Options) ([]core.Order, error) {
	req := core.NewRequest(http.MethodGet, path).SetCost(1).
		SetQuery("category", marketCategory(market)).
		SetQuery("symbol", market.ID)
	if id != "" {
		req.SetQuery("orderId", id)
	}
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
	entries, err := b.rows(resp)
	if err != nil {
		return nil, err
	}

	orders := make([]core.Order, 0, len(entries))
	for _, entry := range entries {
		raw, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		orders = append(orders, *b.parseOrder(raw, market))
	}
	return orders, nil
}

// FetchMyTrades retrieves the account's executions for one symbol.
func (b *Bybit) FetchMyTrades(ctx context.Context, symbol string, opts ...exchange.Option) ([]core.Trade, error) {
	if _, err := b.LoadMarkets(ctx, false); err != nil {
		return nil, err
	}
	market, err := b.client.Market(symbol)
	if err != nil {
		return nil, err
	}
	o := exchange.Apply(opts...)

	req := core.NewRequest(http.MethodGet, "/v5/execution/list").SetCost(1).
		SetQuery("category", marketCategory(market)).
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

func (b *Bybit) parseOrder(raw core.Raw, market *core.Market) *core.Order {
	tif := safe.String(raw, "timeInForce", "")
	return normalize.Order(core.Raw{
		"id":                 safe.String(raw, "orderId", ""),
		"clientOrderId":      safe.String(raw, "orderLinkId", ""),
		"timestamp":          safe.Integer(raw, "createdTime", 0),
		"lastTradeTimestamp": safe.Integer(raw, "updatedTime", 0),
		"status":             string(b.statuses.Parse(safe.String(raw, "orderStatus", ""))),
		"type":               strings.ToLower(safe.String(raw, "orderType", "")),
		"side":               strings.ToLower(safe.String(raw, "side", "")),
		"price":              safe.String(raw, "price", ""),
		"triggerPrice":       safe.String(raw, "triggerPrice", ""),
		"amount":             safe.String(raw, "qty", ""),
		"filled":             safe.String(raw, "cumExecQty", ""),
		"cost":               safe.String(raw, "cumExecValue", ""),
		"average":            safe.String(raw, "avgPrice", ""),
		"remaining":          safe.String(raw, "leavesQty", ""),
		"timeInForce":        tif,
		"postOnly":           tif == "PostOnly",
		"reduceOnly":         safe.Bool(raw, "reduceOnly", false),
		"info":               raw,
	}, market)
}

func titleSide(side core.OrderSide) string {
	if side == core.SideSell {
		return "Sell"
	}
	return "Buy"
}

func titleType(t core.OrderType) string {
	if t == core.TypeMarket {
		return "Market"
	}
	return "Limit"
}

func firstOf(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

package binance

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/Gsuz/ccxt/pkg/core"
	"github.com/Gsuz/ccxt/pkg/exchange"
	"github.com/Gsuz/ccxt/pkg/normalize"
	"github.com/Gsuz/ccxt/pkg/safe"
)

// FetchDepositAddress retrieves the deposit address for a currency code,
// optionally on a specific network via WithNetwork.
func (b *Binance) FetchDepositAddress(ctx context.Context, code string, opts ...exchange.Option) (*core.DepositAddress, error) {
	currency, err := b.currency(ctx, code)
	if err != nil {
		return nil, err
	}
	o := exchange.Apply(opts...)

	req := core.NewRequest(http.MethodGet, "/sapi/v1/capital/deposit/address").SetCost(10).
		SetQuery("coin", currency.ID)
	if o.Network != "" {
		req.SetQuery("network", o.Network)
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

	return &core.DepositAddress{
		Currency: currency.Code,
		Address:  safe.String(body, "address", ""),
		Tag:      safe.String(body, "tag", ""),
		Network:  safe.String(body, "network", o.Network),
		Info:     body,
	}, nil
}

// Withdraw requests an on-chain withdrawal and returns the pending
// transaction record.
func (b *Binance) Withdraw(ctx context.Context, code, amount, address, tag string, opts ...exchange.Option) (*core.Transaction, error) {
	currency, err := b.currency(ctx, code)
	if err != nil {
		return nil, err
	}
	o := exchange.Apply(opts...)

	req := core.NewRequest(http.MethodPost, "/sapi/v1/capital/withdraw/apply").SetCost(600).
		SetQuery("coin", currency.ID).
		SetQuery("amount", amount).
		SetQuery("address", address)
	if tag != "" {
		req.SetQuery("addressTag", tag)
	}
	if o.Network != "" {
		req.SetQuery("network", o.Network)
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

	return normalize.Transaction(core.Raw{
		"id":       safe.String(body, "id", ""),
		"type":     "withdrawal",
		"currency": currency.Code,
		"amount":   amount,
		"address":  address,
		"tag":      tag,
		"network":  o.Network,
		"status":   "pending",
		"info":     body,
	}), nil
}

// FetchDeposits retrieves the deposit history, optionally filtered to one
// currency code.
func (b *Binance) FetchDeposits(ctx context.Context, code string, opts ...exchange.Option) ([]core.Transaction, error) {
	o := exchange.Apply(opts...)
	req := core.NewRequest(http.MethodGet, "/sapi/v1/capital/deposit/hisrec").SetCost(1)
	if code != "" {
		currency, err := b.currency(ctx, code)
		if err != nil {
			return nil, err
		}
		req.SetQuery("coin", currency.ID)
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
	entries, err := b.array(resp)
	if err != nil {
		return nil, err
	}

	deposits := make([]core.Transaction, 0, len(entries))
	for _, entry := range entries {
		raw, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		deposits = append(deposits, *b.parseDeposit(raw))
	}
	return deposits, nil
}

// FetchWithdrawals retrieves the withdrawal history, optionally filtered to
// one currency code.
func (b *Binance) FetchWithdrawals(ctx context.Context, code string, opts ...exchange.Option) ([]core.Transaction, error) {
	o := exchange.Apply(opts...)
	req := core.NewRequest(http.MethodGet, "/sapi/v1/capital/withdraw/history").SetCost(18)
	if code != "" {
		currency, err := b.currency(ctx, code)
		if err != nil {
			return nil, err
		}
		req.SetQuery("coin", currency.ID)
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
	entries, err := b.array(resp)
	if err != nil {
		return nil, err
	}

	withdrawals := make([]core.Transaction, 0, len(entries))
	for _, entry := range entries {
		raw, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		withdrawals = append(withdrawals, *b.parseWithdrawal(raw))
	}
	return withdrawals, nil
}

// FetchTransactions is emulated: Binance splits the ledger into deposit and
// withdrawal endpoints, so both are fetched and merged in time order.
func (b *Binance) FetchTransactions(ctx context.Context, code string, opts ...exchange.Option) ([]core.Transaction, error) {
	deposits, err := b.FetchDeposits(ctx, code, opts...)
	if err != nil {
		return nil, err
	}
	withdrawals, err := b.FetchWithdrawals(ctx, code, opts...)
	if err != nil {
		return nil, err
	}

	transactions := append(deposits, withdrawals...)
	sort.SliceStable(transactions, func(i, j int) bool {
		return transactions[i].Timestamp < transactions[j].Timestamp
	})
	return transactions, nil
}

func (b *Binance) parseDeposit(raw core.Raw) *core.Transaction {
	return normalize.Transaction(core.Raw{
		"id":        safe.String(raw, "id", ""),
		"txid":      safe.String(raw, "txId", ""),
		"type":      "deposit",
		"currency":  b.currencyCode(safe.String(raw, "coin", "")),
		"amount":    safe.String(raw, "amount", ""),
		"network":   safe.String(raw, "network", ""),
		"address":   safe.String(raw, "address", ""),
		"tag":       safe.String(raw, "addressTag", ""),
		"timestamp": safe.Integer(raw, "insertTime", 0),
		"status":    string(b.deposits.Parse(safe.String(raw, "status", ""))),
		"info":      raw,
	})
}

func (b *Binance) parseWithdrawal(raw core.Raw) *core.Transaction {
	unified := core.Raw{
		"id":        safe.String(raw, "id", ""),
		"txid":      safe.String(raw, "txId", ""),
		"type":      "withdrawal",
		"currency":  b.currencyCode(safe.String(raw, "coin", "")),
		"amount":    safe.String(raw, "amount", ""),
		"network":   safe.String(raw, "network", ""),
		"address":   safe.String(raw, "address", ""),
		"tag":       safe.String(raw, "addressTag", ""),
		"timestamp": parseApplyTime(safe.String(raw, "applyTime", "")),
		"status":    string(b.payouts.Parse(safe.String(raw, "status", ""))),
		"info":      raw,
	}
	if fee := safe.String(raw, "transactionFee", ""); fee != "" {
		unified["fee"] = map[string]any{
			"cost":     fee,
			"currency": b.currencyCode(safe.String(raw, "coin", "")),
		}
	}
	return normalize.Transaction(unified)
}

// parseApplyTime converts the withdrawal history's "2019-10-12 11:12:02"
// UTC timestamps to epoch milliseconds.
func parseApplyTime(value string) int64 {
	if value == "" {
		return 0
	}
	t, err := time.Parse("2006-01-02 15:04:05", value)
	if err != nil {
		return 0
	}
	return t.UnixMilli()
}

// currency resolves a unified currency code against the loaded metadata.
func (b *Binance) currency(ctx context.Context, code string) (*core.Currency, error) {
	if _, err := b.LoadMarkets(ctx, false); err != nil {
		return nil, err
	}
	index, err := b.client.MarketIndex()
	if err != nil {
		return nil, err
	}
	return index.Currency(b.Name(), code)
}

func (b *Binance) currencyCode(id string) string {
	if x := b.client.Index(); x != nil {
		return x.SafeCurrencyCode(id)
	}
	return id
}

package bybit

import (
	"context"
	"net/http"
	"sort"

	"github.com/Gsuz/ccxt/pkg/core"
	"github.com/Gsuz/ccxt/pkg/exchange"
	"github.com/Gsuz/ccxt/pkg/normalize"
	"github.com/Gsuz/ccxt/pkg/safe"
)

// FetchDepositAddress retrieves the deposit address for a currency code.
// The chain defaults to the coin's primary one; select another with
// WithNetwork.
func (b *Bybit) FetchDepositAddress(ctx context.Context, code string, opts ...exchange.Option) (*core.DepositAddress, error) {
	currency, err := b.currency(ctx, code)
	if err != nil {
		return nil, err
	}
	o := exchange.Apply(opts...)

	req := core.NewRequest(http.MethodGet, "/v5/asset/deposit/query-address").SetCost(1).
		SetQuery("coin", currency.ID)
	if o.Network != "" {
		req.SetQuery("chainType", o.Network)
	}
	req.SetQueryParams(o.Params)

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

	chains := safe.List(result, "chains")
	if len(chains) == 0 {
		return nil, core.NewError(b.Name(), core.KindExchangeError, 0, "no deposit address for "+code)
	}
	chain, ok := chains[0].(map[string]any)
	if !ok {
		return nil, core.NewError(b.Name(), core.KindExchangeError, 0, "malformed deposit address entry")
	}
	return &core.DepositAddress{
		Currency: currency.Code,
		Address:  safe.String(chain, "addressDeposit", ""),
		Tag:      safe.String(chain, "tagDeposit", ""),
		Network:  safe.String(chain, "chainType", o.Network),
		Info:     result,
	}, nil
}

// Withdraw requests an on-chain withdrawal and returns the pending
// transaction record.
func (b *Bybit) Withdraw(ctx context.Context, code, amount, address, tag string, opts ...exchange.Option) (*core.Transaction, error) {
	currency, err := b.currency(ctx, code)
	if err != nil {
		return nil, err
	}
	o := exchange.Apply(opts...)

	body := core.Params{
		"coin":      currency.ID,
		"amount":    amount,
		"address":   address,
		"timestamp": b.client.Nonce().Next(),
	}
	if tag != "" {
		body["tag"] = tag
	}
	if o.Network != "" {
		body["chain"] = o.Network
	}
	for k, v := range o.Params {
		body[k] = v
	}

	req := core.NewRequest(http.MethodPost, "/v5/asset/withdraw/create").SetCost(1)
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

	return normalize.Transaction(core.Raw{
		"id":       safe.String(result, "id", ""),
		"type":     "withdrawal",
		"currency": currency.Code,
		"amount":   amount,
		"address":  address,
		"tag":      tag,
		"network":  o.Network,
		"status":   "pending",
		"info":     result,
	}), nil
}

// FetchDeposits retrieves the deposit history, optionally filtered to one
// currency code.
func (b *Bybit) FetchDeposits(ctx context.Context, code string, opts ...exchange.Option) ([]core.Transaction, error) {
	return b.fetchTransactionRows(ctx, "/v5/asset/deposit/query-record", code, b.parseDeposit, opts...)
}

// FetchWithdrawals retrieves the withdrawal history, optionally filtered
// to one currency code.
func (b *Bybit) FetchWithdrawals(ctx context.Context, code string, opts ...exchange.Option) ([]core.Transaction, error) {
	return b.fetchTransactionRows(ctx, "/v5/asset/withdraw/query-record", code, b.parseWithdrawal, opts...)
}

// FetchTransactions is emulated: deposits and withdrawals come from
// separate ledgers and are merged in time order.
func (b *Bybit) FetchTransactions(ctx context.Context, code string, opts ...exchange.Option) ([]core.Transaction, error) {
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

func (b *Bybit) fetchTransactionRows(ctx context.Context, path, code string, parse func(core.Raw) *core.Transaction, opts ...exchange.Option) ([]core.Transaction, error) {
	o := exchange.Apply(opts...)
	req := core.NewRequest(http.MethodGet, path).SetCost(1)
	if code != "" {
		currency, err := b.currency(ctx, code)
		if err != nil {
			return nil, err
		}
		req.SetQuery("coin", currency.ID)
	} else if _, err := b.LoadMarkets(ctx, false); err != nil {
		return nil, err
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
	result, err := b.result(resp)
	if err != nil {
		return nil, err
	}

	entries := safe.List(result, "rows")
	transactions := make([]core.Transaction, 0, len(entries))
	for _, entry := range entries {
		raw, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		transactions = append(transactions, *parse(raw))
	}
	return transactions, nil
}

func (b *Bybit) parseDeposit(raw core.Raw) *core.Transaction {
	return normalize.Transaction(core.Raw{
		"id":        safe.String(raw, "depositId", ""),
		"txid":      safe.String(raw, "txID", ""),
		"type":      "deposit",
		"currency":  b.currencyCode(safe.String(raw, "coin", "")),
		"amount":    safe.String(raw, "amount", ""),
		"network":   safe.String(raw, "chain", ""),
		"address":   safe.String(raw, "toAddress", ""),
		"tag":       safe.String(raw, "tag", ""),
		"timestamp": safe.Integer(raw, "successAt", 0),
		"status":    string(b.deposits.Parse(safe.String(raw, "status", ""))),
		"info":      raw,
	})
}

func (b *Bybit) parseWithdrawal(raw core.Raw) *core.Transaction {
	unified := core.Raw{
		"id":        safe.String(raw, "withdrawId", ""),
		"txid":      safe.String(raw, "txID", ""),
		"type":      "withdrawal",
		"currency":  b.currencyCode(safe.String(raw, "coin", "")),
		"amount":    safe.String(raw, "amount", ""),
		"network":   safe.String(raw, "chain", ""),
		"address":   safe.String(raw, "toAddress", ""),
		"tag":       safe.String(raw, "tag", ""),
		"timestamp": safe.Integer(raw, "createTime", 0),
		"updated":   safe.Integer(raw, "updateTime", 0),
		"status":    string(b.payouts.Parse(safe.String(raw, "status", ""))),
		"info":      raw,
	}
	if fee := safe.String(raw, "withdrawFee", ""); fee != "" {
		unified["fee"] = map[string]any{
			"cost":     fee,
			"currency": b.currencyCode(safe.String(raw, "coin", "")),
		}
	}
	return normalize.Transaction(unified)
}

// currency resolves a unified currency code against the loaded metadata.
func (b *Bybit) currency(ctx context.Context, code string) (*core.Currency, error) {
	if _, err := b.LoadMarkets(ctx, false); err != nil {
		return nil, err
	}
	index, err := b.client.MarketIndex()
	if err != nil {
		return nil, err
	}
	return index.Currency(b.Name(), code)
}

func (b *Bybit) currencyCode(id string) string {
	if x := b.client.Index(); x != nil {
		return x.SafeCurrencyCode(id)
	}
	return id
}

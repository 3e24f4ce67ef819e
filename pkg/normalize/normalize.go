// Package normalize builds fully-populated unified records from the
// partially-filled maps adapters extract out of raw exchange payloads. Each
// constructor takes a map keyed by the unified field vocabulary, fills every
// template field, preserves the original payload under info, and computes
// the derived fields (datetime from timestamp, cost from price and amount,
// filled/remaining reconciliation, vwap) that venues routinely omit. All
// arithmetic goes through pkg/precise; a constructor never fails on missing
// or malformed fields.
//
// Running a constructor over the map form of its own output yields the same
// record, which keeps double normalization (adapter then caller) harmless.
package normalize

import (
	"github.com/Gsuz/ccxt/pkg/core"
	"github.com/Gsuz/ccxt/pkg/precise"
	"github.com/Gsuz/ccxt/pkg/safe"
)

// divPlaces bounds derived quotients (vwap, average price) well past any
// venue's display precision.
const divPlaces = 18

// Ticker builds a unified ticker. market may be nil when the symbol is
// already resolved in raw.
func Ticker(raw core.Raw, market *core.Market) *core.Ticker {
	t := &core.Ticker{
		Symbol:      safe.String(raw, "symbol", marketSymbol(market)),
		Timestamp:   safe.Integer(raw, "timestamp", 0),
		High:        safe.String(raw, "high", ""),
		Low:         safe.String(raw, "low", ""),
		Bid:         safe.String(raw, "bid", ""),
		BidVolume:   safe.String(raw, "bidVolume", ""),
		Ask:         safe.String(raw, "ask", ""),
		AskVolume:   safe.String(raw, "askVolume", ""),
		Vwap:        safe.String(raw, "vwap", ""),
		Open:        safe.String(raw, "open", ""),
		Close:       safe.String(raw, "close", ""),
		Last:        safe.String(raw, "last", ""),
		Change:      safe.String(raw, "change", ""),
		Percentage:  safe.String(raw, "percentage", ""),
		Average:     safe.String(raw, "average", ""),
		BaseVolume:  safe.String(raw, "baseVolume", ""),
		QuoteVolume: safe.String(raw, "quoteVolume", ""),
		Info:        info(raw),
	}
	t.Datetime = safe.String(raw, "datetime", ISO8601(t.Timestamp))

	// Close and last are the same quantity under two names.
	if t.Close == "" {
		t.Close = t.Last
	}
	if t.Last == "" {
		t.Last = t.Close
	}

	if t.Vwap == "" && t.BaseVolume != "" && t.QuoteVolume != "" && !precise.IsZero(t.BaseVolume) {
		t.Vwap = precise.Div(t.QuoteVolume, t.BaseVolume, divPlaces)
	}
	if t.Open != "" && t.Last != "" {
		if t.Change == "" {
			t.Change = precise.Sub(t.Last, t.Open)
		}
		if t.Percentage == "" && !precise.IsZero(t.Open) {
			t.Percentage = precise.Mul(precise.Div(t.Change, t.Open, divPlaces), "100")
		}
		if t.Average == "" {
			t.Average = precise.Div(precise.Add(t.Last, t.Open), "2", divPlaces)
		}
	}
	return t
}

// Order builds a unified order, reconciling amount, filled, remaining, cost
// and average so that any one of them missing is recomputed from the others.
// The status value is expected to be already mapped through the adapter's
// OrderStatuses table.
func Order(raw core.Raw, market *core.Market) *core.Order {
	o := &core.Order{
		ID:                 safe.String(raw, "id", ""),
		ClientOrderID:      safe.String(raw, "clientOrderId", ""),
		Timestamp:          safe.Integer(raw, "timestamp", 0),
		LastTradeTimestamp: safe.Integer(raw, "lastTradeTimestamp", 0),
		Symbol:             safe.String(raw, "symbol", marketSymbol(market)),
		Type:               core.OrderType(safe.StringLower(raw, "type", "")),
		TimeInForce:        safe.String(raw, "timeInForce", ""),
		PostOnly:           safe.Bool(raw, "postOnly", false),
		ReduceOnly:         safe.Bool(raw, "reduceOnly", false),
		Side:               core.OrderSide(safe.StringLower(raw, "side", "")),
		Price:              safe.String(raw, "price", ""),
		TriggerPrice:       safe.String(raw, "triggerPrice", ""),
		Amount:             safe.String(raw, "amount", ""),
		Filled:             safe.String(raw, "filled", ""),
		Remaining:          safe.String(raw, "remaining", ""),
		Cost:               safe.String(raw, "cost", ""),
		Average:            safe.String(raw, "average", ""),
		Status:             core.OrderStatus(safe.String(raw, "status", "")),
		Fee:                Fee(safe.Map(raw, "fee")),
		Info:               info(raw),
	}
	o.Datetime = safe.String(raw, "datetime", ISO8601(o.Timestamp))

	// filled + remaining == amount whenever two of the three are known.
	if o.Filled == "" && o.Amount != "" && o.Remaining != "" {
		if f := precise.Sub(o.Amount, o.Remaining); !precise.IsNegative(f) {
			o.Filled = f
		}
	}
	if o.Remaining == "" && o.Amount != "" && o.Filled != "" {
		if r := precise.Sub(o.Amount, o.Filled); !precise.IsNegative(r) {
			o.Remaining = r
		}
	}
	if o.Amount == "" && o.Filled != "" && o.Remaining != "" {
		o.Amount = precise.Add(o.Filled, o.Remaining)
	}

	if o.Cost == "" && o.Filled != "" {
		switch {
		case o.Average != "":
			o.Cost = precise.Mul(o.Average, o.Filled)
		case o.Price != "":
			o.Cost = precise.Mul(o.Price, o.Filled)
		}
	}
	if o.Average == "" && o.Cost != "" && o.Filled != "" && !precise.IsZero(o.Filled) {
		o.Average = precise.Div(o.Cost, o.Filled, divPlaces)
	}

	applyFeeCurrencyDefault(o.Fee, market)
	return o
}

// Trade builds a unified trade. Cost defaults to price times amount when the
// venue does not report it independently; the fee currency defaults to the
// market's quote currency unless explicitly reported.
func Trade(raw core.Raw, market *core.Market) *core.Trade {
	t := &core.Trade{
		ID:           safe.String(raw, "id", ""),
		Timestamp:    safe.Integer(raw, "timestamp", 0),
		Symbol:       safe.String(raw, "symbol", marketSymbol(market)),
		Order:        safe.String(raw, "order", ""),
		Type:         core.OrderType(safe.StringLower(raw, "type", "")),
		Side:         core.OrderSide(safe.StringLower(raw, "side", "")),
		TakerOrMaker: core.TakerOrMaker(safe.StringLower(raw, "takerOrMaker", "")),
		Price:        safe.String(raw, "price", ""),
		Amount:       safe.String(raw, "amount", ""),
		Cost:         safe.String(raw, "cost", ""),
		Fee:          Fee(safe.Map(raw, "fee")),
		Info:         info(raw),
	}
	t.Datetime = safe.String(raw, "datetime", ISO8601(t.Timestamp))

	if t.Cost == "" && t.Price != "" && t.Amount != "" {
		t.Cost = precise.Mul(t.Price, t.Amount)
	}
	applyFeeCurrencyDefault(t.Fee, market)
	return t
}

// Transaction builds a unified deposit or withdrawal. The amount is forced
// non-negative regardless of the sign convention of the venue; direction is
// carried solely by the type field.
func Transaction(raw core.Raw) *core.Transaction {
	tx := &core.Transaction{
		ID:          safe.String(raw, "id", ""),
		TxID:        safe.String(raw, "txid", ""),
		Timestamp:   safe.Integer(raw, "timestamp", 0),
		Network:     safe.String(raw, "network", ""),
		Address:     safe.String(raw, "address", ""),
		AddressFrom: safe.String(raw, "addressFrom", ""),
		AddressTo:   safe.String(raw, "addressTo", ""),
		Tag:         safe.String(raw, "tag", ""),
		TagFrom:     safe.String(raw, "tagFrom", ""),
		TagTo:       safe.String(raw, "tagTo", ""),
		Type:        core.TransactionType(safe.StringLower(raw, "type", "")),
		Amount:      safe.String(raw, "amount", ""),
		Currency:    safe.String(raw, "currency", ""),
		Status:      core.TransactionStatus(safe.String(raw, "status", "")),
		Updated:     safe.Integer(raw, "updated", 0),
		Fee:         Fee(safe.Map(raw, "fee")),
		Info:        info(raw),
	}
	tx.Datetime = safe.String(raw, "datetime", ISO8601(tx.Timestamp))
	if tx.Amount != "" {
		tx.Amount = precise.Abs(tx.Amount)
	}
	if tx.Address != "" && tx.AddressTo == "" && tx.Type == core.TxWithdrawal {
		tx.AddressTo = tx.Address
	}
	return tx
}

// Transfer builds a unified internal transfer record.
func Transfer(raw core.Raw) *core.Transfer {
	tr := &core.Transfer{
		ID:          safe.String(raw, "id", ""),
		Timestamp:   safe.Integer(raw, "timestamp", 0),
		Currency:    safe.String(raw, "currency", ""),
		Amount:      safe.String(raw, "amount", ""),
		FromAccount: safe.String(raw, "fromAccount", ""),
		ToAccount:   safe.String(raw, "toAccount", ""),
		Status:      safe.String(raw, "status", ""),
		Info:        info(raw),
	}
	tr.Datetime = safe.String(raw, "datetime", ISO8601(tr.Timestamp))
	if tr.Amount != "" {
		tr.Amount = precise.Abs(tr.Amount)
	}
	return tr
}

// Fee builds a fee record from a nested fee map, or nil when raw is nil —
// an order or trade without fee information keeps a nil fee rather than a
// zero-valued one.
func Fee(raw core.Raw) *core.Fee {
	if raw == nil {
		return nil
	}
	return &core.Fee{
		Currency: safe.String(raw, "currency", ""),
		Cost:     safe.String(raw, "cost", ""),
		Rate:     safe.String(raw, "rate", ""),
		Type:     core.TakerOrMaker(safe.StringLower(raw, "type", "")),
	}
}

// Balances builds the unified per-currency balance table, enforcing
// total == free + used: whichever of the three members is missing is
// computed from the other two rather than trusted independently.
func Balances(accounts map[string]core.Raw, inf core.Raw) *core.Balances {
	b := &core.Balances{
		Timestamp: safe.Integer(inf, "timestamp", 0),
		Accounts:  make(map[string]core.Balance, len(accounts)),
		Info:      inf,
	}
	b.Datetime = ISO8601(b.Timestamp)
	for code, raw := range accounts {
		acct := core.Balance{
			Free:  safe.String(raw, "free", ""),
			Used:  safe.String(raw, "used", ""),
			Total: safe.String(raw, "total", ""),
		}
		switch {
		case acct.Total == "" && acct.Free != "" && acct.Used != "":
			acct.Total = precise.Add(acct.Free, acct.Used)
		case acct.Free == "" && acct.Total != "" && acct.Used != "":
			acct.Free = precise.Sub(acct.Total, acct.Used)
		case acct.Used == "" && acct.Total != "" && acct.Free != "":
			acct.Used = precise.Sub(acct.Total, acct.Free)
		}
		b.Accounts[code] = acct
	}
	return b
}

// OHLCVRow parses one candlestick from the positional array form most venues
// use: [timestamp, open, high, low, close, volume].
func OHLCVRow(row []any) core.OHLCV {
	get := func(i int) string {
		if i < len(row) {
			return safe.AsString(row[i])
		}
		return ""
	}
	ts := int64(0)
	if len(row) > 0 {
		ts = safe.AsInteger(row[0], 0)
	}
	return core.OHLCV{
		Timestamp: ts,
		Open:      get(1),
		High:      get(2),
		Low:       get(3),
		Close:     get(4),
		Volume:    get(5),
	}
}

// BookSide parses one side of a depth payload from the positional
// [[price, amount], ...] form. Malformed rows are skipped, not fatal.
func BookSide(rows []any) []core.BookLevel {
	out := make([]core.BookLevel, 0, len(rows))
	for _, r := range rows {
		level, ok := r.([]any)
		if !ok || len(level) < 2 {
			continue
		}
		price := safe.AsString(level[0])
		amount := safe.AsString(level[1])
		if price == "" || amount == "" {
			continue
		}
		out = append(out, core.BookLevel{Price: price, Amount: amount})
	}
	return out
}

// Currency builds a unified currency, aggregating the most permissive
// fee/limit/capability values across its networks: deposits or withdrawals
// are possible if any network allows them, the currency-level fee is the
// minimum network fee, the withdrawal minimum the smallest across networks.
func Currency(raw core.Raw, networks map[string]core.Network) *core.Currency {
	c := &core.Currency{
		ID:        safe.String(raw, "id", ""),
		Code:      safe.StringUpper(raw, "code", ""),
		Name:      safe.String(raw, "name", ""),
		Precision: safe.String(raw, "precision", ""),
		Active:    safe.Bool(raw, "active", false),
		Deposit:   safe.Bool(raw, "deposit", false),
		Withdraw:  safe.Bool(raw, "withdraw", false),
		Fee:       safe.String(raw, "fee", ""),
		Networks:  networks,
		Info:      info(raw),
	}
	for _, n := range networks {
		if n.Active {
			c.Active = true
		}
		if n.Deposit {
			c.Deposit = true
		}
		if n.Withdraw {
			c.Withdraw = true
		}
		if n.Fee != "" {
			if c.Fee == "" {
				c.Fee = n.Fee
			} else {
				c.Fee = precise.Min(c.Fee, n.Fee)
			}
		}
		if n.Limits.Amount.Min != "" {
			if c.Limits.Amount.Min == "" {
				c.Limits.Amount.Min = n.Limits.Amount.Min
			} else {
				c.Limits.Amount.Min = precise.Min(c.Limits.Amount.Min, n.Limits.Amount.Min)
			}
		}
		if n.Limits.Amount.Max != "" {
			if c.Limits.Amount.Max == "" {
				c.Limits.Amount.Max = n.Limits.Amount.Max
			} else {
				c.Limits.Amount.Max = precise.Max(c.Limits.Amount.Max, n.Limits.Amount.Max)
			}
		}
	}
	return c
}

func marketSymbol(m *core.Market) string {
	if m == nil {
		return ""
	}
	return m.Symbol
}

// Fee currency defaults to the market's quote currency when the venue did
// not name one.
func applyFeeCurrencyDefault(fee *core.Fee, market *core.Market) {
	if fee != nil && fee.Currency == "" && market != nil {
		fee.Currency = market.Quote
	}
}

func info(raw core.Raw) core.Raw {
	if nested := safe.Map(raw, "info"); nested != nil {
		return nested
	}
	return raw
}

package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gsuz/ccxt/pkg/core"
)

var btcUsdt = &core.Market{
	ID: "BTCUSDT", Symbol: "BTC/USDT",
	Base: "BTC", Quote: "USDT",
	BaseID: "BTC", QuoteID: "USDT",
	Type: core.MarketTypeSpot, Spot: true, Active: true,
}

func TestTicker_DerivedFields(t *testing.T) {
	tk := Ticker(core.Raw{
		"timestamp":   int64(1700000000000),
		"open":        "100",
		"last":        "110",
		"baseVolume":  "2",
		"quoteVolume": "210",
	}, btcUsdt)

	assert.Equal(t, "BTC/USDT", tk.Symbol)
	assert.Equal(t, "2023-11-14T22:13:20.000Z", tk.Datetime)
	assert.Equal(t, "110", tk.Close, "close mirrors last")
	assert.Equal(t, "10", tk.Change)
	assert.Equal(t, "10", tk.Percentage)
	assert.Equal(t, "105", tk.Average)
	assert.Equal(t, "105", tk.Vwap, "vwap = quoteVolume / baseVolume")
}

func TestTicker_LastMirrorsClose(t *testing.T) {
	tk := Ticker(core.Raw{"close": "42"}, nil)
	assert.Equal(t, "42", tk.Last)
}

func TestTicker_NoVwapOnZeroVolume(t *testing.T) {
	tk := Ticker(core.Raw{"baseVolume": "0", "quoteVolume": "0"}, nil)
	assert.Equal(t, "", tk.Vwap)
}

func TestTicker_Idempotent(t *testing.T) {
	first := Ticker(core.Raw{
		"symbol":      "BTC/USDT",
		"timestamp":   int64(1700000000000),
		"open":        "100",
		"last":        "110",
		"baseVolume":  "2",
		"quoteVolume": "210",
	}, nil)
	second := Ticker(core.Raw{
		"symbol":      first.Symbol,
		"timestamp":   first.Timestamp,
		"datetime":    first.Datetime,
		"open":        first.Open,
		"close":       first.Close,
		"last":        first.Last,
		"change":      first.Change,
		"percentage":  first.Percentage,
		"average":     first.Average,
		"vwap":        first.Vwap,
		"baseVolume":  first.BaseVolume,
		"quoteVolume": first.QuoteVolume,
		"info":        first.Info,
	}, nil)
	assert.Equal(t, first, second)
}

func TestOrder_ReconcilesFilledRemaining(t *testing.T) {
	o := Order(core.Raw{
		"id":     "1",
		"amount": "10",
		"filled": "4",
		"price":  "100",
		"status": "open",
	}, btcUsdt)

	assert.Equal(t, "6", o.Remaining)
	assert.Equal(t, "400", o.Cost, "cost = price * filled without average")
	assert.Equal(t, core.StatusOpen, o.Status)
}

func TestOrder_AmountFromFilledPlusRemaining(t *testing.T) {
	o := Order(core.Raw{"filled": "4", "remaining": "6"}, nil)
	assert.Equal(t, "10", o.Amount)
}

func TestOrder_AverageFromCost(t *testing.T) {
	o := Order(core.Raw{"cost": "400", "filled": "4"}, nil)
	assert.Equal(t, "100", o.Average)
}

func TestOrder_CostPrefersAverage(t *testing.T) {
	o := Order(core.Raw{"average": "101", "price": "100", "filled": "2"}, nil)
	assert.Equal(t, "202", o.Cost)
}

func TestOrder_NegativeReconciliationDiscarded(t *testing.T) {
	// A venue reporting filled > amount must not produce a negative
	// remaining quantity.
	o := Order(core.Raw{"amount": "1", "filled": "2"}, nil)
	assert.Equal(t, "", o.Remaining)
}

func TestOrder_FeeCurrencyDefaultsToQuote(t *testing.T) {
	o := Order(core.Raw{"fee": core.Raw{"cost": "0.1"}}, btcUsdt)
	require.NotNil(t, o.Fee)
	assert.Equal(t, "USDT", o.Fee.Currency)
}

func TestOrder_MissingFeeStaysNil(t *testing.T) {
	o := Order(core.Raw{"id": "1"}, btcUsdt)
	assert.Nil(t, o.Fee)
}

func TestOrder_SideAndTypeLowercased(t *testing.T) {
	o := Order(core.Raw{"side": "BUY", "type": "LIMIT"}, nil)
	assert.Equal(t, core.SideBuy, o.Side)
	assert.Equal(t, core.TypeLimit, o.Type)
}

func TestTrade_CostDerived(t *testing.T) {
	tr := Trade(core.Raw{
		"id":     "t1",
		"price":  "100.5",
		"amount": "0.2",
		"side":   "sell",
	}, btcUsdt)

	assert.Equal(t, "20.1", tr.Cost)
	assert.Equal(t, core.SideSell, tr.Side)
	assert.Equal(t, "BTC/USDT", tr.Symbol)
}

func TestTrade_ReportedCostWins(t *testing.T) {
	tr := Trade(core.Raw{"price": "100", "amount": "2", "cost": "199.9"}, nil)
	assert.Equal(t, "199.9", tr.Cost)
}

func TestTransaction_AmountForcedPositive(t *testing.T) {
	tx := Transaction(core.Raw{
		"type":     "withdrawal",
		"amount":   "-1.5",
		"address":  "addr1",
		"currency": "BTC",
	})
	assert.Equal(t, "1.5", tx.Amount)
	assert.Equal(t, "addr1", tx.AddressTo, "withdrawal address doubles as destination")
}

func TestTransaction_DepositKeepsAddressToEmpty(t *testing.T) {
	tx := Transaction(core.Raw{"type": "deposit", "address": "addr1"})
	assert.Equal(t, "", tx.AddressTo)
}

func TestTransfer_AmountForcedPositive(t *testing.T) {
	tr := Transfer(core.Raw{
		"id":          "tr-1",
		"currency":    "USDT",
		"amount":      "-25",
		"fromAccount": "spot",
		"toAccount":   "funding",
		"timestamp":   int64(1700000000000),
	})
	assert.Equal(t, "25", tr.Amount)
	assert.Equal(t, "spot", tr.FromAccount)
	assert.Equal(t, "2023-11-14T22:13:20.000Z", tr.Datetime)
}

func TestBalances_CompletesMissingMember(t *testing.T) {
	b := Balances(map[string]core.Raw{
		"BTC":  {"free": "1", "used": "0.5"},
		"ETH":  {"total": "10", "used": "4"},
		"USDT": {"total": "100", "free": "60"},
	}, core.Raw{"timestamp": int64(1700000000000)})

	assert.Equal(t, "1.5", b.Accounts["BTC"].Total)
	assert.Equal(t, "6", b.Accounts["ETH"].Free)
	assert.Equal(t, "40", b.Accounts["USDT"].Used)
	assert.Equal(t, "2023-11-14T22:13:20.000Z", b.Datetime)
}

func TestOHLCVRow_PositionalArray(t *testing.T) {
	row := OHLCVRow([]any{float64(1700000000000), "100", "110", "95", "105", "12.5"})
	assert.Equal(t, int64(1700000000000), row.Timestamp)
	assert.Equal(t, "100", row.Open)
	assert.Equal(t, "105", row.Close)
	assert.Equal(t, "12.5", row.Volume)
}

func TestOHLCVRow_ShortRow(t *testing.T) {
	row := OHLCVRow([]any{float64(1700000000000), "100"})
	assert.Equal(t, "100", row.Open)
	assert.Equal(t, "", row.Close)
}

func TestBookSide_SkipsMalformedRows(t *testing.T) {
	side := BookSide([]any{
		[]any{"100", "1"},
		"garbage",
		[]any{"101"},
		[]any{"102", "2"},
	})
	require.Len(t, side, 2)
	assert.Equal(t, core.BookLevel{Price: "100", Amount: "1"}, side[0])
	assert.Equal(t, core.BookLevel{Price: "102", Amount: "2"}, side[1])
}

func TestCurrency_AggregatesNetworks(t *testing.T) {
	c := Currency(core.Raw{"id": "usdt", "code": "usdt"}, map[string]core.Network{
		"ERC20": {ID: "ERC20", Active: true, Deposit: true, Withdraw: false, Fee: "10"},
		"TRC20": {ID: "TRC20", Active: true, Deposit: false, Withdraw: true, Fee: "1"},
	})

	assert.Equal(t, "USDT", c.Code)
	assert.True(t, c.Active)
	assert.True(t, c.Deposit, "any network allowing deposit is enough")
	assert.True(t, c.Withdraw)
	assert.Equal(t, "1", c.Fee, "minimum network fee wins")
}

func TestSymbol_Forms(t *testing.T) {
	cases := []struct {
		name   string
		got    string
		expect string
	}{
		{"spot", Symbol("BTC", "USDT", "", core.MarketTypeSpot, 0, "", ""), "BTC/USDT"},
		{"swap", Symbol("BTC", "USDT", "USDT", core.MarketTypeSwap, 0, "", ""), "BTC/USDT:USDT"},
		{"future", Symbol("BTC", "USD", "BTC", core.MarketTypeFuture, 1703808000000, "", ""), "BTC/USD:BTC-231229"},
		{"call", Symbol("BTC", "USDT", "USDT", core.MarketTypeOption, 1703808000000, "50000", "call"), "BTC/USDT:USDT-231229-50000-C"},
		{"put", Symbol("BTC", "USDT", "USDT", core.MarketTypeOption, 1703808000000, "50000", "put"), "BTC/USDT:USDT-231229-50000-P"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, tc.got)
		})
	}
}

func TestMarketFlags_LinearInverse(t *testing.T) {
	linear := &core.Market{Base: "BTC", Quote: "USDT", Settle: "USDT", Type: core.MarketTypeSwap}
	MarketFlags(linear)
	require.NotNil(t, linear.Linear)
	assert.True(t, *linear.Linear)
	assert.False(t, *linear.Inverse)
	assert.True(t, linear.Swap)
	assert.True(t, linear.Contract)

	inverse := &core.Market{Base: "BTC", Quote: "USD", Settle: "BTC", Type: core.MarketTypeSwap}
	MarketFlags(inverse)
	require.NotNil(t, inverse.Inverse)
	assert.True(t, *inverse.Inverse)
}

func TestMarketFlags_SpotHasNoContractMarkers(t *testing.T) {
	m := &core.Market{Base: "BTC", Quote: "USDT", Type: core.MarketTypeSpot}
	MarketFlags(m)
	assert.True(t, m.Spot)
	assert.False(t, m.Contract)
	assert.Nil(t, m.Linear)
}

func TestIndex_StrictLookups(t *testing.T) {
	x := NewIndex([]*core.Market{btcUsdt}, []*core.Currency{{Code: "BTC"}}, nil)

	m, err := x.Market("test", "BTC/USDT")
	require.NoError(t, err)
	assert.Equal(t, "BTCUSDT", m.ID)

	_, err = x.Market("test", "ETH/USDT")
	require.Error(t, err)
	assert.True(t, core.IsKind(err, core.KindBadSymbol))

	_, err = x.Currency("test", "ETH")
	require.Error(t, err)
	assert.True(t, core.IsKind(err, core.KindBadSymbol))
}

func TestIndex_SafeMarketSynthesizes(t *testing.T) {
	x := NewIndex([]*core.Market{btcUsdt}, nil, nil)

	assert.Equal(t, "BTC/USDT", x.SafeMarket("BTCUSDT", "").Symbol)

	m := x.SafeMarket("ETH-USDC", "-")
	assert.Equal(t, "ETH/USDC", m.Symbol)
	assert.Equal(t, "ETH", m.Base)

	// No delimiter and unknown id: the id itself stands in for the symbol.
	assert.Equal(t, "MYSTERY", x.SafeSymbol("MYSTERY", ""))
}

func TestIndex_SafeCurrencyCode(t *testing.T) {
	x := NewIndex(nil, []*core.Currency{{Code: "BTC"}}, map[string]string{"XBT": "BTC"})

	assert.Equal(t, "BTC", x.SafeCurrencyCode("xbt"))
	assert.Equal(t, "BTC", x.SafeCurrencyCode("btc"))
	assert.Equal(t, "DOGE", x.SafeCurrencyCode("doge"))
	assert.Equal(t, "", x.SafeCurrencyCode(""))
}

func TestOrderStatuses_UnknownPassesThrough(t *testing.T) {
	statuses := OrderStatuses{"NEW": core.StatusOpen, "FILLED": core.StatusClosed}
	assert.Equal(t, core.StatusOpen, statuses.Parse("NEW"))
	assert.Equal(t, core.OrderStatus("PENDING_NEW"), statuses.Parse("PENDING_NEW"))
}

func TestTransactionStatuses_UnknownPassesThrough(t *testing.T) {
	statuses := TransactionStatuses{"1": core.TxOK}
	assert.Equal(t, core.TxOK, statuses.Parse("1"))
	assert.Equal(t, core.TransactionStatus("9"), statuses.Parse("9"))
}

func TestISO8601_ZeroIsEmpty(t *testing.T) {
	assert.Equal(t, "", ISO8601(0))
	assert.Equal(t, "", ISO8601(-1))
	assert.Equal(t, "2023-11-14T22:13:20.000Z", ISO8601(1700000000000))
}

func TestInfo_PrefersNestedPayload(t *testing.T) {
	nested := core.Raw{"orig": true}
	tk := Ticker(core.Raw{"last": "1", "info": nested}, nil)
	assert.Equal(t, nested, tk.Info)
}

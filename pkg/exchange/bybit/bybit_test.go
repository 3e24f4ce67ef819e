package bybit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gsuz/ccxt/pkg/core"
	"github.com/Gsuz/ccxt/pkg/exchange"
)

func newTestAdapter(t *testing.T) *Bybit {
	t.Helper()
	b, err := New(core.DefaultConfig("bybit"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close() })
	return b
}

func TestNew_BasicConfig(t *testing.T) {
	b := newTestAdapter(t)
	assert.Equal(t, "bybit", b.Name())
	assert.Equal(t, exchange.CapSupported, b.Features()["CreateOrder"])
	assert.Equal(t, exchange.CapEmulated, b.Features()["FetchOrders"])
}

func TestParseMarket_Spot(t *testing.T) {
	b := newTestAdapter(t)
	m := b.parseMarket(core.Raw{
		"symbol":        "BTCUSDT",
		"baseCoin":      "BTC",
		"quoteCoin":     "USDT",
		"status":        "Trading",
		"marginTrading": "both",
		"lotSizeFilter": map[string]any{
			"basePrecision": "0.000001",
			"minOrderQty":   "0.000048",
			"maxOrderQty":   "71.73",
			"minOrderAmt":   "1",
		},
		"priceFilter": map[string]any{"tickSize": "0.01"},
	}, "spot")

	require.NotNil(t, m)
	assert.Equal(t, "BTC/USDT", m.Symbol)
	assert.Equal(t, core.MarketTypeSpot, m.Type)
	assert.True(t, m.Active)
	assert.True(t, m.Margin)
	assert.Equal(t, "0.000001", m.Precision.Amount)
	assert.Equal(t, "0.01", m.Precision.Price)
	assert.Equal(t, "1", m.Limits.Cost.Min)
}

func TestParseMarket_SpotWithoutMargin(t *testing.T) {
	b := newTestAdapter(t)
	m := b.parseMarket(core.Raw{
		"symbol":        "DOGEUSDT",
		"baseCoin":      "DOGE",
		"quoteCoin":     "USDT",
		"status":        "Trading",
		"marginTrading": "none",
		"lotSizeFilter": map[string]any{"basePrecision": "0.1"},
		"priceFilter":   map[string]any{"tickSize": "0.00001"},
	}, "spot")

	require.NotNil(t, m)
	assert.True(t, m.Spot)
	assert.False(t, m.Margin)
}

func TestParseMarket_LinearSwap(t *testing.T) {
	b := newTestAdapter(t)
	m := b.parseMarket(core.Raw{
		"symbol":       "BTCUSDT",
		"baseCoin":     "BTC",
		"quoteCoin":    "USDT",
		"settleCoin":   "USDT",
		"status":       "Trading",
		"contractType": "LinearPerpetual",
		"lotSizeFilter": map[string]any{
			"qtyStep":     "0.001",
			"minOrderQty": "0.001",
			"maxOrderQty": "100",
		},
		"priceFilter": map[string]any{"tickSize": "0.10"},
	}, "linear")

	require.NotNil(t, m)
	assert.Equal(t, "BTC/USDT:USDT", m.Symbol)
	assert.Equal(t, core.MarketTypeSwap, m.Type)
	require.NotNil(t, m.Linear)
	assert.True(t, *m.Linear)
	assert.Equal(t, "0.001", m.ContractSize)
}

func TestParseMarket_InverseFuture(t *testing.T) {
	b := newTestAdapter(t)
	m := b.parseMarket(core.Raw{
		"symbol":        "BTCUSDH26",
		"baseCoin":      "BTC",
		"quoteCoin":     "USD",
		"settleCoin":    "BTC",
		"status":        "Trading",
		"contractType":  "InverseFutures",
		"deliveryTime":  "1774425600000",
		"lotSizeFilter": map[string]any{"qtyStep": "1"},
		"priceFilter":   map[string]any{"tickSize": "0.5"},
	}, "inverse")

	require.NotNil(t, m)
	assert.Equal(t, core.MarketTypeFuture, m.Type)
	assert.Equal(t, int64(1774425600000), m.Expiry)
	assert.Equal(t, "BTC/USD:BTC-260325", m.Symbol)
	require.NotNil(t, m.Inverse)
	assert.True(t, *m.Inverse)
}

func TestParseTicker_V5Fields(t *testing.T) {
	b := newTestAdapter(t)
	market := &core.Market{Symbol: "BTC/USDT", Quote: "USDT"}
	tk := b.parseTicker(core.Raw{
		"symbol":       "BTCUSDT",
		"lastPrice":    "43500.00",
		"highPrice24h": "44000.00",
		"lowPrice24h":  "42500.00",
		"prevPrice24h": "43000.00",
		"bid1Price":    "43499.00",
		"bid1Size":     "2.5",
		"ask1Price":    "43501.00",
		"ask1Size":     "1.2",
		"volume24h":    "1200.5",
		"turnover24h":  "51921625.0",
	}, market)

	assert.Equal(t, "BTC/USDT", tk.Symbol)
	assert.Equal(t, "43500.00", tk.Last)
	assert.Equal(t, "43000.00", tk.Open)
	assert.Equal(t, "500", tk.Change, "derived from open and last")
	assert.Equal(t, "43499.00", tk.Bid)
}

func TestParseOrder_V5Fields(t *testing.T) {
	b := newTestAdapter(t)
	market := &core.Market{Symbol: "BTC/USDT", Quote: "USDT"}
	o := b.parseOrder(core.Raw{
		"orderId":      "abc-123",
		"orderLinkId":  "client-1",
		"orderStatus":  "PartiallyFilled",
		"orderType":    "Limit",
		"side":         "Buy",
		"price":        "43000.00",
		"qty":          "1.0",
		"cumExecQty":   "0.4",
		"cumExecValue": "17200.00",
		"avgPrice":     "43000.00",
		"leavesQty":    "0.6",
		"timeInForce":  "PostOnly",
		"createdTime":  "1700000000000",
		"updatedTime":  "1700000001000",
	}, market)

	assert.Equal(t, "abc-123", o.ID)
	assert.Equal(t, "client-1", o.ClientOrderID)
	assert.Equal(t, core.StatusOpen, o.Status)
	assert.Equal(t, core.TypeLimit, o.Type)
	assert.Equal(t, core.SideBuy, o.Side)
	assert.True(t, o.PostOnly)
	assert.Equal(t, "0.6", o.Remaining)
	assert.Equal(t, int64(1700000000000), o.Timestamp)
	assert.Equal(t, int64(1700000001000), o.LastTradeTimestamp)
}

func TestOrderStatuses_Mapping(t *testing.T) {
	assert.Equal(t, core.StatusOpen, orderStatuses.Parse("New"))
	assert.Equal(t, core.StatusOpen, orderStatuses.Parse("Untriggered"))
	assert.Equal(t, core.StatusClosed, orderStatuses.Parse("Filled"))
	assert.Equal(t, core.StatusCanceled, orderStatuses.Parse("PartiallyFilledCanceled"))
	assert.Equal(t, core.StatusRejected, orderStatuses.Parse("Rejected"))
}

func TestMarketCategory_PerMarket(t *testing.T) {
	inverse := true
	cases := []struct {
		name   string
		market *core.Market
		expect string
	}{
		{"spot", &core.Market{Type: core.MarketTypeSpot}, "spot"},
		{"margin", &core.Market{Type: core.MarketTypeMargin}, "spot"},
		{"linear swap", &core.Market{Type: core.MarketTypeSwap}, "linear"},
		{"inverse swap", &core.Market{Type: core.MarketTypeSwap, Inverse: &inverse}, "inverse"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, marketCategory(tc.market))
		})
	}
}

func TestResolveCategory_FromOptions(t *testing.T) {
	b := newTestAdapter(t)

	cat, err := b.resolveCategory(exchange.Apply())
	require.NoError(t, err)
	assert.Equal(t, "spot", cat)

	cat, err = b.resolveCategory(exchange.Apply(exchange.WithType(core.MarketTypeSwap)))
	require.NoError(t, err)
	assert.Equal(t, "linear", cat)

	cat, err = b.resolveCategory(exchange.Apply(
		exchange.WithType(core.MarketTypeSwap),
		exchange.WithSubType(core.SubTypeInverse),
	))
	require.NoError(t, err)
	assert.Equal(t, "inverse", cat)

	_, err = b.resolveCategory(exchange.Apply(exchange.WithType(core.MarketTypeOption)))
	require.Error(t, err)
	assert.True(t, core.IsNotSupported(err))
}

func TestErrorMap_RetCodes(t *testing.T) {
	cases := []struct {
		code   string
		expect core.Kind
	}{
		{"10002", core.KindInvalidNonce},
		{"10004", core.KindAuthentication},
		{"10006", core.KindRateLimitExceeded},
		{"110001", core.KindOrderNotFound},
		{"110004", core.KindInsufficientFunds},
		{"181001", core.KindBadSymbol},
	}
	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			err := errorMap.Classify("bybit", tc.code, "", 200, nil)
			assert.Equal(t, tc.expect, err.Kind)
		})
	}
}

func TestTimeframes_Mapping(t *testing.T) {
	assert.Equal(t, "1", timeframes["1m"])
	assert.Equal(t, "60", timeframes["1h"])
	assert.Equal(t, "D", timeframes["1d"])
	assert.Equal(t, "W", timeframes["1w"])
	_, ok := timeframes["2d"]
	assert.False(t, ok)
}

package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gsuz/ccxt/pkg/core"
	"github.com/Gsuz/ccxt/pkg/exchange"
)

func TestBuilder_LimitOrder(t *testing.T) {
	req, opts, err := NewBuilder("BTC/USDT").
		Buy().
		Limit().
		Price("50000").
		Amount("0.001").
		ClientOrderID("my-1").
		Build()

	require.NoError(t, err)
	assert.Equal(t, "BTC/USDT", req.Symbol)
	assert.Equal(t, core.SideBuy, req.Side)
	assert.Equal(t, core.TypeLimit, req.Type)
	assert.Equal(t, "50000", req.Price)
	assert.Equal(t, "0.001", req.Amount)
	assert.Equal(t, "my-1", req.ClientOrderID)
	assert.Empty(t, opts)
}

func TestBuilder_MarketOrderNeedsNoPrice(t *testing.T) {
	req, _, err := NewBuilder("ETH/USDT").Sell().Market().Amount("1").Build()
	require.NoError(t, err)
	assert.Equal(t, core.TypeMarket, req.Type)
	assert.Equal(t, "", req.Price)
}

func TestBuilder_OptionsAccumulate(t *testing.T) {
	_, opts, err := NewBuilder("BTC/USDT").
		Buy().
		Limit().
		Price("50000").
		Amount("0.001").
		PostOnly().
		TimeInForce("IOC").
		TriggerPrice("49000").
		Build()

	require.NoError(t, err)
	o := exchange.Apply(opts...)
	assert.True(t, o.PostOnly)
	assert.Equal(t, "IOC", o.TimeInForce)
	assert.Equal(t, "49000", o.TriggerPrice)
}

func TestBuilder_Validation(t *testing.T) {
	cases := []struct {
		name  string
		build func() (*exchange.OrderRequest, []exchange.Option, error)
	}{
		{"missing symbol", func() (*exchange.OrderRequest, []exchange.Option, error) {
			return NewBuilder("").Buy().Market().Amount("1").Build()
		}},
		{"missing side", func() (*exchange.OrderRequest, []exchange.Option, error) {
			return NewBuilder("BTC/USDT").Market().Amount("1").Build()
		}},
		{"missing type", func() (*exchange.OrderRequest, []exchange.Option, error) {
			return NewBuilder("BTC/USDT").Buy().Amount("1").Build()
		}},
		{"zero amount", func() (*exchange.OrderRequest, []exchange.Option, error) {
			return NewBuilder("BTC/USDT").Buy().Market().Amount("0").Build()
		}},
		{"negative amount", func() (*exchange.OrderRequest, []exchange.Option, error) {
			return NewBuilder("BTC/USDT").Buy().Market().Amount("-1").Build()
		}},
		{"limit without price", func() (*exchange.OrderRequest, []exchange.Option, error) {
			return NewBuilder("BTC/USDT").Buy().Limit().Amount("1").Build()
		}},
		{"garbage price", func() (*exchange.OrderRequest, []exchange.Option, error) {
			return NewBuilder("BTC/USDT").Buy().Limit().Price("fifty").Amount("1").Build()
		}},
		{"garbage amount", func() (*exchange.OrderRequest, []exchange.Option, error) {
			return NewBuilder("BTC/USDT").Buy().Market().Amount("lots").Build()
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := tc.build()
			assert.Error(t, err)
		})
	}
}

func TestBuilder_FirstErrorSticks(t *testing.T) {
	_, _, err := NewBuilder("BTC/USDT").
		Buy().
		Limit().
		Price("oops").
		Price("50000").
		Amount("1").
		Build()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "oops")
}
